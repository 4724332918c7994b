// Package pathsearch enumerates every simple path between two vertices of a
// small undirected graph given as a set of index pairs. It is meant for local
// neighbourhoods of a mesh, such as the boundary around a pinch, where the
// number of paths stays small. The search is exhaustive depth-first with
// backtracking and runs on an explicit stack bounded by an iteration limit.
//
// ShortestPath answers the cheaper question of a single fewest-edge path.
package pathsearch
