package pathsearch

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// NewGraph builds an undirected graph from index pairs. Self loops are
// dropped and repeated pairs in either order collapse into one edge.
func NewGraph(edges [][2]int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, e := range edges {
		if e[0] == e[1] {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
	}
	return g
}

// FindAllPaths returns every simple path from start to end over the
// undirected edges. Each path lists vertex indices beginning with start and
// ending with end. Neighbours are explored in ascending order so the result
// is deterministic. A path from a vertex to itself is the single vertex.
func FindAllPaths(edges [][2]int, start, end int, opts ...Option) ([][]int, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return Search(NewGraph(edges), start, end, o)
}

type frame struct {
	v    int64
	nbrs []int64
	next int
}

// Search enumerates simple paths from start to end over g.
func Search(g graph.Undirected, start, end int, o Options) ([][]int, error) {
	if g.Node(int64(start)) == nil {
		return nil, errors.Wrapf(ErrVertexNotFound, "start %d", start)
	}
	if g.Node(int64(end)) == nil {
		return nil, errors.Wrapf(ErrVertexNotFound, "end %d", end)
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	neighbours := func(id int64) []int64 {
		nodes := graph.NodesOf(g.From(id))
		ids := make([]int64, len(nodes))
		for i, n := range nodes {
			ids[i] = n.ID()
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		return ids
	}

	var paths [][]int
	onPath := map[int64]bool{int64(start): true}
	path := []int{start}
	stack := []frame{{v: int64(start), nbrs: neighbours(int64(start))}}
	pop := func() {
		top := stack[len(stack)-1]
		delete(onPath, top.v)
		path = path[:len(path)-1]
		stack = stack[:len(stack)-1]
	}
	steps := 0
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.v == int64(end) {
			paths = append(paths, append([]int(nil), path...))
			if o.MaxPaths > 0 && len(paths) >= o.MaxPaths {
				return paths, nil
			}
			pop()
			continue
		}
		if top.next >= len(top.nbrs) || (o.MaxDepth >= 0 && len(path)-1 >= o.MaxDepth) {
			pop()
			continue
		}
		n := top.nbrs[top.next]
		top.next++
		if onPath[n] {
			continue
		}
		steps++
		if steps > o.MaxSteps {
			return paths, errors.Wrapf(ErrIterationLimit, "after %d steps from %d to %d", o.MaxSteps, start, end)
		}
		onPath[n] = true
		path = append(path, int(n))
		stack = append(stack, frame{v: n, nbrs: neighbours(n)})
	}
	return paths, nil
}
