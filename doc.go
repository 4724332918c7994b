// Package hexmesh implements topology for structured hexahedral meshes:
// vertex, edge, quad face and hex collections with adjacency caches,
// discovery of candidate hexes around a vertex from its local connectivity,
// validation of candidates against known edges and faces, and synthesis of
// bridging cells that close pinch points between faces.
//
// Vertices are addressed by their slot index in a VertexList. Deleting a
// vertex leaves a tombstone; indices only change on an explicit Compact.
package hexmesh
