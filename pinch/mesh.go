package pinch

import (
	"sort"

	"github.com/soypat/hexmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a polygonal surface mesh with vertex and edge adjacency queries.
// All returned index slices are owned by the mesh and must not be modified.
type Mesh interface {
	NumVertices() int
	Vertex(i int) r3.Vec
	NumFaces() int
	// Face returns the corner indices of face i. Triangles repeat
	// their last corner.
	Face(i int) [4]int
	NumEdges() int
	// Edge returns the sorted vertex pair of edge i.
	Edge(i int) [2]int
	EdgeFaces(e int) []int
	VertexFaces(v int) []int
	VertexEdges(v int) []int
	// VertexNeighbors returns the vertices sharing an edge with v in
	// ascending order.
	VertexNeighbors(v int) []int
}

// QuadMesh is a mutable quad mesh. Adjacency is computed on first query
// after a modification.
type QuadMesh struct {
	verts []r3.Vec
	faces [][4]int
	topo  *topology
}

var _ Mesh = (*QuadMesh)(nil)

type topology struct {
	edges     [][2]int
	edgeIdx   map[hexmesh.EdgeKey]int
	edgeFaces [][]int
	vertFaces [][]int
	vertEdges [][]int
	vertNbrs  [][]int
}

// FromMesh copies the live vertices and the faces of a hex mesh into a new
// QuadMesh. The returned slice maps QuadMesh vertex indices back to m's.
func FromMesh(m *hexmesh.Mesh) (*QuadMesh, []int) {
	qm := &QuadMesh{}
	toQuad := make([]int, m.Vertices.Len())
	var fromQuad []int
	for i := range toQuad {
		v := m.Vertices.At(i)
		if v == nil {
			toQuad[i] = -1
			continue
		}
		toQuad[i] = qm.AddVertex(v.Location)
		fromQuad = append(fromQuad, i)
	}
outer:
	for i := 0; i < m.Faces.Len(); i++ {
		var f [4]int
		for j, v := range m.Faces.At(i).Vertices() {
			if toQuad[v] < 0 {
				continue outer
			}
			f[j] = toQuad[v]
		}
		qm.AddFace(f[0], f[1], f[2], f[3])
	}
	return qm, fromQuad
}

func (m *QuadMesh) NumVertices() int    { return len(m.verts) }
func (m *QuadMesh) Vertex(i int) r3.Vec { return m.verts[i] }
func (m *QuadMesh) NumFaces() int       { return len(m.faces) }
func (m *QuadMesh) Face(i int) [4]int   { return m.faces[i] }

func (m *QuadMesh) NumEdges() int           { return len(m.topology().edges) }
func (m *QuadMesh) Edge(e int) [2]int       { return m.topology().edges[e] }
func (m *QuadMesh) EdgeFaces(e int) []int   { return m.topology().edgeFaces[e] }
func (m *QuadMesh) VertexFaces(v int) []int { return m.topology().vertFaces[v] }
func (m *QuadMesh) VertexEdges(v int) []int { return m.topology().vertEdges[v] }

func (m *QuadMesh) VertexNeighbors(v int) []int { return m.topology().vertNbrs[v] }

// FindEdge returns the index of the edge joining a and b.
func (m *QuadMesh) FindEdge(a, b int) (int, bool) {
	e, ok := m.topology().edgeIdx[hexmesh.MakeEdgeKey(a, b)]
	return e, ok
}

// AddVertex appends p and returns its index.
func (m *QuadMesh) AddVertex(p r3.Vec) int {
	m.verts = append(m.verts, p)
	m.topo = nil
	return len(m.verts) - 1
}

// AddFace appends the face a-b-c-d and returns its index. Pass c twice as
// d for a triangle. AddFace panics if a corner is out of range.
func (m *QuadMesh) AddFace(a, b, c, d int) int {
	for _, v := range [4]int{a, b, c, d} {
		if v < 0 || v >= len(m.verts) {
			panic("pinch: face corner out of range")
		}
	}
	m.faces = append(m.faces, [4]int{a, b, c, d})
	m.topo = nil
	return len(m.faces) - 1
}

// RemoveFaces deletes the faces at the given indices. Duplicate and out of
// range indices are ignored. Remaining faces keep their relative order.
// It returns the number of faces removed.
func (m *QuadMesh) RemoveFaces(idx []int) int {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(m.faces) {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := m.faces[:0]
	for i, f := range m.faces {
		if !drop[i] {
			kept = append(kept, f)
		}
	}
	m.faces = kept
	m.topo = nil
	return len(drop)
}

// Compact removes vertices not referenced by any face and returns the
// old to new index mapping, with -1 for removed vertices.
func (m *QuadMesh) Compact() []int {
	used := make([]bool, len(m.verts))
	for _, f := range m.faces {
		for _, v := range f {
			used[v] = true
		}
	}
	remap := make([]int, len(m.verts))
	n := 0
	for i, p := range m.verts {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = n
		m.verts[n] = p
		n++
	}
	m.verts = m.verts[:n]
	for i := range m.faces {
		for j := range m.faces[i] {
			m.faces[i][j] = remap[m.faces[i][j]]
		}
	}
	m.topo = nil
	return remap
}

// Append copies the vertices and faces of other into m and returns the
// index offset applied to other's vertices.
func (m *QuadMesh) Append(other Mesh) int {
	offset := len(m.verts)
	for i := 0; i < other.NumVertices(); i++ {
		m.verts = append(m.verts, other.Vertex(i))
	}
	for i := 0; i < other.NumFaces(); i++ {
		f := other.Face(i)
		m.faces = append(m.faces, [4]int{f[0] + offset, f[1] + offset, f[2] + offset, f[3] + offset})
	}
	m.topo = nil
	return offset
}

func (m *QuadMesh) topology() *topology {
	if m.topo != nil {
		return m.topo
	}
	nv := len(m.verts)
	t := &topology{
		edgeIdx:   make(map[hexmesh.EdgeKey]int),
		vertFaces: make([][]int, nv),
		vertEdges: make([][]int, nv),
		vertNbrs:  make([][]int, nv),
	}
	for fi, f := range m.faces {
		for j := 0; j < 4; j++ {
			a, b := f[j], f[(j+1)%4]
			if a == b {
				continue
			}
			k := hexmesh.MakeEdgeKey(a, b)
			e, ok := t.edgeIdx[k]
			if !ok {
				e = len(t.edges)
				t.edgeIdx[k] = e
				t.edges = append(t.edges, [2]int(k))
				t.edgeFaces = append(t.edgeFaces, nil)
				t.vertEdges[a] = append(t.vertEdges[a], e)
				t.vertEdges[b] = append(t.vertEdges[b], e)
				t.vertNbrs[a] = append(t.vertNbrs[a], b)
				t.vertNbrs[b] = append(t.vertNbrs[b], a)
			}
			t.edgeFaces[e] = appendFace(t.edgeFaces[e], fi)
		}
		for _, v := range f {
			t.vertFaces[v] = appendFace(t.vertFaces[v], fi)
		}
	}
	for _, nbrs := range t.vertNbrs {
		sort.Ints(nbrs)
	}
	m.topo = t
	return t
}

// appendFace appends face index fi unless it is already the last element.
// Faces are visited in ascending order so this keeps s free of duplicates.
func appendFace(s []int, fi int) []int {
	if len(s) > 0 && s[len(s)-1] == fi {
		return s
	}
	return append(s, fi)
}
