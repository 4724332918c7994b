package hexmesh

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

// Vertex is a mesh point addressed by its position in a VertexList.
// Its connectivity caches hold indices only and are filled by the
// VertexList adjacency passes.
type Vertex struct {
	// Index is the vertex's slot in the owning VertexList.
	Index    int
	Location r3.Vec
	// VolumeFraction is assigned by callers and carried along unchanged.
	VolumeFraction float64

	faces indexSet
	edges indexSet
	verts indexSet
}

// AddConnectedFace records face index i as incident. It is idempotent.
func (v *Vertex) AddConnectedFace(i int) { v.faces.add(i) }

// AddConnectedEdge records edge index i as incident. It is idempotent.
func (v *Vertex) AddConnectedEdge(i int) { v.edges.add(i) }

// AddConnectedVertex records vertex index i as a neighbour. Self references are ignored.
func (v *Vertex) AddConnectedVertex(i int) {
	if i != v.Index {
		v.verts.add(i)
	}
}

// ConnectedFaces returns incident face indices in ascending order.
func (v *Vertex) ConnectedFaces() []int { return v.faces.slice() }

// ConnectedEdges returns incident edge indices in ascending order.
func (v *Vertex) ConnectedEdges() []int { return v.edges.slice() }

// ConnectedVertices returns neighbouring vertex indices in ascending order.
func (v *Vertex) ConnectedVertices() []int { return v.verts.slice() }

func (v *Vertex) NumConnectedFaces() int    { return v.faces.len() }
func (v *Vertex) NumConnectedEdges() int    { return v.edges.len() }
func (v *Vertex) NumConnectedVertices() int { return v.verts.len() }

func (v *Vertex) HasConnectedFace(i int) bool   { return v.faces.has(i) }
func (v *Vertex) HasConnectedVertex(i int) bool { return v.verts.has(i) }

// DistanceTo returns the euclidean distance from the vertex to p.
func (v *Vertex) DistanceTo(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(v.Location, p))
}

func (v *Vertex) clearConnectivity() {
	v.faces.clear()
	v.edges.clear()
	v.verts.clear()
}

// EdgeKey identifies an undirected edge by its sorted vertex pair.
type EdgeKey [2]int

// MakeEdgeKey returns the key of the edge joining a and b.
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{a, b}
}

// FaceKey identifies a quad face by its sorted vertex quadruple. Two faces
// with the same four vertices in any order share a key.
type FaceKey [4]int

// MakeFaceKey returns the key of the face with corners a, b, c, d.
func MakeFaceKey(a, b, c, d int) FaceKey {
	k := FaceKey{a, b, c, d}
	sort.Ints(k[:])
	return k
}

// Edge is an undirected mesh edge between two vertex indices.
type Edge struct {
	Index      int
	Start, End int
}

// Key returns the order independent identity of the edge.
func (e Edge) Key() EdgeKey { return MakeEdgeKey(e.Start, e.End) }

// Contains reports whether v is one of the edge's endpoints.
func (e Edge) Contains(v int) bool { return e.Start == v || e.End == v }

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) (int, error) {
	switch v {
	case e.Start:
		return e.End, nil
	case e.End:
		return e.Start, nil
	}
	return -1, malformed("vertex %d is not on edge %d-%d", v, e.Start, e.End)
}

// QuadFace is a quadrilateral with corners in winding order so that
// (A,B), (B,C), (C,D) and (D,A) are edges.
type QuadFace struct {
	Index      int
	A, B, C, D int
}

// Vertices returns the corners in winding order.
func (f QuadFace) Vertices() [4]int { return [4]int{f.A, f.B, f.C, f.D} }

// Key returns the set based identity of the face.
func (f QuadFace) Key() FaceKey { return MakeFaceKey(f.A, f.B, f.C, f.D) }

// Contains reports whether v is a corner of f.
func (f QuadFace) Contains(v int) bool {
	return f.A == v || f.B == v || f.C == v || f.D == v
}

// SameAs reports whether f and g have the same corner set.
func (f QuadFace) SameAs(g QuadFace) bool { return f.Key() == g.Key() }

// Edges returns the keys of the four boundary edges.
func (f QuadFace) Edges() [4]EdgeKey {
	return [4]EdgeKey{
		MakeEdgeKey(f.A, f.B),
		MakeEdgeKey(f.B, f.C),
		MakeEdgeKey(f.C, f.D),
		MakeEdgeKey(f.D, f.A),
	}
}

// Centroid returns the mean corner position.
func (f QuadFace) Centroid(vl *VertexList) r3.Vec {
	v := f.Vertices()
	return d3.Set(vl.locations(v[:])).Centroid()
}

// Normal returns the unnormalized normal (A-B)×(A-D).
func (f QuadFace) Normal(vl *VertexList) r3.Vec {
	a := vl.MustAt(f.A).Location
	return r3.Cross(r3.Sub(a, vl.MustAt(f.B).Location), r3.Sub(a, vl.MustAt(f.D).Location))
}

// Hex is a hexahedral cell. A, B, C, D form the bottom ring and E, F, G, H
// the top ring with E above A, F above B, G above C and H above D.
type Hex struct {
	A, B, C, D int
	E, F, G, H int
}

// NewHex builds a hex from corners given in A..H order.
func NewHex(v [8]int) Hex {
	return Hex{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5], G: v[6], H: v[7]}
}

// Vertices returns the corners in A..H order.
func (h Hex) Vertices() [8]int {
	return [8]int{h.A, h.B, h.C, h.D, h.E, h.F, h.G, h.H}
}

// Key returns the sorted corner indices, the identity of the cell
// regardless of corner labelling.
func (h Hex) Key() [8]int {
	k := h.Vertices()
	sort.Ints(k[:])
	return k
}

func (h Hex) distinct() bool {
	k := h.Key()
	for i := 1; i < len(k); i++ {
		if k[i] == k[i-1] {
			return false
		}
	}
	return true
}

// Contains reports whether v is a corner of h.
func (h Hex) Contains(v int) bool {
	for _, c := range h.Vertices() {
		if c == v {
			return true
		}
	}
	return false
}

// Corner offsets into Hex.Vertices.
var (
	hexEdgeCorners = [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}
	hexFaceCorners = [6][4]int{
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
	}
)

// Edges returns the keys of the 12 edges derived from the corner ordering.
func (h Hex) Edges() (edges [12]EdgeKey) {
	v := h.Vertices()
	for i, c := range hexEdgeCorners {
		edges[i] = MakeEdgeKey(v[c[0]], v[c[1]])
	}
	return edges
}

// Faces returns the 6 faces derived from the corner ordering. Face indices are -1.
func (h Hex) Faces() (faces [6]QuadFace) {
	for i, f := range GetHexFaces(h, false) {
		faces[i] = QuadFace{Index: -1, A: f[0], B: f[1], C: f[2], D: f[3]}
	}
	return faces
}

// GetHexFaces returns the vertex indices of the 6 faces of h. When sorted is
// true each quadruple is sorted ascending, which makes it equal to the face's
// FaceKey.
func GetHexFaces(h Hex, sorted bool) (faces [6][4]int) {
	v := h.Vertices()
	for i, c := range hexFaceCorners {
		faces[i] = [4]int{v[c[0]], v[c[1]], v[c[2]], v[c[3]]}
		if sorted {
			sort.Ints(faces[i][:])
		}
	}
	return faces
}

// Centroid returns the mean corner position.
func (h Hex) Centroid(vl *VertexList) r3.Vec {
	v := h.Vertices()
	return d3.Set(vl.locations(v[:])).Centroid()
}

// CellSize returns the absolute per axis extent between corners A and G.
func (h Hex) CellSize(vl *VertexList) r3.Vec {
	return d3.AbsElem(r3.Sub(vl.MustAt(h.G).Location, vl.MustAt(h.A).Location))
}

// IsAxisAligned reports whether the corners take exactly two distinct
// coordinate values along each axis, i.e. h is an axis aligned box.
func (h Hex) IsAxisAligned(vl *VertexList) bool {
	v := h.Vertices()
	pts := vl.locations(v[:])
	for ax := d3.AxisX; ax <= d3.AxisZ; ax++ {
		seen := map[float64]struct{}{}
		for _, p := range pts {
			seen[d3.Comp(d3.Round(p, 5), ax)] = struct{}{}
		}
		if len(seen) != 2 {
			return false
		}
	}
	return true
}
