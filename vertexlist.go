package hexmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// VertexList is an arena of vertices addressed by slot index. Deleted slots
// stay in place as tombstones so the indices of surviving vertices never
// change until Compact is called.
type VertexList struct {
	// Tol is used by Weld and Find to match positions.
	Tol   Tolerance
	slots []*Vertex
	live  int
	index vertexIndex
}

// NewVertexList returns an empty list using tol for position matching.
func NewVertexList(tol Tolerance) *VertexList {
	if !tol.valid() {
		tol = DefaultTolerance
	}
	return &VertexList{Tol: tol}
}

// Add appends a new vertex at p regardless of existing vertices.
func (vl *VertexList) Add(p r3.Vec) *Vertex {
	v := &Vertex{Index: len(vl.slots), Location: p}
	vl.slots = append(vl.slots, v)
	vl.live++
	vl.index.insert(v.Index, p)
	return v
}

// Weld returns the index of a live vertex within Tol.Dist of p, appending a
// new vertex when none exists. added reports whether a vertex was created.
func (vl *VertexList) Weld(p r3.Vec) (index int, added bool) {
	if i, ok := vl.Find(p); ok {
		return i, false
	}
	return vl.Add(p).Index, true
}

// Find returns the closest live vertex whose coordinates lie within Tol.Dist of p.
func (vl *VertexList) Find(p r3.Vec) (int, bool) {
	i := vl.index.within(p, vl.tolerance().Dist, vl.isLive)
	return i, i >= 0
}

// Closest returns the live vertex nearest to p and its distance.
// It returns -1 if the list has no live vertices.
func (vl *VertexList) Closest(p r3.Vec) (int, float64) {
	if vl.live == 0 {
		return -1, math.Inf(1)
	}
	return vl.index.nearest(p, vl.isLive)
}

// Len returns the number of slots, deleted ones included.
func (vl *VertexList) Len() int { return len(vl.slots) }

// Live returns the number of vertices that are not deleted.
func (vl *VertexList) Live() int { return vl.live }

// At returns the vertex at slot i or nil if i is out of range or deleted.
func (vl *VertexList) At(i int) *Vertex {
	if i < 0 || i >= len(vl.slots) {
		return nil
	}
	return vl.slots[i]
}

// MustAt is like At but panics when the slot holds no vertex.
func (vl *VertexList) MustAt(i int) *Vertex {
	v := vl.At(i)
	if v == nil {
		panic("vertex slot is empty or out of range")
	}
	return v
}

func (vl *VertexList) isLive(i int) bool { return vl.At(i) != nil }

// Delete tombstones slot i. Indices of other vertices are unaffected.
func (vl *VertexList) Delete(i int) {
	if vl.At(i) == nil {
		return
	}
	vl.slots[i] = nil
	vl.live--
}

// ForEach calls fn for every live vertex in index order.
func (vl *VertexList) ForEach(fn func(v *Vertex)) {
	for _, v := range vl.slots {
		if v != nil {
			fn(v)
		}
	}
}

// Compact removes tombstones and renumbers the surviving vertices. It returns
// the mapping from old to new index with -1 for deleted slots. All
// connectivity caches are cleared since they refer to entities that are
// renumbered alongside; callers rebuild them after remapping their edges,
// faces and hexes.
func (vl *VertexList) Compact() []int {
	remap := make([]int, len(vl.slots))
	kept := vl.slots[:0]
	pts := make(vertexPoints, 0, vl.live)
	for i, v := range vl.slots {
		if v == nil {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		v.Index = len(kept)
		v.clearConnectivity()
		kept = append(kept, v)
		pts = append(pts, vertexPoint{Vec: v.Location, index: v.Index})
	}
	for i := len(kept); i < len(vl.slots); i++ {
		vl.slots[i] = nil
	}
	vl.slots = kept
	vl.live = len(kept)
	vl.index.rebuild(pts)
	return remap
}

// AddConnectedEdges records every edge on its two endpoints.
func (vl *VertexList) AddConnectedEdges(el *EdgeList) {
	for _, e := range el.edges {
		if a, b := vl.At(e.Start), vl.At(e.End); a != nil && b != nil {
			a.AddConnectedEdge(e.Index)
			b.AddConnectedEdge(e.Index)
		}
	}
}

// AddConnectedQuadFaces records every face on its four corners.
func (vl *VertexList) AddConnectedQuadFaces(fl *QuadFaceList) {
	for _, f := range fl.faces {
		for _, c := range f.Vertices() {
			if v := vl.At(c); v != nil {
				v.AddConnectedFace(f.Index)
			}
		}
	}
}

// AddConnectedVertices links each vertex to the opposite endpoint of its
// connected edges. AddConnectedEdges must have run first.
func (vl *VertexList) AddConnectedVertices(el *EdgeList) {
	vl.ForEach(func(v *Vertex) {
		for _, ei := range v.ConnectedEdges() {
			other, err := el.At(ei).Other(v.Index)
			if err == nil && vl.At(other) != nil {
				v.AddConnectedVertex(other)
			}
		}
	})
}

// AddConnectedVerticesFromHexes links the corners of each hex along its 12 edges.
func (vl *VertexList) AddConnectedVerticesFromHexes(hexes []Hex) {
	for _, h := range hexes {
		for _, e := range h.Edges() {
			a, b := vl.At(e[0]), vl.At(e[1])
			if a == nil || b == nil {
				continue
			}
			a.AddConnectedVertex(b.Index)
			b.AddConnectedVertex(a.Index)
		}
	}
}

// ClearConnectedVertices empties the neighbour cache of every live vertex.
func (vl *VertexList) ClearConnectedVertices() {
	vl.ForEach(func(v *Vertex) { v.verts.clear() })
}

// ClearConnectivity empties all connectivity caches.
func (vl *VertexList) ClearConnectivity() {
	vl.ForEach(func(v *Vertex) { v.clearConnectivity() })
}

func (vl *VertexList) tolerance() Tolerance {
	if !vl.Tol.valid() {
		return DefaultTolerance
	}
	return vl.Tol
}

func (vl *VertexList) locations(idx []int) []r3.Vec {
	pts := make([]r3.Vec, len(idx))
	for i, vi := range idx {
		pts[i] = vl.MustAt(vi).Location
	}
	return pts
}
