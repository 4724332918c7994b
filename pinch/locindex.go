package pinch

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// locationDecimals is the number of decimals positions are rounded to
// before lookup.
const locationDecimals = 3

// LocationIndex maps vertex positions to vertex indices so synthesized
// positions reuse existing vertices.
//
// Two positions are equivalent when they round to the same point at
// locationDecimals decimals. This is an approximation: positions a hair
// apart that straddle a rounding boundary map to different vertices, and
// distinct positions less than 1e-3 apart per axis may share a vertex.
//
// The zero value is an empty index ready to use.
type LocationIndex struct {
	m map[[3]int64]int
}

// NewLocationIndex indexes every vertex of m. The first vertex wins when
// several round to the same key.
func NewLocationIndex(m Mesh) *LocationIndex {
	li := &LocationIndex{m: make(map[[3]int64]int, m.NumVertices())}
	for i := 0; i < m.NumVertices(); i++ {
		k := locationKey(m.Vertex(i))
		if _, ok := li.m[k]; !ok {
			li.m[k] = i
		}
	}
	return li
}

// indexFor returns idx, or a new index of the vertices of m when idx is nil.
func indexFor(idx *LocationIndex, m Mesh) *LocationIndex {
	if idx != nil {
		return idx
	}
	return NewLocationIndex(m)
}

// Len returns the number of indexed positions.
func (li *LocationIndex) Len() int { return len(li.m) }

// Lookup returns the vertex index stored for p.
func (li *LocationIndex) Lookup(p r3.Vec) (int, bool) {
	i, ok := li.m[locationKey(p)]
	return i, ok
}

// Index returns the vertex of dst at p, adding one to dst when p is not
// indexed yet.
func (li *LocationIndex) Index(dst *QuadMesh, p r3.Vec) int {
	k := locationKey(p)
	if i, ok := li.m[k]; ok {
		return i
	}
	if li.m == nil {
		li.m = make(map[[3]int64]int)
	}
	i := dst.AddVertex(p)
	li.m[k] = i
	return i
}

// indexAll is Index applied to each point of pts.
func (li *LocationIndex) indexAll(dst *QuadMesh, pts ...r3.Vec) []int {
	idx := make([]int, len(pts))
	for i, p := range pts {
		idx[i] = li.Index(dst, p)
	}
	return idx
}

// Remap renumbers indexed vertices with m as returned by QuadMesh.Compact.
// Entries of removed vertices are dropped.
func (li *LocationIndex) Remap(m []int) {
	for k, i := range li.m {
		if i < 0 || i >= len(m) || m[i] < 0 {
			delete(li.m, k)
			continue
		}
		li.m[k] = m[i]
	}
}

func locationKey(p r3.Vec) [3]int64 {
	const scale = 1e3 // 10^locationDecimals
	return [3]int64{
		int64(math.Round(p.X * scale)),
		int64(math.Round(p.Y * scale)),
		int64(math.Round(p.Z * scale)),
	}
}
