package hexmesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

var (
	_ kdtree.Interface  = vertexPoints{}
	_ kdtree.Comparable = vertexPoint{}
)

// vertexPoint is a vertex position stored in the weld index.
type vertexPoint struct {
	r3.Vec
	index int
}

func (p vertexPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(vertexPoint)
	switch d {
	case 0:
		return p.X - q.X
	case 1:
		return p.Y - q.Y
	case 2:
		return p.Z - q.Z
	}
	panic("unreachable")
}

func (p vertexPoint) Dims() int { return 3 }

// Distance returns the squared euclidean distance between points.
func (p vertexPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(vertexPoint)
	return r3.Norm2(r3.Sub(p.Vec, q.Vec))
}

type vertexPoints []vertexPoint

func (vp vertexPoints) Index(i int) kdtree.Comparable { return vp[i] }

func (vp vertexPoints) Len() int { return len(vp) }

func (vp vertexPoints) Pivot(d kdtree.Dim) int {
	p := vertexPlane{dim: d, points: vp}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (vp vertexPoints) Slice(start, end int) kdtree.Interface { return vp[start:end] }

type vertexPlane struct {
	dim    kdtree.Dim
	points vertexPoints
}

func (p vertexPlane) Less(i, j int) bool {
	return p.points[i].Compare(p.points[j], p.dim) < 0
}
func (p vertexPlane) Swap(i, j int) { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p vertexPlane) Len() int      { return len(p.points) }
func (p vertexPlane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

// vertexIndex is a spatial index over vertex positions. Deleted vertices stay
// in the tree until the next rebuild, so lookups take a liveness filter.
type vertexIndex struct {
	tree kdtree.Tree
}

func (vi *vertexIndex) insert(index int, p r3.Vec) {
	vi.tree.Insert(vertexPoint{Vec: p, index: index}, false)
}

// rebuild replaces the tree with a balanced one built from pts.
func (vi *vertexIndex) rebuild(pts vertexPoints) {
	if len(pts) == 0 {
		vi.tree = kdtree.Tree{}
		return
	}
	vi.tree = *kdtree.New(pts, false)
}

// within returns the index of the closest live point whose components all lie
// within tol of p. It returns -1 when there is none.
func (vi *vertexIndex) within(p r3.Vec, tol float64, live func(int) bool) int {
	if vi.tree.Root == nil {
		return -1
	}
	r := tol * math.Sqrt(3)
	keep := kdtree.NewDistKeeper(r * r)
	vi.tree.NearestSet(keep, vertexPoint{Vec: p})
	best, bestDist := -1, math.Inf(1)
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue // sentinel
		}
		q := cd.Comparable.(vertexPoint)
		if !live(q.index) || !d3.EqualWithin(q.Vec, p, tol) {
			continue
		}
		if cd.Dist < bestDist || (cd.Dist == bestDist && q.index < best) {
			best, bestDist = q.index, cd.Dist
		}
	}
	return best
}

// nearest returns the closest live point to p and its distance. Deleted
// points force a linear fallback through the keeper.
func (vi *vertexIndex) nearest(p r3.Vec, live func(int) bool) (int, float64) {
	if vi.tree.Root == nil {
		return -1, math.Inf(1)
	}
	got, d2 := vi.tree.Nearest(vertexPoint{Vec: p})
	if q := got.(vertexPoint); live(q.index) {
		return q.index, math.Sqrt(d2)
	}
	// Closest point is a tombstone; widen the search until a live one shows up.
	for k := 2; ; k *= 2 {
		keep := kdtree.NewNKeeper(k)
		vi.tree.NearestSet(keep, vertexPoint{Vec: p})
		best, bestDist := -1, math.Inf(1)
		for _, cd := range keep.Heap {
			if cd.Comparable == nil {
				continue
			}
			q := cd.Comparable.(vertexPoint)
			if live(q.index) && cd.Dist < bestDist {
				best, bestDist = q.index, cd.Dist
			}
		}
		if best >= 0 {
			return best, math.Sqrt(bestDist)
		}
		if k >= vi.tree.Count {
			return -1, math.Inf(1)
		}
	}
}
