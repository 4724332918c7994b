package pinch

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/pathsearch"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// gridTol is the absolute tolerance for comparing background grid offsets.
const gridTol = 1e-5

// Axis is a direction of the background grid.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	}
	return "axis(?)"
}

// CellSize returns the grid spacing of a structured background mesh
// whose vertices are numbered row by row starting at the minimum corner.
func CellSize(bg Mesh) (r2.Vec, error) {
	if bg.NumVertices() < 3 {
		return r2.Vec{}, unsupported("background has %d vertices", bg.NumVertices())
	}
	p0 := bg.Vertex(0)
	cell := r2.Vec{X: bg.Vertex(1).X - p0.X}
	if cell.X <= gridTol {
		return r2.Vec{}, unsupported("background x spacing %g", cell.X)
	}
	for i := 2; i < bg.NumVertices(); i++ {
		if dy := bg.Vertex(i).Y - p0.Y; dy > gridTol {
			cell.Y = dy
			return cell, nil
		}
	}
	return r2.Vec{}, unsupported("background has a single row")
}

// DetectPinch reports whether v is a vertex left half-open by two
// consecutive path segments. Such a vertex has 4 faces and 6 edges and
// exactly two grid neighbours, both along the returned axis. It returns
// AxisNone for any other vertex.
func DetectPinch(m Mesh, v int, cell r2.Vec) Axis {
	if len(m.VertexFaces(v)) != 4 || len(m.VertexEdges(v)) != 6 {
		return AxisNone
	}
	p := m.Vertex(v)
	var nx, ny int
	for _, n := range m.VertexNeighbors(v) {
		d := r3.Sub(m.Vertex(n), p)
		switch {
		case near(math.Abs(d.X), cell.X) && near(d.Y, 0):
			nx++
		case near(math.Abs(d.Y), cell.Y) && near(d.X, 0):
			ny++
		}
	}
	switch {
	case nx == 2 && ny == 0:
		return AxisX
	case ny == 2 && nx == 0:
		return AxisY
	}
	return AxisNone
}

// MeshPinchVertex closes the two gaps on either side of a pinch vertex v
// detected along axis with one face each.
func MeshPinchVertex(dst *QuadMesh, v int, axis Axis, cell r2.Vec, idx *LocationIndex) error {
	idx = indexFor(idx, dst)
	x, y := cell.X, cell.Y
	p := dst.Vertex(v)
	var pts [6]r3.Vec
	switch axis {
	case AxisX:
		pts[0] = offset(p, -x/3, y/3)
		pts[1] = offset(p, 0, y/2)
		pts[2] = offset(pts[0], 2*x/3, 0)
		pts[3] = offset(p, -x/3, -y/3)
		pts[4] = offset(p, 0, -y/2)
		pts[5] = offset(pts[3], 2*x/3, 0)
	case AxisY:
		pts[0] = offset(p, -x/3, -y/3)
		pts[1] = offset(p, -x/2, 0)
		pts[2] = offset(pts[0], 0, 2*y/3)
		pts[3] = offset(p, x/3, -y/3)
		pts[4] = offset(p, x/2, 0)
		pts[5] = offset(pts[3], 0, 2*y/3)
	default:
		return unsupported("no pinch template for axis %v", axis)
	}
	i := idx.indexAll(dst, pts[:]...)
	dst.AddFace(v, i[2], i[1], i[0])
	dst.AddFace(v, i[3], i[4], i[5])
	return nil
}

// MeshEdge meshes the background edge v1-v2 with two trapezoids, one on
// each side of the edge. The edge must be aligned with a grid axis.
func MeshEdge(dst *QuadMesh, bg Mesh, v1, v2 int, cell r2.Vec, idx *LocationIndex) error {
	idx = indexFor(idx, dst)
	p0, p1 := bg.Vertex(v1), bg.Vertex(v2)
	d := r3.Sub(p1, p0)
	if d.X < -gridTol || d.Y < -gridTol {
		p0, p1 = p1, p0
		d = r3.Scale(-1, d)
	}
	x, y := cell.X, cell.Y
	var p2, p3, p4, p5 r3.Vec
	switch {
	case near(d.Y, 0) && d.X > gridTol:
		p2 = offset(p0, x/3, y/3)
		p3 = offset(p2, x/3, 0)
		p4 = offset(p0, x/3, -y/3)
		p5 = offset(p4, x/3, 0)
	case near(d.X, 0) && d.Y > gridTol:
		p2 = offset(p0, -x/3, y/3)
		p3 = offset(p2, 0, y/3)
		p4 = offset(p0, x/3, y/3)
		p5 = offset(p4, 0, y/3)
	default:
		return unsupported("edge %d-%d is not aligned with the grid", v1, v2)
	}
	i := idx.indexAll(dst, p0, p1, p2, p3, p4, p5)
	dst.AddFace(i[0], i[1], i[3], i[2])
	dst.AddFace(i[0], i[4], i[5], i[1])
	return nil
}

// MeshComponentFace adds a trapezoid against the side of background face
// that a path arriving at corner vFace from v points into. Faces are
// expected with corners counter-clockwise starting at the minimum corner.
func MeshComponentFace(dst *QuadMesh, bg Mesh, face, vFace, v int, cell r2.Vec, idx *LocationIndex) error {
	idx = indexFor(idx, dst)
	f := bg.Face(face)
	a, b, c, d := f[0], f[1], f[2], f[3]
	dir := r3.Sub(bg.Vertex(vFace), bg.Vertex(v))
	x, y := cell.X, cell.Y
	var c0, c1 int
	var p2, p3 r3.Vec
	switch {
	case near(dir.X, 0) && !near(dir.Y, 0):
		switch vFace {
		case a, b:
			c0, c1 = a, b
			p2 = offset(bg.Vertex(c0), x/3, -y/3)
			p3 = offset(p2, x/3, 0)
		case c, d:
			c0, c1 = c, d
			p2 = offset(bg.Vertex(c0), -x/3, y/3)
			p3 = offset(p2, -x/3, 0)
		default:
			return malformed("vertex %d is not a corner of face %d", vFace, face)
		}
	case near(dir.Y, 0) && !near(dir.X, 0):
		switch vFace {
		case a, d:
			c0, c1 = d, a
			p2 = offset(bg.Vertex(c0), -x/3, -y/3)
			p3 = offset(p2, 0, -y/3)
		case b, c:
			c0, c1 = b, c
			p2 = offset(bg.Vertex(c0), x/3, y/3)
			p3 = offset(p2, 0, y/3)
		default:
			return malformed("vertex %d is not a corner of face %d", vFace, face)
		}
	default:
		return unsupported("path step %d-%d is not aligned with the grid", v, vFace)
	}
	i := idx.indexAll(dst, bg.Vertex(c0), bg.Vertex(c1), p2, p3)
	dst.AddFace(i[0], i[2], i[3], i[1])
	return nil
}

// ConnectByVertexPath meshes a thin strip along path, a chain of
// background vertices, into dst. Kept background faces at either end of
// the path get a transition face. Vertices of dst left pinched between
// two strip segments are closed afterwards.
func ConnectByVertexPath(dst *QuadMesh, bg Mesh, keep []int, path []int, idx *LocationIndex) error {
	idx = indexFor(idx, dst)
	if len(path) < 2 {
		return unsupported("path of %d vertices", len(path))
	}
	cell, err := CellSize(bg)
	if err != nil {
		return err
	}
	for i := 0; i+1 < len(path); i++ {
		if err := MeshEdge(dst, bg, path[i], path[i+1], cell, idx); err != nil {
			return err
		}
	}
	kept := make(map[int]bool, len(keep))
	for _, f := range keep {
		kept[f] = true
	}
	n := len(path)
	for _, end := range [2][2]int{{path[0], path[1]}, {path[n-1], path[n-2]}} {
		for _, f := range bg.VertexFaces(end[0]) {
			if !kept[f] {
				continue
			}
			if err := MeshComponentFace(dst, bg, f, end[0], end[1], cell, idx); err != nil {
				return err
			}
		}
	}
	var pinched []int
	var axes []Axis
	for v := 0; v < dst.NumVertices(); v++ {
		if ax := DetectPinch(dst, v, cell); ax != AxisNone {
			pinched = append(pinched, v)
			axes = append(axes, ax)
		}
	}
	for i, v := range pinched {
		if err := MeshPinchVertex(dst, v, axes[i], cell, idx); err != nil {
			return err
		}
	}
	return nil
}

// BridgeComponents finds every path from start to end over the boundary
// edges of the background and connects each one with ConnectByVertexPath.
// It returns the number of paths meshed. A nil idx starts from the
// vertices of dst.
func BridgeComponents(dst *QuadMesh, bg Mesh, keep []int, boundary [][2]int, start, end int, idx *LocationIndex, opts ...pathsearch.Option) (int, error) {
	idx = indexFor(idx, dst)
	paths, err := pathsearch.FindAllPaths(boundary, start, end, opts...)
	if err != nil {
		return 0, errors.Wrapf(err, "pinch: bridging %d-%d", start, end)
	}
	n := 0
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		if err := ConnectByVertexPath(dst, bg, keep, path, idx); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Components groups the kept faces of m into edge-connected components.
// Each component is sorted and components are ordered by their first face.
func Components(m Mesh, keep []int) [][]int {
	kept := make(map[int]bool, len(keep))
	for _, f := range keep {
		kept[f] = true
	}
	seen := make(map[int]bool, len(keep))
	var comps [][]int
	for f := 0; f < m.NumFaces(); f++ {
		if !kept[f] || seen[f] {
			continue
		}
		seen[f] = true
		comp := []int{f}
		for queue := []int{f}; len(queue) > 0; queue = queue[1:] {
			for _, g := range adjacentFaces(m, queue[0]) {
				if kept[g] && !seen[g] {
					seen[g] = true
					comp = append(comp, g)
					queue = append(queue, g)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// adjacentFaces returns the faces sharing an edge with face f.
func adjacentFaces(m Mesh, f int) []int {
	var adj []int
	corners := m.Face(f)
	for j := 0; j < 4; j++ {
		a, b := corners[j], corners[(j+1)%4]
		if a == b {
			continue
		}
		for _, e := range m.VertexEdges(a) {
			if ev := m.Edge(e); ev != [2]int(hexmesh.MakeEdgeKey(a, b)) {
				continue
			}
			for _, g := range m.EdgeFaces(e) {
				if g != f {
					adj = append(adj, g)
				}
			}
		}
	}
	return adj
}

func offset(p r3.Vec, dx, dy float64) r3.Vec {
	return r3.Vec{X: p.X + dx, Y: p.Y + dy, Z: p.Z}
}

func near(a, b float64) bool { return math.Abs(a-b) < gridTol }

func unsupported(format string, args ...interface{}) error {
	return errors.Wrapf(hexmesh.ErrUnsupportedInput, "pinch: "+format, args...)
}

func malformed(format string, args ...interface{}) error {
	return errors.Wrapf(hexmesh.ErrMalformedConnectivity, "pinch: "+format, args...)
}
