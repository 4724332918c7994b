package hexmesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

// grid is a structured block of nx*ny*nz hexes with every face present.
type grid struct {
	*Mesh
	nx, ny, nz int
}

func (g grid) idx(i, j, k int) int {
	return i + (g.nx+1)*(j+(g.ny+1)*k)
}

// cell returns the hex of grid cell (i,j,k) in canonical corner order.
func (g grid) cell(i, j, k int) Hex {
	return Hex{
		A: g.idx(i, j, k), B: g.idx(i+1, j, k), C: g.idx(i+1, j+1, k), D: g.idx(i, j+1, k),
		E: g.idx(i, j, k+1), F: g.idx(i+1, j, k+1), G: g.idx(i+1, j+1, k+1), H: g.idx(i, j+1, k+1),
	}
}

func newGrid(t testing.TB, nx, ny, nz int, size r3.Vec) grid {
	t.Helper()
	g := grid{Mesh: NewMesh(RelativeTolerance(size)), nx: nx, ny: ny, nz: nz}
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				p := r3.Vec{X: float64(i) * size.X, Y: float64(j) * size.Y, Z: float64(k) * size.Z}
				if got := g.AddVertex(p); got != g.idx(i, j, k) {
					t.Fatalf("vertex index got %d. want %d", got, g.idx(i, j, k))
				}
			}
		}
	}
	mustFace := func(a, b, c, d int) {
		if _, err := g.AddFace(QuadFace{A: a, B: b, C: c, D: d}); err != nil {
			t.Fatal(err)
		}
	}
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				if i < nx && j < ny {
					mustFace(g.idx(i, j, k), g.idx(i+1, j, k), g.idx(i+1, j+1, k), g.idx(i, j+1, k))
				}
				if i < nx && k < nz {
					mustFace(g.idx(i, j, k), g.idx(i+1, j, k), g.idx(i+1, j, k+1), g.idx(i, j, k+1))
				}
				if j < ny && k < nz {
					mustFace(g.idx(i, j, k), g.idx(i, j+1, k), g.idx(i, j+1, k+1), g.idx(i, j, k+1))
				}
			}
		}
	}
	g.Connect()
	return g
}

// newBox adds the 8 corners of box to m and returns them as a hex, with the
// 6 faces added.
func newBox(t testing.TB, m *Mesh, box d3.Box) Hex {
	t.Helper()
	var v [8]int
	for i, p := range box.Corners() {
		v[i], _ = m.Vertices.Weld(p)
	}
	h := NewHex(v)
	for _, f := range h.Faces() {
		if _, err := m.AddFace(f); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func unitBox(min r3.Vec) d3.Box {
	return d3.Box{Min: min, Max: r3.Add(min, d3.Elem(1))}
}
