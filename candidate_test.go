package hexmesh

import (
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

func TestGetPotentialHexesGrid(t *testing.T) {
	g := newGrid(t, 2, 2, 2, d3.Elem(1))
	snap := g.Snapshot()
	inRange := func(c, n int) bool { return c >= 0 && c < n }
	for k := 0; k <= g.nz; k++ {
		for j := 0; j <= g.ny; j++ {
			for i := 0; i <= g.nx; i++ {
				v := g.Vertices.At(g.idx(i, j, k))
				want := make(map[[8]int]bool)
				for ck := k - 1; ck <= k; ck++ {
					for cj := j - 1; cj <= j; cj++ {
						for ci := i - 1; ci <= i; ci++ {
							if inRange(ci, g.nx) && inRange(cj, g.ny) && inRange(ck, g.nz) {
								want[g.cell(ci, cj, ck).Key()] = true
							}
						}
					}
				}
				hexes, err := GetPotentialHexes(g.Vertices, v)
				if err != nil {
					t.Fatalf("vertex (%d,%d,%d): %v", i, j, k, err)
				}
				if len(hexes) != len(want) {
					t.Errorf("vertex (%d,%d,%d): got %d hexes. want %d", i, j, k, len(hexes), len(want))
				}
				for _, h := range hexes {
					if !h.distinct() {
						t.Errorf("vertex %d: hex %v repeats vertices", v.Index, h.Vertices())
					}
					if h.A != v.Index {
						t.Errorf("vertex %d: hex corner A got %d", v.Index, h.A)
					}
					if !want[h.Key()] {
						t.Errorf("vertex %d: unexpected hex %v", v.Index, h.Vertices())
					}
					if !ValidateHex(h, snap) {
						t.Errorf("vertex %d: hex %v did not validate", v.Index, h.Vertices())
					}
				}
			}
		}
	}
}

func TestGetPotentialHexesClassCounts(t *testing.T) {
	g := newGrid(t, 2, 2, 2, r3.Vec{X: 2, Y: 0.5, Z: 1})
	for _, test := range []struct {
		i, j, k int
		class   VertexClass
	}{
		{0, 0, 0, CornerVertex},
		{1, 0, 0, EdgeVertex},
		{1, 1, 0, FaceVertex},
		{1, 1, 1, InteriorVertex},
	} {
		v := g.Vertices.At(g.idx(test.i, test.j, test.k))
		class, err := ClassOf(v.NumConnectedVertices())
		if err != nil {
			t.Fatal(err)
		}
		if class != test.class {
			t.Errorf("got class %s. want %s", class, test.class)
		}
		hexes, err := GetPotentialHexes(g.Vertices, v)
		if err != nil {
			t.Fatal(err)
		}
		if len(hexes) != class.NumCells() {
			t.Errorf("%s vertex: got %d hexes. want %d", class, len(hexes), class.NumCells())
		}
	}
}

func TestGetPotentialHexesBadValence(t *testing.T) {
	m := NewMesh(DefaultTolerance)
	a := m.AddVertex(r3.Vec{})
	b := m.AddVertex(r3.Vec{X: 1})
	c := m.AddVertex(r3.Vec{Y: 1})
	m.AddEdge(a, b)
	m.AddEdge(a, c)
	m.Connect()
	_, err := GetPotentialHexes(m.Vertices, m.Vertices.At(a))
	if !errors.Is(err, ErrMalformedConnectivity) {
		t.Errorf("got error %v. want %v", err, ErrMalformedConnectivity)
	}
	if _, err := ClassOf(7); !errors.Is(err, ErrMalformedConnectivity) {
		t.Errorf("got error %v for 7 neighbours", err)
	}
}

func TestGetConnectedFaces(t *testing.T) {
	m := NewMesh(DefaultTolerance)
	h := newBox(t, m, unitBox(r3.Vec{}))
	m.Connect()
	faces, err := GetConnectedFaces(m.Vertices, []int{h.A, h.B, h.D, h.E})
	if err != nil {
		t.Fatal(err)
	}
	if len(faces) != 3 {
		t.Fatalf("got %d faces. want 3", len(faces))
	}
	// All four seeds on the bottom face only span one face.
	_, err = GetConnectedFaces(m.Vertices, []int{h.A, h.B, h.C, h.D})
	if !errors.Is(err, ErrMalformedConnectivity) {
		t.Errorf("coplanar seeds: got error %v", err)
	}
	_, err = GetConnectedFaces(m.Vertices, []int{h.A, h.B, h.C})
	if !errors.Is(err, ErrMalformedConnectivity) {
		t.Errorf("three seeds: got error %v", err)
	}
}

func TestGetPotentialHexSingleCell(t *testing.T) {
	m := NewMesh(DefaultTolerance)
	want := newBox(t, m, unitBox(r3.Vec{X: -3, Y: 2, Z: 0.5}))
	m.Connect()
	got, err := GetPotentialHex(m.Vertices, [4]int{want.B, want.A, want.C, want.F})
	if err != nil {
		t.Fatal(err)
	}
	if got.Key() != want.Key() {
		t.Fatalf("got hex %v. want corners of %v", got.Vertices(), want.Vertices())
	}
	if got.A != want.B {
		t.Errorf("corner A got %d. want %d", got.A, want.B)
	}
	if !ValidateHex(got, m.Snapshot()) {
		t.Error("completed hex does not validate")
	}
	if !got.IsAxisAligned(m.Vertices) {
		t.Error("completed hex is not an axis aligned box")
	}
}

func BenchmarkGetPotentialHexes(b *testing.B) {
	g := newGrid(b, 4, 4, 4, d3.Elem(1))
	v := g.Vertices.At(g.idx(2, 2, 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := GetPotentialHexes(g.Vertices, v)
		if err != nil {
			b.Fatal(err)
		}
	}
}
