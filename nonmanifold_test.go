package hexmesh

import (
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

// touchingBoxes returns a mesh with a unit box at the origin and another unit
// box at min, both added as hexes.
func touchingBoxes(t *testing.T, min r3.Vec) (m *Mesh, a, b Hex) {
	t.Helper()
	m = NewMesh(DefaultTolerance)
	a = newBox(t, m, unitBox(r3.Vec{}))
	b = newBox(t, m, unitBox(min))
	for _, h := range []Hex{a, b} {
		if _, err := m.AddHex(h); err != nil {
			t.Fatal(err)
		}
	}
	m.Connect()
	return m, a, b
}

func TestResolveNonManifold(t *testing.T) {
	for _, test := range []struct {
		name      string
		min       r3.Vec // of the second box
		mode      ResolveMode
		wantHexes int
		removed   int
		spot      func(a Hex) []int
	}{
		{name: "edge bridge", min: r3.Vec{X: -1, Y: -1}, mode: ResolveBridge, wantHexes: 3},
		{name: "vertex bridge", min: d3.Elem(1), mode: ResolveBridge, wantHexes: 4},
		{
			name: "edge split", min: r3.Vec{X: -1, Y: -1}, mode: ResolveSplit, wantHexes: 6, removed: 2,
			spot: func(a Hex) []int { return []int{a.A, a.E} },
		},
		{
			name: "vertex split", min: d3.Elem(1), mode: ResolveSplit, wantHexes: 8, removed: 2,
			spot: func(a Hex) []int { return []int{a.G} },
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			m, a, _ := touchingBoxes(t, test.min)
			res, err := m.ResolveNonManifold(d3.Elem(1), test.mode)
			if err != nil {
				t.Fatal(err)
			}
			if res.Spots != 1 {
				t.Errorf("got %d spots. want 1", res.Spots)
			}
			if len(m.Hexes) != test.wantHexes || res.Removed != test.removed {
				t.Fatalf("got %d hexes, %d removed. want %d, %d", len(m.Hexes), res.Removed, test.wantHexes, test.removed)
			}
			if got := len(res.Added); got != test.wantHexes-2+test.removed {
				t.Errorf("got %d added hexes. want %d", got, test.wantHexes-2+test.removed)
			}
			snap := m.Snapshot()
			for _, h := range res.Added {
				if !ValidateHex(h, snap) {
					t.Errorf("hex %v does not validate", h.Vertices())
				}
			}
			nm, err := FindNonManifold(m.Hexes)
			if err != nil {
				t.Fatal(err)
			}
			if !nm.Empty() {
				t.Errorf("still non-manifold: %+v", nm)
			}
			if test.spot != nil {
				for _, v := range test.spot(a) {
					if m.Vertices.At(v) != nil || len(m.hexesWith(v)) != 0 {
						t.Errorf("vertex %d survived the split", v)
					}
				}
			}
			again, err := m.ResolveNonManifold(d3.Elem(1), test.mode)
			if err != nil || again.Spots != 0 || len(again.Added) != 0 {
				t.Errorf("second pass got %+v, %v", again, err)
			}
		})
	}
}

func TestResolveNonManifoldCompact(t *testing.T) {
	m, _, _ := touchingBoxes(t, d3.Elem(1))
	if _, err := m.ResolveNonManifold(d3.Elem(1), ResolveSplit); err != nil {
		t.Fatal(err)
	}
	m.Compact()
	if len(m.Hexes) != 8 {
		t.Fatalf("got %d hexes after compaction. want 8", len(m.Hexes))
	}
	snap := m.Snapshot()
	for _, h := range m.Hexes {
		if !ValidateHex(h, snap) {
			t.Errorf("hex %v does not validate after compaction", h.Vertices())
		}
	}
}

func TestResolveNonManifoldBadInput(t *testing.T) {
	m, _, _ := touchingBoxes(t, r3.Vec{X: -1, Y: -1})
	if _, err := m.ResolveNonManifold(r3.Vec{X: 1, Y: 0, Z: 1}, ResolveBridge); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("zero cell size: got error %v. want %v", err, ErrUnsupportedInput)
	}
	if _, err := m.ResolveNonManifold(d3.Elem(1), ResolveMode(7)); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("unknown mode: got error %v. want %v", err, ErrUnsupportedInput)
	}
	if len(m.Hexes) != 2 {
		t.Errorf("rejected pass changed hexes: got %d", len(m.Hexes))
	}
	for _, mode := range []ResolveMode{ResolveBridge, ResolveSplit} {
		got, err := ParseResolveMode(mode.String())
		if err != nil || got != mode {
			t.Errorf("ParseResolveMode(%q) got %v, %v", mode.String(), got, err)
		}
	}
	if _, err := ParseResolveMode("glue"); !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("got error %v. want %v", err, ErrUnsupportedInput)
	}
}
