package hexmesh

import (
	"sort"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestValidateHex(t *testing.T) {
	m := NewMesh(DefaultTolerance)
	h := newBox(t, m, unitBox(r3.Vec{}))
	if !ValidateHex(h, m.Snapshot()) {
		t.Fatal("complete hex did not validate")
	}

	// Drop one face at a time.
	for skip := 0; skip < 6; skip++ {
		var fl QuadFaceList
		for i, f := range h.Faces() {
			if i != skip {
				fl.Add(f)
			}
		}
		if ValidateHex(h, NewSnapshot(&m.Edges, &fl)) {
			t.Errorf("hex validated with face %d missing", skip)
		}
	}
	// Drop one edge at a time.
	edges := h.Edges()
	for skip := range edges {
		var el EdgeList
		for i, e := range edges {
			if i != skip {
				el.Add(e[0], e[1])
			}
		}
		if ValidateHex(h, NewSnapshot(&el, &m.Faces)) {
			t.Errorf("hex validated with edge %v missing", edges[skip])
		}
	}

	bad := h
	bad.G = bad.A
	if ValidateHex(bad, m.Snapshot()) {
		t.Error("hex with repeated corner validated")
	}
}

func TestHexEdgesAndFaces(t *testing.T) {
	h := NewHex([8]int{0, 1, 2, 3, 4, 5, 6, 7})
	edges := h.Edges()
	seen := map[EdgeKey]bool{}
	for _, e := range edges {
		seen[e] = true
	}
	if len(seen) != 12 {
		t.Errorf("got %d distinct edges. want 12", len(seen))
	}
	for _, f := range h.Faces() {
		for _, e := range f.Edges() {
			if !seen[e] {
				t.Errorf("face %v edge %v is not a hex edge", f.Vertices(), e)
			}
		}
	}
	want := [6]FaceKey{{0, 1, 4, 5}, {1, 2, 5, 6}, {2, 3, 6, 7}, {0, 3, 4, 7}, {0, 1, 2, 3}, {4, 5, 6, 7}}
	for i, f := range GetHexFaces(h, true) {
		if FaceKey(f) != want[i] {
			t.Errorf("face %d got %v. want %v", i, f, want[i])
		}
	}
}

func TestGetHexFacesRelabelled(t *testing.T) {
	h := Hex{A: 10, B: 11, C: 12, D: 13, E: 14, F: 15, G: 16, H: 17}
	relabels := []Hex{
		// Start the rings at B.
		{A: h.B, B: h.C, C: h.D, D: h.A, E: h.F, F: h.G, G: h.H, H: h.E},
		// Swap top and bottom rings.
		{A: h.E, B: h.F, C: h.G, D: h.H, E: h.A, F: h.B, G: h.C, H: h.D},
		// Reverse winding.
		{A: h.A, B: h.D, C: h.C, D: h.B, E: h.E, F: h.H, G: h.G, H: h.F},
	}
	sortedFaces := func(h Hex) [][4]int {
		faces := GetHexFaces(h, true)
		out := faces[:]
		sort.Slice(out, func(i, j int) bool {
			for k := range out[i] {
				if out[i][k] != out[j][k] {
					return out[i][k] < out[j][k]
				}
			}
			return false
		})
		return out
	}
	want := sortedFaces(h)
	for _, r := range relabels {
		got := sortedFaces(r)
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("relabelled %v: face %d got %v. want %v", r.Vertices(), i, got[i], want[i])
			}
		}
	}
}

func TestSnapshotFaceRoundTrip(t *testing.T) {
	h := NewHex([8]int{7, 3, 9, 1, 8, 2, 6, 4})
	var fl QuadFaceList
	for _, f := range h.Faces() {
		fl.Add(f)
	}
	snap := NewSnapshot(nil, &fl)
	if snap.NumFaces() != 6 {
		t.Fatalf("got %d faces. want 6", snap.NumFaces())
	}
	for _, f := range h.Faces() {
		got, ok := snap.Face(f.Key())
		if !ok {
			t.Fatalf("face %v not found", f.Vertices())
		}
		if !got.SameAs(f) {
			t.Errorf("face %v resolved to %v", f.Vertices(), got.Vertices())
		}
	}
}

func TestSnapshotIsStale(t *testing.T) {
	m := NewMesh(DefaultTolerance)
	a, b, c, d := m.AddVertex(r3.Vec{}), m.AddVertex(r3.Vec{X: 1}), m.AddVertex(r3.Vec{X: 1, Y: 1}), m.AddVertex(r3.Vec{Y: 1})
	snap := m.Snapshot()
	if _, err := m.AddFace(QuadFace{A: a, B: b, C: c, D: d}); err != nil {
		t.Fatal(err)
	}
	if snap.HasFace(MakeFaceKey(a, b, c, d)) || snap.HasEdge(MakeEdgeKey(b, a)) {
		t.Error("snapshot observed a later mutation")
	}
	if !m.Snapshot().HasEdge(MakeEdgeKey(b, a)) {
		t.Error("new snapshot is missing edge")
	}
}

func TestListsAreOrderIndependent(t *testing.T) {
	var el EdgeList
	e, added := el.Add(4, 2)
	if !added {
		t.Fatal("first edge not added")
	}
	if got, added := el.Add(2, 4); added || got.Index != e.Index {
		t.Errorf("reversed edge got index %d added=%v. want %d", got.Index, added, e.Index)
	}
	if !el.Contains(2, 4) || !el.Contains(4, 2) {
		t.Error("edge lookup depends on order")
	}
	if _, err := e.Other(3); err == nil {
		t.Error("expected error for vertex not on edge")
	}
	var fl QuadFaceList
	fl.Add(QuadFace{A: 1, B: 2, C: 3, D: 4})
	if !fl.Contains(QuadFace{A: 3, B: 1, C: 4, D: 2}) {
		t.Error("face lookup depends on order")
	}
	if fl.Len() != 1 {
		t.Errorf("got %d faces. want 1", fl.Len())
	}
}
