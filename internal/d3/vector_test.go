package d3

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestDominantAxis(t *testing.T) {
	for _, test := range []struct {
		v    r3.Vec
		want Axis
		ok   bool
	}{
		{v: r3.Vec{X: 2}, want: AxisX, ok: true},
		{v: r3.Vec{Y: -0.5, Z: 1e-9}, want: AxisY, ok: true},
		{v: r3.Vec{Z: 3}, want: AxisZ, ok: true},
		{v: r3.Vec{X: 1, Y: 1}, ok: false},
	} {
		got, ok := DominantAxis(test.v, 1e-6)
		if ok != test.ok || (ok && got != test.want) {
			t.Errorf("DominantAxis(%v) got %v,%v. want %v,%v", test.v, got, ok, test.want, test.ok)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	set := Set{{X: 1, Y: -1}, {Z: 2}, {X: -1, Y: 3, Z: 1}}
	box := set.BoundingBox()
	want := Box{Min: r3.Vec{X: -1, Y: -1}, Max: r3.Vec{X: 1, Y: 3, Z: 2}}
	if box != want {
		t.Fatalf("got %v. want %v", box, want)
	}
	if !box.Contains(set.Centroid()) {
		t.Error("centroid outside of bounding box")
	}
	corners := box.Corners()
	if corners[0] != box.Min || corners[6] != box.Max {
		t.Errorf("bad corner order %v", corners)
	}
}
