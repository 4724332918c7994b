package d3

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an axis aligned 3d box.
type Box r3.Box

// BoundingBox returns the smallest box containing every point of the set.
func (a Set) BoundingBox() Box {
	return Box{Min: a.Min(), Max: a.Max()}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// Contains checks if the 3d box contains the given vector (considering bounds as inside).
func (a Box) Contains(v r3.Vec) bool {
	return a.Min.X <= v.X && a.Min.Y <= v.Y && a.Min.Z <= v.Z &&
		v.X <= a.Max.X && v.Y <= a.Max.Y && v.Z <= a.Max.Z
}

// Corners returns the 8 box corners in hexahedron order: the bottom ring
// (z=Min.Z) counter clockwise starting at Min, then the top ring with each
// corner directly above its bottom counterpart.
func (a Box) Corners() [8]r3.Vec {
	lo, hi := a.Min, a.Max
	return [8]r3.Vec{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}
