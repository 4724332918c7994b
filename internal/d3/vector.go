package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// R3 vector helpers shared by the mesh topology packages.

// Axis is one of the three cartesian directions.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "axis(?)"
}

// Comp returns the component of v along axis a.
func Comp(v r3.Vec, a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	panic("bad axis")
}

// SetComp returns v with the component along axis a replaced by f.
func SetComp(v r3.Vec, a Axis, f float64) r3.Vec {
	switch a {
	case AxisX:
		v.X = f
	case AxisY:
		v.Y = f
	case AxisZ:
		v.Z = f
	default:
		panic("bad axis")
	}
	return v
}

// DominantAxis returns the single axis along which v has a component larger
// than tol in magnitude. ok is false when v is zero or not axis aligned.
func DominantAxis(v r3.Vec, tol float64) (a Axis, ok bool) {
	n := 0
	for ax := AxisX; ax <= AxisZ; ax++ {
		if math.Abs(Comp(v, ax)) > tol {
			a = ax
			n++
		}
	}
	return a, n == 1
}

func Elem(sides float64) r3.Vec {
	return r3.Vec{
		X: sides,
		Y: sides,
		Z: sides,
	}
}

func EqualWithin(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.Z-b.Z) <= tol
}

// AbsUnitDot returns |â·b̂|, the absolute cosine of the angle between a and b.
// Zero length vectors yield 1 so they are never considered orthogonal.
func AbsUnitDot(a, b r3.Vec) float64 {
	na, nb := r3.Norm(a), r3.Norm(b)
	if na == 0 || nb == 0 {
		return 1
	}
	return math.Abs(r3.Dot(a, b)) / (na * nb)
}

// Round rounds each component of a to the given number of decimals.
func Round(a r3.Vec, decimals int) r3.Vec {
	p := math.Pow10(decimals)
	return r3.Vec{
		X: math.Round(a.X*p) / p,
		Y: math.Round(a.Y*p) / p,
		Z: math.Round(a.Z*p) / p,
	}
}

// MinElem return a vector with the minimum components of two vectors.
func MinElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem return a vector with the maximum components of two vectors.
func MaxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

func Min(a r3.Vec) float64 {
	return math.Min(a.Z, math.Min(a.X, a.Y))
}

func AbsElem(a r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Abs(a.X),
		Y: math.Abs(a.Y),
		Z: math.Abs(a.Z),
	}
}

type Set []r3.Vec

// Min return the minimum components of a set of vectors.
func (a Set) Min() r3.Vec {
	vmin := a[0]
	for _, v := range a[1:] {
		vmin = MinElem(vmin, v)
	}
	return vmin
}

// Max return the maximum components of a set of vectors.
func (a Set) Max() r3.Vec {
	vmax := a[0]
	for _, v := range a[1:] {
		vmax = MaxElem(vmax, v)
	}
	return vmax
}

// Centroid returns the arithmetic mean of the set.
func (a Set) Centroid() r3.Vec {
	var c r3.Vec
	for _, v := range a {
		c = r3.Add(c, v)
	}
	return r3.Scale(1/float64(len(a)), c)
}
