package hexmesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hexmesh/internal/d3"
)

// Tolerance groups the thresholds used by geometric tests.
type Tolerance struct {
	// Ortho is the maximum |cos θ| between two unit directions for them to be
	// considered orthogonal. Directions above it are treated as colinear.
	Ortho float64
	// Dist is the per component coordinate tolerance used when matching
	// synthesized positions against existing vertices.
	Dist float64
}

// DefaultTolerance is suited to meshes with cell sizes near unity.
var DefaultTolerance = Tolerance{Ortho: 1e-2, Dist: 1e-2}

// RelativeTolerance returns a tolerance whose distance threshold scales with
// the smallest component of the cell size. Ortho is dimensionless and left at
// its default.
func RelativeTolerance(cell r3.Vec) Tolerance {
	tol := DefaultTolerance
	if m := d3.Min(d3.AbsElem(cell)); m > 0 {
		tol.Dist *= m
	}
	return tol
}

// Orthogonal reports whether directions a and b are orthogonal within tol.Ortho.
func (tol Tolerance) Orthogonal(a, b r3.Vec) bool {
	return d3.AbsUnitDot(a, b) < tol.Ortho
}

func (tol Tolerance) valid() bool {
	return tol.Ortho > 0 && tol.Dist > 0
}
