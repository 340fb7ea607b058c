package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// parallelEpsilon is the sine of the angle below which two segments are
// treated as parallel
const parallelEpsilon = 1e-12

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// IntersectRegion reports whether the bounding boxes of a and b overlap once
// each is grown by tolerance. It is the cheap pre-check that must pass before
// IntersectLine is consulted.
func IntersectRegion(a, b Segment, tolerance float64) bool {
	ba, bb := a.Bounds(), b.Bounds()
	return ba.Min.X <= bb.Max.X+tolerance && bb.Min.X <= ba.Max.X+tolerance &&
		ba.Min.Y <= bb.Max.Y+tolerance && bb.Min.Y <= ba.Max.Y+tolerance
}

// IntersectLine reports whether segments a and b cross or touch within
// tolerance. Parallel segments are only tested for colinearity, so the result
// is meaningful only when IntersectRegion already returned true.
func IntersectLine(a, b Segment, tolerance float64) bool {
	// Solve: a.A + t*da = b.A + u*db as a 2x2 linear system
	da := r2.Sub(a.B, a.A)
	db := r2.Sub(b.B, b.A)
	diff := r2.Sub(b.A, a.A)
	lenA, lenB := r2.Norm(da), r2.Norm(db)

	switch {
	case lenA == 0 && lenB == 0:
		return Distance(a.A, b.A) <= tolerance
	case lenA == 0:
		return math.Abs(r2.Cross(db, diff))/lenB <= tolerance
	case lenB == 0:
		return math.Abs(r2.Cross(da, diff))/lenA <= tolerance
	}

	denominator := r2.Cross(da, db)
	if math.Abs(denominator) < parallelEpsilon*lenA*lenB {
		// Parallel: they touch only when colinear, and the region test has
		// already established that the extents overlap
		return math.Abs(r2.Cross(da, diff))/lenA <= tolerance
	}

	t := r2.Cross(diff, db) / denominator
	u := r2.Cross(diff, da) / denominator

	// Express the tolerance in each segment's parametric units
	tolT := tolerance / lenA
	tolU := tolerance / lenB

	return t >= -tolT && t <= 1+tolT && u >= -tolU && u <= 1+tolU
}
