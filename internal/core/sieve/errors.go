package sieve

import "errors"

var (
	// ErrInvalidOctant is returned when an octant index outside 0..7 is used.
	ErrInvalidOctant = errors.New("invalid octant")

	// ErrDegenerateAngle is returned when a segment endpoint has no finite
	// angular parameter in the requested octant. This happens when the
	// endpoint lies on the octant's zero-denominator axis, including the
	// centre itself.
	ErrDegenerateAngle = errors.New("degenerate angular parameter")
)
