package sieve

import (
	"fmt"

	"chosenoffset.com/sightlines/internal/core/geometry"
)

// Octant indexes one of the eight 45° wedges around the centre
type Octant int

// NumOctants is the number of wedges a full sweep visits
const NumOctants = 8

// Valid reports whether q is in 0..7
func (q Octant) Valid() bool {
	return q >= 0 && q < NumOctants
}

var octantNames = [NumOctants]string{
	"WNW", "ENE", "WSW", "ESE", "SSW", "SSE", "NNW", "NNE",
}

func (q Octant) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Octant(%d)", int(q))
	}
	return octantNames[q]
}

// Tanify maps p onto a parameter that grows monotonically with the angle of
// p around the centre inside octant q. Points inside the wedge map into
// [0, 1], with 0 on the horizontal or vertical axis and 1 on the diagonal.
//
// No guard is applied: a point on the zero-denominator axis yields ±Inf, the
// centre itself yields NaN, and an invalid octant yields InvalidParam.
func (s *Sieve) Tanify(p geometry.Point, q Octant) float64 {
	dx := p.X - s.center.X
	dy := p.Y - s.center.Y

	switch q {
	case 0:
		return dy / -dx
	case 1:
		return dy / dx
	case 2:
		return -dy / -dx
	case 3:
		return -dy / dx
	case 4:
		return -dx / -dy
	case 5:
		return dx / -dy
	case 6:
		return -dx / dy
	case 7:
		return dx / dy
	}
	return InvalidParam
}
