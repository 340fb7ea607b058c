package sweep

import (
	"gonum.org/v1/gonum/spatial/r2"

	"chosenoffset.com/sightlines/internal/core/geometry"
	"chosenoffset.com/sightlines/internal/core/sieve"
)

// wedges holds, per octant, the axis direction (parameter 0) and the
// diagonal direction (parameter 1)
var wedges = [sieve.NumOctants][2]geometry.Point{
	0: {{X: -1, Y: 0}, {X: -1, Y: 1}},
	1: {{X: 1, Y: 0}, {X: 1, Y: 1}},
	2: {{X: -1, Y: 0}, {X: -1, Y: -1}},
	3: {{X: 1, Y: 0}, {X: 1, Y: -1}},
	4: {{X: 0, Y: -1}, {X: -1, Y: -1}},
	5: {{X: 0, Y: -1}, {X: 1, Y: -1}},
	6: {{X: 0, Y: 1}, {X: -1, Y: 1}},
	7: {{X: 0, Y: 1}, {X: 1, Y: 1}},
}

// Wedge returns the boundary directions of octant q: the axis, where the
// angular parameter is 0, and the diagonal, where it is 1.
func Wedge(q sieve.Octant) (axis, diagonal geometry.Point, ok bool) {
	if !q.Valid() {
		return geometry.Point{}, geometry.Point{}, false
	}
	return wedges[q][0], wedges[q][1], true
}

// halfPlane is the side of the line through the centre along dir on which
// sign*cross(dir, p-centre) >= 0
type halfPlane struct {
	dir  geometry.Point
	sign float64
}

func (h halfPlane) eval(center, p geometry.Point) float64 {
	return h.sign * r2.Cross(h.dir, r2.Sub(p, center))
}

// ClipToOctant clips seg to the closed wedge of octant q around center using
// parametric clipping against the wedge's two bounding half-planes. It
// returns false when nothing of the segment lies inside the wedge.
func ClipToOctant(center geometry.Point, seg geometry.Segment, q sieve.Octant) (geometry.Segment, bool) {
	axis, diagonal, ok := Wedge(q)
	if !ok {
		return geometry.Segment{}, false
	}

	planes := [2]halfPlane{
		{dir: axis, sign: signOf(r2.Cross(axis, diagonal))},
		{dir: diagonal, sign: signOf(r2.Cross(diagonal, axis))},
	}

	t0, t1 := 0.0, 1.0
	for _, h := range planes {
		fa := h.eval(center, seg.A)
		fb := h.eval(center, seg.B)

		switch {
		case fa < 0 && fb < 0:
			return geometry.Segment{}, false
		case fa >= 0 && fb >= 0:
			continue
		}

		// f(t) = fa + t*(fb-fa) crosses zero here
		t := fa / (fa - fb)
		if fa < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
	}

	if t0 > t1 {
		return geometry.Segment{}, false
	}

	d := r2.Sub(seg.B, seg.A)
	return geometry.Segment{
		A: r2.Add(seg.A, r2.Scale(t0, d)),
		B: r2.Add(seg.A, r2.Scale(t1, d)),
	}, true
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
