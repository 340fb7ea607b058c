package geometry

import "gonum.org/v1/gonum/spatial/r2"

// Point represents a 2D point in space
type Point = r2.Vec

// Coord represents a grid cell coordinate
type Coord struct {
	X, Y int
}

// Segment represents an obstacle edge running from A to B
type Segment struct {
	A, B Point
}

// Start returns the first endpoint of the segment
func (s Segment) Start() Point { return s.A }

// End returns the second endpoint of the segment
func (s Segment) End() Point { return s.B }

// Length returns the Euclidean length of the segment
func (s Segment) Length() float64 {
	return r2.Norm(r2.Sub(s.B, s.A))
}

// Bounds returns the axis-aligned bounding box of the segment
func (s Segment) Bounds() r2.Box {
	return r2.Box{
		Min: Point{X: min(s.A.X, s.B.X), Y: min(s.A.Y, s.B.Y)},
		Max: Point{X: max(s.A.X, s.B.X), Y: max(s.A.Y, s.B.Y)},
	}
}
