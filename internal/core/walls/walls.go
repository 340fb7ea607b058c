// Package walls traces obstacle segments from the sight-blocking cells of a
// grid map.
package walls

import (
	"math"

	"chosenoffset.com/sightlines/internal/core/geometry"
	"chosenoffset.com/sightlines/internal/world/gridmap"
)

// Side names the face of a cell an edge was taken from
type Side string

const (
	Top    Side = "top"
	Right  Side = "right"
	Bottom Side = "bottom"
	Left   Side = "left"
)

// mergeEpsilon is how close two endpoints must be to count as touching
const mergeEpsilon = 0.001

// Wall is an obstacle segment along the exposed face of a blocking region
type Wall struct {
	geometry.Segment
	Side  Side
	Cells []geometry.Coord // Every cell the wall runs along
}

// FromGrid extracts the perimeter of each contiguous sight-blocking region and
// merges colinear edges into the longest walls possible
func FromGrid(m *gridmap.Map) []Wall {
	regions := findContiguousRegions(m)

	var edges []Wall
	for _, region := range regions {
		edges = append(edges, extractPerimeter(region, m.CellSize())...)
	}

	return mergeColinear(edges)
}

// Segments strips walls down to the bare obstacle segments
func Segments(walls []Wall) []geometry.Segment {
	segments := make([]geometry.Segment, len(walls))
	for i, w := range walls {
		segments[i] = w.Segment
	}
	return segments
}

// findContiguousRegions identifies all connected regions of sight-blocking cells
func findContiguousRegions(m *gridmap.Map) [][]geometry.Coord {
	visited := make(map[geometry.Coord]bool)
	var regions [][]geometry.Coord

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			coord := geometry.Coord{X: x, Y: y}
			if visited[coord] || !m.BlocksSight(x, y) {
				continue
			}

			region := floodFill(m, coord, visited)
			if len(region) > 0 {
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// floodFill performs BFS to find all 4-connected sight-blocking cells
func floodFill(m *gridmap.Map, start geometry.Coord, visited map[geometry.Coord]bool) []geometry.Coord {
	var region []geometry.Coord
	queue := []geometry.Coord{start}
	visited[start] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		region = append(region, current)

		neighbors := []geometry.Coord{
			{X: current.X, Y: current.Y - 1},
			{X: current.X + 1, Y: current.Y},
			{X: current.X, Y: current.Y + 1},
			{X: current.X - 1, Y: current.Y},
		}

		for _, neighbor := range neighbors {
			// BlocksSight is false outside the map
			if visited[neighbor] || !m.BlocksSight(neighbor.X, neighbor.Y) {
				continue
			}

			visited[neighbor] = true
			queue = append(queue, neighbor)
		}
	}

	return region
}

// extractPerimeter returns one edge per cell face not shared with the region
func extractPerimeter(region []geometry.Coord, cellSize float64) []Wall {
	regionSet := make(map[geometry.Coord]bool, len(region))
	for _, coord := range region {
		regionSet[coord] = true
	}

	var edges []Wall
	for _, coord := range region {
		left := float64(coord.X) * cellSize
		top := float64(coord.Y) * cellSize
		right := left + cellSize
		bottom := top + cellSize

		faces := []struct {
			neighbor geometry.Coord
			side     Side
			a, b     geometry.Point
		}{
			{geometry.Coord{X: coord.X, Y: coord.Y - 1}, Top, geometry.Point{X: left, Y: top}, geometry.Point{X: right, Y: top}},
			{geometry.Coord{X: coord.X + 1, Y: coord.Y}, Right, geometry.Point{X: right, Y: top}, geometry.Point{X: right, Y: bottom}},
			{geometry.Coord{X: coord.X, Y: coord.Y + 1}, Bottom, geometry.Point{X: left, Y: bottom}, geometry.Point{X: right, Y: bottom}},
			{geometry.Coord{X: coord.X - 1, Y: coord.Y}, Left, geometry.Point{X: left, Y: top}, geometry.Point{X: left, Y: bottom}},
		}

		for _, f := range faces {
			if regionSet[f.neighbor] {
				continue
			}
			edges = append(edges, Wall{
				Segment: geometry.Segment{A: f.a, B: f.b},
				Side:    f.side,
				Cells:   []geometry.Coord{coord},
			})
		}
	}

	return edges
}

// mergeColinear combines touching edges of the same side into longer walls.
// Every edge runs from its lower to its higher coordinate along its axis.
func mergeColinear(edges []Wall) []Wall {
	if len(edges) == 0 {
		return edges
	}

	merged := make([]bool, len(edges))
	var result []Wall

	for i := range edges {
		if merged[i] {
			continue
		}

		current := edges[i]
		merged[i] = true

		extended := true
		for extended {
			extended = false

			for j := range edges {
				if merged[j] {
					continue
				}
				if canMerge(current, edges[j]) {
					current = mergeWalls(current, edges[j])
					merged[j] = true
					extended = true
				}
			}
		}

		result = append(result, current)
	}

	return result
}

// canMerge checks if two walls share a side and line and touch end to end
func canMerge(w1, w2 Wall) bool {
	if w1.Side != w2.Side {
		return false
	}

	switch w1.Side {
	case Top, Bottom:
		if math.Abs(w1.A.Y-w2.A.Y) > mergeEpsilon {
			return false
		}
		return math.Abs(w1.B.X-w2.A.X) < mergeEpsilon || math.Abs(w1.A.X-w2.B.X) < mergeEpsilon

	case Left, Right:
		if math.Abs(w1.A.X-w2.A.X) > mergeEpsilon {
			return false
		}
		return math.Abs(w1.B.Y-w2.A.Y) < mergeEpsilon || math.Abs(w1.A.Y-w2.B.Y) < mergeEpsilon
	}

	return false
}

// mergeWalls spans both walls, keeping A at the low end
func mergeWalls(w1, w2 Wall) Wall {
	result := w1

	switch w1.Side {
	case Top, Bottom:
		result.A.X = min(w1.A.X, w2.A.X)
		result.B.X = max(w1.B.X, w2.B.X)
	case Left, Right:
		result.A.Y = min(w1.A.Y, w2.A.Y)
		result.B.Y = max(w1.B.Y, w2.B.Y)
	}

	result.Cells = append(append([]geometry.Coord(nil), w1.Cells...), w2.Cells...)

	return result
}
