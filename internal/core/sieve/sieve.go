package sieve

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"chosenoffset.com/sightlines/internal/core/geometry"
	"chosenoffset.com/sightlines/internal/monitoring"
)

const (
	// Epsilon pads every block on both sides and is the width at or below
	// which a gap counts as closed. Without it rounding leaves slivers of
	// open gap between blocks that meet at a shared endpoint.
	Epsilon = 1e-10

	// Unbounded disables the maximum visible distance
	Unbounded = -1.0

	// InvalidParam is what Tanify returns for an octant outside 0..7
	InvalidParam = -1.0
)

// Sieve holds the open angular gaps around one viewpoint and the blocks
// collected for the octant currently being processed.
type Sieve struct {
	center  geometry.Point
	maxDist float64

	gaps   []Zone
	blocks []Zone
}

// New creates a sieve centred on center with nothing blocked. A negative
// maxDist (conventionally Unbounded) means there is no distance limit.
func New(center geometry.Point, maxDist float64) *Sieve {
	return &Sieve{
		center:  center,
		maxDist: maxDist,
		gaps:    []Zone{{Start: 0.0, End: 1.0}},
	}
}

// Center returns the viewpoint
func (s *Sieve) Center() geometry.Point {
	return s.center
}

// MaxDistance returns the maximum visible distance, negative when unbounded
func (s *Sieve) MaxDistance() float64 {
	return s.maxDist
}

// Gaps returns a copy of the open gaps, sorted by start
func (s *Sieve) Gaps() []Zone {
	return slices.Clone(s.gaps)
}

// Blocks returns a copy of the blocks waiting to be merged
func (s *Sieve) Blocks() []Zone {
	return slices.Clone(s.blocks)
}

// Blocked reports whether the ray from the centre to target is obstructed by
// any of lines, or is longer than the maximum visible distance. It does not
// read or modify the gap and block sets.
func (s *Sieve) Blocked(target geometry.Point, lines []geometry.Segment, tolerance float64) bool {
	ray := geometry.Segment{A: s.center, B: target}

	if s.maxDist >= 0 && ray.Length() > s.maxDist {
		return true
	}

	for _, line := range lines {
		// IntersectLine is only defined once the regions are known to overlap
		if geometry.IntersectRegion(ray, line, tolerance) && geometry.IntersectLine(ray, line, tolerance) {
			return true
		}
	}

	return false
}

// AddBlocks converts each segment into the padded interval it covers in
// octant q and adds it to the pending block set, which is kept sorted and
// free of exact duplicates.
//
// A segment with an endpoint that has no finite parameter in q is skipped and
// reported in the returned error, which wraps ErrDegenerateAngle. The other
// segments of the batch are still added. An invalid octant adds nothing and
// returns ErrInvalidOctant.
func (s *Sieve) AddBlocks(lines []geometry.Segment, q Octant) error {
	if !q.Valid() {
		return fmt.Errorf("failed to add blocks for octant %d: %w", int(q), ErrInvalidOctant)
	}

	var errs []error
	for i, line := range lines {
		a := s.Tanify(line.Start(), q)
		b := s.Tanify(line.End(), q)
		if !finite(a) || !finite(b) {
			monitoring.Debugf("sieve: skipping segment %d in octant %s: endpoint parameters %g, %g", i, q, a, b)
			errs = append(errs, fmt.Errorf("segment %d in octant %s: %w", i, q, ErrDegenerateAngle))
			continue
		}

		s.blocks = append(s.blocks, Zone{
			Start: min(a, b) - Epsilon,
			End:   max(a, b) + Epsilon,
		})
	}

	sort.Slice(s.blocks, func(i, j int) bool {
		return s.blocks[i].Less(s.blocks[j])
	})
	s.blocks = slices.Compact(s.blocks)

	return errors.Join(errs...)
}

// MergeBlocks subtracts every pending block from the gap set and clears the
// block set. Both lists are sorted, so a single forward pass over each is
// enough: a block is kept while it may still reach later gaps, and a gap is
// kept while later blocks may still cut it.
func (s *Sieve) MergeBlocks() {
	gaps := s.gaps
	out := make([]Zone, 0, len(gaps)+len(s.blocks))

	gi, bi := 0, 0
	for gi < len(gaps) && bi < len(s.blocks) {
		block := s.blocks[bi]
		gap := &gaps[gi]

		if block.End < gap.Start {
			bi++
			continue
		}

		split := true
		if block.Start <= gap.Start {
			split = false
			if block.End > gap.Start {
				// eat the left of the gap
				gap.Start = block.End
			}
		}
		if block.End >= gap.End {
			split = false
			if block.Start < gap.End {
				// eat the right of the gap
				gap.End = block.Start
			}
		}

		switch {
		case gap.End <= gap.Start+Epsilon:
			// closed; the same block may also close the next gap
			gi++
			continue
		case block.End > gap.End:
			// the block reaches past this gap, keep it for the next one
			out = append(out, *gap)
			gi++
			continue
		case split:
			// a left piece no wider than Epsilon is dropped like any closed gap
			if block.Start > gap.Start+Epsilon {
				out = append(out, Zone{Start: gap.Start, End: block.Start})
			}
			gap.Start = block.End
		}
		bi++
	}
	for ; gi < len(gaps); gi++ {
		if gaps[gi].Width() > Epsilon {
			out = append(out, gaps[gi])
		}
	}

	s.gaps = out
	s.blocks = s.blocks[:0]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
