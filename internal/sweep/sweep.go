package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/sightlines/internal/core/geometry"
	"chosenoffset.com/sightlines/internal/core/sieve"
	"chosenoffset.com/sightlines/internal/monitoring"
)

// ErrInvalidViewpoint is returned for a viewpoint with a non-finite coordinate
var ErrInvalidViewpoint = errors.New("invalid viewpoint")

// Options tunes a sweep
type Options struct {
	MaxDistance float64          // Negative disables the limit
	Tolerance   float64          // Intersection slack, also the radius treated as the viewpoint itself
	Targets     []geometry.Point // Rays tested against the full obstacle set
	Verbose     bool
}

// DefaultOptions returns an unbounded sweep
func DefaultOptions() Options {
	return Options{
		MaxDistance: sieve.Unbounded,
		Tolerance:   1e-9,
	}
}

// OctantReport describes one octant pass
type OctantReport struct {
	Octant   sieve.Octant `json:"octant"`
	Name     string       `json:"name"`
	Segments int          `json:"segments"` // Clipped pieces handed to the sieve
	Blocks   int          `json:"blocks"`   // Distinct blocks after de-duplication
	Rejected int          `json:"rejected"` // Pieces with no finite angular parameter
	Gaps     []sieve.Zone `json:"gaps"`     // Gap set after this octant was merged
}

// TargetReport is the outcome of one ray test
type TargetReport struct {
	Target  geometry.Point `json:"target"`
	Visible bool           `json:"visible"`
}

// Result is everything a sweep found for one viewpoint
type Result struct {
	RunID       string         `json:"run_id"`
	Center      geometry.Point `json:"center"`
	MaxDistance float64        `json:"max_distance"`
	Octants     []OctantReport `json:"octants"`
	Targets     []TargetReport `json:"targets,omitempty"`
	Gaps        []sieve.Zone   `json:"gaps"`
}

// Run sweeps octants 0..7 around center with a single sieve and returns the
// gaps left open by segments, along with the visibility of each target.
func Run(center geometry.Point, segments []geometry.Segment, opts Options) (*Result, error) {
	if !finite(center.X) || !finite(center.Y) {
		return nil, fmt.Errorf("center (%g, %g): %w", center.X, center.Y, ErrInvalidViewpoint)
	}
	if opts.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance must be non-negative, got %g", opts.Tolerance)
	}

	s := sieve.New(center, opts.MaxDistance)
	result := &Result{
		RunID:       uuid.NewString(),
		Center:      center,
		MaxDistance: opts.MaxDistance,
		Octants:     make([]OctantReport, 0, sieve.NumOctants),
	}

	for q := sieve.Octant(0); q < sieve.NumOctants; q++ {
		pieces := octantPieces(center, segments, q, opts.Tolerance)

		report := OctantReport{
			Octant:   q,
			Name:     q.String(),
			Segments: len(pieces),
		}

		if err := s.AddBlocks(pieces, q); err != nil {
			if !errors.Is(err, sieve.ErrDegenerateAngle) {
				return nil, fmt.Errorf("failed to add blocks for octant %s: %w", q, err)
			}
			report.Rejected = countErrors(err)
		}
		report.Blocks = len(s.Blocks())

		s.MergeBlocks()
		report.Gaps = s.Gaps()

		if opts.Verbose {
			monitoring.Logf("sweep %s: octant %s: %d pieces, %d blocks, %d rejected, %d gaps open",
				result.RunID, q, report.Segments, report.Blocks, report.Rejected, len(report.Gaps))
		}
		result.Octants = append(result.Octants, report)
	}

	result.Gaps = s.Gaps()

	for _, target := range opts.Targets {
		result.Targets = append(result.Targets, TargetReport{
			Target:  target,
			Visible: !s.Blocked(target, segments, opts.Tolerance),
		})
	}

	return result, nil
}

// Batch runs an independent sweep for every viewpoint, at most workers at a
// time. Results are returned in viewpoint order.
func Batch(ctx context.Context, viewpoints []geometry.Point, segments []geometry.Segment, opts Options, workers int) ([]*Result, error) {
	results := make([]*Result, len(viewpoints))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, vp := range viewpoints {
		i, vp := i, vp
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(vp, segments, opts)
			if err != nil {
				return fmt.Errorf("viewpoint %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// octantPieces clips every segment to octant q. A piece with an endpoint on
// the viewpoint lies along a single ray and collapses to its far endpoint;
// a piece lying entirely on the viewpoint is dropped.
func octantPieces(center geometry.Point, segments []geometry.Segment, q sieve.Octant, tolerance float64) []geometry.Segment {
	var pieces []geometry.Segment
	for _, seg := range segments {
		piece, ok := ClipToOctant(center, seg, q)
		if !ok {
			continue
		}

		atA := geometry.Distance(center, piece.A) <= tolerance
		atB := geometry.Distance(center, piece.B) <= tolerance
		switch {
		case atA && atB:
			continue
		case atA:
			piece.A = piece.B
		case atB:
			piece.B = piece.A
		}

		pieces = append(pieces, piece)
	}
	return pieces
}

func countErrors(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
