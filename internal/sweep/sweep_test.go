package sweep

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightlines/internal/core/geometry"
	"chosenoffset.com/sightlines/internal/core/sieve"
	"chosenoffset.com/sightlines/internal/monitoring"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func square(half float64) []geometry.Segment {
	return []geometry.Segment{
		seg(-half, -half, half, -half),
		seg(half, -half, half, half),
		seg(half, half, -half, half),
		seg(-half, half, -half, -half),
	}
}

func TestRunNoObstacles(t *testing.T) {
	res, err := Run(pt(0, 0), nil, DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []sieve.Zone{{Start: 0, End: 1}}, res.Gaps)
	require.Len(t, res.Octants, sieve.NumOctants)
	for i, oct := range res.Octants {
		assert.Equal(t, sieve.Octant(i), oct.Octant)
		assert.Equal(t, oct.Octant.String(), oct.Name)
		assert.Zero(t, oct.Segments)
		assert.Zero(t, oct.Blocks)
	}
}

func TestRunEnclosed(t *testing.T) {
	res, err := Run(pt(0, 0), square(2), DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, res.Gaps)
	assert.Empty(t, res.Octants[0].Gaps, "the first octant is already fully walled")
	for _, oct := range res.Octants {
		assert.Zero(t, oct.Rejected, "octant %s", oct.Name)
	}
}

func TestRunSingleWall(t *testing.T) {
	res, err := Run(pt(0, 0), []geometry.Segment{seg(2, 0.5, 2, 1)}, DefaultOptions())
	require.NoError(t, err)

	want := []sieve.Zone{{Start: 0, End: 0.25 - sieve.Epsilon}, {Start: 0.5 + sieve.Epsilon, End: 1}}
	if diff := cmp.Diff(want, res.Gaps, approx); diff != "" {
		t.Errorf("gaps mismatch (-want +got):\n%s", diff)
	}

	for _, oct := range res.Octants {
		if oct.Octant == 1 {
			assert.Equal(t, 1, oct.Segments)
			assert.Equal(t, 1, oct.Blocks)
			continue
		}
		assert.Zero(t, oct.Segments, "octant %s", oct.Name)
	}
}

func TestRunWallThroughViewpoint(t *testing.T) {
	res, err := Run(pt(0, 0), []geometry.Segment{seg(-1, 0, 1, 0)}, DefaultOptions())
	require.NoError(t, err)

	for _, oct := range res.Octants {
		assert.Zero(t, oct.Rejected, "octant %s", oct.Name)
	}
	// only the zero-width direction along the wall is blocked
	if diff := cmp.Diff([]sieve.Zone{{Start: 0, End: 1}}, res.Gaps, approx); diff != "" {
		t.Errorf("gaps mismatch (-want +got):\n%s", diff)
	}
}

func TestRunTargets(t *testing.T) {
	opts := DefaultOptions()
	opts.Targets = []geometry.Point{pt(4, 1.5), pt(4, 0)}

	res, err := Run(pt(0, 0), []geometry.Segment{seg(2, 0.5, 2, 1)}, opts)
	require.NoError(t, err)

	assert.Equal(t, []TargetReport{
		{Target: pt(4, 1.5), Visible: false},
		{Target: pt(4, 0), Visible: true},
	}, res.Targets)
}

func TestRunMaxDistance(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDistance = 3
	opts.Targets = []geometry.Point{pt(2, 2), pt(3, 3)}

	res, err := Run(pt(0, 0), nil, opts)
	require.NoError(t, err)

	assert.Equal(t, 3.0, res.MaxDistance)
	assert.True(t, res.Targets[0].Visible)
	assert.False(t, res.Targets[1].Visible, "beyond the distance limit")
}

func TestRunVerboseLogs(t *testing.T) {
	orig := monitoring.Logf
	defer func() { monitoring.Logf = orig }()

	var lines int
	monitoring.SetLogger(func(string, ...interface{}) { lines++ })

	opts := DefaultOptions()
	opts.Verbose = true
	_, err := Run(pt(0, 0), square(1), opts)
	require.NoError(t, err)

	assert.Equal(t, sieve.NumOctants, lines)
}

func TestRunInvalidInput(t *testing.T) {
	_, err := Run(pt(math.NaN(), 0), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidViewpoint)

	_, err = Run(pt(0, math.Inf(1)), nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidViewpoint)

	opts := DefaultOptions()
	opts.Tolerance = -1
	_, err = Run(pt(0, 0), nil, opts)
	assert.ErrorContains(t, err, "tolerance")
}

func TestBatch(t *testing.T) {
	viewpoints := []geometry.Point{pt(0, 0), pt(0.5, 0.5), pt(-1, 1), pt(1, -1.5)}

	results, err := Batch(context.Background(), viewpoints, square(2), DefaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, results, len(viewpoints))

	ids := make(map[string]bool)
	for i, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, viewpoints[i], res.Center)
		assert.Empty(t, res.Gaps, "every viewpoint is inside the square")
		ids[res.RunID] = true
	}
	assert.Len(t, ids, len(viewpoints), "run IDs must be unique")
}

func TestBatchMatchesRun(t *testing.T) {
	walls := []geometry.Segment{seg(2, 0.5, 2, 1), seg(-3, 1, -3, 2)}
	viewpoints := []geometry.Point{pt(0, 0), pt(0, 0.25)}

	results, err := Batch(context.Background(), viewpoints, walls, DefaultOptions(), 0)
	require.NoError(t, err)

	for i, vp := range viewpoints {
		single, err := Run(vp, walls, DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(single.Gaps, results[i].Gaps, approx, cmpopts.EquateEmpty()))
	}
}

func TestBatchErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Batch(ctx, []geometry.Point{pt(0, 0)}, nil, DefaultOptions(), 1)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Batch(context.Background(), []geometry.Point{pt(0, 0), pt(math.NaN(), 1)}, nil, DefaultOptions(), 1)
	assert.ErrorIs(t, err, ErrInvalidViewpoint)
	assert.ErrorContains(t, err, "viewpoint 1")
}
