package sweep

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightlines/internal/core/geometry"
	"chosenoffset.com/sightlines/internal/core/sieve"
)

func pt(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

func seg(ax, ay, bx, by float64) geometry.Segment {
	return geometry.Segment{A: pt(ax, ay), B: pt(bx, by)}
}

func TestWedge(t *testing.T) {
	axis, diagonal, ok := Wedge(5)
	require.True(t, ok)
	assert.Equal(t, pt(0, -1), axis)
	assert.Equal(t, pt(1, -1), diagonal)

	_, _, ok = Wedge(8)
	assert.False(t, ok)
}

func TestWedgeParameters(t *testing.T) {
	// axis maps to 0 and diagonal to 1 for every octant
	s := sieve.New(pt(3, -2), sieve.Unbounded)
	for q := sieve.Octant(0); q < sieve.NumOctants; q++ {
		axis, diagonal, ok := Wedge(q)
		require.True(t, ok)
		assert.InDelta(t, 0.0, s.Tanify(pt(3+axis.X, -2+axis.Y), q), 1e-12, "axis of %s", q)
		assert.InDelta(t, 1.0, s.Tanify(pt(3+diagonal.X, -2+diagonal.Y), q), 1e-12, "diagonal of %s", q)
	}
}

func TestClipToOctant(t *testing.T) {
	center := pt(0, 0)

	tests := []struct {
		name   string
		seg    geometry.Segment
		octant sieve.Octant
		want   geometry.Segment
		ok     bool
	}{
		{"fully inside", seg(2, 0.5, 2, 1.5), 1, seg(2, 0.5, 2, 1.5), true},
		{"crosses the x axis, upper half", seg(2, -1, 2, 1), 1, seg(2, 0, 2, 1), true},
		{"crosses the x axis, lower half", seg(2, -1, 2, 1), 3, seg(2, -1, 2, 0), true},
		{"crosses the diagonal, below", seg(2, 1, 2, 3), 1, seg(2, 1, 2, 2), true},
		{"crosses the diagonal, above", seg(2, 1, 2, 3), 7, seg(2, 2, 2, 3), true},
		{"spans the wedge", seg(3, -1, 1, 3), 1, seg(2.5, 0, 5.0/3, 5.0/3), true},
		{"outside", seg(-2, 1, -2, 2), 1, geometry.Segment{}, false},
		{"opposite wedge", seg(-2, -0.5, -2, -1.5), 1, geometry.Segment{}, false},
		{"invalid octant", seg(2, 0.5, 2, 1.5), 9, geometry.Segment{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClipToOctant(center, tt.seg, tt.octant)
			require.Equal(t, tt.ok, ok)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("clip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClipToOctantOffsetCenter(t *testing.T) {
	got, ok := ClipToOctant(pt(10, 10), seg(12, 9, 12, 11), 1)
	require.True(t, ok)
	assert.InDelta(t, 12.0, got.A.X, 1e-12)
	assert.InDelta(t, 10.0, got.A.Y, 1e-12)
	assert.Equal(t, pt(12, 11), got.B)
}
