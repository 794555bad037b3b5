package astro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMod(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		m    float64
		want float64
	}{
		{
			name: "zero",
			x:    0,
			m:    60,
			want: 0,
		},
		{
			name: "in range",
			x:    42,
			m:    60,
			want: 42,
		},
		{
			name: "wraps above",
			x:    125,
			m:    60,
			want: 5,
		},
		{
			name: "exact multiple",
			x:    180,
			m:    60,
			want: 0,
		},
		{
			name: "negative corrected",
			x:    -10,
			m:    60,
			want: 50,
		},
		{
			name: "negative exact multiple",
			x:    -120,
			m:    60,
			want: 0,
		},
		{
			name: "large negative",
			x:    -1e12 - 7,
			m:    60,
			want: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeMod(tt.x, tt.m), 1e-9)
		})
	}
}

func TestNormalizeModRange(t *testing.T) {
	// Sweep a wide span of inputs, negative and positive, against a few
	// periods; the result must always land in [0, m).
	periods := []float64{1, 60, 44700, 2551442.8769}
	for _, m := range periods {
		for x := -1e15; x <= 1e15; x += 1.37e13 {
			y := NormalizeMod(x, m)
			require.GreaterOrEqual(t, y, 0.0, "x=%f m=%f", x, m)
			require.Less(t, y, m, "x=%f m=%f", x, m)
		}
	}
}

func TestNormalizeModNearBoundary(t *testing.T) {
	// A value an ulp below zero must not leak a negative result or the
	// period itself.
	y := NormalizeMod(math.Nextafter(0, -1), TwoPi)
	assert.GreaterOrEqual(t, y, 0.0)
	assert.Less(t, y, TwoPi)
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{
			name: "identity",
			x:    1.5,
			want: 1.5,
		},
		{
			name: "full turn",
			x:    TwoPi,
			want: 0,
		},
		{
			name: "negative quarter",
			x:    -math.Pi / 2,
			want: 3 * math.Pi / 2,
		},
		{
			name: "many turns",
			x:    7*TwoPi + 0.25,
			want: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NormalizeAngle(tt.x), 1e-9)
		})
	}
}
