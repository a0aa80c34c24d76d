package aggregators_test

import (
	"math"
	"testing"

	"loadbench/internal/aggregators"

	"github.com/stretchr/testify/assert"
)

func TestQuantile_NearestRank(t *testing.T) {
	t.Parallel()

	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		name     string
		p        float64
		expected float64
	}{
		{name: "p0 is the minimum", p: 0, expected: 10},
		{name: "p50", p: 50, expected: 50},
		{name: "p90", p: 90, expected: 90},
		{name: "p95 rounds up to rank 10", p: 95, expected: 100},
		{name: "p100 is the maximum", p: 100, expected: 100},
		{name: "p99.9 clamps to the last rank", p: 99.9, expected: 100},
		{name: "p1 rounds up to rank 1", p: 1, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, aggregators.Quantile(sorted, tt.p))
		})
	}
}

func TestQuantile_SingleElement(t *testing.T) {
	t.Parallel()

	for _, p := range []float64{0, 50, 99.9, 100} {
		assert.Equal(t, 42.0, aggregators.Quantile([]float64{42}, p))
	}
}

func TestQuantile_AlwaysObservedValue(t *testing.T) {
	t.Parallel()

	// Nearest-rank never interpolates: every result is an input element.
	sorted := []float64{1, 5, 100}
	for p := 0.0; p <= 100; p += 12.5 {
		got := aggregators.Quantile(sorted, p)
		assert.Contains(t, sorted, got, "p=%v", p)
	}
}

func TestQuantile_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsNaN(aggregators.Quantile(nil, 50)))
}
