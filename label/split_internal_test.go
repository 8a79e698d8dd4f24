package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stepCDF is an exact CDF for tie-break tests: CDF(k) = table[k].
func stepCDF(table []float64) func(int) float64 {
	return func(k int) float64 { return table[k] }
}

func TestNearestCandidate(t *testing.T) {
	t.Parallel()

	cdf := stepCDF([]float64{0.125, 0.25, 0.5, 0.75, 1})

	cases := []struct {
		name   string
		target float64
		want   int
	}{
		{"exact hit", 0.5, 2},
		{"closer below", 0.3, 1},
		{"closer above", 0.7, 3},
		{"tie goes to larger", 0.625, 3},
		{"below first candidate", 0.01, 0},
		{"last candidate", 0.99, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, nearestCandidate(cdf, tc.target, 0, 4), tc.name)
	}
}

func TestScanStart_FallsBackToZero(t *testing.T) {
	t.Parallel()

	cdf := stepCDF([]float64{0.1, 0.2, 0.6, 0.9, 1})
	assert.Equal(t, 1, scanStart(cdf, 0.5, 1), "CDF(1) < target: keep jump-start")
	assert.Equal(t, 0, scanStart(cdf, 0.5, 2), "CDF(2) ≥ target: scan from zero")
	assert.Equal(t, 0, scanStart(cdf, 0.5, -4), "negative start")
}
