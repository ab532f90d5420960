package reduce

import (
	"math"

	"github.com/gravitational/trace"
)

// Diff returns the lagged differences of x: out[i] = x[i+lag] - x[i],
// producing len(x)-lag values. NaN operands propagate into the output.
func Diff(x []float64, lag int) ([]float64, error) {
	if lag < 1 || lag > len(x) {
		return nil, trace.BadParameter("lag %d out of range [1, %d]", lag, len(x))
	}
	out := make([]float64, len(x)-lag)
	for i := lag; i < len(x); i++ {
		out[i-lag] = x[i] - x[i-lag]
	}
	return out, nil
}

// PairwiseMin returns the elementwise minimum of x and y. The shorter
// operand is recycled cyclically to the length of the longer one. NaN in
// either operand yields NaN at that position.
func PairwiseMin(x, y []float64) ([]float64, error) {
	return pairwise(x, y, math.Min)
}

// PairwiseMax returns the elementwise maximum of x and y, with the same
// recycling and NaN rules as PairwiseMin.
func PairwiseMax(x, y []float64) ([]float64, error) {
	return pairwise(x, y, math.Max)
}

func pairwise(x, y []float64, pick func(a, b float64) float64) ([]float64, error) {
	if (len(x) == 0) != (len(y) == 0) {
		return nil, trace.BadParameter("cannot recycle an empty operand against %d elements",
			max(len(x), len(y)))
	}
	n := max(len(x), len(y))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = pick(x[i%max(len(x), 1)], y[i%max(len(y), 1)])
	}
	return out, nil
}
