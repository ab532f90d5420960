// Package reduce implements single-pass reductions over numeric vectors:
// running min/max with missing-value propagation, online mean/variance,
// elementwise transforms, and grouped aggregation.
package reduce

import (
	"math"

	"vecstats/vector"
)

// Range computes the minimum and maximum of v in a single pass.
//
// When skipMissing is false, the first missing element fixes the result
// to (NaN, NaN) and the scan stops there; once a missing marker is seen
// the outcome cannot change, so probing further elements is wasted work.
// When skipMissing is true, missing elements are excluded from the
// comparison.
//
// Accumulators start at (+Inf, -Inf), so an empty vector, or an
// all-missing vector with skipMissing set, yields (+Inf, -Inf). Callers
// treat that pair as the empty-range sentinel.
func Range(v *vector.Float64Vector, skipMissing bool) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)

	for i, x := range v.Values {
		if v.IsMissing(i) {
			if skipMissing {
				continue
			}
			return math.NaN(), math.NaN()
		}
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}
