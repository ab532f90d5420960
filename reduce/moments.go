package reduce

import (
	"math"

	"github.com/gravitational/trace"

	"vecstats/vector"
)

// Moments accumulates a running count, mean and sum of squared deviations
// using Welford's update. It is a plain value; the zero Moments is ready
// to use. The naive sum(x^2)/n - mean^2 form cancels catastrophically for
// large means, which is why the incremental form is used here.
type Moments struct {
	Count int
	Mean  float64
	M2    float64
}

// Add folds one observation into the accumulator.
//
// The second deviation term must use the updated mean: computing
// delta * delta instead silently degrades to a different, less stable
// recurrence that happens to look similar.
func (m *Moments) Add(x float64) {
	m.Count++
	delta := x - m.Mean
	m.Mean += delta / float64(m.Count)
	m.M2 += delta * (x - m.Mean)
}

// Variance returns the sample variance (n-1 denominator) of the values
// accumulated so far. Fewer than two observations is a precondition
// violation, not a NaN result.
func (m *Moments) Variance() (float64, error) {
	if m.Count < 2 {
		return 0, trace.BadParameter(
			"sample variance requires at least 2 observations, have %d", m.Count)
	}
	return m.M2 / float64(m.Count-1), nil
}

// Variance computes the sample variance of v in a single pass.
//
// With skipMissing set, missing elements are excluded and the remaining
// count must still be at least two. Without it, any missing element
// makes the result NaN: missingness propagates through the reduction
// the same way it does through arithmetic.
func Variance(v *vector.Float64Vector, skipMissing bool) (float64, error) {
	variance, _, err := MeanVariance(v, skipMissing)
	return variance, err
}

// MeanVariance computes the sample variance of v and, as a byproduct of
// the same pass, the mean. See Variance for missing-value semantics.
func MeanVariance(v *vector.Float64Vector, skipMissing bool) (variance, mean float64, err error) {
	if !skipMissing && v.Missing.HasMissing() {
		if v.Len() < 2 {
			return 0, 0, trace.BadParameter(
				"sample variance requires at least 2 observations, have %d", v.Len())
		}
		return math.NaN(), math.NaN(), nil
	}

	var m Moments
	for i, x := range v.Values {
		if v.IsMissing(i) {
			continue
		}
		m.Add(x)
	}
	variance, err = m.Variance()
	if err != nil {
		return 0, 0, trace.Wrap(err)
	}
	return variance, m.Mean, nil
}
