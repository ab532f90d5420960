package reduce

import (
	"math"
	"slices"

	"github.com/gravitational/trace"
)

// Reducer collapses one group of values to a single value. The engine is
// agnostic to what the reduction computes; Sum, Mean, Min and Max below
// cover the common cases.
type Reducer func(values []float64) float64

// Sum adds all values in the group.
func Sum(values []float64) float64 {
	var total float64
	for _, x := range values {
		total += x
	}
	return total
}

// Mean averages the group. An empty group yields NaN.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}

// Min returns the smallest value in the group, +Inf for an empty group.
func Min(values []float64) float64 {
	out := math.Inf(1)
	for _, x := range values {
		if x < out {
			out = x
		}
	}
	return out
}

// Max returns the largest value in the group, -Inf for an empty group.
func Max(values []float64) float64 {
	out := math.Inf(-1)
	for _, x := range values {
		if x > out {
			out = x
		}
	}
	return out
}

// GroupResult is one (key, reduced value) pair produced by GroupReduce.
type GroupResult struct {
	Key   int64
	Value float64
}

// GroupReduce partitions x by the parallel key sequence and applies fn to
// each group. Elements keep their original relative order inside a group,
// and results are returned in ascending key order so output is
// deterministic regardless of map iteration order.
func GroupReduce(x []float64, keys []int64, fn Reducer) ([]GroupResult, error) {
	if len(x) != len(keys) {
		return nil, trace.BadParameter(
			"value count %d does not match key count %d", len(x), len(keys))
	}
	if fn == nil {
		return nil, trace.BadParameter("reduction function is required")
	}

	groups := make(map[int64][]float64)
	for i, k := range keys {
		groups[k] = append(groups[k], x[i])
	}

	order := make([]int64, 0, len(groups))
	for k := range groups {
		order = append(order, k)
	}
	slices.Sort(order)

	out := make([]GroupResult, len(order))
	for i, k := range order {
		out[i] = GroupResult{Key: k, Value: fn(groups[k])}
	}
	return out, nil
}

// Tabulate counts how many keys fall at each position of [1, max],
// returning a slice of max counts. Keys outside the range, including
// non-positive ones, are silently dropped; callers that consider silent
// data loss unacceptable should use TabulateStrict.
func Tabulate(keys []int64, max int) ([]int64, error) {
	if max < 0 {
		return nil, trace.BadParameter("tabulate upper bound %d is negative", max)
	}
	counts := make([]int64, max)
	for _, k := range keys {
		if k >= 1 && k <= int64(max) {
			counts[k-1]++
		}
	}
	return counts, nil
}

// TabulateStrict behaves like Tabulate but fails on the first key outside
// [1, max] instead of discarding it.
func TabulateStrict(keys []int64, max int) ([]int64, error) {
	if max < 0 {
		return nil, trace.BadParameter("tabulate upper bound %d is negative", max)
	}
	counts := make([]int64, max)
	for i, k := range keys {
		if k < 1 || k > int64(max) {
			return nil, trace.BadParameter(
				"key %d at index %d outside [1, %d]", k, i, max)
		}
		counts[k-1]++
	}
	return counts, nil
}

// ValueCount is one (value, occurrences) pair produced by CountValues.
type ValueCount struct {
	Value float64
	Count int64
}

// CountValues tallies occurrences of each distinct value in x, returned
// in ascending value order. All NaN payloads collapse into a single
// entry, which sorts before every finite value.
func CountValues(x []float64) []ValueCount {
	counts := make(map[float64]int64)
	var nanCount int64
	for _, v := range x {
		if math.IsNaN(v) {
			nanCount++
			continue
		}
		counts[v]++
	}

	out := make([]ValueCount, 0, len(counts)+1)
	if nanCount > 0 {
		out = append(out, ValueCount{Value: math.NaN(), Count: nanCount})
	}
	values := make([]float64, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	slices.Sort(values)
	for _, v := range values {
		out = append(out, ValueCount{Value: v, Count: counts[v]})
	}
	return out
}
