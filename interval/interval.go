// Package interval maps query values onto bins defined by a sorted
// breakpoint sequence.
package interval

import (
	"sort"

	"github.com/gravitational/trace"
)

// Locate returns, for each query value, the number of breakpoints
// strictly greater than it: the upper-bound position measured from the
// top breakpoint. With breaks [2, 4, 8] a query of 3 yields 2, since 4
// and 8 both exceed it.
//
// Breakpoints must be non-decreasing; an unsorted sequence would break
// the binary search invariant, so it is rejected up front rather than
// producing silently wrong bins. A NaN query compares greater than no
// breakpoint and yields 0.
func Locate(query, breaks []float64) ([]int, error) {
	for i := 1; i < len(breaks); i++ {
		if breaks[i] < breaks[i-1] {
			return nil, trace.BadParameter(
				"breakpoints must be non-decreasing: break %d (%v) < break %d (%v)",
				i, breaks[i], i-1, breaks[i-1])
		}
	}

	out := make([]int, len(query))
	for i, q := range query {
		upper := sort.Search(len(breaks), func(j int) bool {
			return breaks[j] > q
		})
		out[i] = len(breaks) - upper
	}
	return out, nil
}
