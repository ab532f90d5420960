// Package membership implements hash-based deduplication, unique-set
// extraction and membership testing over integer, float and string
// sequences.
//
// Each element kind gets a dedicated set representation: int64 keys use a
// roaring bitmap for the dense unsigned range with a map spillover for
// values outside it, float64 keys are canonicalized through their IEEE
// bit patterns so every NaN payload lands on one sentinel key, and
// string keys live in a murmur3-hashed open-addressing table. The public
// functions are generic over the element kind, so the choice happens at
// compile time rather than through a runtime value-kind dispatch.
package membership

import (
	"slices"
)

// Key enumerates the element kinds the seen-set engine supports.
type Key interface {
	int64 | float64 | string
}

// seenSet is the minimal contract the per-kind set representations share.
type seenSet[K Key] interface {
	// add inserts v and reports whether it was newly inserted.
	add(v K) bool
	contains(v K) bool
}

func newSeenSet[K Key](hint int) seenSet[K] {
	var zero K
	var s any
	switch any(zero).(type) {
	case int64:
		s = newInt64Set()
	case float64:
		s = newFloat64Set(hint)
	case string:
		s = newStringSet(hint)
	}
	return s.(seenSet[K])
}

// Duplicated reports, for each position, whether the value is a repeat
// of one seen earlier in the scan. The first occurrence of any value is
// never a duplicate, so out[0] is always false for non-empty input.
func Duplicated[K Key](x []K) []bool {
	seen := newSeenSet[K](len(x))
	out := make([]bool, len(x))
	for i, v := range x {
		out[i] = !seen.add(v)
	}
	return out
}

// Unique returns the distinct values of x in first-appearance order.
func Unique[K Key](x []K) []K {
	seen := newSeenSet[K](len(x))
	out := make([]K, 0, len(x))
	for _, v := range x {
		if seen.add(v) {
			out = append(out, v)
		}
	}
	return out
}

// UniqueSorted returns the distinct values of x in ascending order. For
// float64 elements NaN sorts before every other value.
func UniqueSorted[K Key](x []K) []K {
	out := Unique(x)
	slices.Sort(out)
	return out
}

// IsIn reports, for each value of x, whether it appears anywhere in
// table. The table is hashed once, so the total cost is linear in
// len(table) + len(x).
func IsIn[K Key](x, table []K) []bool {
	set := newSeenSet[K](len(table))
	for _, v := range table {
		set.add(v)
	}
	out := make([]bool, len(x))
	for i, v := range x {
		out[i] = set.contains(v)
	}
	return out
}

// Match returns, for each value of x, the 1-based index of its first
// occurrence in table, or 0 when absent. NaN never matches: it is not
// equal to any key, itself included.
func Match[K Key](x, table []K) []int {
	lookup := make(map[K]int, len(table))
	for i, v := range table {
		if _, ok := lookup[v]; !ok {
			lookup[v] = i + 1
		}
	}
	out := make([]int, len(x))
	for i, v := range x {
		out[i] = lookup[v]
	}
	return out
}
