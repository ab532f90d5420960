// Package rle implements run-length encoding of float64 sequences and a
// compact binary serialization of the encoded form with optional block
// compression.
package rle

import (
	"github.com/gravitational/trace"
)

// Run is one (value, repeat count) pair of an encoding. Adjacent runs in
// a well-formed encoding never share the same value.
type Run struct {
	Value  float64
	Length int
}

// Encode compresses x into runs using exact float equality. NaN never
// compares equal to itself, so each NaN element becomes its own run of
// length 1; this is a literal compressor, not a clustering pass. An
// empty input produces an empty encoding.
func Encode(x []float64) []Run {
	if len(x) == 0 {
		return nil
	}

	runs := make([]Run, 0, 8)
	current := Run{Value: x[0], Length: 1}
	for _, v := range x[1:] {
		if v == current.Value {
			current.Length++
			continue
		}
		runs = append(runs, current)
		current = Run{Value: v, Length: 1}
	}
	return append(runs, current)
}

// Decode expands runs back into the original sequence. A non-positive
// run length is a precondition violation: it cannot be produced by
// Encode and has no expansion.
func Decode(runs []Run) ([]float64, error) {
	total := 0
	for i, r := range runs {
		if r.Length < 1 {
			return nil, trace.BadParameter("run %d has non-positive length %d", i, r.Length)
		}
		total += r.Length
	}
	out := make([]float64, 0, total)
	for _, r := range runs {
		for i := 0; i < r.Length; i++ {
			out = append(out, r.Value)
		}
	}
	return out, nil
}
