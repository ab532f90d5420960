package rle

import (
	"math"
	"slices"
	"testing"
)

func TestEncode(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		runs := Encode([]float64{1, 1, 2, 2, 2, 3})
		want := []Run{{Value: 1, Length: 2}, {Value: 2, Length: 3}, {Value: 3, Length: 1}}
		if !slices.Equal(runs, want) {
			t.Errorf("got %v, want %v", runs, want)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if runs := Encode(nil); len(runs) != 0 {
			t.Errorf("got %v, want empty", runs)
		}
	})

	t.Run("Single", func(t *testing.T) {
		runs := Encode([]float64{7})
		if !slices.Equal(runs, []Run{{Value: 7, Length: 1}}) {
			t.Errorf("got %v", runs)
		}
	})

	t.Run("NaNNeverMerges", func(t *testing.T) {
		runs := Encode([]float64{math.NaN(), math.NaN()})
		if len(runs) != 2 || runs[0].Length != 1 || runs[1].Length != 1 {
			t.Errorf("got %v, want two length-1 runs", runs)
		}
	})

	t.Run("NoAdjacentEqualRuns", func(t *testing.T) {
		runs := Encode([]float64{5, 5, 5, 1, 1, 5})
		for i := 1; i < len(runs); i++ {
			if runs[i].Value == runs[i-1].Value {
				t.Errorf("adjacent runs %d and %d share value %v", i-1, i, runs[i].Value)
			}
		}
	})
}

func TestRoundTrip(t *testing.T) {
	inputs := [][]float64{
		nil,
		{7},
		{1, 1, 2, 2, 2, 3},
		{0, 0, -0, 1, 1, 1, 1, 2},
		{1.5, 1.5, 1.5, 1.5},
		{3, 2, 1},
	}
	for _, x := range inputs {
		decoded, err := Decode(Encode(x))
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(decoded, x) && !(len(decoded) == 0 && len(x) == 0) {
			t.Errorf("round trip of %v gave %v", x, decoded)
		}
	}
}

func TestDecodeRejectsBadLength(t *testing.T) {
	if _, err := Decode([]Run{{Value: 1, Length: 0}}); err == nil {
		t.Error("expected error for zero-length run")
	}
	if _, err := Decode([]Run{{Value: 1, Length: -3}}); err == nil {
		t.Error("expected error for negative-length run")
	}
}
