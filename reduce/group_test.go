package reduce

import (
	"math"
	"slices"
	"testing"
)

func TestGroupReduce(t *testing.T) {
	t.Run("Sum", func(t *testing.T) {
		out, err := GroupReduce([]float64{1, 2, 3, 4}, []int64{1, 1, 2, 2}, Sum)
		if err != nil {
			t.Fatal(err)
		}
		want := []GroupResult{{Key: 1, Value: 3}, {Key: 2, Value: 7}}
		if !slices.Equal(out, want) {
			t.Errorf("got %v, want %v", out, want)
		}
	})

	t.Run("AscendingKeyOrder", func(t *testing.T) {
		out, err := GroupReduce([]float64{1, 2, 3}, []int64{9, -4, 2}, Sum)
		if err != nil {
			t.Fatal(err)
		}
		want := []GroupResult{{Key: -4, Value: 2}, {Key: 2, Value: 3}, {Key: 9, Value: 1}}
		if !slices.Equal(out, want) {
			t.Errorf("got %v, want %v", out, want)
		}
	})

	t.Run("StableWithinGroup", func(t *testing.T) {
		// first picks the group's first element, which must be the
		// first in original order.
		first := func(values []float64) float64 { return values[0] }
		out, err := GroupReduce([]float64{10, 20, 30, 40}, []int64{2, 1, 2, 1}, first)
		if err != nil {
			t.Fatal(err)
		}
		want := []GroupResult{{Key: 1, Value: 20}, {Key: 2, Value: 10}}
		if !slices.Equal(out, want) {
			t.Errorf("got %v, want %v", out, want)
		}
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		if _, err := GroupReduce([]float64{1}, []int64{1, 2}, Sum); err == nil {
			t.Error("expected error on mismatched lengths")
		}
	})

	t.Run("NilReducer", func(t *testing.T) {
		if _, err := GroupReduce([]float64{1}, []int64{1}, nil); err == nil {
			t.Error("expected error on nil reducer")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		out, err := GroupReduce(nil, nil, Sum)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 0 {
			t.Errorf("got %v, want empty", out)
		}
	})
}

func TestReducers(t *testing.T) {
	values := []float64{3, 1, 4}
	if got := Sum(values); got != 8 {
		t.Errorf("Sum = %v", got)
	}
	if got := Mean(values); math.Abs(got-8.0/3.0) > 1e-15 {
		t.Errorf("Mean = %v", got)
	}
	if got := Min(values); got != 1 {
		t.Errorf("Min = %v", got)
	}
	if got := Max(values); got != 4 {
		t.Errorf("Max = %v", got)
	}
	if got := Mean(nil); !math.IsNaN(got) {
		t.Errorf("Mean(nil) = %v, want NaN", got)
	}
}

func TestTabulate(t *testing.T) {
	t.Run("DropsOutOfRange", func(t *testing.T) {
		out, err := Tabulate([]int64{1, 3, 3, 10}, 5)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(out, []int64{1, 0, 2, 0, 0}) {
			t.Errorf("got %v", out)
		}
	})

	t.Run("DropsNonPositive", func(t *testing.T) {
		out, err := Tabulate([]int64{0, -2, 2}, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(out, []int64{0, 1, 0}) {
			t.Errorf("got %v", out)
		}
	})

	t.Run("NegativeMax", func(t *testing.T) {
		if _, err := Tabulate([]int64{1}, -1); err == nil {
			t.Error("expected error for negative max")
		}
	})

	t.Run("Strict", func(t *testing.T) {
		if _, err := TabulateStrict([]int64{1, 3, 3, 10}, 5); err == nil {
			t.Fatal("expected error on out-of-range key")
		}
		out, err := TabulateStrict([]int64{1, 3, 3}, 5)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(out, []int64{1, 0, 2, 0, 0}) {
			t.Errorf("got %v", out)
		}
	})
}

func TestCountValues(t *testing.T) {
	out := CountValues([]float64{2.5, 1, 2.5, math.NaN(), 1, math.NaN(), 3})

	if len(out) != 4 {
		t.Fatalf("got %d entries: %v", len(out), out)
	}
	if !math.IsNaN(out[0].Value) || out[0].Count != 2 {
		t.Errorf("NaN entry = %v", out[0])
	}
	rest := out[1:]
	want := []ValueCount{{Value: 1, Count: 2}, {Value: 2.5, Count: 2}, {Value: 3, Count: 1}}
	if !slices.Equal(rest, want) {
		t.Errorf("got %v, want %v", rest, want)
	}
}
