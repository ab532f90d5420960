package interval

import (
	"math"
	"slices"
	"testing"
)

func TestLocate(t *testing.T) {
	t.Run("SingleQuery", func(t *testing.T) {
		out, err := Locate([]float64{3}, []float64{2, 4, 8})
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(out, []int{2}) {
			t.Errorf("got %v, want [2]", out)
		}
	})

	t.Run("Conventions", func(t *testing.T) {
		breaks := []float64{2, 4, 8}
		cases := []struct {
			query float64
			want  int
		}{
			{1, 3}, // below every breakpoint
			{2, 2}, // equal to a breakpoint: strictly-greater excludes it
			{4, 1},
			{8, 0},
			{9, 0}, // above every breakpoint
		}
		for _, tc := range cases {
			out, err := Locate([]float64{tc.query}, breaks)
			if err != nil {
				t.Fatal(err)
			}
			if out[0] != tc.want {
				t.Errorf("Locate(%v) = %d, want %d", tc.query, out[0], tc.want)
			}
		}
	})

	t.Run("DuplicateBreakpoints", func(t *testing.T) {
		out, err := Locate([]float64{4}, []float64{2, 4, 4, 8})
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != 1 {
			t.Errorf("got %d, want 1", out[0])
		}
	})

	t.Run("NaNQuery", func(t *testing.T) {
		out, err := Locate([]float64{math.NaN()}, []float64{2, 4, 8})
		if err != nil {
			t.Fatal(err)
		}
		if out[0] != 0 {
			t.Errorf("got %d, want 0", out[0])
		}
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		out, err := Locate(nil, []float64{1, 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 0 {
			t.Errorf("got %v, want empty", out)
		}
	})

	t.Run("UnsortedBreaks", func(t *testing.T) {
		if _, err := Locate([]float64{1}, []float64{4, 2, 8}); err == nil {
			t.Fatal("expected error for unsorted breakpoints")
		}
	})
}
