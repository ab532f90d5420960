package membership

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDuplicated(t *testing.T) {
	t.Run("FirstOccurrenceNeverDuplicate", func(t *testing.T) {
		out := Duplicated([]int64{5, 5, 5})
		require.Equal(t, []bool{false, true, true}, out)
	})

	t.Run("Int64", func(t *testing.T) {
		out := Duplicated([]int64{1, 2, 1, 3, 2, 1})
		require.Equal(t, []bool{false, false, true, false, true, true}, out)
	})

	t.Run("Float64", func(t *testing.T) {
		out := Duplicated([]float64{1.5, 2.5, 1.5})
		require.Equal(t, []bool{false, false, true}, out)
	})

	t.Run("AllNaNAreOneKey", func(t *testing.T) {
		out := Duplicated([]float64{math.NaN(), math.NaN(), 1})
		require.Equal(t, []bool{false, true, false}, out)
	})

	t.Run("NegativeZeroFoldsIntoZero", func(t *testing.T) {
		out := Duplicated([]float64{0, math.Copysign(0, -1)})
		require.Equal(t, []bool{false, true}, out)
	})

	t.Run("String", func(t *testing.T) {
		out := Duplicated([]string{"a", "b", "a", ""})
		require.Equal(t, []bool{false, false, true, false}, out)
	})

	t.Run("WideInt64", func(t *testing.T) {
		// Values outside the bitmap's unsigned 32-bit span take the
		// spillover path.
		x := []int64{-7, math.MaxInt64, -7, 3, math.MaxInt64}
		out := Duplicated(x)
		require.Equal(t, []bool{false, false, true, false, true}, out)
	})

	t.Run("Empty", func(t *testing.T) {
		require.Empty(t, Duplicated([]float64(nil)))
	})
}

func TestUnique(t *testing.T) {
	t.Run("FirstAppearanceOrder", func(t *testing.T) {
		out := Unique([]int64{3, 1, 3, 2, 1})
		require.Equal(t, []int64{3, 1, 2}, out)
	})

	t.Run("Sorted", func(t *testing.T) {
		out := UniqueSorted([]float64{3.5, 1.5, 3.5, 2.5})
		require.Equal(t, []float64{1.5, 2.5, 3.5}, out)
	})

	t.Run("Strings", func(t *testing.T) {
		out := UniqueSorted([]string{"pear", "apple", "pear"})
		require.Equal(t, []string{"apple", "pear"}, out)
	})

	t.Run("ManyValuesForceTableGrowth", func(t *testing.T) {
		x := make([]float64, 5000)
		for i := range x {
			x[i] = float64(i % 1000)
		}
		out := Unique(x)
		require.Len(t, out, 1000)
	})
}

func TestIsIn(t *testing.T) {
	t.Run("SpecExample", func(t *testing.T) {
		out := IsIn([]float64{1, 5, 10}, []float64{1, 2, 3})
		require.Equal(t, []bool{true, false, false}, out)
	})

	t.Run("Int64", func(t *testing.T) {
		out := IsIn([]int64{4, 2}, []int64{1, 2, 3})
		require.Equal(t, []bool{false, true}, out)
	})

	t.Run("String", func(t *testing.T) {
		out := IsIn([]string{"x", "y"}, []string{"y", "z"})
		require.Equal(t, []bool{false, true}, out)
	})

	t.Run("NaNMatchesNaNInTable", func(t *testing.T) {
		// Canonicalization makes the missing marker behave as an
		// ordinary key in set operations.
		out := IsIn([]float64{math.NaN()}, []float64{math.NaN()})
		require.Equal(t, []bool{true}, out)
	})

	t.Run("EmptyTable", func(t *testing.T) {
		out := IsIn([]int64{1, 2}, nil)
		require.Equal(t, []bool{false, false}, out)
	})
}

func TestMatch(t *testing.T) {
	t.Run("FirstIndexOneBased", func(t *testing.T) {
		out := Match([]string{"b", "z", "a"}, []string{"a", "b", "b"})
		require.Equal(t, []int{2, 0, 1}, out)
	})

	t.Run("Int64", func(t *testing.T) {
		out := Match([]int64{10, 20}, []int64{20, 10})
		require.Equal(t, []int{2, 1}, out)
	})

	t.Run("NaNNeverMatches", func(t *testing.T) {
		out := Match([]float64{math.NaN()}, []float64{math.NaN()})
		require.Equal(t, []int{0}, out)
	})
}
