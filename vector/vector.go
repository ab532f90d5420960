// Package vector provides the columnar value types consumed by the
// reduction packages. A vector pairs a typed slice with a word-packed
// missing-value mask, so reducers can distinguish "value is absent"
// from any representable value, including NaN.
package vector

import (
	"math"

	"github.com/gravitational/trace"
)

// MissingMask tracks missing positions using a bitmap, one bit per element.
type MissingMask struct {
	Bits         []uint64
	Length       int
	MissingCount int
}

// NewMissingMask creates a mask covering length elements, all present.
func NewMissingMask(length int) *MissingMask {
	numWords := (length + 63) / 64
	return &MissingMask{
		Bits:   make([]uint64, numWords),
		Length: length,
	}
}

// IsMissing reports whether the element at index is missing.
func (m *MissingMask) IsMissing(index int) bool {
	if index < 0 || index >= m.Length {
		return false
	}
	return (m.Bits[index/64] & (1 << (index % 64))) != 0
}

// SetMissing marks the element at index as missing.
func (m *MissingMask) SetMissing(index int) {
	if index < 0 || index >= m.Length {
		return
	}
	word, bit := index/64, uint64(1)<<(index%64)
	if m.Bits[word]&bit == 0 {
		m.Bits[word] |= bit
		m.MissingCount++
	}
}

// ClearMissing marks the element at index as present.
func (m *MissingMask) ClearMissing(index int) {
	if index < 0 || index >= m.Length {
		return
	}
	word, bit := index/64, uint64(1)<<(index%64)
	if m.Bits[word]&bit != 0 {
		m.Bits[word] &^= bit
		m.MissingCount--
	}
}

// HasMissing returns true if any element is missing.
func (m *MissingMask) HasMissing() bool {
	return m.MissingCount > 0
}

// Float64Vector is an immutable-by-convention sequence of float64 values
// with an associated missing mask. Values at missing positions are
// unspecified and must not be read by consumers.
type Float64Vector struct {
	Values  []float64
	Missing *MissingMask
}

// NewFloat64Vector builds a vector from raw values. NaN inputs are
// canonicalized into the missing mask, matching the convention that NaN
// is the in-band missing marker for untagged data.
func NewFloat64Vector(values []float64) *Float64Vector {
	v := &Float64Vector{
		Values:  values,
		Missing: NewMissingMask(len(values)),
	}
	for i, x := range values {
		if math.IsNaN(x) {
			v.Missing.SetMissing(i)
		}
	}
	return v
}

// NewFloat64VectorWithMask builds a vector from values and an explicit
// mask of missing positions. The mask length must match the value count.
func NewFloat64VectorWithMask(values []float64, missing []bool) (*Float64Vector, error) {
	if len(values) != len(missing) {
		return nil, trace.BadParameter(
			"value count %d does not match mask length %d", len(values), len(missing))
	}
	v := &Float64Vector{
		Values:  values,
		Missing: NewMissingMask(len(values)),
	}
	for i := range values {
		if missing[i] || math.IsNaN(values[i]) {
			v.Missing.SetMissing(i)
		}
	}
	return v, nil
}

// Len returns the number of elements, missing positions included.
func (v *Float64Vector) Len() int {
	return len(v.Values)
}

// PresentCount returns the number of non-missing elements.
func (v *Float64Vector) PresentCount() int {
	return len(v.Values) - v.Missing.MissingCount
}

// IsMissing reports whether the element at index is missing.
func (v *Float64Vector) IsMissing(index int) bool {
	return v.Missing.IsMissing(index)
}

// Floats renders the vector as a plain slice with NaN materialized at
// missing positions, for consumers that take raw values and understand
// NaN as the in-band missing marker. The payload stored under a mask
// bit is unspecified, so handing out Values directly would leak it.
// The backing slice is returned as is when nothing is missing.
func (v *Float64Vector) Floats() []float64 {
	if !v.Missing.HasMissing() {
		return v.Values
	}
	out := make([]float64, len(v.Values))
	copy(out, v.Values)
	for i := range out {
		if v.Missing.IsMissing(i) {
			out[i] = math.NaN()
		}
	}
	return out
}

// Get returns the value at index and whether it is present.
func (v *Float64Vector) Get(index int) (float64, bool) {
	if index < 0 || index >= len(v.Values) || v.Missing.IsMissing(index) {
		return 0, false
	}
	return v.Values[index], true
}

// Int64Vector is a sequence of int64 values with a missing mask. Integer
// columns have no in-band NaN, so missing positions can only come from an
// explicit mask (a parquet null, for example).
type Int64Vector struct {
	Values  []int64
	Missing *MissingMask
}

// NewInt64Vector builds a vector with no missing positions.
func NewInt64Vector(values []int64) *Int64Vector {
	return &Int64Vector{
		Values:  values,
		Missing: NewMissingMask(len(values)),
	}
}

// Len returns the number of elements, missing positions included.
func (v *Int64Vector) Len() int {
	return len(v.Values)
}

// IsMissing reports whether the element at index is missing.
func (v *Int64Vector) IsMissing(index int) bool {
	return v.Missing.IsMissing(index)
}
