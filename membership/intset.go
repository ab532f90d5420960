package membership

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// int64Set stores int64 keys. Values that fit the unsigned 32-bit domain
// go into a roaring bitmap, which stays compact for the dense,
// small-range keys typical of grouping columns; anything outside that
// span spills into a plain map.
type int64Set struct {
	dense *roaring.Bitmap
	wide  map[int64]struct{}
}

func newInt64Set() *int64Set {
	return &int64Set{dense: roaring.New()}
}

func (s *int64Set) inDense(v int64) bool {
	return v >= 0 && v <= math.MaxUint32
}

func (s *int64Set) add(v int64) bool {
	if s.inDense(v) {
		return s.dense.CheckedAdd(uint32(v))
	}
	if s.wide == nil {
		s.wide = make(map[int64]struct{})
	}
	if _, ok := s.wide[v]; ok {
		return false
	}
	s.wide[v] = struct{}{}
	return true
}

func (s *int64Set) contains(v int64) bool {
	if s.inDense(v) {
		return s.dense.Contains(uint32(v))
	}
	_, ok := s.wide[v]
	return ok
}
