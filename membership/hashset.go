package membership

import (
	"encoding/binary"
	"math"

	"github.com/spaolacci/murmur3"
)

// float64Set stores float64 keys by canonical IEEE bit pattern in an
// open-addressing table. Hashing raw float bits directly would scatter
// the 2^52 NaN payloads across distinct keys and split negative from
// positive zero, so keys are canonicalized first: every NaN collapses to
// one sentinel pattern and -0 folds into +0. This is the explicit
// sentinel-substitution strategy the exact-equality hash approach needs
// for missing markers.
type float64Set struct {
	table *u64Table
}

// canonicalNaN is the quiet NaN bit pattern all NaN keys collapse to.
const canonicalNaN = 0x7FF8000000000000

func canonicalBits(v float64) uint64 {
	if math.IsNaN(v) {
		return canonicalNaN
	}
	if v == 0 {
		return 0
	}
	return math.Float64bits(v)
}

func newFloat64Set(hint int) *float64Set {
	return &float64Set{table: newU64Table(hint)}
}

func (s *float64Set) add(v float64) bool      { return s.table.add(canonicalBits(v)) }
func (s *float64Set) contains(v float64) bool { return s.table.contains(canonicalBits(v)) }

// u64Table is a linear-probing hash table of uint64 keys bucketed by
// murmur3. Capacity is a power of two; the table grows at 3/4 load.
type u64Table struct {
	keys []uint64
	used []bool
	size int
}

func newU64Table(hint int) *u64Table {
	capacity := 16
	for capacity < hint*2 {
		capacity <<= 1
	}
	return &u64Table{
		keys: make([]uint64, capacity),
		used: make([]bool, capacity),
	}
}

func hashU64(k uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], k)
	return murmur3.Sum64(buf[:])
}

func (t *u64Table) add(k uint64) bool {
	if t.size*4 >= len(t.keys)*3 {
		t.grow()
	}
	mask := uint64(len(t.keys) - 1)
	for i := hashU64(k) & mask; ; i = (i + 1) & mask {
		if !t.used[i] {
			t.keys[i] = k
			t.used[i] = true
			t.size++
			return true
		}
		if t.keys[i] == k {
			return false
		}
	}
}

func (t *u64Table) contains(k uint64) bool {
	mask := uint64(len(t.keys) - 1)
	for i := hashU64(k) & mask; ; i = (i + 1) & mask {
		if !t.used[i] {
			return false
		}
		if t.keys[i] == k {
			return true
		}
	}
}

func (t *u64Table) grow() {
	old := *t
	t.keys = make([]uint64, len(old.keys)*2)
	t.used = make([]bool, len(old.keys)*2)
	t.size = 0
	for i, used := range old.used {
		if used {
			t.add(old.keys[i])
		}
	}
}

// stringSet is the string-keyed analogue of u64Table: linear probing
// over murmur3 of the key bytes, with full keys stored for exact
// comparison on collision.
type stringSet struct {
	keys []string
	used []bool
	size int
}

func newStringSet(hint int) *stringSet {
	capacity := 16
	for capacity < hint*2 {
		capacity <<= 1
	}
	return &stringSet{
		keys: make([]string, capacity),
		used: make([]bool, capacity),
	}
}

func (s *stringSet) add(k string) bool {
	if s.size*4 >= len(s.keys)*3 {
		s.grow()
	}
	mask := uint64(len(s.keys) - 1)
	for i := murmur3.Sum64([]byte(k)) & mask; ; i = (i + 1) & mask {
		if !s.used[i] {
			s.keys[i] = k
			s.used[i] = true
			s.size++
			return true
		}
		if s.keys[i] == k {
			return false
		}
	}
}

func (s *stringSet) contains(k string) bool {
	mask := uint64(len(s.keys) - 1)
	for i := murmur3.Sum64([]byte(k)) & mask; ; i = (i + 1) & mask {
		if !s.used[i] {
			return false
		}
		if s.keys[i] == k {
			return true
		}
	}
}

func (s *stringSet) grow() {
	old := *s
	s.keys = make([]string, len(old.keys)*2)
	s.used = make([]bool, len(old.keys)*2)
	s.size = 0
	for i, used := range old.used {
		if used {
			s.add(old.keys[i])
		}
	}
}
