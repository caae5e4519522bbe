package agingbloom

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// bitStore is the bit array behind BF, DBF and each GBF generation.
type bitStore struct {
	bits *bitset.BitSet
}

func newBitStore(nbits uint64) *bitStore {
	return &bitStore{bits: bitset.New(uint(nbits))}
}

// setBits sets bits on indexes in the store.
func (s *bitStore) setBits(indexes ...uint64) {
	for _, x := range indexes {
		s.bits.Set(uint(x))
	}
}

// checkBits checks all bits are `true` on indexes in the store.
func (s *bitStore) checkBits(indexes ...uint64) bool {
	if len(indexes) == 0 {
		return false
	}
	for _, x := range indexes {
		if !s.bits.Test(uint(x)) {
			return false
		}
	}
	return true
}

func (s *bitStore) clearBit(x uint64) {
	s.bits.Clear(uint(x))
}

func (s *bitStore) clearAll() {
	s.bits.ClearAll()
}

// count returns the number of set bits.
func (s *bitStore) count() uint64 {
	return uint64(s.bits.Count())
}

func (s *bitStore) none() bool {
	return s.bits.None()
}

// setIndexes appends the positions of all set bits to dst.
func (s *bitStore) setIndexes(dst []uint64) []uint64 {
	buf := make([]uint, 256)
	var j uint
	for {
		var found []uint
		j, found = s.bits.NextSetMany(j, buf)
		if len(found) == 0 {
			return dst
		}
		for _, x := range found {
			dst = append(dst, uint64(x))
		}
		j++
	}
}

const counterMax = math.MaxUint32

// counterStore is the counter array behind CBF. Counters saturate at
// counterMax and stay there.
type counterStore []uint32

func newCounterStore(n uint64) counterStore {
	return make(counterStore, n)
}

func (s counterStore) incr(indexes ...uint64) {
	for _, x := range indexes {
		if s[x] < counterMax {
			s[x]++
		}
	}
}

// checkCounters checks all counters on indexes are at least 1.
func (s counterStore) checkCounters(indexes ...uint64) bool {
	if len(indexes) == 0 {
		return false
	}
	for _, x := range indexes {
		if s[x] == 0 {
			return false
		}
	}
	return true
}

// decr decrements the counters on indexes once per occurrence. It changes
// nothing and returns the first short index when a counter is smaller than
// the number of times it appears in indexes.
func (s counterStore) decr(indexes ...uint64) (uint64, bool) {
	need := make(map[uint64]uint32, len(indexes))
	for _, x := range indexes {
		need[x]++
	}
	for _, x := range indexes {
		if v := s[x]; v != counterMax && v < need[x] {
			return x, false
		}
	}
	for _, x := range indexes {
		if s[x] != counterMax {
			s[x]--
		}
	}
	return 0, true
}

func (s counterStore) min(indexes ...uint64) uint32 {
	var v uint32 = counterMax
	for _, x := range indexes {
		if s[x] < v {
			v = s[x]
		}
	}
	return v
}

func (s counterStore) clear() {
	for i := range s {
		s[i] = 0
	}
}
