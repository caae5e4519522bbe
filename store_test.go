package agingbloom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func checkStoreTrue(tb testing.TB, s *bitStore, indexes ...uint64) {
	tb.Helper()
	if !s.checkBits(indexes...) {
		tb.Errorf("checkBits returns false unexpectedly for: %+v", indexes)
	}
}

func checkStoreFalse(tb testing.TB, s *bitStore, indexes ...uint64) {
	tb.Helper()
	if s.checkBits(indexes...) {
		tb.Errorf("checkBits returns true unexpectedly for: %+v", indexes)
	}
}

func TestBitStore(t *testing.T) {
	s := newBitStore(32)
	s.setBits(0, 1, 2, 3, 8, 9, 10, 11, 12, 13, 14, 15)

	checkStoreTrue(t, s, 0)
	checkStoreTrue(t, s, 0, 1)
	checkStoreTrue(t, s, 1, 2)
	checkStoreTrue(t, s, 2, 3)
	checkStoreTrue(t, s, 0, 1, 2, 3)

	checkStoreFalse(t, s, 4)
	checkStoreFalse(t, s, 5)
	checkStoreFalse(t, s, 6)
	checkStoreFalse(t, s, 7)
	checkStoreFalse(t, s, 0, 4)
	checkStoreFalse(t, s, 0, 1, 2, 3, 4)
	checkStoreFalse(t, s)

	checkStoreTrue(t, s, 8)
	checkStoreTrue(t, s, 12)
	checkStoreTrue(t, s, 15)

	require.Equal(t, uint64(12), s.count())
	require.Equal(t, []uint64{0, 1, 2, 3, 8, 9, 10, 11, 12, 13, 14, 15}, s.setIndexes(nil))

	s.clearBit(12)
	checkStoreFalse(t, s, 12)
	require.Equal(t, uint64(11), s.count())

	s.clearAll()
	require.True(t, s.none())
	require.Empty(t, s.setIndexes(nil))
}

func TestBitStore_SetIndexesMany(t *testing.T) {
	s := newBitStore(2000)
	var want []uint64
	for x := uint64(0); x < 2000; x += 3 {
		s.setBits(x)
		want = append(want, x)
	}
	require.Equal(t, want, s.setIndexes(nil))
}

func TestCounterStore(t *testing.T) {
	s := newCounterStore(8)
	s.incr(1, 2, 2, 5)
	require.Equal(t, counterStore{0, 1, 2, 0, 0, 1, 0, 0}, s)
	require.True(t, s.checkCounters(1, 2, 5))
	require.False(t, s.checkCounters(1, 3))
	require.False(t, s.checkCounters())
	require.Equal(t, uint32(1), s.min(1, 2))

	_, ok := s.decr(2, 2, 5)
	require.True(t, ok)
	require.Equal(t, counterStore{0, 1, 0, 0, 0, 0, 0, 0}, s)

	// index 1 appears twice but holds 1: nothing changes.
	x, ok := s.decr(1, 1)
	require.False(t, ok)
	require.Equal(t, uint64(1), x)
	require.Equal(t, counterStore{0, 1, 0, 0, 0, 0, 0, 0}, s)

	s.clear()
	require.Equal(t, newCounterStore(8), s)
}

func TestCounterStore_Saturate(t *testing.T) {
	s := newCounterStore(2)
	s[0] = counterMax
	s.incr(0)
	require.Equal(t, uint32(counterMax), s[0])
	_, ok := s.decr(0)
	require.True(t, ok)
	require.Equal(t, uint32(counterMax), s[0])
}
