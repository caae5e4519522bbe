package agingbloom

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroHasher puts every item on slot 0 for every hash iteration.
type zeroHasher struct{}

func (zeroHasher) Index(uint32, []byte, uint64) uint64 { return 0 }

func newTestCBF(tb testing.TB, n uint64, p float64, opts ...Option) *CBF {
	tb.Helper()
	cf, err := NewCBF(n, p, opts...)
	require.NoError(tb, err)
	return cf
}

func TestCBF_Basic(t *testing.T) {
	checkFilter(t, newTestCBF(t, 10000, 0.01), 10000)
}

func TestCBF_New(t *testing.T) {
	cf := newTestCBF(t, 3, 0.05)
	require.Equal(t, uint64(3), cf.ExpectedInserts())
	require.Equal(t, uint64(0), cf.ActualInserts())
	require.Equal(t, 0.05, cf.FalsePositiveRate())
	require.Greater(t, cf.HashCount(), uint64(0))

	_, err := NewCBF(0, 0.05)
	require.True(t, ErrInvalidParameter.Has(err))
	_, err = NewCBF(3, 0)
	require.True(t, ErrInvalidParameter.Has(err))
}

func TestCBF_TooLarge(t *testing.T) {
	// fits a bit array but not a counter array.
	p, err := Derive(1e9, 0.01)
	require.NoError(t, err)
	require.Greater(t, p.Len, uint64(maxCounterLen))

	cf, err := NewCBF(1e9, 0.01)
	require.True(t, ErrInvalidParameter.Has(err))
	require.True(t, Error.Has(err))
	require.Contains(t, err.Error(), "expectedInserts")
	require.Nil(t, cf)
}

func TestCBF_Delete(t *testing.T) {
	cf := newTestCBF(t, 100, 0.01)
	for i := 1; i < 100; i++ {
		cf.PutString(strconv.Itoa(i))
	}
	require.Equal(t, uint64(99), cf.ActualInserts())

	deleted := 0
	for i := 1; i < 100; i += 2 {
		require.NoError(t, cf.DeleteString(strconv.Itoa(i)))
		deleted++
	}
	require.Equal(t, uint64(99-deleted), cf.ActualInserts())

	// items not deleted are never lost.
	for i := 2; i < 100; i += 2 {
		require.True(t, cf.CheckString(strconv.Itoa(i)), "false negative: %d", i)
	}
	// deleted ones are gone except for false positives.
	found := 0
	for i := 1; i < 100; i += 2 {
		if cf.CheckString(strconv.Itoa(i)) {
			found++
		}
	}
	require.Less(t, found, 5)
}

func TestCBF_DeleteOnlyOnce(t *testing.T) {
	cf := newTestCBF(t, 100, 0.01)
	cf.PutString("x")
	cf.PutString("x")
	require.Equal(t, uint32(2), cf.Count([]byte("x")))

	require.NoError(t, cf.DeleteString("x"))
	require.True(t, cf.CheckString("x"))
	require.Equal(t, uint32(1), cf.Count([]byte("x")))

	require.NoError(t, cf.DeleteString("x"))
	require.False(t, cf.CheckString("x"))
	require.Equal(t, uint32(0), cf.Count([]byte("x")))
}

func TestCBF_DeleteAbsent(t *testing.T) {
	cf := newTestCBF(t, 100, 0.01)
	cf.PutString("present")
	before := append(counterStore(nil), cf.s...)

	require.NoError(t, cf.DeleteString("absent"))
	require.Equal(t, before, cf.s)
	require.Equal(t, uint64(1), cf.ActualInserts())
	require.True(t, cf.CheckString("present"))
}

func TestCBF_CounterCorruption(t *testing.T) {
	cf := newTestCBF(t, 10, 0.01, WithHasher(zeroHasher{}))
	require.Greater(t, cf.HashCount(), uint64(1))

	// slot 0 looks present, but an item needs it HashCount times.
	cf.s[0] = 1
	err := cf.DeleteString("never inserted")
	require.Error(t, err)
	require.True(t, ErrCounterCorruption.Has(err))
	require.True(t, Error.Has(err))
	require.Equal(t, uint32(1), cf.s[0])

	cf.PutString("inserted")
	require.Equal(t, uint32(1+cf.HashCount()), cf.s[0])
	require.NoError(t, cf.DeleteString("inserted"))
	require.Equal(t, uint32(1), cf.s[0])
}

func TestCBF_Empty(t *testing.T) {
	cf := newTestCBF(t, 100, 0.01)
	for i := 0; i < 100; i++ {
		cf.PutString(strconv.Itoa(i))
	}
	cf.Empty()
	cf.Empty()
	require.Equal(t, uint64(0), cf.ActualInserts())
	for i := 0; i < 100; i++ {
		require.False(t, cf.CheckString(strconv.Itoa(i)))
	}
	for _, v := range cf.s {
		require.Zero(t, v)
	}
}
