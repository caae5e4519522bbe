package agingbloom

import (
	"math"
	"math/rand"

	"go.uber.org/zap"
)

// DBF is a scope decay bloom filter. Once more items than expected have
// been inserted, every further insert first clears a random fraction of the
// set bits, so old membership fades without per item bookkeeping.
//
// DBF may report false negatives for items inserted before a decay.
type DBF struct {
	sizing
	s    *bitStore
	n    uint64
	rate float64
	rnd  *rand.Rand
	log  *zap.Logger

	// set is reused by Decay to list the set bits.
	set []uint64
}

// NewDBF creates a decay bloom filter sized for expectedInserts items at
// falsePositiveRate. bitResetRate is the fraction of the array cleared by
// each decay, in [0, 1].
func NewDBF(expectedInserts uint64, falsePositiveRate, bitResetRate float64, opts ...Option) (*DBF, error) {
	p, err := Derive(expectedInserts, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	if !(bitResetRate >= 0 && bitResetRate <= 1) {
		return nil, invalidParameter("bitResetRate", "must be between 0.0 and 1.0 inclusive: %v", bitResetRate)
	}
	o := newOptions(opts)
	return &DBF{
		sizing: sizing{p: p, h: o.hasher},
		s:      newBitStore(p.Len),
		rate:   bitResetRate,
		rnd:    o.random(),
		log:    o.logger,
	}, nil
}

// Put puts a byte array to the filter, decaying first when the filter
// already holds more than the expected number of inserts.
func (df *DBF) Put(d []byte) {
	if df.n > df.p.ExpectedInserts {
		df.Decay()
	}
	df.s.setBits(df.indexes(d)...)
	df.n++
}

// PutString puts a string to the filter.
func (df *DBF) PutString(s string) {
	df.Put([]byte(s))
}

// Check checks that a byte array is in the filter.
func (df *DBF) Check(d []byte) bool {
	return df.s.checkBits(df.indexes(d)...)
}

// CheckString checks that a string is in the filter.
func (df *DBF) CheckString(s string) bool {
	return df.Check([]byte(s))
}

// Decay clears floor(BitResetRate * Len) distinct set bits picked uniformly
// at random, or every set bit when fewer are set. It does nothing on an
// empty array.
func (df *DBF) Decay() {
	if df.s.none() {
		return
	}
	nbits := uint64(math.Floor(df.rate * float64(df.p.Len)))
	if nbits == 0 {
		return
	}
	df.set = df.s.setIndexes(df.set[:0])
	set := df.set
	if nbits > uint64(len(set)) {
		nbits = uint64(len(set))
	}
	// partial Fisher-Yates: set[:nbits] becomes a uniform sample.
	for i := uint64(0); i < nbits; i++ {
		j := i + uint64(df.rnd.Int63n(int64(uint64(len(set))-i)))
		set[i], set[j] = set[j], set[i]
		df.s.clearBit(set[i])
	}
	df.log.Debug("decayed",
		zap.Uint64("cleared", nbits),
		zap.Uint64("remaining", uint64(len(set))-nbits),
		zap.Uint64("actual_inserts", df.n))
}

// Empty clears all bits and resets the insert counter.
func (df *DBF) Empty() {
	df.s.clearAll()
	df.n = 0
}

// ActualInserts returns the number of inserts since the last Empty.
func (df *DBF) ActualInserts() uint64 {
	return df.n
}

// BitResetRate returns the fraction of the array cleared by each decay.
func (df *DBF) BitResetRate() float64 {
	return df.rate
}
