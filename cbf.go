package agingbloom

import (
	"go.uber.org/zap"
)

// CBF is a counting bloom filter. It keeps one counter per slot instead of
// one bit, which allows items to be deleted.
type CBF struct {
	sizing
	s   counterStore
	n   uint64
	log *zap.Logger
}

// NewCBF creates a counting bloom filter sized for expectedInserts items at
// falsePositiveRate.
func NewCBF(expectedInserts uint64, falsePositiveRate float64, opts ...Option) (*CBF, error) {
	p, err := Derive(expectedInserts, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	if p.Len > maxCounterLen {
		return nil, invalidParameter("expectedInserts", "counter array too large: n=%d p=%v m=%d", expectedInserts, falsePositiveRate, p.Len)
	}
	o := newOptions(opts)
	return &CBF{
		sizing: sizing{p: p, h: o.hasher},
		s:      newCounterStore(p.Len),
		log:    o.logger,
	}, nil
}

// Put increments the counters of a byte array.
func (cf *CBF) Put(d []byte) {
	cf.s.incr(cf.indexes(d)...)
	cf.n++
}

// PutString puts a string to the filter.
func (cf *CBF) PutString(s string) {
	cf.Put([]byte(s))
}

// Check checks that a byte array is in the filter.
func (cf *CBF) Check(d []byte) bool {
	return cf.s.checkCounters(cf.indexes(d)...)
}

// CheckString checks that a string is in the filter.
func (cf *CBF) CheckString(s string) bool {
	return cf.Check([]byte(s))
}

// Count returns the smallest counter among the slots of d, an upper bound
// of how many times d was inserted.
func (cf *CBF) Count(d []byte) uint32 {
	return cf.s.min(cf.indexes(d)...)
}

// Delete removes one occurrence of a byte array. It is a no-op when Check
// fails for d. It returns ErrCounterCorruption, leaving every counter as it
// was, when a counter would drop below zero: d was never inserted and only
// matched by false positive.
func (cf *CBF) Delete(d []byte) error {
	indexes := cf.indexes(d)
	if !cf.s.checkCounters(indexes...) {
		return nil
	}
	if x, ok := cf.s.decr(indexes...); !ok {
		cf.log.Warn("counter underflow on delete", zap.Uint64("index", x), zap.ByteString("item", d))
		return counterCorruption("delete of an item never inserted: index=%d", x)
	}
	if cf.n > 0 {
		cf.n--
	}
	return nil
}

// DeleteString deletes a string from the filter.
func (cf *CBF) DeleteString(s string) error {
	return cf.Delete([]byte(s))
}

// Empty zeroes all counters and resets the insert counter.
func (cf *CBF) Empty() {
	cf.s.clear()
	cf.n = 0
}

// ActualInserts returns the number of inserts minus deletes since the last
// Empty.
func (cf *CBF) ActualInserts() uint64 {
	return cf.n
}
