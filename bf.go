package agingbloom

// BF provides standard bloom filter algorithm.
type BF struct {
	sizing
	s *bitStore
	n uint64
}

// New creates a bloom filter sized for expectedInserts items at
// falsePositiveRate.
func New(expectedInserts uint64, falsePositiveRate float64, opts ...Option) (*BF, error) {
	p, err := Derive(expectedInserts, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return newBF(p, o.hasher), nil
}

func newBF(p Params, h Hasher) *BF {
	return &BF{
		sizing: sizing{p: p, h: h},
		s:      newBitStore(p.Len),
	}
}

// Put puts a byte array to the filter.
func (bf *BF) Put(d []byte) {
	bf.s.setBits(bf.indexes(d)...)
	bf.n++
}

// PutString puts a string to the filter.
func (bf *BF) PutString(s string) {
	bf.Put([]byte(s))
}

// Check checks that a byte array is in the filter.
func (bf *BF) Check(d []byte) bool {
	return bf.s.checkBits(bf.indexes(d)...)
}

// CheckString checks that a string is in the filter.
func (bf *BF) CheckString(s string) bool {
	return bf.Check([]byte(s))
}

// Empty clears all bits and resets the insert counter.
func (bf *BF) Empty() {
	bf.s.clearAll()
	bf.n = 0
}

// ActualInserts returns the number of inserts since the last Empty.
func (bf *BF) ActualInserts() uint64 {
	return bf.n
}

// FillRatio returns the fraction of bits set.
func (bf *BF) FillRatio() float64 {
	return float64(bf.s.count()) / float64(bf.p.Len)
}

// EstimatedFalsePositiveRate returns the expected false positive rate for
// the actual number of inserts.
func (bf *BF) EstimatedFalsePositiveRate() float64 {
	return estimateFalsePositiveRate(bf.p, bf.n)
}
