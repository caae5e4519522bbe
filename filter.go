// Package agingbloom provides bloom filters whose membership can be
// deleted, decayed or rotated out, all sized from an expected insert count
// and a target false positive rate.
package agingbloom

// Filter is the behavior shared by every filter variant.
//
// Filters are not synchronized. Concurrent Check calls are safe only while
// nothing mutates the filter and the filter's Check does not mutate it (see
// WithRefresh). Use SyncFilter to share one between goroutines.
type Filter interface {
	// Put inserts an item.
	Put(d []byte)
	// Check reports whether an item was possibly inserted.
	Check(d []byte) bool
	// Empty clears the storage and resets the insert counter.
	Empty()

	HashCount() uint64
	FalsePositiveRate() float64
	ExpectedInserts() uint64
	ActualInserts() uint64
	Len() uint64
}

var (
	_ Filter = (*BF)(nil)
	_ Filter = (*CBF)(nil)
	_ Filter = (*DBF)(nil)
	_ Filter = (*GBF)(nil)
)

// sizing carries the derived parameters and the hasher of one filter.
type sizing struct {
	p Params
	h Hasher
}

func (s *sizing) indexes(d []byte) []uint64 {
	return indexes(s.h, d, s.p.HashCount, s.p.Len, make([]uint64, 0, s.p.HashCount))
}

// HashCount returns the number of hash iterations per item.
func (s *sizing) HashCount() uint64 { return s.p.HashCount }

// FalsePositiveRate returns the configured false positive rate.
func (s *sizing) FalsePositiveRate() float64 { return s.p.FalsePositiveRate }

// ExpectedInserts returns the number of inserts the filter is sized for.
func (s *sizing) ExpectedInserts() uint64 { return s.p.ExpectedInserts }

// Len returns the length of the underlying array.
func (s *sizing) Len() uint64 { return s.p.Len }

// Params returns the sizing of the filter.
func (s *sizing) Params() Params { return s.p }
