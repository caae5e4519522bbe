package agingbloom

import (
	"math"
)

// Default sizing used by the command line tool.
const (
	DefaultExpectedInserts   = 10000
	DefaultFalsePositiveRate = 0.01
	DefaultBitResetRate      = 0.1
	DefaultGenerations       = 2
)

// Params holds the sizing of a filter: what the caller asked for and what
// was derived from it.
type Params struct {
	ExpectedInserts   uint64
	FalsePositiveRate float64

	// Len is the number of slots (m) in the bit or counter array.
	Len uint64
	// HashCount is the number of hash iterations (k) per item.
	HashCount uint64
}

// maxLen caps the derived array length so the storage can be allocated.
const maxLen = uint64(math.MaxInt32) * 64

// maxCounterLen caps the length of a counter array. One counter takes 32
// bits, so it allows the same memory as maxLen bits.
const maxCounterLen = maxLen / 32

// Derive computes the array length and hash count for expectedInserts items
// at falsePositiveRate:
//
//	m = ceil(-n*ln(p) / ln(2)^2)
//	k = ceil(m/n * ln(2))
func Derive(expectedInserts uint64, falsePositiveRate float64) (Params, error) {
	if !(falsePositiveRate > 0) {
		return Params{}, invalidParameter("falsePositiveRate", "must be positive: %v", falsePositiveRate)
	}
	if falsePositiveRate >= 1 {
		return Params{}, invalidParameter("falsePositiveRate", "must be less than 1: %v", falsePositiveRate)
	}
	if expectedInserts < 1 {
		return Params{}, invalidParameter("expectedInserts", "must be positive: %d", expectedInserts)
	}
	n := float64(expectedInserts)
	mf := math.Ceil((-1 * n * math.Log(falsePositiveRate)) / math.Pow(math.Ln2, 2))
	if mf > float64(maxLen) {
		return Params{}, invalidParameter("expectedInserts", "array too large: n=%d p=%v m=%.0f", expectedInserts, falsePositiveRate, mf)
	}
	m := uint64(mf)
	k := uint64(math.Ceil(float64(m) / n * math.Ln2))
	return Params{
		ExpectedInserts:   expectedInserts,
		FalsePositiveRate: falsePositiveRate,
		Len:               m,
		HashCount:         k,
	}, nil
}

// estimateFalsePositiveRate returns (1 - e^(-k*n/m))^k.
func estimateFalsePositiveRate(p Params, n uint64) float64 {
	if n == 0 {
		return 0
	}
	exponent := -float64(p.HashCount) * float64(n) / float64(p.Len)
	return math.Pow(1-math.Exp(exponent), float64(p.HashCount))
}
