package agingbloom

import (
	"github.com/dgryski/go-metro"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hasher maps an item to one slot of a filter's array.
type Hasher interface {
	// Index returns the slot of d for the hash iteration seed, in [0, m).
	// m must be positive.
	Index(seed uint32, d []byte, m uint64) uint64
}

var (
	// Murmur3Hasher uses seeded 128-bit murmur3. It is the default.
	Murmur3Hasher Hasher = murmur3Hasher{}

	// MetroHasher uses 64-bit metro hash seeded by the iteration.
	MetroHasher Hasher = metroHasher{}

	// XXH3Hasher uses seeded 128-bit xxh3.
	XXH3Hasher Hasher = xxh3Hasher{}
)

// NewHasher returns the default hasher.
func NewHasher() Hasher {
	return Murmur3Hasher
}

type murmur3Hasher struct{}

func (murmur3Hasher) Index(seed uint32, d []byte, m uint64) uint64 {
	lo, _ := murmur3.Sum128WithSeed(d, seed)
	return lo % m
}

type metroHasher struct{}

func (metroHasher) Index(seed uint32, d []byte, m uint64) uint64 {
	return metro.Hash64(d, uint64(seed)) % m
}

type xxh3Hasher struct{}

func (xxh3Hasher) Index(seed uint32, d []byte, m uint64) uint64 {
	return xxh3.Hash128Seed(d, uint64(seed)).Lo % m
}

// indexes fills dst with the k slots of d. Duplicates are kept.
func indexes(h Hasher, d []byte, k, m uint64, dst []uint64) []uint64 {
	dst = dst[:0]
	for i := uint64(0); i < k; i++ {
		dst = append(dst, h.Index(uint32(i), d, m))
	}
	return dst
}
