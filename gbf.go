package agingbloom

import (
	"go.uber.org/zap"
)

// GBF is a generational bloom filter: a ring of plain filters, each sized
// for the expected inserts. Inserts go to the current generation. When it
// is full the oldest generation is cleared and becomes current, so the
// filter remembers roughly the last Generations*ExpectedInserts items.
//
// Items whose generation has been recycled are forgotten: GBF may report
// false negatives for them.
type GBF struct {
	sizing
	gens    []*BF
	curr    int
	refresh bool
	log     *zap.Logger
}

// NewGBF creates a generational bloom filter of the given number of
// generations (at least 2), each sized for expectedInserts items at
// falsePositiveRate.
func NewGBF(expectedInserts uint64, falsePositiveRate float64, generations int, opts ...Option) (*GBF, error) {
	p, err := Derive(expectedInserts, falsePositiveRate)
	if err != nil {
		return nil, err
	}
	if generations < 2 {
		return nil, invalidParameter("generations", "must be at least 2: %d", generations)
	}
	o := newOptions(opts)
	gens := make([]*BF, generations)
	for i := range gens {
		gens[i] = newBF(p, o.hasher)
	}
	return &GBF{
		sizing:  sizing{p: p, h: o.hasher},
		gens:    gens,
		refresh: o.refresh,
		log:     o.logger,
	}, nil
}

// NewBigenerational creates a GBF with two generations.
func NewBigenerational(expectedInserts uint64, falsePositiveRate float64, opts ...Option) (*GBF, error) {
	return NewGBF(expectedInserts, falsePositiveRate, 2, opts...)
}

// NewA2Buffering creates an active-active buffering filter: a two
// generation GBF with the keep-alive policy of WithRefresh enabled.
func NewA2Buffering(expectedInserts uint64, falsePositiveRate float64, opts ...Option) (*GBF, error) {
	opts = append(opts[:len(opts):len(opts)], WithRefresh(true))
	return NewGBF(expectedInserts, falsePositiveRate, 2, opts...)
}

// recycle clears the oldest generation and makes it current.
func (gf *GBF) recycle() {
	prev := gf.curr
	gf.curr = (gf.curr + 1) % len(gf.gens)
	gf.gens[gf.curr].Empty()
	gf.log.Debug("recycled generation",
		zap.Int("from", prev),
		zap.Int("to", gf.curr),
		zap.Uint64("expected_inserts", gf.p.ExpectedInserts))
}

// Put puts a byte array to the current generation, recycling first when
// the current generation is full.
func (gf *GBF) Put(d []byte) {
	if gf.gens[gf.curr].ActualInserts()+1 > gf.p.ExpectedInserts {
		gf.recycle()
	}
	gf.gens[gf.curr].Put(d)
}

// PutString puts a string to the filter.
func (gf *GBF) PutString(s string) {
	gf.Put([]byte(s))
}

// Check checks that a byte array is in any generation. With the keep-alive
// policy a hit in an older generation is also inserted into the current
// one. That insert counts toward the current generation's budget but never
// recycles by itself.
func (gf *GBF) Check(d []byte) bool {
	indexes := gf.indexes(d)
	curr := gf.gens[gf.curr]
	if curr.s.checkBits(indexes...) {
		return true
	}
	for i := 1; i < len(gf.gens); i++ {
		g := gf.gens[(gf.curr+len(gf.gens)-i)%len(gf.gens)]
		if !g.s.checkBits(indexes...) {
			continue
		}
		if gf.refresh {
			curr.s.setBits(indexes...)
			curr.n++
			gf.log.Debug("refreshed item", zap.Int("generation", gf.curr), zap.ByteString("item", d))
		}
		return true
	}
	return false
}

// CheckString checks that a string is in the filter.
func (gf *GBF) CheckString(s string) bool {
	return gf.Check([]byte(s))
}

// CheckMutates reports whether Check may modify the filter.
func (gf *GBF) CheckMutates() bool {
	return gf.refresh
}

// Empty clears every generation and makes the first one current.
func (gf *GBF) Empty() {
	for _, g := range gf.gens {
		g.Empty()
	}
	gf.curr = 0
}

// ActualInserts returns the number of inserts into the current generation.
func (gf *GBF) ActualInserts() uint64 {
	return gf.gens[gf.curr].ActualInserts()
}

// Generations returns the number of generations in the ring.
func (gf *GBF) Generations() int {
	return len(gf.gens)
}

// Current returns the index of the generation receiving inserts.
func (gf *GBF) Current() int {
	return gf.curr
}
