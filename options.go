package agingbloom

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Option configures a filter at construction.
type Option func(*options)

type options struct {
	hasher  Hasher
	logger  *zap.Logger
	rnd     *rand.Rand
	refresh bool
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasher == nil {
		o.hasher = NewHasher()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	return o
}

// WithHasher replaces the default murmur3 index generator.
func WithHasher(h Hasher) Option {
	return func(o *options) {
		o.hasher = h
	}
}

// WithLogger sets the logger used for recycle and decay events.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithRand sets the random source used by DBF.Decay.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rnd = r
	}
}

// WithRefresh enables the keep-alive policy of GBF: a hit found only in an
// older generation is copied into the current one, so Check mutates.
func WithRefresh(enabled bool) Option {
	return func(o *options) {
		o.refresh = enabled
	}
}

func (o *options) random() *rand.Rand {
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o.rnd
}
