package generate

import (
	"github.com/stevillis/megasena/internal/domain/dedupe"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithRand sets the randomness source. Seeded sources make batches
// reproducible.
func WithRand(rng Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithClock sets the creation timestamp source.
func WithClock(clock Clock) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// WithRetryFactor scales the per-batch retry budget (factor * count).
func WithRetryFactor(factor int) Option {
	return func(g *Generator) {
		if factor > 0 {
			g.retryFactor = factor
		}
	}
}

// WithSeenFactory sets how the per-batch seen set is built. Mainly for
// tests that need to observe or poison collision tracking.
func WithSeenFactory(factory func() dedupe.Deduper) Option {
	return func(g *Generator) {
		if factory != nil {
			g.newSeen = factory
		}
	}
}
