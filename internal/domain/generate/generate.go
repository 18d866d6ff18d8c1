// Package generate produces batches of random guesses embedding fixed
// subsets.
package generate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/stevillis/megasena/internal/domain/dedupe"
	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// Batch limits and retry defaults.
const (
	// MinBatchSize and MaxBatchSize bound one generation batch.
	MinBatchSize = 1
	MaxBatchSize = 50

	// defaultRetryFactor scales the per-batch retry budget:
	// budget = factor * count. With a 60-number universe and at most five
	// fixed numbers the combinatorial space always exceeds MaxBatchSize, so
	// the budget only trips on a degenerate randomness source.
	defaultRetryFactor = 20
)

// Rand is the randomness source guesses are completed from. *math/rand.Rand
// satisfies it; tests inject seeded or scripted sources.
type Rand interface {
	Intn(n int) int
}

// Clock supplies guess creation timestamps.
type Clock func() time.Time

// Generator produces batches of pairwise-distinct guesses. Batch serializes
// access to the randomness source, so one Generator is safe for concurrent
// callers.
type Generator struct {
	mu          sync.Mutex
	rng         Rand
	clock       Clock
	retryFactor int
	newSeen     func() dedupe.Deduper
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // statistical generation, not key material
		clock:       time.Now,
		retryFactor: defaultRetryFactor,
		newSeen: func() dedupe.Deduper {
			// A batch is at most MaxBatchSize keys; no eviction wanted.
			return dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Batch produces count pairwise-distinct guesses, each embedding fixed and
// completed uniformly without replacement from the remaining numbers.
// count outside [MinBatchSize, MaxBatchSize] fails with ErrInvalidBatchSize.
// When the retry budget runs out before count distinct guesses exist, Batch
// fails with ErrGenerationExhausted.
func (g *Generator) Batch(ctx context.Context, fixed types.FixedSubset, count int) ([]model.Guess, error) {
	if count < MinBatchSize || count > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d, want %d..%d", ErrInvalidBatchSize, count, MinBatchSize, MaxBatchSize)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	pool := fixed.Complement()
	free := types.SetSize - fixed.Size()
	budget := g.retryFactor * count

	seen := g.newSeen()
	guesses := make([]model.Guess, 0, count)

	for attempts := 0; len(guesses) < count; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled: %w", err)
		}
		if attempts >= budget {
			return nil, fmt.Errorf("%w: %d distinct guesses after %d attempts", ErrGenerationExhausted, len(guesses), attempts)
		}

		set, err := g.complete(fixed, pool, free)
		if err != nil {
			return nil, err
		}
		if seen.SeenAndRecord(ctx, set.Key()) {
			continue
		}
		guesses = append(guesses, model.NewGuess(set, fixed, false, g.clock()))
	}

	return guesses, nil
}

// complete fills the free slots by a partial Fisher-Yates pass over a copy
// of the pool.
func (g *Generator) complete(fixed types.FixedSubset, pool []int, free int) (types.NumberSet, error) {
	candidates := make([]int, len(pool))
	copy(candidates, pool)

	nums := fixed.Values()
	for i := 0; i < free; i++ {
		j := i + g.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		nums = append(nums, candidates[i])
	}

	set, err := types.NewNumberSet(nums...)
	if err != nil {
		// Unreachable for a well-formed pool; surface it instead of hiding.
		return types.NumberSet{}, fmt.Errorf("completing guess: %w", err)
	}
	return set, nil
}
