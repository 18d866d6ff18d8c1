// Package match scores number sets against official draws.
package match

import (
	"iter"
	"sort"

	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// Hit counts that earn a prize tier.
const (
	quadraHits = 4
	quinaHits  = 5
	senaHits   = 6
)

// TierFor maps a hit count to its prize tier. Fewer than four hits is not a
// prize category.
func TierFor(hits int) types.Tier {
	switch hits {
	case senaHits:
		return types.TierSena
	case quinaHits:
		return types.TierQuina
	case quadraHits:
		return types.TierQuadra
	default:
		return types.TierNone
	}
}

// Evaluate scores one guess against one draw. Pure: both inputs are already
// validated, so there are no error cases.
func Evaluate(guess types.NumberSet, draw model.Draw) model.MatchResult {
	hits := guess.Intersect(draw.Numbers)
	return model.MatchResult{
		Contest: draw.Contest,
		Hits:    hits,
		Tier:    TierFor(hits),
	}
}

// Simulate lazily yields every qualifying result (tier other than NONE) of
// evaluating guess against the given history, ordered by contest ascending.
// Every draw is visited once per run since all qualifying matches are
// reported, not just the first. The sequence is finite, restartable and
// side-effect free; re-running it over the same inputs yields the same
// results.
func Simulate(guess types.NumberSet, draws []model.Draw) iter.Seq[model.MatchResult] {
	ordered := make([]model.Draw, len(draws))
	copy(ordered, draws)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Contest < ordered[j].Contest
	})

	return func(yield func(model.MatchResult) bool) {
		for _, d := range ordered {
			result := Evaluate(guess, d)
			if result.Tier == types.TierNone {
				continue
			}
			if !yield(result) {
				return
			}
		}
	}
}

// SimulateAll materializes Simulate into a slice.
func SimulateAll(guess types.NumberSet, draws []model.Draw) []model.MatchResult {
	results := make([]model.MatchResult, 0)
	for result := range Simulate(guess, draws) {
		results = append(results, result)
	}
	return results
}
