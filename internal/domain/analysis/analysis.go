// Package analysis computes frequency statistics over historical draws.
package analysis

import (
	"sort"
	"sync"

	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/internal/domain/types"
)

// Combination size bounds and parallelism defaults.
const (
	// MinComboSize and MaxComboSize bound the k of k-combination analysis.
	MinComboSize = 2
	MaxComboSize = 5

	defaultParallelism = 1
	// parallelThreshold is the draw count below which partitioning costs
	// more than it saves.
	parallelThreshold = 512
)

// Analyzer computes per-number and per-combination occurrence counts across
// a caller-supplied draw subset. Filtering the subset (all draws, year-end
// specials only, a contest range) is the caller's concern. The analyzer is
// stateless between calls and safe for concurrent use.
type Analyzer struct {
	parallelism int
}

// New creates an Analyzer with configuration options.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		parallelism: defaultParallelism,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Numbers counts how often each number was drawn across draws. An empty
// subset yields an empty report with denominator zero, not an error.
func (a *Analyzer) Numbers(draws []model.Draw) model.FrequencyReport {
	counts := countParallel(a.parallelism, draws, countNumbers)
	return model.FrequencyReport{Counts: counts, Draws: len(draws)}
}

// Combinations counts how often each k-combination of numbers appeared
// across draws. Every draw contributes all C(6,k) of its k-subsets, keyed
// canonically. k outside [MinComboSize, MaxComboSize] fails with
// ErrInvalidComboSize.
func (a *Analyzer) Combinations(draws []model.Draw, k int) (model.ComboFrequencyReport, error) {
	if k < MinComboSize || k > MaxComboSize {
		return model.ComboFrequencyReport{}, errInvalidCombo(k)
	}

	counts := countParallel(a.parallelism, draws, func(part []model.Draw) map[string]int {
		return countCombos(part, k)
	})
	return model.ComboFrequencyReport{K: k, Counts: counts, Draws: len(draws)}, nil
}

// TopNumbers ranks a frequency report by count descending, breaking ties by
// ascending number. n <= 0 returns the full ranking.
func TopNumbers(report model.FrequencyReport, n int) []model.RankedNumber {
	ranked := make([]model.RankedNumber, 0, len(report.Counts))
	for number, count := range report.Counts {
		ranked = append(ranked, model.RankedNumber{Number: number, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Number < ranked[j].Number
	})
	return truncate(ranked, n)
}

// TopCombos ranks a combination report by count descending, breaking ties by
// ascending canonical combination order. n <= 0 returns the full ranking.
func TopCombos(report model.ComboFrequencyReport, n int) []model.RankedCombo {
	ranked := make([]model.RankedCombo, 0, len(report.Counts))
	for combo, count := range report.Counts {
		ranked = append(ranked, model.RankedCombo{Combo: combo, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		// Keys are zero padded, so string order equals numeric order.
		return ranked[i].Combo < ranked[j].Combo
	})
	return truncate(ranked, n)
}

// countParallel runs fn over the draws, partitioning across goroutines and
// merging the partial maps when parallelism is enabled and the subset is
// large enough to benefit. Results are identical either way.
func countParallel[K comparable](parallelism int, draws []model.Draw, fn func([]model.Draw) map[K]int) map[K]int {
	if parallelism <= 1 || len(draws) < parallelThreshold {
		return fn(draws)
	}

	parts := parallelism
	if parts > len(draws) {
		parts = len(draws)
	}
	chunk := (len(draws) + parts - 1) / parts

	partials := make([]map[K]int, parts)
	var wg sync.WaitGroup
	for i := 0; i < parts; i++ {
		lo := i * chunk
		hi := lo + chunk
		if hi > len(draws) {
			hi = len(draws)
		}
		wg.Add(1)
		go func(slot int, part []model.Draw) {
			defer wg.Done()
			partials[slot] = fn(part)
		}(i, draws[lo:hi])
	}
	wg.Wait()

	merged := partials[0]
	for _, partial := range partials[1:] {
		for key, count := range partial {
			merged[key] += count
		}
	}
	return merged
}

// countNumbers tallies individual numbers for one partition.
func countNumbers(draws []model.Draw) map[int]int {
	counts := make(map[int]int, types.UniverseSize)
	for _, d := range draws {
		for _, n := range d.Numbers.Values() {
			counts[n]++
		}
	}
	return counts
}

// countCombos tallies k-combinations for one partition.
func countCombos(draws []model.Draw, k int) map[string]int {
	counts := make(map[string]int)
	for _, d := range draws {
		forEachCombo(d.Numbers.Values(), k, func(combo []int) {
			counts[types.ComboKey(combo)]++
		})
	}
	return counts
}

// forEachCombo invokes fn with every k-subset of vals in ascending canonical
// order. vals must be sorted; fn must not retain the slice.
func forEachCombo(vals []int, k int, fn func([]int)) {
	if k > len(vals) {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]int, k)

	for {
		for i, j := range idx {
			combo[i] = vals[j]
		}
		fn(combo)

		i := k - 1
		for i >= 0 && idx[i] == len(vals)-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func truncate[T any](ranked []T, n int) []T {
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}
