package seedtool

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/stevillis/megasena/pkg/logger"
)

// firstDrawDate anchors the synthetic draw calendar.
var firstDrawDate = time.Date(2010, time.January, 5, 0, 0, 0, 0, time.UTC)

// dateLayout is the wire format the draws endpoint accepts.
const dateLayout = "2006-01-02"

// generateDraws creates sequential synthetic draws starting at the
// configured contest number. Numbers are derived from the seed and the
// contest alone, so a contest keeps its pick across runs and workers.
func generateDraws(ctx context.Context, config *Config, stats *Stats) ([]DrawPayload, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Get().Info(ctx, "generating synthetic draws",
		logger.Int("numDraws", config.NumDraws),
		logger.Int("startContest", config.StartContest),
		logger.Any("seed", seed))

	// Walk the calendar up to the start contest so contest c always gets
	// the same date regardless of how runs are split.
	date := firstDrawDate
	for c := 1; c < config.StartContest; c++ {
		date = nextDrawDate(date)
	}

	dates := make([]time.Time, config.NumDraws)
	for i := range dates {
		dates[i] = date
		if isYearEnd(date) {
			stats.SpecialsGenerated++
		}
		date = nextDrawDate(date)
	}

	draws := make([]DrawPayload, config.NumDraws)

	// Generate draws concurrently
	type drawResult struct {
		index int
		draw  DrawPayload
		err   error
	}

	resultChan := make(chan drawResult, config.NumDraws)

	// Use worker pool for draw generation
	workerCount := minInt(config.Workers, config.NumDraws)
	if workerCount < 1 {
		workerCount = 1
	}
	drawsPerWorker := config.NumDraws / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * drawsPerWorker
		end := start + drawsPerWorker
		if worker == workerCount-1 {
			end = config.NumDraws // Last worker gets remaining draws
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- drawResult{index: i, err: ctx.Err()}
					return
				default:
					contest := config.StartContest + i
					resultChan <- drawResult{
						index: i,
						draw: DrawPayload{
							Contest: contest,
							Date:    dates[i].Format(dateLayout),
							Numbers: randomNumberSet(seed, contest),
						},
					}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumDraws; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during draw generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate draw %d: %w", result.index, result.err)
			}
			draws[result.index] = result.draw
		}
	}

	stats.DrawsGenerated = len(draws)
	logger.Get().Info(ctx, "generated draws successfully",
		logger.Int("count", len(draws)),
		logger.Int("specials", stats.SpecialsGenerated))

	return draws, nil
}

// randomNumberSet picks six distinct numbers between 1 and 60 for one
// contest, seeded so the pick is stable for a given seed and contest.
func randomNumberSet(seed int64, contest int) []int {
	rng := rand.New(rand.NewSource(seed + int64(contest)))

	nums := make([]int, 0, SetSize)
	seen := make(map[int]bool, SetSize)
	for len(nums) < SetSize {
		n := rng.Intn(MaxNumber) + 1
		if seen[n] {
			continue
		}
		seen[n] = true
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// nextDrawDate advances the synthetic draw calendar. Regular draws run
// every other day; a date reaching the end of December snaps to the
// 31st, the Mega da Virada slot, and the calendar resumes on January 2.
func nextDrawDate(d time.Time) time.Time {
	if isYearEnd(d) {
		return time.Date(d.Year()+1, time.January, 2, 0, 0, 0, 0, time.UTC)
	}

	n := d.AddDate(0, 0, DrawIntervalDays)
	if n.Month() == time.December && n.Day() >= 30 {
		return time.Date(n.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	return n
}

// isYearEnd reports whether d is a December 31 draw date.
func isYearEnd(d time.Time) bool {
	return d.Month() == time.December && d.Day() == 31
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
