package seedtool

import (
	"fmt"
	"log"
)

// verifyResults checks the frequency report and the service stats against
// what the run loaded.
func verifyResults(config *Config, freq *FrequencyResponse, snapshot map[string]interface{}, stats *Stats) error {
	log.Println("Verifying results...")

	if err := verifySnapshotTotals(snapshot, stats); err != nil {
		log.Printf("Stats snapshot warning: %v", err)
	} else {
		log.Println("Stats snapshot verified")
	}

	if freq.Report.Draws == 0 {
		if stats.DrawsAdded > 0 {
			return fmt.Errorf("frequency report covers no draws after adding %d", stats.DrawsAdded)
		}
		log.Println("No draws stored; skipping frequency checks")
		return nil
	}

	if err := verifyRankingConsistency(freq); err != nil {
		return fmt.Errorf("ranking consistency: %w", err)
	}
	log.Println("Ranking consistency verified")

	displayHottestNumbers(freq, config.Verbose)

	log.Println("Result verification completed")
	return nil
}

// verifyRankingConsistency checks the ranking order and the occurrence
// total against the report.
func verifyRankingConsistency(freq *FrequencyResponse) error {
	ranking := freq.Ranking
	if len(ranking) == 0 {
		return fmt.Errorf("empty ranking")
	}

	// Ranking runs by count descending, ties by ascending number
	for i := 1; i < len(ranking); i++ {
		if ranking[i].Count > ranking[i-1].Count {
			return fmt.Errorf("ranking not sorted: entry %d outranks entry %d", i, i-1)
		}
		if ranking[i].Count == ranking[i-1].Count && ranking[i].Number < ranking[i-1].Number {
			return fmt.Errorf("ranking tie broken wrong: %d before %d", ranking[i-1].Number, ranking[i].Number)
		}
	}

	// Every draw contributes exactly SetSize occurrences
	total := 0
	for _, count := range freq.Report.Counts {
		total += count
	}
	if want := SetSize * freq.Report.Draws; total != want {
		return fmt.Errorf("occurrence total %d does not match %d draws (want %d)", total, freq.Report.Draws, want)
	}

	// The top of the ranking must carry the report maximum
	maxCount := 0
	for _, count := range freq.Report.Counts {
		if count > maxCount {
			maxCount = count
		}
	}
	if ranking[0].Count != maxCount {
		return fmt.Errorf("top ranked count %d does not match report maximum %d", ranking[0].Count, maxCount)
	}

	return nil
}

// verifySnapshotTotals checks the service stats against the run counters.
func verifySnapshotTotals(snapshot map[string]interface{}, stats *Stats) error {
	draws, ok := snapshotInt(snapshot, "draws")
	if !ok {
		return fmt.Errorf("snapshot is missing the draws count")
	}
	if draws < stats.DrawsAdded {
		return fmt.Errorf("service reports %d draws after adding %d", draws, stats.DrawsAdded)
	}

	guesses, ok := snapshotInt(snapshot, "guesses")
	if !ok {
		return fmt.Errorf("snapshot is missing the guesses count")
	}
	if guesses < stats.GuessesCreated {
		return fmt.Errorf("service reports %d guesses after creating %d", guesses, stats.GuessesCreated)
	}

	return nil
}

// snapshotInt reads an integer stat from the JSON snapshot.
func snapshotInt(snapshot map[string]interface{}, key string) (int, bool) {
	v, ok := snapshot[key].(float64)
	if !ok {
		return 0, false
	}
	return int(v), true
}

// displayHottestNumbers shows the most drawn numbers from the ranking.
func displayHottestNumbers(freq *FrequencyResponse, verbose bool) {
	topN := 10
	if len(freq.Ranking) < topN {
		topN = len(freq.Ranking)
	}

	log.Printf("Top %d numbers over %d draws:", topN, freq.Report.Draws)
	for i := 0; i < topN; i++ {
		entry := freq.Ranking[i]
		log.Printf("   %d. number %02d - drawn %d times", i+1, entry.Number, entry.Count)
	}

	if verbose {
		if len(freq.Ranking) > 0 {
			avgCount := calculateAverageCount(freq.Ranking)
			maxCount := freq.Ranking[0].Count
			minCount := freq.Ranking[len(freq.Ranking)-1].Count

			log.Printf(`Count statistics:
   Average: %.2f
   Maximum: %d
   Minimum: %d
`, avgCount, maxCount, minCount)
		}
	}
}

// calculateAverageCount calculates the average occurrence count.
func calculateAverageCount(ranking []RankedNumber) float64 {
	if len(ranking) == 0 {
		return 0
	}

	sum := 0
	for _, entry := range ranking {
		sum += entry.Count
	}

	return float64(sum) / float64(len(ranking))
}
