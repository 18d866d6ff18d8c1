package seedtool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stevillis/megasena/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete seeding run.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting mega-sena seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("draws", config.NumDraws),
		logger.Int("guesses", config.NumGuesses),
		logger.Int("startContest", config.StartContest),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Bool("verify", config.Verify),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate and submit draws
	var draws []DrawPayload
	if config.NumDraws > 0 {
		var err error
		draws, err = generateDraws(ctx, config, stats)
		if err != nil {
			return fmt.Errorf("draw generation failed: %w", err)
		}

		if err := submitDraws(ctx, config, draws, stats); err != nil {
			return fmt.Errorf("draw submission failed: %w", err)
		}

		// Step 3: Let in-flight requests drain
		logger.Get().Info(ctx, "waiting for submissions to settle")
		time.Sleep(SettleDelay)
	}

	// Step 4: Generate guesses
	if config.NumGuesses > 0 {
		if _, err := generateGuesses(ctx, config, stats); err != nil {
			return fmt.Errorf("guess generation failed: %w", err)
		}
	}

	if config.Verify {
		// Step 5: Retrieve the frequency report
		freq, err := retrieveFrequency(ctx, config, stats)
		if err != nil {
			return fmt.Errorf("frequency retrieval failed: %w", err)
		}

		// Step 6: Retrieve service stats
		snapshot, err := retrieveStats(ctx, config)
		if err != nil {
			return fmt.Errorf("stats retrieval failed: %w", err)
		}

		// Step 7: Verify results
		if err := verifyResults(config, freq, snapshot, stats); err != nil {
			return fmt.Errorf("result verification failed: %w", err)
		}
	} else {
		logger.Get().Info(ctx, "verification skipped")
	}

	// Step 8: Save draws to file
	if len(draws) > 0 {
		if err := saveDrawsToFile(ctx, config, draws); err != nil {
			logger.Get().Warn(ctx, "failed to save draws to file", logger.Error(err))
		}
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seed run completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveDrawsToFile saves the generated draws to a JSON file.
func saveDrawsToFile(ctx context.Context, config *Config, draws []DrawPayload) error {
	if len(draws) == 0 {
		return fmt.Errorf("no draws to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "seeded_draws_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write draws to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, draw := range draws {
		jsonData, err := marshalJSON(draw)
		if err != nil {
			return fmt.Errorf("failed to marshal draw %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write draw %d: %w", i, err)
		}

		// Add comma except for last draw
		if i < len(draws)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "draws saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, drawsPerSecond float64

	if stats.DrawsSubmitted > 0 {
		successRate = float64(stats.DrawsAdded) / float64(stats.DrawsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		drawsPerSecond = float64(stats.DrawsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("drawsGenerated", stats.DrawsGenerated),
		logger.Int("specialsGenerated", stats.SpecialsGenerated),
		logger.Int("drawsSubmitted", stats.DrawsSubmitted),
		logger.Int("drawsAdded", stats.DrawsAdded),
		logger.Int("drawsDuplicate", stats.DrawsDuplicate),
		logger.Int("drawsFailed", stats.DrawsFailed),
		logger.Int("guessesCreated", stats.GuessesCreated),
		logger.Int("guessesCommitted", stats.GuessesCommitted),
		logger.Int("rankingEntries", stats.RankingEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("addRate", successRate),
		logger.Float64("drawsPerSecond", drawsPerSecond))
}
