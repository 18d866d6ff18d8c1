package seedtool

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/stevillis/megasena/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Mega-Sena Draw Seed Tool
========================

A concurrent tool for seeding a running engine with a synthetic draw
history and generated guesses through its HTTP API, then verifying the
frequency analysis against what was loaded.

Usage:
  go run cmd/seed-draws/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -draws int
        Number of draws to register (default 500)
  -guesses int
        Number of guesses to generate (default 12)
  -fixed string
        Comma-separated numbers every guess must contain (max 5)
  -commit
        Mark generated guesses as committed bets
  -start int
        Contest number of the first registered draw (default 1)
  -seed int
        Draw generation seed; 0 derives one from the clock (default 1)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated draws (default: seeded_draws_TIMESTAMP.json)
  -log string
        Log file for run output (default: seed_log_TIMESTAMP.log)
  -env-file string
        Env file loaded before other flags (default .env)
  -verify
        Cross-check frequency and stats after seeding (default true)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Environment:
  Flags fall back to MEGASENA_SEED_* variables (MEGASENA_SEED_URL,
  MEGASENA_SEED_DRAWS, MEGASENA_SEED_GUESSES, MEGASENA_SEED_FIXED,
  MEGASENA_SEED_START, MEGASENA_SEED_SEED, MEGASENA_SEED_WORKERS),
  loaded from .env, or from the file named by -env-file or
  MEGASENA_SEED_ENV_FILE.

Examples:
  # Seed with default settings
  go run cmd/seed-draws/main.go

  # Seed a bigger history with custom parameters
  go run cmd/seed-draws/main.go -draws 2800 -workers 16 -url http://localhost:8080

  # Seed and generate committed guesses around fixed numbers
  go run cmd/seed-draws/main.go -guesses 10 -fixed 7,23 -commit

  # Reproducible run with a custom log file
  go run cmd/seed-draws/main.go -seed 42 -log my_seed.log

  # Pure load seeding, no read-back verification
  go run cmd/seed-draws/main.go -draws 5000 -verify=false
`)
}
