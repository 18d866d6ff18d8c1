package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/stevillis/megasena/internal/seedtool"
)

// Default configuration constants.
const (
	defaultNumDraws   = 500
	defaultNumGuesses = 12
	defaultStart      = 1
	defaultSeed       = 1
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	// Load the env file before flag defaults are computed so the
	// MEGASENA_SEED_* variables can stand in for flags.
	loadEnvFile()

	// Registered for the usage text; loadEnvFile consumed the value from
	// os.Args already, before the defaults below were computed.
	_ = flag.String("env-file", "", "Env file loaded before other flags (default .env)")

	var (
		baseURL    = flag.String("url", envOr("MEGASENA_SEED_URL", "http://localhost:8080"), "Base URL of the service")
		numDraws   = flag.Int("draws", envIntOr("MEGASENA_SEED_DRAWS", defaultNumDraws), "Number of draws to register")
		numGuesses = flag.Int("guesses", envIntOr("MEGASENA_SEED_GUESSES", defaultNumGuesses), "Number of guesses to generate")
		fixedList  = flag.String("fixed", envOr("MEGASENA_SEED_FIXED", ""), "Comma-separated numbers every guess must contain")
		commit     = flag.Bool("commit", false, "Mark generated guesses as committed bets")
		start      = flag.Int("start", envIntOr("MEGASENA_SEED_START", defaultStart), "Contest number of the first registered draw")
		seed       = flag.Int64("seed", int64(envIntOr("MEGASENA_SEED_SEED", defaultSeed)), "Draw generation seed; 0 derives one from the clock")
		workers    = flag.Int("workers", envIntOr("MEGASENA_SEED_WORKERS", runtime.NumCPU()*defaultWorkers), "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated draws (default: seeded_draws_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for run output (default: seed_log_TIMESTAMP.log)")
		verify     = flag.Bool("verify", true, "Cross-check frequency and stats after seeding")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedtool.ShowHelp()
		return
	}

	// Setup logging
	if err := seedtool.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	fixed, err := seedtool.ParseFixed(*fixedList)
	if err != nil {
		os.Stderr.WriteString("Invalid -fixed value: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	// Create run configuration
	config := &seedtool.Config{
		BaseURL:      *baseURL,
		NumDraws:     *numDraws,
		NumGuesses:   *numGuesses,
		Fixed:        fixed,
		Commit:       *commit,
		StartContest: *start,
		Seed:         *seed,
		Workers:      *workers,
		Timeout:      *timeout,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Verify:       *verify,
		Verbose:      *verbose,
	}

	// Run the seeding
	if err := seedtool.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// loadEnvFile loads the file named by -env-file or MEGASENA_SEED_ENV_FILE,
// falling back to .env. It runs before flag defaults are computed, so the
// -env-file value is read straight from os.Args.
// A missing default file is fine; a missing named file is reported.
func loadEnvFile() {
	path := envFileArg()
	named := path != ""
	if !named {
		path = os.Getenv("MEGASENA_SEED_ENV_FILE")
		named = path != ""
	}
	if !named {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if named || !errors.Is(err, fs.ErrNotExist) {
			os.Stderr.WriteString("Failed to load env file " + path + ": " + err.Error() + "\n")
		}
	}
}

// envFileArg extracts the -env-file value from os.Args without flag.Parse.
func envFileArg() string {
	for i, arg := range os.Args[1:] {
		switch {
		case arg == "-env-file" || arg == "--env-file":
			if rest := os.Args[i+2:]; len(rest) > 0 {
				return rest[0]
			}
		case strings.HasPrefix(arg, "-env-file="):
			return strings.TrimPrefix(arg, "-env-file=")
		case strings.HasPrefix(arg, "--env-file="):
			return strings.TrimPrefix(arg, "--env-file=")
		}
	}
	return ""
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOr returns the integer environment value for key, or fallback
// when unset or unparsable.
func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
