// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"time"
)

// Store backend names accepted by the store config key.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the draw/guess store backend: memory or postgres.
	Store string `koanf:"store"`

	// PostgresDSN is the connection string used when Store is postgres.
	PostgresDSN string `koanf:"postgres_dsn"`

	// ResultsBaseURL points at the official results API.
	ResultsBaseURL string `koanf:"results_base_url"`

	// SyncWorkers sets the number of contest sync workers.
	SyncWorkers int `koanf:"sync_workers"`

	// SyncQueueSize bounds the contest sync queue.
	SyncQueueSize int `koanf:"sync_queue_size"`

	// AnalyzerParallelism sets the number of goroutines used by frequency
	// counting. One means sequential.
	AnalyzerParallelism int `koanf:"analyzer_parallelism"`

	// GeneratorRetryFactor bounds guess generation attempts at
	// factor * requested count.
	GeneratorRetryFactor int `koanf:"generator_retry_factor"`

	// HTTP server timeouts.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds the graceful shutdown on exit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and is
// currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":8080",
		Store:                StoreMemory,
		PostgresDSN:          "",
		ResultsBaseURL:       "https://loteriascaixa-api.herokuapp.com/api",
		SyncWorkers:          4,
		SyncQueueSize:        64,
		AnalyzerParallelism:  1,
		GeneratorRetryFactor: 20,
		ReadTimeout:          10 * time.Second,
		WriteTimeout:         30 * time.Second,
		ShutdownTimeout:      10 * time.Second,
	}
	return c
}
