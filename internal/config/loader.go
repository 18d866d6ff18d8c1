package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if MEGASENA_CONFIG is set
//  3. env (prefix MEGASENA_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("MEGASENA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %v", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: MEGASENA_ADDR, MEGASENA_SYNC_WORKERS, ...
	// Map env keys like MEGASENA_SYNC_WORKERS -> sync_workers (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MEGASENA_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "megasena_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Store != StoreMemory && c.Store != StorePostgres {
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.Store == StorePostgres && c.PostgresDSN == "" {
		return fmt.Errorf("%w: postgres store requires postgres_dsn", ErrInvalidConfig)
	}
	if c.SyncWorkers < 1 {
		return fmt.Errorf("%w: sync_workers must be positive", ErrInvalidConfig)
	}
	if c.SyncQueueSize < 1 {
		return fmt.Errorf("%w: sync_queue_size must be positive", ErrInvalidConfig)
	}
	if c.AnalyzerParallelism < 1 {
		return fmt.Errorf("%w: analyzer_parallelism must be positive", ErrInvalidConfig)
	}
	if c.GeneratorRetryFactor < 1 {
		return fmt.Errorf("%w: generator_retry_factor must be positive", ErrInvalidConfig)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	return nil
}
