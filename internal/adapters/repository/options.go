// Package repository defines the draw and guess store contracts and errors.
package repository

import "time"

// memConfig holds settings shared by the in-memory stores.
type memConfig struct {
	metricsInterval time.Duration
}

// Option applies a configuration option to an in-memory store.
type Option func(*memConfig)

// WithMetricsUpdateInterval sets the interval for background metrics updates.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(c *memConfig) {
		if interval > 0 {
			c.metricsInterval = interval
		}
	}
}
