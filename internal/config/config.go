// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BundlePath points at the move catalog JSON bundle.
	BundlePath string `koanf:"bundle_path"`

	// QueueSize bounds the in-memory comparison queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Addr:        ":9080",
		BundlePath:  "data/moves.json",
		QueueSize:   10_000,
		WorkerCount: runtime.NumCPU() * 4,
		DedupeSize:  50_000,
	}
}
