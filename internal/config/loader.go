package config

import (
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
//  1. defaults (New())
//  2. file (YAML) if MOVEBOARD_CONFIG is set
//  3. env (prefix MOVEBOARD_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MOVEBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MOVEBOARD_ADDR, MOVEBOARD_QUEUE_SIZE, ...
	// Map env keys like MOVEBOARD_QUEUE_SIZE -> queue_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MOVEBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "moveboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.BundlePath == "" {
		return fmt.Errorf("%w: bundle_path must not be empty", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.DedupeSize <= 0 {
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	}
	return nil
}
