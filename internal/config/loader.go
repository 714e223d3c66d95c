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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if SYNTRIAL_CONFIG is set
//  3. env (prefix SYNTRIAL_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SYNTRIAL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: SYNTRIAL_ADDR, SYNTRIAL_QUEUE_SIZE, ...
	// Map env keys like SYNTRIAL_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SYNTRIAL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "syntrial_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
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
	if c.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be at least 1", ErrInvalidConfig)
	}
	if c.PracticeRepeats < 0 {
		return fmt.Errorf("%w: practice_repeats must not be negative", ErrInvalidConfig)
	}
	if len(c.StimulusSets) == 0 {
		return fmt.Errorf("%w: at least one stimulus set is required", ErrInvalidConfig)
	}
	for testType, items := range c.StimulusSets {
		if len(items) == 0 {
			return fmt.Errorf("%w: stimulus set %q is empty", ErrInvalidConfig, testType)
		}
	}
	if c.MaxResultsLimit < 1 {
		return fmt.Errorf("%w: max_results_limit must be at least 1", ErrInvalidConfig)
	}
	return nil
}
