// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment overrides on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Repeats is how many times each stimulus appears in a testing deck.
	Repeats int `koanf:"repeats"`

	// PracticeRepeats is how many times each stimulus appears in a
	// practice deck. Zero disables the practice phase.
	PracticeRepeats int `koanf:"practice_repeats"`

	// StimulusSets maps a test type to its stimulus items.
	StimulusSets map[string][]string `koanf:"stimulus_sets"`

	// QueueSize bounds the in-memory batch ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the batch deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ResultDBPath locates the SQLite result database. Empty selects the
	// in-memory store.
	ResultDBPath string `koanf:"result_db_path"`

	// MaxResultsLimit caps GET /results?limit.
	MaxResultsLimit int `koanf:"max_results_limit"`
}

// DefaultStimulusSets returns the built-in stimulus inventories per test
// type.
func DefaultStimulusSets() map[string][]string {
	return map[string][]string{
		"letter": {
			"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
			"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
		},
		"number": {"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		"weekday": {
			"Monday", "Tuesday", "Wednesday", "Thursday", "Friday",
			"Saturday", "Sunday",
		},
		"month": {
			"January", "February", "March", "April", "May", "June", "July",
			"August", "September", "October", "November", "December",
		},
	}
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		Repeats:         3,
		PracticeRepeats: 1,
		StimulusSets:    DefaultStimulusSets(),
		QueueSize:       4096,
		WorkerCount:     runtime.NumCPU() * 2,
		DedupeSize:      50_000,
		ResultDBPath:    "",
		MaxResultsLimit: 100,
	}
}
