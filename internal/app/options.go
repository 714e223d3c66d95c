package service

import (
	"github.com/perceptlab/syntrial/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the batch ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithRepeats sets how many times each stimulus appears in a testing deck.
func WithRepeats(repeats int) Option {
	return func(s *Service) {
		if repeats > 0 {
			s.repeats = repeats
		}
	}
}

// WithPracticeRepeats sets how many times each stimulus appears in a
// practice deck. Zero disables the practice phase.
func WithPracticeRepeats(repeats int) Option {
	return func(s *Service) {
		if repeats >= 0 {
			s.practiceRepeats = repeats
		}
	}
}

// WithStimulusSets replaces the stimulus inventories per test type.
func WithStimulusSets(sets map[string][]string) Option {
	return func(s *Service) {
		if len(sets) > 0 {
			s.stimulusSets = sets
		}
	}
}

// WithResultDBPath selects the SQLite result database. Empty keeps the
// in-memory store.
func WithResultDBPath(path string) Option {
	return func(s *Service) {
		s.resultDBPath = path
	}
}

// WithMaxResultsLimit caps the page size of result queries.
func WithMaxResultsLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxResultsLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
