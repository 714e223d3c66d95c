package engine

import (
	"time"

	"github.com/perceptlab/syntrial/internal/domain/model"
	"github.com/perceptlab/syntrial/internal/domain/stopwatch"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithPracticeDeck sets the optional practice deck. A non-empty practice
// deck is always traversed before testing.
func WithPracticeDeck(entries []model.DeckEntry) Option {
	return func(e *Engine) {
		e.practice = entries
	}
}

// defaultClock returns the monotonic stopwatch used when no clock is injected.
func defaultClock() TrialClock {
	return stopwatch.New()
}

// WithSubmitter sets the collaborator that receives the finished batch.
func WithSubmitter(s Submitter) Option {
	return func(e *Engine) {
		if s != nil {
			e.submitter = s
		}
	}
}

// WithClock injects a trial clock. Tests use this to make reaction times
// deterministic.
func WithClock(c TrialClock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithNow overrides the wall-clock source stamped onto the batch.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.sessionID = id
		}
	}
}

// WithParticipant sets the participant identifier stamped onto the batch.
func WithParticipant(id string) Option {
	return func(e *Engine) {
		e.participantID = id
	}
}

// WithTestType sets the test type label (letter, number, word, music).
func WithTestType(t string) Option {
	return func(e *Engine) {
		e.testType = t
	}
}
