// Package stopwatch provides the per-trial reaction stopwatch.
//
// Reaction-time correctness depends on a monotonic time source: Go's
// time.Now carries a monotonic reading and time.Since uses it, so wall-clock
// adjustments cannot move a measurement backwards.
package stopwatch

import "time"

// Stopwatch measures elapsed time since the last Start call.
// The zero value is usable; Elapsed before any Start reports zero.
type Stopwatch struct {
	startedAt time.Time
	running   bool
}

// New returns a stopwatch that has not been started.
func New() *Stopwatch {
	return &Stopwatch{}
}

// Start records the current instant as the reference point. Calling Start
// again resets the reference; elapsed time never accumulates across starts.
func (s *Stopwatch) Start() {
	s.startedAt = time.Now()
	s.running = true
}

// Elapsed returns the time since the last Start. Consecutive reads without
// an intervening Start are non-decreasing and never negative.
func (s *Stopwatch) Elapsed() time.Duration {
	if !s.running {
		return 0
	}
	d := time.Since(s.startedAt)
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedMS returns Elapsed truncated to whole milliseconds.
func (s *Stopwatch) ElapsedMS() int64 {
	return s.Elapsed().Milliseconds()
}
