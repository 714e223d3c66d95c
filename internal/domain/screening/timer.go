package screening

import "time"

// StepTimer tracks wall-clock time per screening step. Starts are
// idempotent so revisiting a step keeps its original start, and all derived
// durations are pure reads over the two timestamp maps.
//
// The zero value is not usable; construct with NewStepTimer.
type StepTimer struct {
	starts     map[int]time.Time
	ends       map[int]time.Time
	activeStep int
	firstStart time.Time
	now        func() time.Time
}

// TimerOption applies a configuration option to the StepTimer.
type TimerOption func(*StepTimer)

// WithTimerNow overrides the time source. Tests use this for determinism.
func WithTimerNow(now func() time.Time) TimerOption {
	return func(t *StepTimer) {
		if now != nil {
			t.now = now
		}
	}
}

// NewStepTimer returns an empty timer.
func NewStepTimer(opts ...TimerOption) *StepTimer {
	t := &StepTimer{
		starts:     make(map[int]time.Time),
		ends:       make(map[int]time.Time),
		activeStep: -1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartStep records the start instant for a step. Revisiting an already
// started step does not reset it.
func (t *StepTimer) StartStep(step int) {
	t.activeStep = step
	if _, started := t.starts[step]; started {
		return
	}
	now := t.now()
	t.starts[step] = now
	if t.firstStart.IsZero() {
		t.firstStart = now
	}
}

// CompleteStep records the end instant for a step. Completing a step that
// never started is ignored.
func (t *StepTimer) CompleteStep(step int) {
	if _, started := t.starts[step]; !started {
		return
	}
	t.ends[step] = t.now()
}

// StepDuration returns the step's duration: end-start when completed,
// now-start when still open, and ok=false when the step never started.
func (t *StepTimer) StepDuration(step int) (time.Duration, bool) {
	start, started := t.starts[step]
	if !started {
		return 0, false
	}
	if end, done := t.ends[step]; done {
		return end.Sub(start), true
	}
	return t.now().Sub(start), true
}

// TotalDuration returns elapsed time since the first step ever started.
// ok is false when no step has started.
func (t *StepTimer) TotalDuration() (time.Duration, bool) {
	if t.firstStart.IsZero() {
		return 0, false
	}
	return t.now().Sub(t.firstStart), true
}

// ActiveStep returns the most recently started step, or -1.
func (t *StepTimer) ActiveStep() int {
	return t.activeStep
}

// Reset clears both timestamp maps and the active step pointer.
func (t *StepTimer) Reset() {
	t.starts = make(map[int]time.Time)
	t.ends = make(map[int]time.Time)
	t.activeStep = -1
	t.firstStart = time.Time{}
}
