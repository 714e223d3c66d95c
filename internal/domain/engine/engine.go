// Package engine drives one perceptual-association test session: it steps
// through a randomized stimulus deck, times each trial, enforces the
// selection/lock protocol, and hands the finished response batch to a
// Submitter exactly once.
//
// The engine is deliberately single-caller: operations must be invoked
// sequentially and there is no internal locking. Reaction-time measurement
// requires a strict serial protocol anyway, so concurrent callers must wrap
// an instance in their own mutex.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// TrialClock measures elapsed time within a single trial. Start resets the
// reference instant; ElapsedMS reports whole milliseconds since it.
// Implementations must use a monotonic source.
type TrialClock interface {
	Start()
	ElapsedMS() int64
}

// Submitter receives the finalized response batch at the testing -> done
// transition. The engine never retries; delivery and persistence are the
// submitter's problem.
type Submitter interface {
	Submit(ctx context.Context, batch model.Batch) error
}

// noopSubmitter discards batches. Used when no submitter is configured,
// which keeps a zero-stimulus placeholder engine safe to drive.
type noopSubmitter struct{}

func (noopSubmitter) Submit(context.Context, model.Batch) error { return nil }

// Outcome reports what an Advance call did. Accepted is false when the
// advance guard rejected the call; no state changed in that case.
type Outcome struct {
	Accepted         bool
	PracticeComplete bool
	Completed        bool
}

// Engine owns the decks, phase, per-trial selection, and the accumulated
// response list for one test session.
type Engine struct {
	sessionID     string
	participantID string
	testType      string

	practice []model.DeckEntry
	testing  []model.DeckEntry

	phase     Phase
	idx       int
	sel       selection
	responses []model.ResponseRecord

	clock     TrialClock
	submitter Submitter
	submitted bool
	now       func() time.Time
}

// New constructs an engine for the given testing deck. A nil or empty deck
// is valid: the session completes immediately with an empty batch when
// started, which lets callers use the engine as a no-op placeholder.
func New(testingDeck []model.DeckEntry, opts ...Option) *Engine {
	e := &Engine{
		sessionID: uuid.New().String(),
		testing:   testingDeck,
		phase:     PhaseIntro,
		submitter: noopSubmitter{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = defaultClock()
	}
	return e
}

// Start leaves the introduction. It enters practice when a practice deck
// exists, otherwise it starts the main test directly. No-op outside intro.
func (e *Engine) Start(ctx context.Context) error {
	if e.phase != PhaseIntro {
		return nil
	}
	if len(e.practice) > 0 && e.phase.canTransition(PhasePractice) {
		e.phase = PhasePractice
		e.idx = 0
		e.setupTrial()
		return nil
	}
	return e.StartTest(ctx)
}

// StartTest begins the main testing pass: index 0, cleared responses, clock
// running for trial 1. Valid from intro only; practice completion enters
// testing through Advance, so a mid-practice call cannot skip the remaining
// practice trials and is a silent no-op. An empty testing deck completes
// immediately, submitting an empty batch.
func (e *Engine) StartTest(ctx context.Context) error {
	if e.phase != PhaseIntro {
		return nil
	}
	return e.beginTesting(ctx)
}

// beginTesting performs the transition into the testing phase. Reached from
// intro via StartTest or from the last practice entry via Advance.
func (e *Engine) beginTesting(ctx context.Context) error {
	if !e.phase.canTransition(PhaseTesting) {
		return nil
	}
	e.phase = PhaseTesting
	e.idx = 0
	e.responses = nil
	if len(e.testing) == 0 {
		return e.finish(ctx)
	}
	e.setupTrial()
	return nil
}

// Pick records a tentative color selection. Ignored while the selection is
// locked or outside an active trial.
func (e *Engine) Pick(p model.PickEvent) {
	if !e.phase.active() || e.sel.locked {
		return
	}
	c := p.Color()
	e.sel.color = &c
}

// ToggleLock flips the lock on the current selection. Locking an empty
// selection is impossible; the call is ignored.
func (e *Engine) ToggleLock() {
	if !e.phase.active() || e.sel.color == nil {
		return
	}
	e.sel.locked = !e.sel.locked
}

// ToggleNoExperience flips the participant's "no synesthetic experience"
// declaration for the current trial.
func (e *Engine) ToggleNoExperience() {
	if !e.phase.active() {
		return
	}
	e.sel.noExperience = !e.sel.noExperience
}

// CanAdvance reports whether Advance would be accepted right now. Callers
// use it to gate the "Next" affordance instead of relying on errors.
func (e *Engine) CanAdvance() bool {
	return e.phase.active() && e.sel.advanceReady()
}

// Advance completes the current trial. The guard requires either a locked
// color or a no-experience declaration; rejected calls change nothing.
//
// On acceptance the trial's response record is built from the selection and
// the trial clock, appended during testing (never during practice), and the
// engine moves to the next deck entry, to testing (after the last practice
// entry), or to done. The only error Advance can return is a submission
// failure at the final hand-off; the engine is already in done when it does.
func (e *Engine) Advance(ctx context.Context) (Outcome, error) {
	if !e.CanAdvance() {
		return Outcome{}, nil
	}

	rec := model.ResponseRecord{
		Stimulus:       e.activeDeck()[e.idx].Stimulus,
		NoExperience:   e.sel.noExperience,
		ReactionTimeMS: e.clock.ElapsedMS(),
	}
	// No-experience wins over any prior pick: the recorded color is nil.
	if !e.sel.noExperience && e.sel.color != nil {
		c := *e.sel.color
		rec.SelectedColor = &c
	}
	if e.phase.Recording() {
		e.responses = append(e.responses, rec)
	}
	e.sel.reset()

	if e.idx+1 < len(e.activeDeck()) {
		e.idx++
		e.clock.Start()
		return Outcome{Accepted: true}, nil
	}

	// Deck exhausted.
	if e.phase == PhasePractice {
		err := e.beginTesting(ctx)
		return Outcome{Accepted: true, PracticeComplete: true, Completed: e.phase == PhaseDone}, err
	}
	err := e.finish(ctx)
	return Outcome{Accepted: true, Completed: true}, err
}

// finish settles the engine into done and hands off the batch. The done
// transition is unconditional; a submit error is forwarded but never reopens
// testing, and the submitter is invoked at most once per engine.
func (e *Engine) finish(ctx context.Context) error {
	e.phase = PhaseDone
	if e.submitted {
		return nil
	}
	e.submitted = true
	batch := model.Batch{
		BatchID:       uuid.New().String(),
		SessionID:     e.sessionID,
		ParticipantID: e.participantID,
		TestType:      e.testType,
		Responses:     e.responses,
		CompletedAt:   e.now(),
	}
	return e.submitter.Submit(ctx, batch)
}

// setupTrial prepares the presentation of the entry at the current index:
// cleared selection, clock running.
func (e *Engine) setupTrial() {
	e.sel.reset()
	e.clock.Start()
}

// activeDeck returns the deck the current phase traverses.
func (e *Engine) activeDeck() []model.DeckEntry {
	if e.phase == PhasePractice {
		return e.practice
	}
	return e.testing
}

// Phase returns the current session phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// SessionID returns the session identifier stamped onto the batch.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// Current returns the deck entry under presentation. ok is false outside an
// active phase. Audio-cue collaborators interpret Stimulus as they see fit;
// the engine only supplies the identifier.
func (e *Engine) Current() (model.DeckEntry, bool) {
	if !e.phase.active() || e.idx >= len(e.activeDeck()) {
		return model.DeckEntry{}, false
	}
	return e.activeDeck()[e.idx], true
}

// Index returns the position within the active deck.
func (e *Engine) Index() int {
	return e.idx
}

// Selection returns a copy of the current trial's selection state.
func (e *Engine) Selection() Selection {
	view := Selection{Locked: e.sel.locked, NoExperience: e.sel.noExperience}
	if e.sel.color != nil {
		c := *e.sel.color
		view.Color = &c
	}
	return view
}

// Responses returns a copy of the accumulated response list. During
// practice it is always empty.
func (e *Engine) Responses() []model.ResponseRecord {
	out := make([]model.ResponseRecord, len(e.responses))
	copy(out, e.responses)
	return out
}
