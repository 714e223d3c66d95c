package engine

// Phase identifies where a test session is in its lifecycle. Progress is
// monotonic: intro -> practice -> testing -> done, with practice skipped when
// no practice deck exists. Practice can never fall back to intro.
type Phase int

// Session phases.
const (
	PhaseIntro Phase = iota
	PhasePractice
	PhaseTesting
	PhaseDone
)

// transitions is the explicit transition table. Any pair not listed here is
// an illegal transition and is refused.
var transitions = map[Phase][]Phase{
	PhaseIntro:    {PhasePractice, PhaseTesting, PhaseDone},
	PhasePractice: {PhaseTesting, PhaseDone},
	PhaseTesting:  {PhaseDone},
	PhaseDone:     {},
}

// canTransition reports whether moving from p to next is allowed.
func (p Phase) canTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Recording reports whether responses produced in this phase are persisted.
// Practice traverses a deck but never records.
func (p Phase) Recording() bool {
	return p == PhaseTesting
}

// active reports whether trial operations (pick, lock, advance) are valid.
func (p Phase) active() bool {
	return p == PhasePractice || p == PhaseTesting
}

// String returns the phase name used in logs and API payloads.
func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhasePractice:
		return "practice"
	case PhaseTesting:
		return "testing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
