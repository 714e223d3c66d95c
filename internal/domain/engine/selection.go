package engine

import "github.com/perceptlab/syntrial/internal/domain/model"

// selection is the per-trial working state. It resets on every advance.
type selection struct {
	color        *model.Color
	locked       bool
	noExperience bool
}

// reset clears the selection for the next trial.
func (s *selection) reset() {
	s.color = nil
	s.locked = false
	s.noExperience = false
}

// advanceReady reports whether the advance guard is satisfied: either the
// participant declared no experience, or a color is picked and locked.
func (s *selection) advanceReady() bool {
	return s.noExperience || (s.color != nil && s.locked)
}

// Selection is the read-only view of the current trial's selection state.
type Selection struct {
	Color        *model.Color
	Locked       bool
	NoExperience bool
}
