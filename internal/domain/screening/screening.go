// Package screening implements the four-step eligibility questionnaire:
// health exclusions, the synesthesia definition check, the pain/emotion
// exclusion, and the per-type frequency choices that drive test
// recommendations.
package screening

import "strings"

// Answer values for the yes/no style questions.
type Answer string

// Answer constants.
const (
	Yes   Answer = "yes"
	No    Answer = "no"
	Maybe Answer = "maybe"
)

// Frequency is the per-type experience frequency choice.
type Frequency string

// Frequency constants.
const (
	FreqYes       Frequency = "yes"
	FreqSometimes Frequency = "sometimes"
	FreqNo        Frequency = "no"
)

// Exit codes for ineligible sessions. Empty means eligible.
const (
	ExitHealth       = "BC"   // any health exclusion flag
	ExitDefinition   = "A"    // does not recognize the definition
	ExitPainEmotion  = "D"    // associations driven by pain/strong emotion
	ExitNoTypes      = "NONE" // no experience types selected
	StatusCompleted  = "completed"
	StatusExited     = "exited"
	StatusInProgress = "in_progress"
)

// Health holds the step 1 exclusion flags.
type Health struct {
	DrugUse          bool `json:"drug_use"`
	NeuroCondition   bool `json:"neuro_condition"`
	MedicalTreatment bool `json:"medical_treatment"`
}

// excluded reports whether any flag disqualifies the participant.
func (h Health) excluded() bool {
	return h.DrugUse || h.NeuroCondition || h.MedicalTreatment
}

// TypeChoices holds the step 4 per-type frequency answers plus a free-text
// "other" description.
type TypeChoices struct {
	Grapheme Frequency `json:"grapheme"`
	Music    Frequency `json:"music"`
	Lexical  Frequency `json:"lexical"`
	Sequence Frequency `json:"sequence"`
	Other    string    `json:"other"`
}

// Recommendation is one suggested test for an eligible participant,
// in the order the types were selected.
type Recommendation struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// Session is one screening run. Answers are filled step by step; Finalize
// derives the outcome.
type Session struct {
	ParticipantID string      `json:"participant_id"`
	Consent       bool        `json:"consent_given"`
	Health        Health      `json:"health"`
	Definition    Answer      `json:"definition"`
	PainEmotion   Answer      `json:"pain_emotion"`
	Types         TypeChoices `json:"types"`

	// Derived by Finalize.
	Status          string           `json:"status"`
	Eligible        bool             `json:"eligible"`
	ExitCode        string           `json:"exit_code"`
	SelectedTypes   []string         `json:"selected_types"`
	Recommendations []Recommendation `json:"recommended_tests"`
}

// selectedTypes builds the canonical list from the frequency answers
// (yes and sometimes both count).
func (s *Session) selectedTypes() []string {
	chosen := func(f Frequency) bool { return f == FreqYes || f == FreqSometimes }

	var out []string
	if chosen(s.Types.Grapheme) {
		out = append(out, "Grapheme – Color")
	}
	if chosen(s.Types.Music) {
		out = append(out, "Music – Color")
	}
	if chosen(s.Types.Lexical) {
		out = append(out, "Lexical – Taste")
	}
	if chosen(s.Types.Sequence) {
		out = append(out, "Sequence – Space")
	}
	if other := strings.TrimSpace(s.Types.Other); other != "" {
		out = append(out, "Other: "+other)
	}
	return out
}

// testNames maps selected type labels to the tests administered for them.
var testNames = map[string]string{
	"Grapheme – Color": "Grapheme-Color",
	"Music – Color":    "Music-Color",
	"Lexical – Taste":  "Lexical-Gustatory",
	"Sequence – Space": "Sequence-Space",
}

// Finalize derives eligibility, exit code, selected types, and test
// recommendations. Exclusions apply in step order: health first, then the
// definition answer, then pain/emotion, then the empty-selection check.
func (s *Session) Finalize() {
	s.Status = StatusExited
	s.Eligible = false
	s.SelectedTypes = nil
	s.Recommendations = nil

	if s.Health.excluded() {
		s.ExitCode = ExitHealth
		return
	}
	if s.Definition == No {
		s.ExitCode = ExitDefinition
		return
	}
	if s.PainEmotion == Yes {
		s.ExitCode = ExitPainEmotion
		return
	}

	types := s.selectedTypes()
	if len(types) == 0 {
		s.ExitCode = ExitNoTypes
		return
	}

	s.SelectedTypes = types
	s.Eligible = true
	s.ExitCode = ""
	s.Status = StatusCompleted
	for i, label := range types {
		name, ok := testNames[label]
		if !ok {
			name = label
		}
		s.Recommendations = append(s.Recommendations, Recommendation{
			Position: i + 1,
			Name:     name,
			Reason:   "Selected type: " + label,
		})
	}
}
