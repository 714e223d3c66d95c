// Package model contains domain models passed between layers.
package model

import "time"

// Color is an RGB selection as produced by the color picker surface.
type Color struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// PickEvent is one pick from the color input collaborator. X and Y are the
// pixel coordinates on the picker surface; the engine discards them.
type PickEvent struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
}

// Color returns the retained portion of the pick.
func (p PickEvent) Color() Color {
	return Color{R: p.R, G: p.G, B: p.B, Hex: p.Hex}
}

// DeckEntry is one slot in a presentation deck. Trial is the 1-based
// repetition number, ItemID the 1-based position within that repetition's
// shuffle (not stable across repetitions).
type DeckEntry struct {
	Stimulus string `json:"stimulus"`
	Trial    int    `json:"trial"`
	ItemID   int    `json:"item_id"`
}

// ResponseRecord captures one completed trial. Immutable once created;
// SelectedColor is nil when the participant reported no experience.
type ResponseRecord struct {
	Stimulus       string `json:"stimulus"`
	SelectedColor  *Color `json:"selected_color"`
	NoExperience   bool   `json:"no_synesthetic_experience"`
	ReactionTimeMS int64  `json:"reaction_time_ms"`
}

// Batch is the complete ordered response set for one testing pass,
// submitted atomically at session completion.
type Batch struct {
	BatchID       string           `json:"batch_id"`
	SessionID     string           `json:"session_id"`
	ParticipantID string           `json:"participant_id"`
	TestType      string           `json:"test_type"`
	Responses     []ResponseRecord `json:"responses"`
	CompletedAt   time.Time        `json:"completed_at"`
}

// BatchSummary is the read shape returned by result queries.
type BatchSummary struct {
	BatchID        string    `json:"batch_id"`
	TestType       string    `json:"test_type"`
	TrialCount     int       `json:"trial_count"`
	MeanReactionMS float64   `json:"mean_reaction_ms"`
	Consistency    float64   `json:"consistency"`
	CompletedAt    time.Time `json:"completed_at"`
}
