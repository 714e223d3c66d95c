package model

// SessionPlan is the server-side plan for one test session: the decks the
// client runs through, in presentation order.
type SessionPlan struct {
	SessionID     string      `json:"session_id"`
	ParticipantID string      `json:"participant_id"`
	TestType      string      `json:"test_type"`
	Practice      []DeckEntry `json:"practice,omitempty"`
	Testing       []DeckEntry `json:"testing"`
}

// SubmitResult classifies the outcome of a batch submission.
type SubmitResult int

// Submission outcomes.
const (
	SubmitAccepted SubmitResult = iota
	SubmitDuplicate
	SubmitRejected
)
