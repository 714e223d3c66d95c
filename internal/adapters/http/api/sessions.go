// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/perceptlab/syntrial/internal/app"
	"github.com/perceptlab/syntrial/internal/domain/model"
)

// SessionDependencies defines the interface for session creation.
type SessionDependencies interface {
	StartSession(ctx context.Context, participantID, testType string) (model.SessionPlan, error)
	TestTypes() []string
}

// SessionsHandler handles session creation requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// sessionRequest mirrors the POST /sessions body.
type sessionRequest struct {
	ParticipantID string `json:"participant_id"`
	TestType      string `json:"test_type"`
}

func (s sessionRequest) validate() error {
	switch {
	case strings.TrimSpace(s.ParticipantID) == "":
		return errors.New("missing participant_id")
	case strings.TrimSpace(s.TestType) == "":
		return errors.New("missing test_type")
	}
	return nil
}

// HandlePostSession handles POST /sessions requests.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method == http.MethodGet {
		// GET /sessions lists the available test types.
		writeJSON(w, http.StatusOK, map[string]any{"test_types": h.deps.TestTypes()})
		return
	}
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	plan, err := h.deps.StartSession(r.Context(), req.ParticipantID, req.TestType)
	if err != nil {
		if errors.Is(err, service.ErrUnknownTestType) {
			writeError(w, http.StatusBadRequest, "unknown_test_type", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}
