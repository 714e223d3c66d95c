// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/perceptlab/syntrial/internal/domain/screening"
)

// ScreeningDependencies defines the interface for screening evaluation.
type ScreeningDependencies interface {
	Screen(ctx context.Context, session *screening.Session)
}

// ScreeningHandler handles screening requests.
type ScreeningHandler struct {
	deps ScreeningDependencies
}

// NewScreeningHandler creates a new screening handler.
func NewScreeningHandler(deps ScreeningDependencies) *ScreeningHandler {
	return &ScreeningHandler{deps: deps}
}

// HandlePostScreening handles POST /screening requests. The body carries
// the questionnaire answers; the response is the finalized session with
// eligibility, exit code, and test recommendations.
func (h *ScreeningHandler) HandlePostScreening(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_screening"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var session screening.Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(session.ParticipantID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing participant_id")))
		return
	}
	if !session.Consent {
		writeError(w, http.StatusBadRequest, "consent_required", WrapKind(op, ErrBadRequest, errors.New("consent not given")))
		return
	}

	h.deps.Screen(r.Context(), &session)
	writeJSON(w, http.StatusOK, session)
}
