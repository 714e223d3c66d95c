// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// ResultDependencies defines the interface for result queries.
type ResultDependencies interface {
	Results(ctx context.Context, participantID string, limit int) ([]model.BatchSummary, error)
	Responses(ctx context.Context, participantID, testType string) ([]model.ResponseRecord, error)
}

// ResultsHandler handles result queries.
type ResultsHandler struct {
	deps ResultDependencies
}

// NewResultsHandler creates a new results handler.
func NewResultsHandler(deps ResultDependencies) *ResultsHandler {
	return &ResultsHandler{deps: deps}
}

// HandleGetResults handles:
//
//	GET /results/{participant_id}?limit=N            batch summaries
//	GET /results/{participant_id}/responses?test_type=T  raw responses
func (h *ResultsHandler) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/results/")
	parts := strings.Split(path, "/")
	participantID := parts[0]
	if participantID == "" || len(parts) > 2 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if len(parts) == 2 {
		if parts[1] != "responses" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		h.handleResponses(w, r, participantID)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}

	summaries, err := h.deps.Results(r.Context(), participantID, limit)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *ResultsHandler) handleResponses(w http.ResponseWriter, r *http.Request, participantID string) {
	const op = "api.get_responses"

	responses, err := h.deps.Responses(r.Context(), participantID, r.URL.Query().Get("test_type"))
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, responses)
}
