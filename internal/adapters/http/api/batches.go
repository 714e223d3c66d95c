// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// BatchDependencies defines the interface for batch submission.
type BatchDependencies interface {
	SubmitBatch(ctx context.Context, batch model.Batch) model.SubmitResult
}

// BatchesHandler handles batch submission requests.
type BatchesHandler struct {
	deps BatchDependencies
}

// NewBatchesHandler creates a new batches handler.
func NewBatchesHandler(deps BatchDependencies) *BatchesHandler {
	return &BatchesHandler{deps: deps}
}

// batchRequest mirrors the POST /batches body.
type batchRequest struct {
	BatchID       string                 `json:"batch_id"`
	SessionID     string                 `json:"session_id"`
	ParticipantID string                 `json:"participant_id"`
	TestType      string                 `json:"test_type"`
	Responses     []model.ResponseRecord `json:"responses"`
	CompletedAt   string                 `json:"completed_at"`
}

func (b batchRequest) validate() error {
	switch {
	case strings.TrimSpace(b.BatchID) == "":
		return errors.New("missing batch_id")
	case strings.TrimSpace(b.SessionID) == "":
		return errors.New("missing session_id")
	case strings.TrimSpace(b.ParticipantID) == "":
		return errors.New("missing participant_id")
	case strings.TrimSpace(b.TestType) == "":
		return errors.New("missing test_type")
	case strings.TrimSpace(b.CompletedAt) == "":
		return errors.New("missing completed_at")
	}
	if _, err := time.Parse(time.RFC3339, b.CompletedAt); err != nil {
		return errors.New("invalid completed_at; must be RFC3339")
	}
	for _, r := range b.Responses {
		if strings.TrimSpace(r.Stimulus) == "" {
			return errors.New("missing stimulus in response")
		}
		if r.NoExperience && r.SelectedColor != nil {
			return errors.New("response cannot carry both a color and no-experience")
		}
		if !r.NoExperience && r.SelectedColor == nil {
			return errors.New("response needs a color or no-experience")
		}
		if r.ReactionTimeMS < 0 {
			return errors.New("negative reaction_time_ms")
		}
	}
	return nil
}

func (b batchRequest) toModel() model.Batch {
	completedAt, _ := time.Parse(time.RFC3339, b.CompletedAt)
	return model.Batch{
		BatchID:       b.BatchID,
		SessionID:     b.SessionID,
		ParticipantID: b.ParticipantID,
		TestType:      b.TestType,
		Responses:     b.Responses,
		CompletedAt:   completedAt,
	}
}

// HandlePostBatch handles POST /batches requests.
func (h *BatchesHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	switch h.deps.SubmitBatch(r.Context(), req.toModel()) {
	case model.SubmitDuplicate:
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
	case model.SubmitRejected:
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	default:
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
	}
}
