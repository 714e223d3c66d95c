// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/perceptlab/syntrial/internal/adapters/repository"
	"github.com/perceptlab/syntrial/internal/domain/model"
	"github.com/perceptlab/syntrial/internal/domain/screening"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// StartSession builds decks and a fresh session id for one test run.
	StartSession(ctx context.Context, participantID, testType string) (model.SessionPlan, error)

	// SubmitBatch hands a completed batch to the ingest pipeline.
	SubmitBatch(ctx context.Context, batch model.Batch) model.SubmitResult

	// Read operations expose stored results.
	Results(ctx context.Context, participantID string, limit int) ([]model.BatchSummary, error)
	Responses(ctx context.Context, participantID, testType string) ([]model.ResponseRecord, error)

	// Screen finalizes a screening session in place.
	Screen(ctx context.Context, session *screening.Session)

	// TestTypes lists the configured test types.
	TestTypes() []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionsHandler  *SessionsHandler
	batchesHandler   *BatchesHandler
	resultsHandler   *ResultsHandler
	screeningHandler *ScreeningHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sessionsHandler:  NewSessionsHandler(deps),
		batchesHandler:   NewBatchesHandler(deps),
		resultsHandler:   NewResultsHandler(deps),
		screeningHandler: NewScreeningHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandlePostSession, "sessions"))
	mux.HandleFunc("/batches", MetricsMiddleware(s.batchesHandler.HandlePostBatch, "batches"))
	mux.HandleFunc("/results/", MetricsMiddleware(s.resultsHandler.HandleGetResults, "results"))
	mux.HandleFunc("/screening", MetricsMiddleware(s.screeningHandler.HandlePostScreening, "screening"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
