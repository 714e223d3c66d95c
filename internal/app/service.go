// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"
	batchqueue "github.com/perceptlab/syntrial/internal/adapters/mq/queue"
	workerpool "github.com/perceptlab/syntrial/internal/adapters/mq/worker"
	repository "github.com/perceptlab/syntrial/internal/adapters/repository"
	"github.com/perceptlab/syntrial/internal/config"
	"github.com/perceptlab/syntrial/internal/domain/analysis"
	"github.com/perceptlab/syntrial/internal/domain/deck"
	"github.com/perceptlab/syntrial/internal/domain/dedupe"
	"github.com/perceptlab/syntrial/internal/domain/model"
	"github.com/perceptlab/syntrial/internal/domain/screening"
	"github.com/perceptlab/syntrial/pkg/logger"
	"github.com/perceptlab/syntrial/pkg/metrics"
)

// SessionPlan mirrors the shared plan shape returned by session starts.
type SessionPlan = model.SessionPlan

// SubmitResult classifies the outcome of a batch submission.
type SubmitResult = model.SubmitResult

// Submission outcomes.
const (
	SubmitAccepted  = model.SubmitAccepted
	SubmitDuplicate = model.SubmitDuplicate
	SubmitRejected  = model.SubmitRejected
)

// Service wires decks, screening, the ingest pipeline, and the result
// store behind one API surface.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	deduper    dedupe.Deduper
	batchQueue batchqueue.Queue
	summarizer *analysis.Summarizer
	workerPool *workerpool.Pool

	// Configuration
	workerCount     int
	queueSize       int
	dedupeSize      int
	repeats         int
	practiceRepeats int
	stimulusSets    map[string][]string
	resultDBPath    string
	maxResultsLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       4096,
		dedupeSize:      50_000,
		repeats:         3,
		practiceRepeats: 1,
		stimulusSets:    config.DefaultStimulusSets(),
		maxResultsLimit: 100,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting trial results service...")

	if s.resultDBPath != "" {
		store, err := repository.OpenSQLite(s.resultDBPath)
		if err != nil {
			return err
		}
		s.store = store
		s.logger.Info(ctx, "using sqlite result store", logger.String("path", s.resultDBPath))
	} else {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory result store")
	}

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.batchQueue = batchqueue.NewInMemoryQueue(
		batchqueue.WithCapacity(s.queueSize),
		batchqueue.WithBufferSize(s.queueSize),
	)
	s.summarizer = analysis.NewSummarizer()

	s.workerPool = workerpool.NewPool(s.workerCount, s.batchQueue, s.summarizer, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "trial results service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service, draining queued batches into the
// store first.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping trial results service...")

	// Shutdown closes the queue and waits for workers to drain it.
	if s.workerPool != nil {
		_ = s.workerPool.Shutdown(ctx)
	}

	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "trial results service stopped")
}

// TestTypes lists the configured test types in stable order.
func (s *Service) TestTypes() []string {
	out := make([]string, 0, len(s.stimulusSets))
	for testType := range s.stimulusSets {
		out = append(out, testType)
	}
	sort.Strings(out)
	return out
}

// StartSession builds the presentation plan for one test session: a fresh
// session id plus independently shuffled practice and testing decks.
func (s *Service) StartSession(ctx context.Context, participantID, testType string) (SessionPlan, error) {
	items, ok := s.stimulusSets[testType]
	if !ok {
		return SessionPlan{}, ErrUnknownTestType
	}

	plan := SessionPlan{
		SessionID:     uuid.NewString(),
		ParticipantID: participantID,
		TestType:      testType,
		Testing:       deck.Build(items, s.repeats),
	}
	if s.practiceRepeats > 0 {
		plan.Practice = deck.Build(items, s.practiceRepeats)
	}

	metrics.RecordSessionStarted(testType)
	s.logger.Debug(ctx, "session started",
		logger.String("sessionID", plan.SessionID),
		logger.String("participantID", participantID),
		logger.String("testType", testType),
		logger.Int("trials", len(plan.Testing)),
	)

	return plan, nil
}

// SubmitBatch accepts a completed response batch for asynchronous ingest.
// A batch id seen before is reported as a duplicate without re-enqueueing;
// a full queue rejects the batch and forgets the id so the client can
// retry.
func (s *Service) SubmitBatch(ctx context.Context, batch model.Batch) SubmitResult {
	if s.deduper == nil || s.batchQueue == nil {
		return SubmitRejected
	}

	if s.deduper.SeenAndRecord(ctx, batch.BatchID) {
		metrics.RecordBatchDuplicate()
		s.logger.Debug(ctx, "duplicate batch ignored",
			logger.String("batchID", batch.BatchID),
		)
		return SubmitDuplicate
	}

	if !s.batchQueue.Enqueue(ctx, batch) {
		s.deduper.Unrecord(ctx, batch.BatchID)
		s.logger.Warn(ctx, "batch rejected, ingest queue full",
			logger.String("batchID", batch.BatchID),
		)
		return SubmitRejected
	}

	metrics.RecordBatchReceived()
	metrics.UpdateQueueSize(s.batchQueue.Len(ctx))
	return SubmitAccepted
}

// Results returns batch summaries for a participant, newest first, capped
// at limit (or the configured maximum when limit is zero or too large).
func (s *Service) Results(ctx context.Context, participantID string, limit int) ([]model.BatchSummary, error) {
	if s.store == nil {
		return nil, ErrNotStarted
	}
	if limit <= 0 || limit > s.maxResultsLimit {
		limit = s.maxResultsLimit
	}

	summaries, err := s.store.Summaries(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Responses returns a participant's raw trial responses, optionally
// filtered by test type.
func (s *Service) Responses(ctx context.Context, participantID, testType string) ([]model.ResponseRecord, error) {
	if s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store.Responses(ctx, participantID, testType)
}

// Screen finalizes a screening session in place and records the outcome.
func (s *Service) Screen(ctx context.Context, session *screening.Session) {
	session.Finalize()

	outcome := session.ExitCode
	if session.Eligible {
		outcome = "eligible"
	}
	metrics.RecordScreening(outcome)
	s.logger.Debug(ctx, "screening finalized",
		logger.String("participantID", session.ParticipantID),
		logger.String("outcome", outcome),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"testTypes":   s.TestTypes(),
	}

	if s.started {
		queueLen := s.batchQueue.Len(ctx)
		batchCount := s.store.BatchCount(ctx)
		participantCount := s.store.ParticipantCount(ctx)

		stats["queueLength"] = queueLen
		stats["batchCount"] = batchCount
		stats["participantCount"] = participantCount

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoreBatches(batchCount)
		metrics.UpdateStoreParticipants(participantCount)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// DedupeSize returns the current number of remembered batch ids.
func (s *Service) DedupeSize() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}
