// Package worker defines worker contracts for asynchronous batch
// summarization and persistence.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/perceptlab/syntrial/internal/domain/model"
	"github.com/perceptlab/syntrial/pkg/logger"
	"github.com/perceptlab/syntrial/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Batch is what workers read off the queue.
type Batch = model.Batch

// Summarizer derives a stored summary from a raw batch.
type Summarizer interface {
	Summarize(ctx context.Context, batch model.Batch) (model.BatchSummary, error)
}

// Store persists a batch together with its summary.
type Store interface {
	SaveBatch(ctx context.Context, batch model.Batch, summary model.BatchSummary) error
}

// Queue defines how workers receive batches.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Batch
}

// Worker consumes batches and writes them to the result store.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// IngestWorker implements Worker for processing response batches.
type IngestWorker struct {
	queue      Queue
	summarizer Summarizer
	store      Store
	name       string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewIngestWorker creates a new worker with configuration options.
func NewIngestWorker(queue Queue, summarizer Summarizer, store Store, opts ...Option) *IngestWorker {
	w := &IngestWorker{
		queue:      queue,
		summarizer: summarizer,
		store:      store,
		name:       "worker",
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *IngestWorker) Run(ctx context.Context) {
	defer close(w.done)

	batchChan := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case batch, ok := <-batchChan:
			if !ok {
				return
			}

			if err := w.processBatch(ctx, batch); err != nil {
				w.logger.Error(ctx, "error processing batch", logger.Error(err))
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *IngestWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processBatch summarizes a batch and persists both batch and summary.
func (w *IngestWorker) processBatch(ctx context.Context, batch Batch) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	summary, err := w.summarizer.Summarize(ctx, batch)
	if err != nil {
		metrics.RecordWorkerError("summarize")
		w.logger.Error(ctx, "summarization failed",
			logger.String("batchID", batch.BatchID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to summarize batch %s: %w", batch.BatchID, err)
	}

	storeStart := time.Now()
	err = w.store.SaveBatch(ctx, batch, summary)
	metrics.RecordStoreLatency(float64(time.Since(storeStart).Milliseconds()))
	if err != nil {
		metrics.RecordWorkerError("store")
		w.logger.Error(ctx, "store write failed",
			logger.String("batchID", batch.BatchID),
			logger.Error(err),
		)
		return fmt.Errorf("failed to store batch %s: %w", batch.BatchID, err)
	}

	metrics.RecordBatchStored()
	metrics.RecordTrialsRecorded(len(batch.Responses))
	for _, r := range batch.Responses {
		metrics.RecordReactionTime(float64(r.ReactionTimeMS))
	}

	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers    []*IngestWorker
	queue      Queue
	summarizer Summarizer
	store      Store

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, queue Queue, summarizer Summarizer, store Store) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers:    make([]*IngestWorker, workerCount),
		queue:      queue,
		summarizer: summarizer,
		store:      store,
		shutdown:   make(chan struct{}),
		logger:     logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewIngestWorker(
			queue,
			summarizer,
			store,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, worker := range p.workers {
		close(worker.shutdown)
	}
	for _, worker := range p.workers {
		select {
		case <-worker.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
}

// Shutdown gracefully shuts down the entire worker pool, draining the
// queue first.
func (p *Pool) Shutdown(ctx context.Context) error {
	// Close the queue first so workers drain remaining batches and their
	// dequeue channels close.
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	return nil
}
