package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/perceptlab/syntrial/internal/adapters/mq/queue"
	"github.com/perceptlab/syntrial/internal/adapters/mq/worker"
	"github.com/perceptlab/syntrial/internal/domain/analysis"
	"github.com/perceptlab/syntrial/internal/domain/model"
	"github.com/perceptlab/syntrial/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type recordingStore struct {
	mu      sync.Mutex
	batches []model.Batch
	saved   chan struct{}
	err     error
}

func newRecordingStore(capacity int) *recordingStore {
	return &recordingStore{saved: make(chan struct{}, capacity)}
}

func (s *recordingStore) SaveBatch(ctx context.Context, batch model.Batch, summary model.BatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		s.saved <- struct{}{}
		return s.err
	}
	s.batches = append(s.batches, batch)
	s.saved <- struct{}{}
	return nil
}

func (s *recordingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.batches)
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(ctx context.Context, batch model.Batch) (model.BatchSummary, error) {
	return model.BatchSummary{}, errors.New("bad batch")
}

func submittedBatch(id string) model.Batch {
	return model.Batch{
		BatchID:       id,
		SessionID:     "sess-" + id,
		ParticipantID: "P-001",
		TestType:      "letter",
		Responses: []model.ResponseRecord{
			{Stimulus: "A", SelectedColor: &model.Color{R: 10, G: 20, B: 30, Hex: "0A141E"}, ReactionTimeMS: 512},
		},
		CompletedAt: time.Now().UTC(),
	}
}

func waitFor(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for store writes")
		}
	}
}

func TestIngestWorker(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Convey("Given a worker consuming from a queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		store := newRecordingStore(16)
		w := worker.NewIngestWorker(q, analysis.NewSummarizer(), store, worker.WithName("worker-test"))

		Convey("When batches are enqueued", func() {
			go w.Run(ctx)

			So(q.Enqueue(ctx, submittedBatch("b-1")), ShouldBeTrue)
			So(q.Enqueue(ctx, submittedBatch("b-2")), ShouldBeTrue)
			waitFor(t, store.saved, 2)

			Convey("Then both batches reach the store", func() {
				So(store.count(), ShouldEqual, 2)
			})

			Convey("And shutdown returns promptly", func() {
				q.Close()
				shutdownCtx, shutdownCancel := context.WithTimeout(ctx, time.Second)
				defer shutdownCancel()
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})

		Convey("When summarization fails", func() {
			failing := worker.NewIngestWorker(q, failingSummarizer{}, store)
			go failing.Run(ctx)

			So(q.Enqueue(ctx, submittedBatch("b-bad")), ShouldBeTrue)
			So(q.Enqueue(ctx, submittedBatch("b-good")), ShouldBeTrue)

			Convey("Then the worker keeps consuming later batches", func() {
				// Only the failing summarizer never stores, so nothing
				// lands; the point is the loop survives the error.
				time.Sleep(100 * time.Millisecond)
				So(q.Len(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the store rejects a batch", func() {
			store.err = errors.New("disk full")
			go w.Run(ctx)

			So(q.Enqueue(ctx, submittedBatch("b-1")), ShouldBeTrue)
			waitFor(t, store.saved, 1)

			Convey("Then nothing is recorded and the worker survives", func() {
				So(store.count(), ShouldEqual, 0)
				So(q.Enqueue(ctx, submittedBatch("b-2")), ShouldBeTrue)
			})
		})
	})
}

func TestPool(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Convey("Given a worker pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		store := newRecordingStore(64)
		pool := worker.NewPool(4, q, analysis.NewSummarizer(), store)

		Convey("When it processes a burst of batches", func() {
			pool.Start(ctx)

			const n = 20
			for i := 0; i < n; i++ {
				So(q.Enqueue(ctx, submittedBatch("b-"+string(rune('a'+i)))), ShouldBeTrue)
			}
			waitFor(t, store.saved, n)

			Convey("Then every batch is persisted exactly once", func() {
				So(store.count(), ShouldEqual, n)
			})

			Convey("And shutdown drains and stops cleanly", func() {
				So(pool.Shutdown(ctx), ShouldBeNil)
				So(q.IsClosed(), ShouldBeTrue)
			})
		})
	})
}
