// Package repository defines the response batch store interface and errors.
package repository

import (
	"context"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// Store provides read/write access to ingested response batches.
// SaveBatch is idempotent on batch id: saving the same batch twice leaves
// one copy and no error.
type Store interface {
	// SaveBatch persists a batch together with its computed summary.
	SaveBatch(ctx context.Context, batch model.Batch, summary model.BatchSummary) error

	// Summaries returns the stored batch summaries for a participant,
	// newest first. Returns ErrNotFound for an unknown participant.
	Summaries(ctx context.Context, participantID string) ([]model.BatchSummary, error)

	// Responses returns every stored response for a participant and test
	// type across all of their batches, in ingest order. Used for
	// cross-session consistency analysis.
	Responses(ctx context.Context, participantID, testType string) ([]model.ResponseRecord, error)

	// BatchCount returns the number of stored batches.
	BatchCount(ctx context.Context) int

	// ParticipantCount returns the number of distinct participants.
	ParticipantCount(ctx context.Context) int

	// Close releases underlying resources.
	Close() error
}
