package repository

import (
	"context"
	"sync"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

// storedBatch keeps a batch alongside its roll-up.
type storedBatch struct {
	batch   model.Batch
	summary model.BatchSummary
}

// MemoryStore is the default in-process store. Batches are grouped per
// participant in ingest order.
type MemoryStore struct {
	mu           sync.RWMutex
	byID         map[string]struct{}
	byPart       map[string][]storedBatch
	participants []string // stable iteration order for stats
	closed       bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]struct{}),
		byPart: make(map[string][]storedBatch),
	}
}

// SaveBatch stores the batch. Duplicate batch ids are silently ignored.
func (s *MemoryStore) SaveBatch(_ context.Context, batch model.Batch, summary model.BatchSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, exists := s.byID[batch.BatchID]; exists {
		return nil
	}
	s.byID[batch.BatchID] = struct{}{}
	if _, known := s.byPart[batch.ParticipantID]; !known {
		s.participants = append(s.participants, batch.ParticipantID)
	}
	s.byPart[batch.ParticipantID] = append(s.byPart[batch.ParticipantID], storedBatch{batch: batch, summary: summary})
	return nil
}

// Summaries returns the participant's summaries newest first.
func (s *MemoryStore) Summaries(_ context.Context, participantID string) ([]model.BatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byPart[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.BatchSummary, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i].summary)
	}
	return out, nil
}

// Responses returns all stored responses for a participant and test type.
func (s *MemoryStore) Responses(_ context.Context, participantID, testType string) ([]model.ResponseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.byPart[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	var out []model.ResponseRecord
	for _, sb := range stored {
		if testType != "" && sb.batch.TestType != testType {
			continue
		}
		out = append(out, sb.batch.Responses...)
	}
	return out, nil
}

// BatchCount returns the number of stored batches.
func (s *MemoryStore) BatchCount(context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// ParticipantCount returns the number of distinct participants.
func (s *MemoryStore) ParticipantCount(context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

// Close marks the store closed; further writes fail.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
