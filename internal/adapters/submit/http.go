// Package submit provides transport implementations of the trial engine's
// Submitter boundary.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/perceptlab/syntrial/internal/domain/model"
)

const defaultTimeout = 10 * time.Second

// HTTPSubmitter posts completed batches to a results service.
type HTTPSubmitter struct {
	baseURL string
	client  *http.Client
}

// Option applies a configuration option to the HTTPSubmitter.
type Option func(*HTTPSubmitter)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPSubmitter) {
		if client != nil {
			s.client = client
		}
	}
}

// NewHTTPSubmitter creates a submitter targeting baseURL, e.g.
// "http://localhost:9080".
func NewHTTPSubmitter(baseURL string, opts ...Option) *HTTPSubmitter {
	s := &HTTPSubmitter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit posts the batch to POST /batches. A duplicate acknowledgement
// counts as success; the server keeps the first accepted submission.
func (s *HTTPSubmitter) Submit(ctx context.Context, batch model.Batch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode batch %s: %w", batch.BatchID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/batches", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit batch %s: %w", batch.BatchID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted, http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return fmt.Errorf("batch %s: %w", batch.BatchID, ErrBackpressure)
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("batch %s: unexpected status %d: %s", batch.BatchID, resp.StatusCode, msg)
	}
}
