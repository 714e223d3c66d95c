package simtrials

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

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with a timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// PostJSON performs a POST request with a JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp.StatusCode, nil
}

// GetJSON performs a GET request and decodes the JSON response.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, out any) (int, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// startSession asks the service for a session plan.
func startSession(ctx context.Context, client *HTTPClient, baseURL, participantID, testType string) (model.SessionPlan, error) {
	var plan model.SessionPlan
	status, err := client.PostJSON(ctx, baseURL+"/sessions", map[string]string{
		"participant_id": participantID,
		"test_type":      testType,
	}, &plan)
	if err != nil {
		return model.SessionPlan{}, err
	}
	if status != http.StatusCreated {
		return model.SessionPlan{}, fmt.Errorf("session start failed with status %d", status)
	}
	return plan, nil
}

// fetchSummaries reads a participant's stored batch summaries.
func fetchSummaries(ctx context.Context, client *HTTPClient, baseURL, participantID string) ([]model.BatchSummary, error) {
	var summaries []model.BatchSummary
	status, err := client.GetJSON(ctx, baseURL+"/results/"+participantID, &summaries)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("result fetch failed with status %d", status)
	}
	return summaries, nil
}
