// Package relation provides the HTTP client for the re:lation API.
package relation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/relationtools/relation-mcp/internal/common"
)

// maxResponseSize caps response bodies to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// APIError is a non-2xx response from the re:lation API. Body is the raw
// response text: error bodies are not guaranteed to be JSON.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("relation API returned %d: %s", e.Status, e.Body)
}

// Result is the outcome of a successful API call: either a decoded JSON
// value, or a no-content marker for HTTP 204 responses.
type Result struct {
	Value     any
	NoContent bool
}

// Client issues bearer-authenticated requests against the re:lation API.
// It is safe for concurrent use; all fields are set at construction.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a Client targeting the given base URL with the given bearer token.
func New(baseURL, token string, timeout time.Duration, logger *common.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Get performs a GET request to the given path.
func (c *Client) Get(ctx context.Context, path string) (*Result, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body to the given path.
func (c *Client) Post(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body to the given path.
func (c *Client) Put(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

// Patch performs a PATCH request with a JSON body to the given path.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Result, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

// Do issues a request to baseURL+path. The body is attached as JSON only
// for POST, PUT, and PATCH. A 204 (or empty 2xx body) yields a no-content
// Result; any non-2xx status yields an *APIError carrying the status code
// and raw response text, logged before being returned.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Result, error) {
	c.logger.Debug().Str("method", method).Str("path", path).Msg("relation request")

	var bodyReader io.Reader
	if body != nil && methodHasBody(method) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("relation request failed")
		return nil, fmt.Errorf("relation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("relation response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Body: string(respBody)}
		c.logger.Error().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("body", apiErr.Body).Msg("relation API error")
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return &Result{NoContent: true}, nil
	}

	var value any
	if err := json.Unmarshal(respBody, &value); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &Result{Value: value}, nil
}

// methodHasBody reports whether the method carries a JSON request body.
func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
