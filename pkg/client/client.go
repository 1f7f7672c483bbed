package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/terra-clan/homework-assistant/internal/models"
)

// Client is a Go SDK for the homework assistant API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new homework assistant client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a failed request that produced no result
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s - %s", e.StatusCode, e.Code, e.Message)
}

// HintError is returned when a problem was understood well enough to answer
// but not to give hints for. The envelope is still returned alongside it.
type HintError struct {
	Kind       models.ErrorKind
	Message    string
	Suggestion string
}

func (e *HintError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Usage is the caller's own daily allowance
type Usage struct {
	Client string             `json:"client"`
	Role   models.Role        `json:"role"`
	Quota  models.QuotaStatus `json:"quota"`
}

// ProcessHomework submits a problem. Problems that produce no hints return
// the envelope together with a *HintError.
func (c *Client) ProcessHomework(ctx context.Context, problem string) (*models.ResponseEnvelope, error) {
	body, err := json.Marshal(models.HomeworkRequest{Problem: problem})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.envelope(ctx, http.MethodPost, "/api/v1/homework", body)
}

// ListProblemSets lists the practice catalog
func (c *Client) ListProblemSets(ctx context.Context) ([]*models.ProblemSet, error) {
	data, err := call[struct {
		Sets  []*models.ProblemSet `json:"sets"`
		Total int                  `json:"total"`
	}](c, ctx, http.MethodGet, "/api/v1/catalog/sets", nil)
	if err != nil {
		return nil, err
	}
	return data.Sets, nil
}

// GetProblemSet returns one set with its problems
func (c *Client) GetProblemSet(ctx context.Context, name string) (*models.ProblemSet, error) {
	set, err := call[models.ProblemSet](c, ctx, http.MethodGet, "/api/v1/catalog/sets/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// CatalogProblemHints returns hints for a practice problem
func (c *Client) CatalogProblemHints(ctx context.Context, set, code string) (*models.ResponseEnvelope, error) {
	path := fmt.Sprintf("/api/v1/catalog/sets/%s/problems/%s/hints", url.PathEscape(set), url.PathEscape(code))
	return c.envelope(ctx, http.MethodGet, path, nil)
}

// MyUsage reports the caller's daily allowance
func (c *Client) MyUsage(ctx context.Context) (*Usage, error) {
	u, err := call[Usage](c, ctx, http.MethodGet, "/api/v1/usage/me", nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UsageSummary returns usage grouped by role and operation over the last window
func (c *Client) UsageSummary(ctx context.Context, window time.Duration) (*models.UsageSummary, error) {
	path := "/api/v1/usage"
	if window > 0 {
		path += "?since=" + url.QueryEscape(window.String())
	}

	summary, err := call[models.UsageSummary](c, ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := call[json.RawMessage](c, ctx, http.MethodGet, "/health", nil)
	return err
}

// envelope performs a request whose data is a response envelope
func (c *Client) envelope(ctx context.Context, method, path string, body []byte) (*models.ResponseEnvelope, error) {
	env, err := call[models.ResponseEnvelope](c, ctx, method, path, body)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity && env.Error != nil {
		return &env, &HintError{
			Kind:       env.Error.Kind,
			Message:    env.Error.Message,
			Suggestion: env.Error.Suggestion,
		}
	}
	if err != nil {
		return nil, err
	}
	return &env, nil
}

type response[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// call performs a request and decodes the data field. On failure the
// decoded data, if any, is returned along with an *APIError.
func call[T any](c *Client, ctx context.Context, method, path string, body []byte) (T, error) {
	var zero T

	status, respBody, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return zero, err
	}

	var result response[T]
	if err := json.Unmarshal(respBody, &result); err != nil {
		// Authentication failures use a flat {"error": "...", "message": "..."} body
		var flat struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if status >= 400 && json.Unmarshal(respBody, &flat) == nil {
			return zero, &APIError{StatusCode: status, Code: flat.Error, Message: flat.Message}
		}
		return zero, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if status >= 400 || !result.Success {
		apiErr := &APIError{StatusCode: status, Code: "unknown_error", Message: string(respBody)}
		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}
		return result.Data, apiErr
	}

	return result.Data, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
