package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 10 * time.Second

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client performs operations against a gallery server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the normalized server URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	var result HealthResult
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &result); err != nil {
		return nil, fmt.Errorf("health: %w", err)
	}
	return &result, nil
}

// BoardImages fetches the images of a board. An empty boardID asks the
// server for its default board.
func (c *Client) BoardImages(ctx context.Context, boardID string) (*ImagesResult, error) {
	body, err := json.Marshal(imagesRequest{BoardID: boardID})
	if err != nil {
		return nil, fmt.Errorf("board images: encode request: %w", err)
	}

	var result ImagesResult
	if err := c.do(ctx, http.MethodPost, "/api/pinterest/images", body, &result); err != nil {
		return nil, fmt.Errorf("board images: %w", err)
	}
	return &result, nil
}

// Theme fetches the server's theme suggestion.
func (c *Client) Theme(ctx context.Context) (*ThemeResult, error) {
	var result ThemeResult
	if err := c.do(ctx, http.MethodGet, "/api/system/theme", nil, &result); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return &result, nil
}

// do sends a request and decodes a 200 JSON response into out.
// Any other status becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return parseServerError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// parseServerError extracts the error message from a server response.
// Bodies that are not the server's JSON error shape are kept verbatim.
func parseServerError(statusCode int, body []byte) error {
	msg := strings.TrimSpace(string(body))

	var se serverError
	if err := json.Unmarshal(body, &se); err == nil && se.Error != "" {
		msg = se.Error
	}

	return &APIError{
		StatusCode: statusCode,
		Message:    msg,
	}
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "server error: " + strconv.Itoa(e.StatusCode)
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Message
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// IsNotFound returns true if the error is a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrBadRequest is returned when the server rejects the input (400),
	// for example a board ID that is not all digits.
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrInternal is returned when the server failed to handle the request (500).
	ErrInternal = &APIError{StatusCode: http.StatusInternalServerError}
)
