// Package qa is the HTTP client for the campus question-answering backend.
package qa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	askPath        = "api/ask"
	defaultTimeout = 30 * time.Second

	// Responses are small JSON objects; cap reads in case the backend
	// misbehaves.
	maxResponseBytes = 1 << 20
)

// askRequest is the wire format of one question.
type askRequest struct {
	CollegeID string `json:"college_id"`
	Query     string `json:"query"`
	SessionID string `json:"session_id"`
}

// askResponse is the expected reply. Unknown extra fields are tolerated.
type askResponse struct {
	Answer string `json:"answer"`
}

// Client asks questions of the QA backend. The session identifier is minted
// once per client, so every turn of a conversation shares it.
type Client struct {
	baseURL   string
	collegeID string
	sessionID string
	httpc     *http.Client
	log       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client (tests, custom
// transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient builds a client for the given backend. baseURL is the service
// root (trailing slash optional); collegeID scopes queries to one campus
// knowledge base.
func NewClient(baseURL, collegeID string, opts ...Option) *Client {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL:   baseURL,
		collegeID: collegeID,
		sessionID: uuid.NewString(),
		httpc:     &http.Client{Timeout: defaultTimeout},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID returns the identifier sent with every request.
func (c *Client) SessionID() string { return c.sessionID }

// ResetSession mints a fresh session identifier. Call when starting a new
// conversation against the same client.
func (c *Client) ResetSession() {
	c.sessionID = uuid.NewString()
}

// Ask sends one question and returns the backend's answer. An empty answer
// with a nil error means the response carried no answer field; the caller
// decides what to show. Any transport or protocol problem is returned as an
// error with no partial answer.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(askRequest{
		CollegeID: c.collegeID,
		Query:     query,
		SessionID: c.sessionID,
	})
	if err != nil {
		return "", fmt.Errorf("encode ask request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ask request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug("ask request failed", zap.Error(err))
		return "", fmt.Errorf("ask request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read ask response: %w", err)
	}

	c.log.Debug("ask request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("ask request: unexpected status %d", resp.StatusCode)
	}

	var decoded askResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode ask response: %w", err)
	}
	return decoded.Answer, nil
}
