// Package adk is a thin client for the agent-pipeline web API: session
// creation plus the /run_sse streaming endpoint. It owns nothing beyond the
// HTTP exchange: the streaming body is handed to the caller's session
// engine untouched, and there is no retry or credential handling here; a
// wrapping collaborator decides both.
package adk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the local development server address.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds the non-streaming requests. The /run_sse
	// request deliberately has no client timeout; cancel its context to
	// abort the stream.
	DefaultTimeout = 30 * time.Second
)

// Client is the pipeline API client.
type Client struct {
	config *clientConfig
}

// clientConfig holds the client configuration.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout for non-streaming requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// NewClient creates a pipeline API client.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{}
	}
	return &Client{config: cfg}
}

// Part is one content part of a message.
type Part struct {
	Text string `json:"text"`
}

// Message is a user or model message.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// RunRequest identifies the app, user and session a query runs under.
type RunRequest struct {
	AppName    string  `json:"appName"`
	UserID     string  `json:"userId"`
	SessionID  string  `json:"sessionId"`
	NewMessage Message `json:"newMessage"`
}

// UserQuery builds the message for a plain text query.
func UserQuery(text string) Message {
	return Message{Role: "user", Parts: []Part{{Text: text}}}
}

// CreateSession registers a new pipeline session on the server. The id is
// caller-chosen; reusing an id resumes that session's server-side state.
func (c *Client) CreateSession(ctx context.Context, app, user, sessionID string) error {
	u := fmt.Sprintf("%s/apps/%s/users/%s/sessions/%s",
		c.config.baseURL, url.PathEscape(app), url.PathEscape(user), url.PathEscape(sessionID))

	ctx, cancel := context.WithTimeout(ctx, c.config.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("adk: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.config.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("adk: create session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newError(resp)
	}
	// The response body echoes the session object; nothing in it is needed.
	io.Copy(io.Discard, resp.Body)
	return nil
}

// Run submits a query and returns the raw event stream. The caller owns the
// returned body and must close it; cancelling ctx aborts the stream, which
// is the expected shutdown path for a hung pipeline.
func (c *Client) Run(ctx context.Context, runReq *RunRequest) (io.ReadCloser, error) {
	payload, err := json.Marshal(runReq)
	if err != nil {
		return nil, fmt.Errorf("adk: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.baseURL+"/run_sse", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("adk: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.config.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adk: run: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, newError(resp)
	}
	return resp.Body, nil
}
