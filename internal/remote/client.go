// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the remote client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by Type so errors.Is(err, ErrTimeout) works for
// any timeout regardless of message or cause.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// String returns a short name for logging.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeStatus:
		return "status"
	case ErrTypeInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Sentinel errors for easy checking.
var (
	ErrConnection      = &ClientError{Type: ErrTypeConnection, Message: "could not reach endpoint"}
	ErrTimeout         = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
	ErrStatus          = &ClientError{Type: ErrTypeStatus, Message: "unexpected status"}
	ErrInvalidResponse = &ClientError{Type: ErrTypeInvalidResponse, Message: "invalid response"}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

const (
	// DefaultChatURL is the hosted inference endpoint.
	DefaultChatURL = "https://aiserver-openfxt.vercel.app/api/v2/detail_response"

	// DefaultPingURL is the analytics endpoint hit once on startup.
	DefaultPingURL = "https://script.google.com/macros/s/AKfycbxpEzLfBiy3Om2dOb0mx-wzGxzddpV4GZ-Nw4liGbZTbGHk-Q9XzNOe6qBMf2DgocUy/exec?action=chatfxt"

	// DefaultTimeout bounds a single Send. The service advertises ~10s.
	DefaultTimeout = 30 * time.Second

	// DefaultPingTimeout bounds the analytics ping.
	DefaultPingTimeout = 5 * time.Second

	// MaxReplyBytes caps how much of a reply body is read.
	MaxReplyBytes = 1 << 20
)

// ClientConfig holds configuration options for the remote client.
type ClientConfig struct {
	// ChatURL receives POSTed prompts.
	ChatURL string

	// PingURL receives the startup GET. Empty disables the ping.
	PingURL string

	// Timeout for Send. Zero means no client-side timeout.
	Timeout time.Duration

	// UserAgent header sent with every request.
	UserAgent string

	// Logger for request events (default: slog.Default()).
	Logger *slog.Logger

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		ChatURL:   DefaultChatURL,
		PingURL:   DefaultPingURL,
		Timeout:   DefaultTimeout,
		UserAgent: "chatfxt-tui",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the hosted endpoint. It is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.ChatURL == "" {
		config.ChatURL = DefaultChatURL
	}
	if config.UserAgent == "" {
		config.UserAgent = "chatfxt-tui"
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		// Timeouts are applied per request via context so Send and Ping
		// can use different bounds.
		httpClient = &http.Client{}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		logger:     logger.With("component", "remote"),
	}
}

// ChatURL returns the configured chat endpoint.
func (c *Client) ChatURL() string {
	return c.config.ChatURL
}

// Timeout returns the configured Send timeout (0 = none).
func (c *Client) Timeout() time.Duration {
	return c.config.Timeout
}

// =============================================================================
// CHAT
// =============================================================================

// Send posts text to the chat endpoint and returns the raw response body as
// the reply. The body is not JSON-decoded.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(SendRequest{Message: text})
	if err != nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.ChatURL, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)

	start := time.Now()
	c.logger.Debug("send start", "url", c.config.ChatURL, "prompt_bytes", len(text))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cerr := classifyTransportError(err)
		c.logger.Warn("send failed", "kind", cerr.Type.String(), "elapsed", time.Since(start), "error", err)
		return "", cerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxReplyBytes+1))
	if err != nil {
		cerr := classifyTransportError(err)
		c.logger.Warn("send read failed", "kind", cerr.Type.String(), "elapsed", time.Since(start), "error", err)
		return "", cerr
	}
	if len(data) > MaxReplyBytes {
		data = truncateReply(data, MaxReplyBytes)
		c.logger.Warn("send reply truncated", "limit", MaxReplyBytes, "kept_bytes", len(data))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("send bad status", "status", resp.StatusCode, "elapsed", time.Since(start))
		return "", &ClientError{Type: ErrTypeStatus, Message: "unexpected status from endpoint: " + resp.Status}
	}

	if !utf8.Valid(data) {
		c.logger.Warn("send non-text reply", "bytes", len(data), "elapsed", time.Since(start))
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "non-text response"}
	}

	c.logger.Info("send done", "status", resp.StatusCode, "reply_bytes", len(data), "elapsed", time.Since(start))
	return string(data), nil
}

// =============================================================================
// ANALYTICS PING
// =============================================================================

// Ping issues the best-effort startup GET. The response body is discarded.
// Callers should only log the returned error.
func (c *Client) Ping(ctx context.Context) error {
	if c.config.PingURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.PingURL, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxReplyBytes))

	if resp.StatusCode >= 400 {
		return &ClientError{Type: ErrTypeStatus, Message: "unexpected status from ping: " + resp.Status}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func classifyTransportError(err error) *ClientError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "could not reach endpoint", Cause: err}
}

// truncateReply cuts data to at most limit bytes without splitting a
// trailing multibyte rune.
func truncateReply(data []byte, limit int) []byte {
	data = data[:limit]
	for i := 0; i < utf8.UTFMax-1 && len(data) > 0; i++ {
		r, size := utf8.DecodeLastRune(data)
		if r != utf8.RuneError || size != 1 {
			break
		}
		data = data[:len(data)-1]
	}
	return data
}
