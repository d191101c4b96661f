package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Hooks receive out-of-band classifications of response failures. The
// client only classifies and reports; owning the resulting state
// transition (clearing credentials, navigation) is the caller's job.
// All hooks are optional and must not block.
type Hooks struct {
	// Unauthorized fires on any HTTP 401 response, regardless of
	// which endpoint was called.
	Unauthorized func()

	// ServerError fires on any 5xx response.
	ServerError func(status int)

	// NetworkError fires when no response was received at all.
	NetworkError func(err error)
}

// Client is the single chokepoint for all outbound backend calls. It
// attaches the current bearer token to every request and normalizes all
// failures into *Error.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *slog.Logger
	hooks      Hooks
}

// NewClient creates a platform API client with the given configuration.
func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
		logger: logger.With("component", "platform-client"),
	}
}

// SetHooks installs the failure-classification hooks.
func (c *Client) SetHooks(h Hooks) {
	c.hooks = h
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// token reads the current bearer token from the token source. Errors
// from the source are treated as "no token": unauthenticated calls are
// legal and the backend decides what requires auth.
func (c *Client) token(ctx context.Context) string {
	if c.config.TokenSource == nil {
		return ""
	}
	tok, err := c.config.TokenSource.Token(ctx)
	if err != nil {
		c.logger.Debug("token source failed", "error", err)
		return ""
	}
	return tok
}

// do performs a single request and parses the response envelope.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (*Envelope, error) {
	u := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, newError(op, 0, nil, fmt.Errorf("marshal request: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", "req_"+uuid.New().String()[:8])
	if tok := c.token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.logger.Debug("HTTP request", "method", method, "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("HTTP request failed", "method", method, "url", u, "error", err)
		if c.hooks.NetworkError != nil {
			c.hooks.NetworkError(err)
		}
		return nil, newError(op, 0, nil, fmt.Errorf("%w: %v", ErrNoResponse, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(op, resp.StatusCode, nil, fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(respBody))

	var env Envelope
	if len(respBody) > 0 {
		// Tolerate non-envelope bodies on error responses; the status
		// code alone is enough to classify them.
		if err := json.Unmarshal(respBody, &env); err != nil && resp.StatusCode < 400 {
			return nil, newError(op, resp.StatusCode, nil, fmt.Errorf("parse response: %w", err))
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.hooks.Unauthorized != nil {
			c.hooks.Unauthorized()
		}
	case resp.StatusCode >= 500:
		if c.hooks.ServerError != nil {
			c.hooks.ServerError(resp.StatusCode)
		}
	}

	if resp.StatusCode >= 400 {
		return &env, newError(op, resp.StatusCode, &env, nil)
	}

	return &env, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, op, path string, query url.Values) (*Envelope, error) {
	return c.do(ctx, op, http.MethodGet, path, query, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, op, path string, body any) (*Envelope, error) {
	return c.do(ctx, op, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, op, path string, body any) (*Envelope, error) {
	return c.do(ctx, op, http.MethodPut, path, nil, body)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, op, path string, body any) (*Envelope, error) {
	return c.do(ctx, op, http.MethodPatch, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, op, path string) (*Envelope, error) {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil)
}
