// Package platform provides a Go client for the Tijara commerce platform
// REST API (authentication, products, shipments, marketplace listings).
package platform

import (
	"context"
	"time"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// DefaultTimeout bounds every request; there is no per-call override.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current bearer token for outgoing requests.
// It is consulted on every call, so a logout or token rotation takes
// effect on the very next request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token string.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

// Config holds all configuration for the platform API client.
type Config struct {
	// BaseURL is the backend address, e.g. "https://api.example.com".
	BaseURL string

	// Timeout is the HTTP client timeout for each request.
	Timeout time.Duration

	// TokenSource supplies the bearer token. May be nil for
	// unauthenticated use.
	TokenSource TokenSource
}

// DefaultConfig returns a Config with default address and settings.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = url
	return c
}

// WithTimeout returns a copy of the config with the specified timeout.
func (c Config) WithTimeout(timeout time.Duration) Config {
	c.Timeout = timeout
	return c
}

// WithTokenSource returns a copy of the config with the specified token source.
func (c Config) WithTokenSource(src TokenSource) Config {
	c.TokenSource = src
	return c
}
