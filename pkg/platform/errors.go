package platform

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types for common failure scenarios.
var (
	// ErrNotAuthenticated indicates no bearer token is available.
	ErrNotAuthenticated = errors.New("not authenticated: no token available")

	// ErrNoResponse indicates the backend could not be reached at all.
	ErrNoResponse = errors.New("no response from server")
)

// genericMessage is the last-resort error message when the server
// supplied nothing usable.
const genericMessage = "unexpected error"

// Error wraps a platform API failure with operation context. Every
// failure surfaced by the client, regardless of origin (timeout,
// network, 4xx, 5xx), is coerced into this one shape.
type Error struct {
	// Op is the operation that failed, e.g. "auth.login".
	Op string

	// Status is the HTTP status code, or 0 when no response was received.
	Status int

	// Message is the normalized error message. Chosen by priority:
	// server error field, server message field, transport failure,
	// generic fallback.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: [%d] %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds a normalized Error from an envelope and transport state.
func newError(op string, status int, env *Envelope, err error) *Error {
	msg := ""
	if env != nil {
		if env.Error != "" {
			msg = env.Error
		} else if env.Message != "" {
			msg = env.Message
		}
	}
	if msg == "" && err != nil {
		msg = err.Error()
	}
	if msg == "" {
		msg = genericMessage
	}
	return &Error{Op: op, Status: status, Message: msg, Err: err}
}

// IsAuthError reports whether the error is an authentication or
// authorization failure.
func IsAuthError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return errors.Is(err, ErrNotAuthenticated)
}

// IsServerError reports whether the error is a 5xx server fault.
func IsServerError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Status >= 500
	}
	return false
}

// IsNetworkError reports whether no response was received at all
// (connection refused, DNS failure, timeout). Only transport failures
// wrap ErrNoResponse; local failures such as parsing a 200 body do not
// count, even though they also carry Status 0.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNoResponse)
}

// IsConflictError reports whether the error is a conflict, such as a
// duplicate email on registration.
func IsConflictError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Status == http.StatusConflict
	}
	return false
}

// IsNotFoundError reports whether the error indicates a missing resource.
func IsNotFoundError(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Status == http.StatusNotFound
	}
	return false
}
