package platform

import (
	"context"
	"fmt"
)

// authData is the data payload of auth endpoint responses.
type authData struct {
	User User `json:"user"`
}

// Login authenticates with email and password, returning the user and
// bearer token on success.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	const op = "auth.login"

	env, err := c.Post(ctx, op, "/api/auth/login", creds)
	if err != nil {
		return nil, err
	}

	data, err := UnmarshalData[authData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse user: %w", err))
	}
	if !env.Success || data.User.ID == "" {
		return nil, newError(op, 0, env, nil)
	}

	return &AuthResult{User: data.User, Token: env.Token}, nil
}

// Register creates a new account. The backend signals an existing-email
// conflict with HTTP 409; IsConflictError identifies it.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	const op = "auth.register"

	env, err := c.Post(ctx, op, "/api/auth/register", reg)
	if err != nil {
		return nil, err
	}

	data, err := UnmarshalData[authData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse user: %w", err))
	}
	if !env.Success || data.User.ID == "" {
		return nil, newError(op, 0, env, nil)
	}

	return &AuthResult{User: data.User, Token: env.Token}, nil
}

// Logout invalidates the current session on the backend. Local credential
// cleanup is the session manager's responsibility, not the client's.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, "auth.logout", "/api/auth/logout", nil)
	return err
}

// Refresh exchanges the current token for a fresh one.
func (c *Client) Refresh(ctx context.Context) (*AuthResult, error) {
	const op = "auth.refresh"

	env, err := c.Post(ctx, op, "/api/auth/refresh", nil)
	if err != nil {
		return nil, err
	}
	if !env.Success || env.Token == "" {
		return nil, newError(op, 0, env, nil)
	}

	data, err := UnmarshalData[authData](env)
	if err != nil {
		return nil, newError(op, 0, nil, fmt.Errorf("parse user: %w", err))
	}

	return &AuthResult{User: data.User, Token: env.Token}, nil
}
