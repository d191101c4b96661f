// Package authn implements the authentication provider chain: a remote
// REST provider backed by the platform API, with an optional local
// demo-account provider consulted only when the backend is unreachable.
package authn

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/me/tijara/pkg/platform"
)

// Provider authenticates users and issues bearer tokens.
type Provider interface {
	// Login exchanges credentials for a user and token.
	Login(ctx context.Context, creds platform.Credentials) (*platform.AuthResult, error)

	// Register creates a new account.
	Register(ctx context.Context, reg platform.Registration) (*platform.AuthResult, error)

	// Refresh exchanges the current token for a fresh one.
	Refresh(ctx context.Context) (*platform.AuthResult, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// registrationRules mirrors platform.Registration for input validation.
type registrationRules struct {
	Name     string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"required,oneof=merchant supplier shipping_company"`
}

// ValidateRegistration checks a registration payload before it is sent
// to any provider. Admin accounts cannot self-register.
func ValidateRegistration(reg platform.Registration) error {
	rules := registrationRules{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		Role:     string(reg.Role),
	}
	if err := validate.Struct(rules); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			f := errs[0]
			return fmt.Errorf("invalid registration: field %s fails %s", f.Field(), f.Tag())
		}
		return fmt.Errorf("invalid registration: %w", err)
	}
	return nil
}

// RemoteProvider authenticates against the platform backend.
type RemoteProvider struct {
	Client *platform.Client
}

// Login implements Provider.
func (p *RemoteProvider) Login(ctx context.Context, creds platform.Credentials) (*platform.AuthResult, error) {
	return p.Client.Login(ctx, creds)
}

// Register implements Provider.
func (p *RemoteProvider) Register(ctx context.Context, reg platform.Registration) (*platform.AuthResult, error) {
	if err := ValidateRegistration(reg); err != nil {
		return nil, err
	}
	return p.Client.Register(ctx, reg)
}

// Refresh implements Provider.
func (p *RemoteProvider) Refresh(ctx context.Context) (*platform.AuthResult, error) {
	return p.Client.Refresh(ctx)
}

// Chain tries providers in order. A fallback provider is consulted only
// when the previous provider was unreachable (network-class failure),
// never on rejected credentials: a definitive "no" from the backend is
// final.
type Chain struct {
	providers []Provider
}

// NewChain builds a provider chain. At least one provider is required.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Login implements Provider.
func (c *Chain) Login(ctx context.Context, creds platform.Credentials) (*platform.AuthResult, error) {
	var lastErr error
	for _, p := range c.providers {
		res, err := p.Login(ctx, creds)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !platform.IsNetworkError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// Register implements Provider.
func (c *Chain) Register(ctx context.Context, reg platform.Registration) (*platform.AuthResult, error) {
	var lastErr error
	for _, p := range c.providers {
		res, err := p.Register(ctx, reg)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !platform.IsNetworkError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// Refresh implements Provider.
func (c *Chain) Refresh(ctx context.Context) (*platform.AuthResult, error) {
	var lastErr error
	for _, p := range c.providers {
		res, err := p.Refresh(ctx)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if !platform.IsNetworkError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}
