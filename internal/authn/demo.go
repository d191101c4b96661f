package authn

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/me/tijara/pkg/platform"
)

// demoPassword is shared by all built-in demo accounts.
const demoPassword = "password123"

// demoAccounts are the built-in accounts reachable when the backend is
// down. Keyed by email.
var demoAccounts = map[string]platform.User{
	"merchant@demo.com": {
		ID:         "demo_merchant",
		Email:      "merchant@demo.com",
		Name:       "Demo Merchant",
		Role:       platform.RoleMerchant,
		IsActive:   true,
		IsVerified: true,
	},
	"supplier@demo.com": {
		ID:         "demo_supplier",
		Email:      "supplier@demo.com",
		Name:       "Demo Supplier",
		Role:       platform.RoleSupplier,
		IsActive:   true,
		IsVerified: true,
	},
	"shipping@demo.com": {
		ID:         "demo_shipping",
		Email:      "shipping@demo.com",
		Name:       "Demo Shipping Co.",
		Role:       platform.RoleShippingCompany,
		IsActive:   true,
		IsVerified: true,
	},
}

// DemoProvider authenticates the built-in demo accounts locally. Place
// it after the remote provider in a chain so it only answers when the
// backend is unreachable; leave it out of the chain entirely to disable
// demo login in production builds.
type DemoProvider struct{}

// Login implements Provider.
func (DemoProvider) Login(ctx context.Context, creds platform.Credentials) (*platform.AuthResult, error) {
	user, ok := demoAccounts[creds.Email]
	if !ok || creds.Password != demoPassword {
		return nil, &platform.Error{Op: "authn.demo", Status: 401, Message: "invalid credentials"}
	}
	u := user
	u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return &platform.AuthResult{User: u, Token: demoToken()}, nil
}

// Register implements Provider. Demo accounts are fixed; registration
// always requires the backend.
func (DemoProvider) Register(ctx context.Context, reg platform.Registration) (*platform.AuthResult, error) {
	return nil, &platform.Error{Op: "authn.demo", Status: 0, Message: "registration requires the backend", Err: platform.ErrNoResponse}
}

// Refresh implements Provider. Demo tokens are opaque and non-expiring
// as far as the client is concerned; refresh just issues a new one.
func (DemoProvider) Refresh(ctx context.Context) (*platform.AuthResult, error) {
	return &platform.AuthResult{Token: demoToken()}, nil
}

func demoToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return "demo_" + hex.EncodeToString(b)
}
