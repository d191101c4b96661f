package authn

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/me/tijara/pkg/platform"
)

type stubProvider struct {
	res   *platform.AuthResult
	err   error
	calls int
}

func (p *stubProvider) Login(ctx context.Context, creds platform.Credentials) (*platform.AuthResult, error) {
	p.calls++
	return p.res, p.err
}

func (p *stubProvider) Register(ctx context.Context, reg platform.Registration) (*platform.AuthResult, error) {
	p.calls++
	return p.res, p.err
}

func (p *stubProvider) Refresh(ctx context.Context) (*platform.AuthResult, error) {
	p.calls++
	return p.res, p.err
}

func networkErr() error {
	return &platform.Error{Op: "auth.login", Status: 0, Message: "no response", Err: platform.ErrNoResponse}
}

func rejectionErr() error {
	return &platform.Error{Op: "auth.login", Status: 401, Message: "Invalid credentials"}
}

func TestChain_FallsBackOnNetworkError(t *testing.T) {
	primary := &stubProvider{err: networkErr()}
	fallback := &stubProvider{res: &platform.AuthResult{
		User:  platform.User{ID: "u2", Role: platform.RoleMerchant},
		Token: "tok-fb",
	}}
	chain := NewChain(primary, fallback)

	res, err := chain.Login(context.Background(), platform.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Token != "tok-fb" {
		t.Errorf("token = %q, want fallback", res.Token)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", primary.calls, fallback.calls)
	}
}

func TestChain_StopsOnRejection(t *testing.T) {
	primary := &stubProvider{err: rejectionErr()}
	fallback := &stubProvider{res: &platform.AuthResult{Token: "tok-fb"}}
	chain := NewChain(primary, fallback)

	_, err := chain.Login(context.Background(), platform.Credentials{Email: "a@b.com", Password: "x"})
	if err == nil {
		t.Fatal("expected rejection to propagate")
	}
	if fallback.calls != 0 {
		t.Errorf("fallback consulted after rejection (%d calls)", fallback.calls)
	}
}

func TestChain_NoFallbackOnMalformedResponse(t *testing.T) {
	// A reachable backend answering garbage is a parse failure, not an
	// outage, so the demo provider must stay out of it.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"token":"tok","data":{"user":"not-an-object"}}`)
	}))
	defer server.Close()

	client := platform.NewClient(platform.Config{BaseURL: server.URL}, nil)
	chain := NewChain(&RemoteProvider{Client: client}, DemoProvider{})

	res, err := chain.Login(context.Background(), platform.Credentials{
		Email:    "merchant@demo.com",
		Password: "password123",
	})
	if err == nil {
		t.Fatalf("expected parse failure to propagate, got demo user %+v", res.User)
	}
	if platform.IsNetworkError(err) {
		t.Errorf("parse failure classified as network error: %v", err)
	}
}

func TestChain_AllUnreachable(t *testing.T) {
	primary := &stubProvider{err: networkErr()}
	secondary := &stubProvider{err: networkErr()}
	chain := NewChain(primary, secondary)

	_, err := chain.Login(context.Background(), platform.Credentials{Email: "a@b.com", Password: "x"})
	if err == nil {
		t.Fatal("expected error when every provider is unreachable")
	}
	if !platform.IsNetworkError(err) {
		t.Errorf("IsNetworkError(%v) = false", err)
	}
}

func TestDemoProvider_Login(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantRole platform.Role
		wantErr  bool
	}{
		{"merchant", "merchant@demo.com", "password123", platform.RoleMerchant, false},
		{"supplier", "supplier@demo.com", "password123", platform.RoleSupplier, false},
		{"shipping", "shipping@demo.com", "password123", platform.RoleShippingCompany, false},
		{"wrong password", "merchant@demo.com", "nope", "", true},
		{"unknown account", "admin@demo.com", "password123", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := DemoProvider{}.Login(context.Background(), platform.Credentials{
				Email:    tt.email,
				Password: tt.password,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if platform.IsNetworkError(err) {
					t.Error("demo rejection classified as network error")
				}
				return
			}
			if res.User.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", res.User.Role, tt.wantRole)
			}
			if !strings.HasPrefix(res.Token, "demo_") {
				t.Errorf("token = %q, want demo_ prefix", res.Token)
			}
		})
	}
}

func TestDemoProvider_RegisterNeedsBackend(t *testing.T) {
	_, err := DemoProvider{}.Register(context.Background(), platform.Registration{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret123",
		Role:     platform.RoleMerchant,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// Must look like a network failure so a chain in front of a real
	// backend does not report it as a rejection.
	if !platform.IsNetworkError(err) {
		t.Errorf("IsNetworkError(%v) = false", err)
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := platform.Registration{
		Name:     "Aya",
		Email:    "aya@example.com",
		Password: "secret123",
		Role:     platform.RoleSupplier,
	}

	tests := []struct {
		name    string
		mutate  func(*platform.Registration)
		wantErr bool
	}{
		{"valid", func(r *platform.Registration) {}, false},
		{"shipping role valid", func(r *platform.Registration) { r.Role = platform.RoleShippingCompany }, false},
		{"short name", func(r *platform.Registration) { r.Name = "A" }, true},
		{"bad email", func(r *platform.Registration) { r.Email = "not-an-email" }, true},
		{"short password", func(r *platform.Registration) { r.Password = "short" }, true},
		{"admin self-register", func(r *platform.Registration) { r.Role = platform.RoleAdmin }, true},
		{"empty role", func(r *platform.Registration) { r.Role = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := valid
			tt.mutate(&reg)
			err := ValidateRegistration(reg)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistration() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
