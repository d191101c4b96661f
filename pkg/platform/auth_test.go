package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s, want /api/auth/login", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode credentials: %v", err)
		}
		if creds.Email != "user@example.com" {
			t.Errorf("email = %q", creds.Email)
		}

		json.NewEncoder(w).Encode(Envelope{
			Success: true,
			Token:   "jwt-abc",
			Data:    json.RawMessage(`{"user":{"id":"u1","name":"Test User","email":"user@example.com","role":"merchant"}}`),
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)
	res, err := client.Login(context.Background(), Credentials{
		Email:    "user@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if res.Token != "jwt-abc" {
		t.Errorf("token = %q, want jwt-abc", res.Token)
	}
	if res.User.ID != "u1" || res.User.Role != RoleMerchant {
		t.Errorf("unexpected user: %+v", res.User)
	}
}

func TestClient_Login_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(Envelope{Success: false, Error: "Invalid email or password"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)
	_, err := client.Login(context.Background(), Credentials{Email: "user@example.com", Password: "wrong"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false, want true", err)
	}

	var e *Error
	if errors.As(err, &e) && e.Message != "Invalid email or password" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestClient_Login_SuccessFalse(t *testing.T) {
	// 200 with success=false must still fail.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Envelope{Success: false, Message: "account disabled"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)
	_, err := client.Login(context.Background(), Credentials{Email: "user@example.com", Password: "x"})
	if err == nil {
		t.Fatal("expected error on success=false")
	}
}

func TestClient_Register_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(Envelope{Success: false, Error: "Email already registered"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)
	_, err := client.Register(context.Background(), Registration{
		Name:     "Test",
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     RoleMerchant,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConflictError(err) {
		t.Errorf("IsConflictError(%v) = false, want true", err)
	}
}

func TestClient_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/refresh" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Envelope{
			Success: true,
			Token:   "jwt-new",
			Data:    json.RawMessage(`{"user":{"id":"u1","name":"Test","email":"u@e.com","role":"supplier"}}`),
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, nil)
	res, err := client.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if res.Token != "jwt-new" {
		t.Errorf("token = %q, want jwt-new", res.Token)
	}
}

func TestRole_DashboardRoute(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleMerchant, "/merchant"},
		{RoleSupplier, "/supplier"},
		{RoleShippingCompany, "/shipping"},
		{RoleAdmin, "/admin"},
		{Role("unknown"), "/merchant"},
		{Role(""), "/merchant"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			if got := tt.role.DashboardRoute(); got != tt.want {
				t.Errorf("DashboardRoute() = %q, want %q", got, tt.want)
			}
		})
	}
}
