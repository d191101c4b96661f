package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/tijara/pkg/platform"
)

// startTestBackend serves a minimal platform API for CLI tests.
func startTestBackend(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds platform.Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(platform.Envelope{Success: false, Error: "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(platform.Envelope{
			Success: true,
			Token:   "tok-test",
			Data:    json.RawMessage(`{"user":{"id":"u1","name":"Test User","email":"` + creds.Email + `","role":"merchant","isVerified":true}}`),
		})
	})

	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(platform.Envelope{
			Success: true,
			Data:    json.RawMessage(`{"products":[{"id":"p1","name":"Widget","category":"tools","price":9.5,"currency":"USD","stockQuantity":12}],"total":1,"page":1,"limit":20}`),
		})
	})

	mux.HandleFunc("GET /api/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(platform.Envelope{
			Success: true,
			Data:    json.RawMessage(`{"totalProducts":4,"totalShipments":2,"totalOrders":7,"revenue":1234.5,"pendingOrders":1}`),
		})
	})

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(platform.Envelope{
			Success: true,
			Data:    json.RawMessage(`{"status":"ok","version":"1.2.3"}`),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

// runCLI executes the root command with args and returns captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var errBuf bytes.Buffer
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	// Commands print with fmt.Printf; capture stdout.
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := root.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "creds.db")
}

func TestLoginCommand(t *testing.T) {
	url := startTestBackend(t)

	out, err := runCLI(t,
		"--server", url, "--db", tempDB(t),
		"login", "--email", "user@example.com", "--password", "secret123",
	)
	if err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Logged in as Test User (merchant)") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "Dashboard: /merchant") {
		t.Errorf("expected dashboard route in output: %s", out)
	}
}

func TestLoginCommand_InvalidCredentials(t *testing.T) {
	url := startTestBackend(t)

	out, err := runCLI(t,
		"--server", url, "--db", tempDB(t),
		"login", "--email", "user@example.com", "--password", "wrong",
	)
	if err == nil {
		t.Fatalf("expected error, output: %s", out)
	}
	if !strings.Contains(err.Error(), "Invalid credentials") {
		t.Errorf("error = %v, want server message", err)
	}
}

func TestLoginThenWhoami(t *testing.T) {
	url := startTestBackend(t)
	db := tempDB(t)

	if _, err := runCLI(t,
		"--server", url, "--db", db,
		"login", "--email", "user@example.com", "--password", "secret123",
	); err != nil {
		t.Fatalf("login error: %v", err)
	}

	// whoami restores the session from the same store without any
	// backend call for auth.
	out, err := runCLI(t, "--server", url, "--db", db, "whoami")
	if err != nil {
		t.Fatalf("whoami error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Test User <user@example.com>") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "Role:    merchant") {
		t.Errorf("role missing from output: %s", out)
	}
}

func TestLogoutCommand(t *testing.T) {
	url := startTestBackend(t)
	db := tempDB(t)

	runCLI(t, "--server", url, "--db", db,
		"login", "--email", "user@example.com", "--password", "secret123")

	out, err := runCLI(t, "--server", url, "--db", db, "logout")
	if err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if !strings.Contains(out, "Logged out") {
		t.Errorf("unexpected output: %s", out)
	}

	out, _ = runCLI(t, "--server", url, "--db", db, "whoami")
	if !strings.Contains(out, "Not logged in") {
		t.Errorf("session survived logout: %s", out)
	}
}

func TestDemoLogin_BackendDown(t *testing.T) {
	// Unreachable backend with --demo falls back to the built-in
	// accounts.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	out, err := runCLI(t,
		"--server", server.URL, "--db", tempDB(t), "--demo",
		"login", "--email", "supplier@demo.com", "--password", "password123",
	)
	if err != nil {
		t.Fatalf("demo login error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Logged in as Demo Supplier (supplier)") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "Dashboard: /supplier") {
		t.Errorf("expected supplier dashboard: %s", out)
	}
}

func TestDemoLogin_Disabled(t *testing.T) {
	// Without --demo the built-in accounts must not work.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := runCLI(t,
		"--server", server.URL, "--db", tempDB(t),
		"login", "--email", "supplier@demo.com", "--password", "password123",
	)
	if err == nil {
		t.Fatal("demo login succeeded without --demo")
	}
}

func TestProductsListCommand(t *testing.T) {
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "--db", tempDB(t), "products", "list")
	if err != nil {
		t.Fatalf("products list error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Widget") {
		t.Errorf("product missing from output: %s", out)
	}
	if !strings.Contains(out, "1 of 1 products") {
		t.Errorf("summary missing from output: %s", out)
	}
}

func TestDashboardCommand(t *testing.T) {
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "--db", tempDB(t), "dashboard")
	if err != nil {
		t.Fatalf("dashboard error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Orders:    7 (1 pending)") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestHealthCommand(t *testing.T) {
	url := startTestBackend(t)

	out, err := runCLI(t, "--server", url, "--db", tempDB(t), "health")
	if err != nil {
		t.Fatalf("health error: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Status: ok") {
		t.Errorf("unexpected output: %s", out)
	}
}
