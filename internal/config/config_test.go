package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLoadClient_Defaults(t *testing.T) {
	for _, key := range []string{
		"TIJARA_API_URL", "TIJARA_TIMEOUT", "TIJARA_DB_PATH",
		"TIJARA_DEMO_LOGIN", "TIJARA_VALIDATE_ON_INIT",
		"TIJARA_LOG_LEVEL", "TIJARA_LOG_FORMAT",
	} {
		// Register the restore, then clear the variable entirely so
		// the struct defaults apply.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadClient(context.Background())
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}

	if cfg.APIURL != "http://localhost:5000" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.DemoLogin || cfg.ValidateOnInit {
		t.Error("demo login or validate-on-init enabled by default")
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadClient_Env(t *testing.T) {
	t.Setenv("TIJARA_API_URL", "https://api.example.com")
	t.Setenv("TIJARA_TIMEOUT", "5s")
	t.Setenv("TIJARA_DEMO_LOGIN", "true")

	cfg, err := LoadClient(context.Background())
	if err != nil {
		t.Fatalf("LoadClient() error = %v", err)
	}

	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if !cfg.DemoLogin {
		t.Error("DemoLogin flag not picked up")
	}
}

func TestLoadGateway(t *testing.T) {
	t.Setenv("TIJARA_UI_ADDR", ":8080")
	t.Setenv("TIJARA_UI_SECURE", "true")

	cfg, err := LoadGateway(context.Background())
	if err != nil {
		t.Fatalf("LoadGateway() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if !cfg.SecureCookies {
		t.Error("SecureCookies not picked up")
	}
}

func TestFileConfig_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// No file yet: zero config, no error.
	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() with no file error = %v", err)
	}
	if cfg.Server != "" {
		t.Errorf("unexpected server: %q", cfg.Server)
	}

	want := FileConfig{
		Server:    "https://api.example.com",
		DemoLogin: true,
		LogLevel:  "debug",
	}
	if err := SaveFile(want); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	got, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got != want {
		t.Errorf("LoadFile() = %+v, want %+v", got, want)
	}
}
