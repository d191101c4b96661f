// Package config holds process configuration for the Tijara client
// binaries, loaded from the environment and an optional config file.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// ClientConfig configures the platform client and session layer shared
// by the CLI and the web gateway.
type ClientConfig struct {
	// APIURL is the backend base address.
	APIURL string `env:"TIJARA_API_URL, default=http://localhost:5000"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"TIJARA_TIMEOUT, default=30s"`

	// DBPath is the credential store location. Empty selects
	// ~/.tijara/credentials.db; ":memory:" is useful in tests.
	DBPath string `env:"TIJARA_DB_PATH"`

	// DemoLogin enables the local demo-account fallback provider.
	// Off by default; production builds leave it off.
	DemoLogin bool `env:"TIJARA_DEMO_LOGIN, default=false"`

	// ValidateOnInit performs a token-validation round-trip when a
	// persisted session is restored at startup.
	ValidateOnInit bool `env:"TIJARA_VALIDATE_ON_INIT, default=false"`

	LogLevel  string `env:"TIJARA_LOG_LEVEL, default=info"`
	LogFormat string `env:"TIJARA_LOG_FORMAT, default=text"`
}

// GatewayConfig configures the local web gateway.
type GatewayConfig struct {
	// Addr is the listen address.
	Addr string `env:"TIJARA_UI_ADDR, default=:3000"`

	// SecureCookies marks session cookies Secure (HTTPS deployments).
	SecureCookies bool `env:"TIJARA_UI_SECURE, default=false"`
}

// LoadClient reads ClientConfig from the environment.
func LoadClient(ctx context.Context) (ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, fmt.Errorf("load client config: %w", err)
	}
	return cfg, nil
}

// LoadGateway reads GatewayConfig from the environment.
func LoadGateway(ctx context.Context) (GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, fmt.Errorf("load gateway config: %w", err)
	}
	return cfg, nil
}

// ConfigDir returns the per-user configuration directory (~/.tijara),
// creating it if missing.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	dir := filepath.Join(home, ".tijara")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// DefaultDBPath returns the default credential store location.
func DefaultDBPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.db"), nil
}
