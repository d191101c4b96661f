package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileName is the CLI config file inside ConfigDir.
const fileName = "config.yml"

// FileConfig is the optional per-user CLI configuration file
// (~/.tijara/config.yml). Environment variables and flags take
// precedence over it.
type FileConfig struct {
	Server    string `yaml:"server,omitempty"`
	DemoLogin bool   `yaml:"demo_login,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}

// LoadFile reads the CLI config file. A missing file yields a zero
// config, not an error.
func LoadFile() (FileConfig, error) {
	var cfg FileConfig

	dir, err := ConfigDir()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// SaveFile writes the CLI config file with owner-only permissions.
func SaveFile(cfg FileConfig) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
