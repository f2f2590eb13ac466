// Package config provides environment-driven configuration for the server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Environment variable names recognized by the application. Model override
// variables live in the llm package.
const (
	EnvAPIKey  = "OPENROUTER_API_KEY"
	EnvAppURL  = "APP_URL"
	EnvPort    = "PORT"
	EnvDataDir = "DATA_DIR"
)

// Config holds the runtime settings for the server.
type Config struct {
	// Port the HTTP server listens on.
	Port int
	// APIKey is the OpenRouter credential. May be empty at startup; the
	// gateway fails per request when it is missing.
	APIKey string
	// AppURL is sent as the HTTP-Referer header on provider calls.
	AppURL string
	// DataDir holds the local snapshot database.
	DataDir string
}

// FromEnv builds a Config from the environment, applying defaults for
// anything unset.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:    8080,
		APIKey:  os.Getenv(EnvAPIKey),
		AppURL:  envOrDefault(EnvAppURL, "http://localhost:3000"),
		DataDir: os.Getenv(EnvDataDir),
	}

	if raw := os.Getenv(EnvPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("config error: invalid %s value %q", EnvPort, raw)
		}
		cfg.Port = port
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config error: failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".gapdebug")
	}

	return cfg, nil
}

// SnapshotPath is the location of the local snapshot database.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "snapshots.db")
}

// EnsureDataDir creates the data directory if it does not exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", c.DataDir, err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
