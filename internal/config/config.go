package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// API configuration
	API APIConfig `mapstructure:"api"`

	// Authentication configuration
	Auth AuthConfig `mapstructure:"auth"`

	// Local storage paths
	Storage StorageConfig `mapstructure:"storage"`

	// Logging
	Log LogConfig `mapstructure:"log"`
}

// APIConfig for storefront server communication.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// AuthConfig for authentication settings.
type AuthConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`

	// Token persistence
	TokenFile string `mapstructure:"token_file"`
}

// StorageConfig for the on-device guest store.
type StorageConfig struct {
	// DataDir holds the guest collection files (or the SQLite database).
	DataDir string `mapstructure:"data_dir"`

	// Backend selects the local store implementation: "json" or "sqlite".
	Backend string `mapstructure:"backend"`
}

// LogConfig for logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() *Config {
	dataDir := ".wishsync"

	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:5000/api",
			Timeout:   30 * time.Second,
			UserAgent: "wishsync/1.0",
		},
		Auth: AuthConfig{
			TokenFile: filepath.Join(dataDir, "token.json"),
		},
		Storage: StorageConfig{
			DataDir: dataDir,
			Backend: "json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.Storage.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be json or sqlite, got %q", c.Storage.Backend)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
