package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharatshaala/wishsync/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{
			name:   "missing base url",
			mutate: func(c *config.Config) { c.API.BaseURL = "" },
			errMsg: "base_url",
		},
		{
			name:   "zero timeout",
			mutate: func(c *config.Config) { c.API.Timeout = 0 },
			errMsg: "timeout",
		},
		{
			name:   "missing data dir",
			mutate: func(c *config.Config) { c.Storage.DataDir = "" },
			errMsg: "data_dir",
		},
		{
			name:   "unknown backend",
			mutate: func(c *config.Config) { c.Storage.Backend = "redis" },
			errMsg: "storage.backend",
		},
		{
			name:   "unknown log level",
			mutate: func(c *config.Config) { c.Log.Level = "verbose" },
			errMsg: "log.level",
		},
		{
			name:   "unknown log format",
			mutate: func(c *config.Config) { c.Log.Format = "xml" },
			errMsg: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	loader := config.NewLoader("")

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, ".wishsync", cfg.Storage.DataDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wishsync.yaml")
	content := `api:
  base_url: https://bharatshaala.com/api
  timeout: 10s
storage:
  backend: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://bharatshaala.com/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "wishsync/1.0", cfg.API.UserAgent)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	assert.Error(t, err)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: redis\n"), 0644))

	_, err := config.NewLoader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WISHSYNC_STORAGE_BACKEND", "sqlite")
	t.Setenv("WISHSYNC_LOG_LEVEL", "debug")

	cfg, err := config.NewLoader("").Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}
