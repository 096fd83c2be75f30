package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader reads configuration from file and environment.
type Loader struct {
	configPath string
}

// NewLoader creates a config loader. An empty path searches the default
// locations (./wishsync.yaml, ~/.wishsync/wishsync.yaml).
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load merges defaults, file values, and WISHSYNC_-prefixed environment
// variables, then validates the result.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()

	cfg := DefaultConfig()
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("auth.token_file", cfg.Auth.TokenFile)
	v.SetDefault("storage.data_dir", cfg.Storage.DataDir)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)

	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
	} else {
		v.SetConfigName("wishsync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.wishsync")
	}

	v.SetEnvPrefix("WISHSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file in the search path is fine; an explicit path or a
		// malformed file is not.
		var notFound viper.ConfigFileNotFoundError
		if l.configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
