// Package config holds the client configuration, read from the
// environment (optionally seeded from a .env file by main).
package config

import (
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Env var names.
const (
	EnvBaseURL   = "PLATEBOOK_API_URL"
	EnvTokenPath = "PLATEBOOK_TOKEN_PATH"
)

// DefaultBaseURL points at a locally running API server.
const DefaultBaseURL = "http://127.0.0.1:5000"

// Config represents the client configuration.
type Config struct {
	// BaseURL is the remote API origin, without a trailing slash.
	BaseURL string
	// TokenPath is where the bearer token is persisted between runs.
	TokenPath string
	// Timeout applies to every HTTP request.
	Timeout time.Duration
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset.
func FromEnv() Config {
	cfg := Config{
		BaseURL:   os.Getenv(EnvBaseURL),
		TokenPath: os.Getenv(EnvTokenPath),
		Timeout:   30 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = defaultTokenPath()
	}
	return cfg
}

// defaultTokenPath places the token under the user config dir, falling
// back to a dotfile in the working directory when that is unavailable.
func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".platebook-token"
	}
	return filepath.Join(dir, "platebook", "token")
}

// Validate validates the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.TokenPath, validation.Required),
		validation.Field(&c.Timeout, validation.Required),
	)
}
