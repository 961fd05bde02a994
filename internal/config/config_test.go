package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvTokenPath, "")

	cfg := FromEnv()
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.TokenPath == "" {
		t.Fatal("TokenPath should have a default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://example.test:9999")
	t.Setenv(EnvTokenPath, "/tmp/tok")

	cfg := FromEnv()
	if cfg.BaseURL != "http://example.test:9999" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.TokenPath != "/tmp/tok" {
		t.Fatalf("TokenPath = %q", cfg.TokenPath)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	cfg := Config{Timeout: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for empty config")
	}
}
