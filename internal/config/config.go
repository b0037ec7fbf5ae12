// Package config provides environment-driven configuration for the
// CareerMirror server: backend selection, session lifetime, password
// hashing, and generation settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the process-wide configuration, read once at startup.
type Config struct {
	Port int

	// Backend selection. The remote strategy is used only when a
	// database URL is present AND the feature flag is enabled; the
	// choice is made once and never changes mid-session.
	DatabaseURL      string
	UseRemoteBackend bool
	LocalStorePath   string

	GeminiAPIKey string

	SessionTTL time.Duration

	// MinTranscriptTurns is the minimum number of conversation turns
	// required before generation is attempted.
	MinTranscriptTurns int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnvInt("PORT", 8080),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		UseRemoteBackend:   getEnvBool("CM_USE_REMOTE_BACKEND", false),
		LocalStorePath:     getEnvString("CM_LOCAL_STORE", "careermirror.db"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		SessionTTL:         time.Duration(getEnvInt("SESSION_TTL_HOURS", 720)) * time.Hour,
		MinTranscriptTurns: getEnvInt("GENERATION_MIN_TURNS", 2),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL_HOURS too small: %s", c.SessionTTL)
	}
	if c.MinTranscriptTurns < 1 {
		return fmt.Errorf("GENERATION_MIN_TURNS must be at least 1, got: %d", c.MinTranscriptTurns)
	}
	if c.UseRemoteBackend && c.DatabaseURL == "" {
		return fmt.Errorf("CM_USE_REMOTE_BACKEND is set but DATABASE_URL is empty")
	}
	return nil
}

// RemoteSelected reports whether the remote backend strategy applies:
// endpoint plus credential present and the feature flag enabled.
func (c *Config) RemoteSelected() bool {
	return c.UseRemoteBackend && c.DatabaseURL != ""
}

// getEnvString gets an environment variable with a default value.
func getEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
