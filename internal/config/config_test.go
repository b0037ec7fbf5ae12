package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CM_USE_REMOTE_BACKEND", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("GENERATION_MIN_TURNS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "careermirror.db", cfg.LocalStorePath)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.MinTranscriptTurns)
	assert.False(t, cfg.RemoteSelected())
}

func TestLoadBackendSelection(t *testing.T) {
	tests := []struct {
		name        string
		databaseURL string
		flag        string
		wantRemote  bool
		wantErr     bool
	}{
		{name: "neither set", wantRemote: false},
		{name: "url without flag", databaseURL: "postgres://localhost/cm", wantRemote: false},
		{name: "url and flag", databaseURL: "postgres://localhost/cm", flag: "true", wantRemote: true},
		{name: "flag without url", flag: "true", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tt.databaseURL)
			t.Setenv("CM_USE_REMOTE_BACKEND", tt.flag)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRemote, cfg.RemoteSelected())
		})
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("GENERATION_MIN_TURNS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GENERATION_MIN_TURNS")
}
