package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "portal-session-signing-key-at-least-32-bytes")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "portal-session-signing-key-at-least-32-bytes", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestNewJWTConfig_ExpirationOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "portal-session-signing-key-at-least-32-bytes")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.ExpirationHours)
}

func TestNewJWTConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		hours  string
	}{
		{"missing secret", "", ""},
		{"non-numeric hours", "portal-session-signing-key", "one-day"},
		{"zero hours", "portal-session-signing-key", "0"},
		{"negative hours", "portal-session-signing-key", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", tt.secret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.hours)

			_, err := NewJWTConfig()
			assert.Error(t, err)
		})
	}
}

func TestJWTConfig_TokenTTL(t *testing.T) {
	cfg := &JWTConfig{Secret: "portal-session-signing-key", ExpirationHours: 48}
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL())
}
