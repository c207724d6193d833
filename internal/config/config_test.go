package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobportal")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("DEBUG", "")

	cfg, err := NewAppConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/jobportal", cfg.DatabaseURL)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.False(t, cfg.Debug)
}

func TestNewAppConfig_Explicit(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobportal")
	t.Setenv("GEMINI_API_KEY", "key123")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("DEBUG", "true")

	cfg, err := NewAppConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "key123", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	assert.True(t, cfg.Debug)
}

func TestNewAppConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewAppConfig_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobportal")

	tests := []struct {
		name string
		port string
	}{
		{"not a number", "eighty"},
		{"zero", "0"},
		{"too large", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			_, err := NewAppConfig()
			assert.Error(t, err)
		})
	}
}
