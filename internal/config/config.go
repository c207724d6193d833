// Package config provides configuration loading and validation for the
// job portal server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds the server's environment-derived configuration.
type AppConfig struct {
	Port        int
	DatabaseURL string
	// GeminiAPIKey enables the generative analyzer. When empty the
	// matching pipeline runs on its deterministic fallback only.
	GeminiAPIKey string
	GeminiModel  string
	Debug        bool
}

// NewAppConfig creates the application configuration from environment
// variables. It reads PORT (default: 8080), DATABASE_URL (required),
// GEMINI_API_KEY, GEMINI_MODEL and DEBUG.
func NewAppConfig() (*AppConfig, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	config := &AppConfig{
		Port:         port,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		Debug:        os.Getenv("DEBUG") == "true",
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AppConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}
