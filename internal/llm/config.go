// Package llm provides the generative model client used for resume
// analysis, with a single configured model and per-request timeouts.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Model       string
	Temperature float32
	// Timeout bounds each generation request. Zero disables the bound and
	// defers to the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		Temperature: 0.1,
		Timeout:     60 * time.Second,
	}
}

// WithModel returns a copy of the config using a specific model
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}
