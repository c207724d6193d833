package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.InDelta(t, 0.1, config.Temperature, 0.001)
	assert.Equal(t, 60*time.Second, config.Timeout)
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel("gemini-2.5-pro")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-flash", base.Model)

	assert.Equal(t, "gemini-2.5-pro", custom.Model)
	assert.Equal(t, base.Timeout, custom.Timeout)
}
