package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("analyzer.json", "match_analysis")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "{{.ResumeText}}")
	assert.Contains(t, prompt, "{{.RequiredSkills}}")
}

func TestGet_ReviewPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("review.json", "resume_review")
	require.NoError(t, err)
	assert.Contains(t, prompt, "---Matched Skills Start---")
	assert.Contains(t, prompt, "---ATS Score End---")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("analyzer.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	template := "Analyze {{.ResumeText}} against {{.JobDescription}}."
	data := map[string]string{
		"ResumeText":     "resume body",
		"JobDescription": "job body",
	}

	result := Format(template, data)
	assert.Equal(t, "Analyze resume body against job body.", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get("analyzer.json", "match_analysis")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("analyzer.json", "match_analysis")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
