package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-portal/internal/extraction"
	"github.com/jonathan/job-portal/internal/matching"
)

func TestParseSkillFlags(t *testing.T) {
	t.Run("weighted pairs", func(t *testing.T) {
		reqs, err := parseSkillFlags("React:90,Node.js:70")
		require.NoError(t, err)
		assert.Equal(t, []matching.Requirement{
			{Name: "React", Importance: 90},
			{Name: "Node.js", Importance: 70},
		}, reqs)
	})

	t.Run("default importance without weight", func(t *testing.T) {
		reqs, err := parseSkillFlags("Go")
		require.NoError(t, err)
		assert.Equal(t, []matching.Requirement{{Name: "Go", Importance: 50}}, reqs)
	})

	t.Run("whitespace and empty entries are tolerated", func(t *testing.T) {
		reqs, err := parseSkillFlags(" React : 80 , ,SQL")
		require.NoError(t, err)
		assert.Equal(t, []matching.Requirement{
			{Name: "React", Importance: 80},
			{Name: "SQL", Importance: 50},
		}, reqs)
	})

	t.Run("invalid weight", func(t *testing.T) {
		_, err := parseSkillFlags("React:high")
		assert.Error(t, err)
	})

	t.Run("empty skill name", func(t *testing.T) {
		_, err := parseSkillFlags(":90")
		assert.Error(t, err)
	})

	t.Run("no skills", func(t *testing.T) {
		_, err := parseSkillFlags(" , ")
		assert.Error(t, err)
	})
}

func TestMimeFromPath(t *testing.T) {
	assert.Equal(t, extraction.MIMEPDF, mimeFromPath("resume.pdf"))
	assert.Equal(t, extraction.MIMEPDF, mimeFromPath("Resume.PDF"))
	assert.Equal(t, extraction.MIMEDOCX, mimeFromPath("cv.docx"))
	assert.Equal(t, extraction.MIMEText, mimeFromPath("notes.txt"))
	assert.Equal(t, extraction.MIMEText, mimeFromPath("resume"))
}
