package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name            string
		resumeSkills    []string
		jobSkills       []Requirement
		expectedMatched []string
		expectedMissing []string
	}{
		{
			name:            "exact match",
			resumeSkills:    []string{"React", "Docker"},
			jobSkills:       []Requirement{{Name: "React", Importance: 90}},
			expectedMatched: []string{"React"},
			expectedMissing: []string{},
		},
		{
			name:            "naming variants match",
			resumeSkills:    []string{"ReactJS", "NodeJS", "Mongo DB"},
			jobSkills:       []Requirement{{Name: "React.js", Importance: 90}, {Name: "Node.js", Importance: 80}},
			expectedMatched: []string{"React.js", "Node.js"},
			expectedMissing: []string{},
		},
		{
			name:            "substring containment either way",
			resumeSkills:    []string{"React Native"},
			jobSkills:       []Requirement{{Name: "React", Importance: 90}},
			expectedMatched: []string{"React"},
			expectedMissing: []string{},
		},
		{
			name:            "token overlap",
			resumeSkills:    []string{"Java Spring"},
			jobSkills:       []Requirement{{Name: "Spring Boot", Importance: 70}},
			expectedMatched: []string{"Spring Boot"},
			expectedMissing: []string{},
		},
		{
			name:         "unrelated skills are missing",
			resumeSkills: []string{"React", "Node.js"},
			jobSkills: []Requirement{
				{Name: "React", Importance: 90},
				{Name: "COBOL", Importance: 50},
				{Name: "Rust", Importance: 40},
			},
			expectedMatched: []string{"React"},
			expectedMissing: []string{"COBOL", "Rust"},
		},
		{
			name:            "empty resume misses everything",
			resumeSkills:    []string{},
			jobSkills:       []Requirement{{Name: "React", Importance: 90}},
			expectedMatched: []string{},
			expectedMissing: []string{"React"},
		},
		{
			name:            "no requirements",
			resumeSkills:    []string{"React"},
			jobSkills:       []Requirement{},
			expectedMatched: []string{},
			expectedMissing: []string{},
		},
		{
			name:            "outputs keep requirement order and original names",
			resumeSkills:    []string{"node.js", "react"},
			jobSkills:       []Requirement{{Name: "ReactJS", Importance: 90}, {Name: "NodeJS", Importance: 80}},
			expectedMatched: []string{"ReactJS", "NodeJS"},
			expectedMissing: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, missing := MatchSkills(tt.resumeSkills, tt.jobSkills)
			assert.Equal(t, tt.expectedMatched, matched)
			assert.Equal(t, tt.expectedMissing, missing)
		})
	}
}

func TestMatchSkills_Deterministic(t *testing.T) {
	resume := []string{"React", "ReactJS", "Node.js", "Docker", "AWS Lambda"}
	jobs := []Requirement{
		{Name: "React", Importance: 90},
		{Name: "AWS", Importance: 60},
		{Name: "Kubernetes", Importance: 50},
	}

	firstMatched, firstMissing := MatchSkills(resume, jobs)
	for i := 0; i < 10; i++ {
		matched, missing := MatchSkills(resume, jobs)
		assert.Equal(t, firstMatched, matched)
		assert.Equal(t, firstMissing, missing)
	}
}

func TestTokensOverlap(t *testing.T) {
	assert.True(t, tokensOverlap("spring boot", "java spring"))
	assert.False(t, tokensOverlap("spring boot", "django"))
	assert.False(t, tokensOverlap("", "react"))
}
