package matching

import (
	"fmt"
	"strings"
)

// Requirement is a weighted skill required by a job posting.
type Requirement struct {
	Name       string `json:"name" validate:"required,min=1"`
	Importance int    `json:"importance" validate:"gte=0,lte=100"`
}

// SkillMatch records the model's judgement for one job requirement,
// including the resume text it cited as evidence.
type SkillMatch struct {
	JobSkill   string `json:"job_skill"`
	Present    bool   `json:"present"`
	Importance int    `json:"importance"`
	Evidence   string `json:"evidence,omitempty"`
}

// Report is the output of a resume analysis. It is created fresh per
// request, never mutated after construction, and persisted verbatim by the
// caller as part of the application record.
//
// After reconciliation, MatchedSkills and MissingSkills partition the job's
// required skill names: every requirement appears in exactly one of them.
type Report struct {
	ExtractedSkills []string     `json:"extracted_skills,omitempty"`
	SkillMatches    []SkillMatch `json:"skill_matches,omitempty"`
	MatchScore      int          `json:"match_score"`
	MatchedSkills   []string     `json:"matched_skills"`
	MissingSkills   []string     `json:"missing_skills"`
	Suggestions     []string     `json:"suggestions"`
}

// clampScore bounds a score to the valid [0, 100] range.
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Suggestion text is user-facing prose; it is assembled by small pure
// formatters over already-computed values so report construction stays free
// of ad-hoc string building.

// titleFloorSuggestion explains the minimum score applied when the resume
// shows relevant role experience but the model scored it low.
func titleFloorSuggestion() string {
	return "Your resume contains relevant job titles and experience, but you should explicitly list more of the required skills."
}

// impliedSkillsSuggestion describes which matched skills imply which
// promoted skills.
func impliedSkillsSuggestion(matched, implied []string) string {
	return fmt.Sprintf("Your knowledge of %s implies familiarity with %s.",
		strings.Join(matched, ", "), strings.Join(implied, ", "))
}

// fallbackSuggestions is the suggestion list for the deterministic local
// path, leading with the service error that forced the fallback.
func fallbackSuggestions(cause error, extracted, implied []string) []string {
	return []string{
		fmt.Sprintf("Error analyzing resume: %v", cause),
		"Please explicitly list your skills in a dedicated skills section.",
		impliedSkillsSuggestion(extracted, implied),
	}
}
