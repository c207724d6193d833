package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMatchResponse_Valid(t *testing.T) {
	document := `{
		"extracted_skills": ["React", "JavaScript"],
		"skill_matches": [
			{"job_skill": "React", "present": true, "importance": 90, "evidence": "Built SPAs with React"}
		],
		"match_score": 75,
		"matched_skills": ["React"],
		"missing_skills": ["Docker"],
		"suggestions": ["Add Docker experience"]
	}`

	assert.NoError(t, ValidateMatchResponse(document))
}

func TestValidateMatchResponse_MinimalValid(t *testing.T) {
	document := `{"match_score": 0, "matched_skills": [], "missing_skills": []}`
	assert.NoError(t, ValidateMatchResponse(document))
}

func TestValidateMatchResponse_MissingRequiredFields(t *testing.T) {
	document := `{"matched_skills": ["React"]}`

	err := ValidateMatchResponse(document)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateMatchResponse_WrongTypes(t *testing.T) {
	document := `{"match_score": "high", "matched_skills": "React", "missing_skills": []}`

	err := ValidateMatchResponse(document)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateMatchResponse_NotJSON(t *testing.T) {
	err := ValidateMatchResponse("I could not produce JSON, sorry.")
	require.Error(t, err)

	var le *SchemaLoadError
	require.ErrorAs(t, err, &le)
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "match_score", Message: "Invalid type"},
	}}
	assert.Contains(t, ve.Error(), "match_score")
	assert.Contains(t, ve.Error(), "Invalid type")
}
