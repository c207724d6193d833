//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestApplicationStatus_Valid(t *testing.T) {
	for _, s := range []ApplicationStatus{StatusPending, StatusReviewed, StatusShortlisted, StatusRejected} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ApplicationStatus("accepted").Valid())
	assert.False(t, ApplicationStatus("").Valid())
}

func TestApplicationStatus_Final(t *testing.T) {
	assert.False(t, StatusPending.Final())
	assert.False(t, StatusReviewed.Final())
	assert.True(t, StatusShortlisted.Final())
	assert.True(t, StatusRejected.Final())
}

func TestUpdateApplicationStatusRequest_Validation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(UpdateApplicationStatusRequest{Status: StatusReviewed}))
	assert.Error(t, validate.Struct(UpdateApplicationStatusRequest{}))
	assert.Error(t, validate.Struct(UpdateApplicationStatusRequest{Status: "accepted"}))
}
