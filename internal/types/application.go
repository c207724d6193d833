package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/matching"
)

// ApplicationStatus is the review state of a job application.
type ApplicationStatus string

// Application statuses. Shortlisted and rejected are final: once set,
// further transitions are refused.
const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewed    ApplicationStatus = "reviewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected:
		return true
	}
	return false
}

// Final reports whether the status permits no further transitions.
func (s ApplicationStatus) Final() bool {
	return s == StatusShortlisted || s == StatusRejected
}

// Application represents a candidate's application to a job, including
// the match report computed at apply time.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"job_id"`
	ApplicantID uuid.UUID         `json:"applicant_id"`
	Status      ApplicationStatus `json:"status"`
	MatchReport *matching.Report  `json:"match_report,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Denormalized for list views.
	JobTitle      string `json:"job_title,omitempty"`
	Company       string `json:"company,omitempty"`
	ApplicantName string `json:"applicant_name,omitempty"`
}

// UpdateApplicationStatusRequest changes an application's review state.
type UpdateApplicationStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending reviewed shortlisted rejected"`
}
