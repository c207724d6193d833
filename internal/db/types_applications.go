package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/matching"
)

// Application represents an application row. The match report computed
// at apply time is stored as JSONB.
type Application struct {
	ID          uuid.UUID        `json:"id"`
	JobID       uuid.UUID        `json:"job_id"`
	ApplicantID uuid.UUID        `json:"applicant_id"`
	Status      string           `json:"status"`
	MatchReport *matching.Report `json:"match_report,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Joined for list views.
	JobTitle      string `json:"job_title,omitempty"`
	Company       string `json:"company,omitempty"`
	ApplicantName string `json:"applicant_name,omitempty"`
}
