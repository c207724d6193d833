package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/matching"
)

// JobPosting represents a job posting row. Skills are stored as a JSONB
// array of weighted requirements.
type JobPosting struct {
	ID          uuid.UUID              `json:"id"`
	RecruiterID uuid.UUID              `json:"recruiter_id"`
	Title       string                 `json:"title"`
	Company     string                 `json:"company"`
	Description string                 `json:"description"`
	Location    string                 `json:"location,omitempty"`
	Salary      string                 `json:"salary,omitempty"`
	JobType     string                 `json:"job_type,omitempty"`
	Skills      []matching.Requirement `json:"skills"`
	SourceURL   string                 `json:"source_url,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// JobFilters holds optional filters for listing job postings
type JobFilters struct {
	RecruiterID uuid.UUID
	Search      string
	JobType     string
	Limit       int
}
