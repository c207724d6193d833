package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/matching"
)

// Job represents a job posting.
type Job struct {
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

// CreateJobRequest represents a job posting creation request. Each skill
// carries an importance weight used by the matching pipeline.
type CreateJobRequest struct {
	Title       string                 `json:"title" validate:"required,min=1"`
	Company     string                 `json:"company" validate:"required,min=1"`
	Description string                 `json:"description" validate:"required,min=1"`
	Location    string                 `json:"location,omitempty"`
	Salary      string                 `json:"salary,omitempty"`
	JobType     string                 `json:"job_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	Skills      []matching.Requirement `json:"skills" validate:"required,min=1,dive"`
}

// UpdateJobRequest represents a partial job update. Nil fields are left
// unchanged.
type UpdateJobRequest struct {
	Title       *string                 `json:"title,omitempty" validate:"omitempty,min=1"`
	Company     *string                 `json:"company,omitempty" validate:"omitempty,min=1"`
	Description *string                 `json:"description,omitempty" validate:"omitempty,min=1"`
	Location    *string                 `json:"location,omitempty"`
	Salary      *string                 `json:"salary,omitempty"`
	JobType     *string                 `json:"job_type,omitempty" validate:"omitempty,oneof=full-time part-time contract internship"`
	Skills      *[]matching.Requirement `json:"skills,omitempty" validate:"omitempty,min=1,dive"`
}

// CreateJobFromURLRequest asks the server to fetch a job posting page and
// prefill a draft from its text.
type CreateJobFromURLRequest struct {
	URL        string `json:"url" validate:"required,url"`
	UseBrowser bool   `json:"use_browser,omitempty"`
}

// JobDraft is the prefilled posting extracted from a fetched page. The
// recruiter reviews and completes it before creating the job.
type JobDraft struct {
	SourceURL   string                 `json:"source_url"`
	Description string                 `json:"description"`
	Skills      []matching.Requirement `json:"skills"`
}
