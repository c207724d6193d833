package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-portal/internal/matching"
)

const jobColumns = `id, recruiter_id, title, company, description, COALESCE(location, ''),
	COALESCE(salary, ''), COALESCE(job_type, ''), skills, COALESCE(source_url, ''),
	created_at, updated_at`

func scanJob(row pgx.Row) (*JobPosting, error) {
	var job JobPosting
	var skillsJSON []byte
	err := row.Scan(&job.ID, &job.RecruiterID, &job.Title, &job.Company, &job.Description,
		&job.Location, &job.Salary, &job.JobType, &skillsJSON, &job.SourceURL,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(skillsJSON, &job.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode job skills: %w", err)
	}
	return &job, nil
}

// CreateJob creates a job posting and returns its ID
func (db *DB) CreateJob(ctx context.Context, job *JobPosting) (uuid.UUID, error) {
	skillsJSON, err := json.Marshal(job.Skills)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job skills: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, company, description, location, salary, job_type, skills, source_url)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''))
		 RETURNING id`,
		job.RecruiterID, job.Title, job.Company, job.Description,
		job.Location, job.Salary, job.JobType, skillsJSON, job.SourceURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job posting by ID. Returns nil without error when no
// such job exists.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*JobPosting, error) {
	job, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID))
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs retrieves job postings with optional filters, newest first
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]JobPosting, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.RecruiterID != uuid.Nil {
		query += fmt.Sprintf(" AND recruiter_id = $%d", argNum)
		args = append(args, filters.RecruiterID)
		argNum++
	}
	if filters.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, "%"+filters.Search+"%")
		argNum++
	}
	if filters.JobType != "" {
		query += fmt.Sprintf(" AND job_type = $%d", argNum)
		args = append(args, filters.JobType)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobPosting
	for rows.Next() {
		var job JobPosting
		var skillsJSON []byte
		if err := rows.Scan(&job.ID, &job.RecruiterID, &job.Title, &job.Company, &job.Description,
			&job.Location, &job.Salary, &job.JobType, &skillsJSON, &job.SourceURL,
			&job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := json.Unmarshal(skillsJSON, &job.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode job skills: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// JobUpdate holds optional job fields; nil fields are left unchanged.
type JobUpdate struct {
	Title       *string
	Company     *string
	Description *string
	Location    *string
	Salary      *string
	JobType     *string
	Skills      *[]matching.Requirement
}

// UpdateJob applies a partial update to a job posting
func (db *DB) UpdateJob(ctx context.Context, jobID uuid.UUID, update JobUpdate) error {
	query := `UPDATE jobs SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if update.Title != nil {
		query += fmt.Sprintf(", title = $%d", argNum)
		args = append(args, *update.Title)
		argNum++
	}
	if update.Company != nil {
		query += fmt.Sprintf(", company = $%d", argNum)
		args = append(args, *update.Company)
		argNum++
	}
	if update.Description != nil {
		query += fmt.Sprintf(", description = $%d", argNum)
		args = append(args, *update.Description)
		argNum++
	}
	if update.Location != nil {
		query += fmt.Sprintf(", location = NULLIF($%d, '')", argNum)
		args = append(args, *update.Location)
		argNum++
	}
	if update.Salary != nil {
		query += fmt.Sprintf(", salary = NULLIF($%d, '')", argNum)
		args = append(args, *update.Salary)
		argNum++
	}
	if update.JobType != nil {
		query += fmt.Sprintf(", job_type = NULLIF($%d, '')", argNum)
		args = append(args, *update.JobType)
		argNum++
	}
	if update.Skills != nil {
		skillsJSON, err := json.Marshal(*update.Skills)
		if err != nil {
			return fmt.Errorf("failed to marshal job skills: %w", err)
		}
		query += fmt.Sprintf(", skills = $%d", argNum)
		args = append(args, skillsJSON)
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, jobID)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// DeleteJob deletes a job posting and its applications (via cascade)
func (db *DB) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}
