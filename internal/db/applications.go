package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-portal/internal/matching"
)

// CreateApplication records an application with its match report and
// returns the new ID
func (db *DB) CreateApplication(ctx context.Context, jobID, applicantID uuid.UUID, report *matching.Report) (uuid.UUID, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal match report: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, applicant_id, status, match_report)
		 VALUES ($1, $2, 'pending', $3)
		 RETURNING id`,
		jobID, applicantID, reportJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application by ID. Returns nil without
// error when no such application exists.
func (db *DB) GetApplication(ctx context.Context, applicationID uuid.UUID) (*Application, error) {
	var app Application
	var reportJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, applicant_id, status, match_report, created_at, updated_at
		 FROM applications WHERE id = $1`,
		applicationID,
	).Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &reportJSON,
		&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if len(reportJSON) > 0 {
		if err := json.Unmarshal(reportJSON, &app.MatchReport); err != nil {
			return nil, fmt.Errorf("failed to decode match report: %w", err)
		}
	}
	return &app, nil
}

// HasApplied reports whether the applicant already applied to the job
func (db *DB) HasApplied(ctx context.Context, jobID, applicantID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND applicant_id = $2)`,
		jobID, applicantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", err)
	}
	return exists, nil
}

// ListApplicationsByJob retrieves a job's applications with applicant
// names, newest first
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.status, a.match_report,
		        a.created_at, a.updated_at, u.name
		 FROM applications a
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.job_id = $1
		 ORDER BY a.created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		var reportJSON []byte
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &reportJSON,
			&app.CreatedAt, &app.UpdatedAt, &app.ApplicantName); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if len(reportJSON) > 0 {
			if err := json.Unmarshal(reportJSON, &app.MatchReport); err != nil {
				return nil, fmt.Errorf("failed to decode match report: %w", err)
			}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// ListApplicationsByApplicant retrieves an applicant's applications with
// job titles, newest first
func (db *DB) ListApplicationsByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.applicant_id, a.status, a.match_report,
		        a.created_at, a.updated_at, j.title, j.company
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.applicant_id = $1
		 ORDER BY a.created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		var reportJSON []byte
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &reportJSON,
			&app.CreatedAt, &app.UpdatedAt, &app.JobTitle, &app.Company); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		if len(reportJSON) > 0 {
			if err := json.Unmarshal(reportJSON, &app.MatchReport); err != nil {
				return nil, fmt.Errorf("failed to decode match report: %w", err)
			}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// UpdateApplicationStatus changes an application's review state
func (db *DB) UpdateApplicationStatus(ctx context.Context, applicationID uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, applicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", applicationID)
	}
	return nil
}
