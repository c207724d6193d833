package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/matching"
	"github.com/jonathan/job-portal/internal/types"
)

// handleApply submits the authenticated applicant's stored resume to a
// job. The matching pipeline runs synchronously and its report is
// persisted verbatim on the application row.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	applicant, err := s.requireRole(r, string(types.RoleApplicant))
	if err != nil {
		s.handleError(w, err)
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if job == nil {
		s.handleError(w, &ErrNotFound{Resource: "job", ID: jobID})
		return
	}

	applied, err := s.db.HasApplied(r.Context(), jobID, applicant.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if applied {
		s.handleError(w, &ErrConflict{Message: "you have already applied to this job"})
		return
	}

	resume, err := s.db.GetResume(r.Context(), applicant.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if resume == nil {
		s.handleError(w, &ErrValidation{Field: "resume", Message: "upload a resume before applying"})
		return
	}

	report, err := s.matcher.Process(r.Context(),
		matching.Document{MIME: resume.MIME, Data: resume.Data},
		job.Skills, job.Description)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applicationID, err := s.db.CreateApplication(r.Context(), jobID, applicant.ID, report)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.notifyApplicationSubmitted(r.Context(), applicant, job, applicationID, report)

	application, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, application)
}

// notifyApplicationSubmitted records notifications for both parties and
// opens the conversation between applicant and recruiter with a system
// message. Failures here are logged, not surfaced: the application
// itself already succeeded.
func (s *Server) notifyApplicationSubmitted(ctx context.Context, applicant *db.User, job *db.JobPosting, applicationID uuid.UUID, report *matching.Report) {
	if _, err := s.db.CreateNotification(ctx, job.RecruiterID,
		string(types.NotificationNewApplication),
		fmt.Sprintf("%s applied to %s (match score %d)", applicant.Name, job.Title, report.MatchScore),
		&applicationID); err != nil {
		s.logger.Error("recording recruiter notification", zap.Error(err))
	}

	if _, err := s.db.CreateNotification(ctx, applicant.ID,
		string(types.NotificationApplicationSubmitted),
		fmt.Sprintf("Your application to %s at %s was submitted", job.Title, job.Company),
		&applicationID); err != nil {
		s.logger.Error("recording applicant notification", zap.Error(err))
	}

	conversation, err := s.db.FindConversationBetween(ctx, applicant.ID, job.RecruiterID)
	if err != nil {
		s.logger.Error("looking up conversation", zap.Error(err))
		return
	}
	var conversationID uuid.UUID
	if conversation != nil {
		conversationID = conversation.ID
	} else {
		conversationID, err = s.db.CreateConversation(ctx, applicant.ID, job.RecruiterID, &job.ID)
		if err != nil {
			s.logger.Error("creating conversation", zap.Error(err))
			return
		}
	}

	content := fmt.Sprintf("%s applied to %s.", applicant.Name, job.Title)
	if _, err := s.db.CreateMessage(ctx, conversationID, applicant.ID, content, true); err != nil {
		s.logger.Error("recording system message", zap.Error(err))
	}
}

// handleListJobApplications lists the applications for a posting. Only
// its recruiter may see them.
func (s *Server) handleListJobApplications(w http.ResponseWriter, r *http.Request) {
	user, err := s.requireRole(r, string(types.RoleRecruiter))
	if err != nil {
		s.handleError(w, err)
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if job == nil {
		s.handleError(w, &ErrNotFound{Resource: "job", ID: jobID})
		return
	}
	if job.RecruiterID != user.ID {
		s.handleError(w, &ErrForbidden{Message: "only the posting recruiter may view its applications"})
		return
	}

	applications, err := s.db.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": applications})
}

// handleListMyApplications lists the authenticated applicant's
// applications.
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applications, err := s.db.ListApplicationsByApplicant(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": applications})
}

// handleGetApplication returns one application with its match report.
// Visible to the applicant and to the posting's recruiter.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applicationID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	application, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if application == nil {
		s.handleError(w, &ErrNotFound{Resource: "application", ID: applicationID})
		return
	}

	if application.ApplicantID != user.ID {
		job, err := s.db.GetJob(r.Context(), application.JobID)
		if err != nil {
			s.handleError(w, err)
			return
		}
		if job == nil || job.RecruiterID != user.ID {
			s.handleError(w, &ErrForbidden{Message: "not a party to this application"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, application)
}

// handleUpdateApplicationStatus moves an application to a new review
// state and notifies the applicant. Shortlisted and rejected are final.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	user, err := s.requireRole(r, string(types.RoleRecruiter))
	if err != nil {
		s.handleError(w, err)
		return
	}

	applicationID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var req types.UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	application, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if application == nil {
		s.handleError(w, &ErrNotFound{Resource: "application", ID: applicationID})
		return
	}

	job, err := s.db.GetJob(r.Context(), application.JobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if job == nil || job.RecruiterID != user.ID {
		s.handleError(w, &ErrForbidden{Message: "only the posting recruiter may update application status"})
		return
	}

	if types.ApplicationStatus(application.Status).Final() {
		s.handleError(w, &ErrConflict{Message: fmt.Sprintf("application is already %s", application.Status)})
		return
	}

	if err := s.db.UpdateApplicationStatus(r.Context(), applicationID, string(req.Status)); err != nil {
		s.handleError(w, err)
		return
	}

	if _, err := s.db.CreateNotification(r.Context(), application.ApplicantID,
		string(types.NotificationStatusChange),
		fmt.Sprintf("Your application to %s is now %s", job.Title, req.Status),
		&applicationID); err != nil {
		s.logger.Error("recording status notification", zap.Error(err))
	}

	updated, err := s.db.GetApplication(r.Context(), applicationID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}
