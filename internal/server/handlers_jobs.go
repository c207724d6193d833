package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/fetch"
	"github.com/jonathan/job-portal/internal/matching"
	"github.com/jonathan/job-portal/internal/types"
)

// draftSkillImportance is the weight assigned to skills extracted from a
// fetched posting. The recruiter adjusts weights before publishing.
const draftSkillImportance = 50

// browserFetchTimeout bounds headless rendering of script-heavy boards.
const browserFetchTimeout = 60 * time.Second

// handleListJobs lists job postings with optional filters: search,
// job_type, limit, and mine=true to restrict to the caller's postings.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	filters := db.JobFilters{
		Search:  r.URL.Query().Get("search"),
		JobType: r.URL.Query().Get("job_type"),
	}
	if r.URL.Query().Get("mine") == "true" {
		filters.RecruiterID = user.ID
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		filters.Limit = parsed
	}

	jobs, err := s.db.ListJobs(r.Context(), filters)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleCreateJob creates a job posting. Recruiters only.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	user, err := s.requireRole(r, string(types.RoleRecruiter))
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	job := &db.JobPosting{
		RecruiterID: user.ID,
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		JobType:     req.JobType,
		Skills:      req.Skills,
	}
	jobID, err := s.db.CreateJob(r.Context(), job)
	if err != nil {
		s.handleError(w, err)
		return
	}

	created, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

// handleCreateJobFromURL fetches a job posting page and returns a draft
// prefilled with its text and the skills found in it. Recruiters only.
func (s *Server) handleCreateJobFromURL(w http.ResponseWriter, r *http.Request) {
	if _, err := s.requireRole(r, string(types.RoleRecruiter)); err != nil {
		s.handleError(w, err)
		return
	}

	var req types.CreateJobFromURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	text, err := s.fetchPostingText(r, req.URL, req.UseBrowser)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	skills := matching.ExtractSkills(text, s.graph)
	reqs := make([]matching.Requirement, 0, len(skills))
	for _, skill := range skills {
		reqs = append(reqs, matching.Requirement{Name: skill, Importance: draftSkillImportance})
	}

	s.jsonResponse(w, http.StatusOK, types.JobDraft{
		SourceURL:   req.URL,
		Description: text,
		Skills:      reqs,
	})
}

// fetchPostingText retrieves the posting page and extracts its main
// text, falling back to headless rendering when the static fetch yields
// too little content.
func (s *Server) fetchPostingText(r *http.Request, url string, forceBrowser bool) (string, error) {
	ctx := r.Context()

	if !forceBrowser {
		result, err := fetch.URL(ctx, url, nil)
		if err == nil {
			text, xerr := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
			if xerr == nil && !fetch.ShouldUseBrowser(text) {
				return text, nil
			}
		}
	}

	html, err := fetch.WithBrowser(ctx, url, browserFetchTimeout)
	if err != nil {
		return "", err
	}
	return fetch.ExtractMainText(html, fetch.JobPostingSelectors())
}

// handleGetJob returns one job posting.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
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
	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob applies a partial update to a posting. Only its
// recruiter may update it.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
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
		s.handleError(w, &ErrForbidden{Message: "only the posting recruiter may update it"})
		return
	}

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	update := db.JobUpdate{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		JobType:     req.JobType,
		Skills:      req.Skills,
	}
	if err := s.db.UpdateJob(r.Context(), jobID, update); err != nil {
		s.handleError(w, err)
		return
	}

	updated, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJob removes a posting. Only its recruiter may delete it.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
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
		s.handleError(w, &ErrForbidden{Message: "only the posting recruiter may delete it"})
		return
	}

	if err := s.db.DeleteJob(r.Context(), jobID); err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}
