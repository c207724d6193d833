package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/job-portal/internal/extraction"
	"github.com/jonathan/job-portal/internal/prompts"
)

// analyzeResumeRequest asks for a free-form review of the caller's
// stored resume against a job description.
type analyzeResumeRequest struct {
	JobDescription string `json:"job_description" validate:"required,min=1"`
}

// analyzeResumeResponse carries the full review text plus the sections
// parsed out of its delimiters.
type analyzeResumeResponse struct {
	Analysis      string   `json:"analysis"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	ATSScore      string   `json:"ats_score"`
}

// handleAnalyzeResume runs the generative resume review over the
// authenticated user's stored resume. Unlike the apply-time match
// pipeline this endpoint has no deterministic fallback: without a model
// client it is unavailable.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	if s.llmClient == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Resume analysis is not configured")
		return
	}

	var req analyzeResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	resume, err := s.db.GetResume(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if resume == nil {
		s.handleError(w, &ErrValidation{Field: "resume", Message: "upload a resume before requesting analysis"})
		return
	}

	resumeText, err := extraction.FromDocument(resume.MIME, resume.Data)
	if err != nil {
		s.handleError(w, err)
		return
	}

	template, err := prompts.Get("review.json", "resume_review")
	if err != nil {
		s.handleError(w, err)
		return
	}
	prompt := prompts.Format(template, map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": req.JobDescription,
	})

	analysis, err := s.llmClient.GenerateContent(r.Context(), prompt)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, "Resume analysis failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, analyzeResumeResponse{
		Analysis:      analysis,
		MatchedSkills: parseSectionList(analysis, "Matched Skills"),
		MissingSkills: parseSectionList(analysis, "Missing Skills"),
		ATSScore:      parseSection(analysis, "ATS Score"),
	})
}

// parseSection extracts the text between the review's
// "---<name> Start---" and "---<name> End---" delimiters.
func parseSection(text, name string) string {
	start := "---" + name + " Start---"
	end := "---" + name + " End---"

	startIdx := strings.Index(text, start)
	if startIdx < 0 {
		return ""
	}
	rest := text[startIdx+len(start):]
	endIdx := strings.Index(rest, end)
	if endIdx < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:endIdx])
}

// parseSectionList splits a delimited section into its bullet lines.
func parseSectionList(text, name string) []string {
	section := parseSection(text, name)
	if section == "" {
		return []string{}
	}

	items := []string{}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "-")
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
