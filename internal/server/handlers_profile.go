package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/extraction"
	"github.com/jonathan/job-portal/internal/types"
)

// maxResumeSize caps resume uploads at 10 MB.
const maxResumeSize = 10 << 20

// handleGetProfile returns the authenticated user's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, convertDBUserToTypesUser(user))
}

// handleUpdateProfile applies a partial update to the authenticated
// user's profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		s.handleError(w, &ErrValidation{Field: "name", Message: "must not be empty"})
		return
	}

	update := db.ProfileUpdate{
		Name:       req.Name,
		Phone:      req.Phone,
		Title:      req.Title,
		Location:   req.Location,
		Bio:        req.Bio,
		Experience: req.Experience,
		Education:  req.Education,
		Skills:     req.Skills,
	}
	if err := s.db.UpdateProfile(r.Context(), user.ID, update); err != nil {
		s.handleError(w, err)
		return
	}

	updated, err := s.db.GetUser(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, convertDBUserToTypesUser(updated))
}

// resumeMIMEFromUpload resolves the stored MIME type from the upload's
// declared content type and filename extension.
func resumeMIMEFromUpload(contentType, filename string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch ct {
	case extraction.MIMEPDF, extraction.MIMEDOCX, extraction.MIMEText:
		return ct, nil
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extraction.MIMEPDF, nil
	case ".docx":
		return extraction.MIMEDOCX, nil
	case ".txt":
		return extraction.MIMEText, nil
	}
	return "", &ErrValidation{Field: "resume", Message: "only PDF, DOCX and plain text resumes are accepted"}
}

// handleUploadResume stores the uploaded resume file on the user's row.
// The upload is a multipart form with a "resume" file field.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.handleError(w, &ErrValidation{Field: "resume", Message: "file field is required"})
		return
	}
	defer func() { _ = file.Close() }()

	mime, err := resumeMIMEFromUpload(header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		s.handleError(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload")
		return
	}
	if len(data) == 0 {
		s.handleError(w, &ErrValidation{Field: "resume", Message: "file is empty"})
		return
	}

	// Reject files the extractor cannot read before storing them.
	if _, err := extraction.FromDocument(mime, data); err != nil {
		s.handleError(w, err)
		return
	}

	if err := s.db.SaveResume(r.Context(), user.ID, header.Filename, mime, data); err != nil {
		s.handleError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message":  "Resume uploaded",
		"filename": header.Filename,
	})
}

// handleDownloadResume returns the authenticated user's stored resume
// file.
func (s *Server) handleDownloadResume(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	resume, err := s.db.GetResume(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if resume == nil {
		s.handleError(w, &ErrNotFound{Resource: "resume", ID: user.ID})
		return
	}

	w.Header().Set("Content-Type", resume.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resume.Data)
}
