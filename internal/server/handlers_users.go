package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/job-portal/internal/types"
)

// handleSearchUsers finds users by name or email for starting a
// conversation. The q query parameter is required.
func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		s.handleError(w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.handleError(w, &ErrValidation{Field: "q", Message: "search query is required"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.handleError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = parsed
	}

	users, err := s.db.SearchUsers(r.Context(), query, limit)
	if err != nil {
		s.handleError(w, err)
		return
	}

	results := make([]*types.User, 0, len(users))
	for i := range users {
		results = append(results, convertDBUserToTypesUser(&users[i]))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"users": results})
}

// handleGetUser returns another user's public profile.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	if _, err := s.currentUser(r); err != nil {
		s.handleError(w, err)
		return
	}

	userID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if user == nil {
		s.handleError(w, &ErrUserNotFound{UserID: userID})
		return
	}
	s.jsonResponse(w, http.StatusOK, convertDBUserToTypesUser(user))
}
