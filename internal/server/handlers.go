package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/db"
	"github.com/jonathan/job-portal/internal/server/middleware"
)

// currentUser loads the authenticated user's row. The auth middleware
// guarantees a user ID is present; a missing row means the account was
// deleted after the token was issued.
func (s *Server) currentUser(r *http.Request) (*db.User, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, &ErrForbidden{Message: "authentication required"}
	}
	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user, nil
}

// requireRole checks the token's role claim, then loads the account row
// for handlers that need more than the ID. The role check runs first so
// a wrong-role caller is rejected without a database read.
func (s *Server) requireRole(r *http.Request, role string) (*db.User, error) {
	principal, err := middleware.PrincipalFrom(r)
	if err != nil {
		return nil, &ErrForbidden{Message: "authentication required"}
	}
	if principal.Role != role {
		return nil, &ErrForbidden{Message: fmt.Sprintf("operation requires the %s role", role)}
	}
	return s.currentUser(r)
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// handleError writes the response for a handler error using the
// error-to-status mapping.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
