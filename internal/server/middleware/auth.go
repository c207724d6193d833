// Package middleware provides the bearer-token authentication layer for
// the portal's protected routes.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Principal is the authenticated account a token was issued for. Role is
// the account's role at issue time; role checks read it from here rather
// than reloading the user row.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

// TokenValidator resolves a bearer token to its principal.
type TokenValidator interface {
	ValidateToken(token string) (Principal, error)
}

type principalKey struct{}

// Auth returns middleware that rejects requests without a valid bearer
// token and stores the token's principal in the request context.
func Auth(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			principal, err := tokens.ValidateToken(token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header. The
// scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// PrincipalFrom returns the principal stored by Auth.
func PrincipalFrom(r *http.Request) (Principal, error) {
	principal, ok := r.Context().Value(principalKey{}).(Principal)
	if !ok {
		return Principal{}, fmt.Errorf("no authenticated principal in request context")
	}
	return principal, nil
}

// GetUserID returns the authenticated user's ID.
func GetUserID(r *http.Request) (uuid.UUID, error) {
	principal, err := PrincipalFrom(r)
	if err != nil {
		return uuid.Nil, err
	}
	return principal.UserID, nil
}

// WithPrincipal returns a context carrying the principal. Handler tests
// use it to simulate an authenticated request.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}
