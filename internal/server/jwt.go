package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/server/middleware"
	"github.com/jonathan/job-portal/internal/types"
)

// Claims are the portal's session token claims. The role travels in the
// token so per-request role checks do not need a database lookup.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs and validates session tokens. It satisfies
// middleware.TokenValidator.
type JWTService struct {
	config *config.JWTConfig
}

// NewJWTService creates a JWTService with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken issues an HS256 token carrying the user's ID and role.
func (s *JWTService) GenerateToken(userID uuid.UUID, role types.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a session token and returns the principal it was
// issued for. Only HMAC-signed tokens are accepted.
func (s *JWTService) ValidateToken(tokenString string) (middleware.Principal, error) {
	if tokenString == "" {
		return middleware.Principal{}, fmt.Errorf("token is empty")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return middleware.Principal{}, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return middleware.Principal{}, fmt.Errorf("invalid token signature: %w", err)
		default:
			return middleware.Principal{}, fmt.Errorf("invalid token: %w", err)
		}
	}
	if !token.Valid {
		return middleware.Principal{}, fmt.Errorf("invalid token")
	}

	return middleware.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
