package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-portal/internal/config"
	"github.com/jonathan/job-portal/internal/types"
)

// setupTestAuthHandler creates an AuthHandler backed by the in-memory
// fake database.
func setupTestAuthHandler(t *testing.T) (*AuthHandler, *fakeDBClient) {
	passwordConfig := &config.PasswordConfig{
		BcryptCost: 10, // Lower cost for faster tests
	}
	jwtConfig := &config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
	}

	fake := newFakeDBClient()
	userSvc := NewUserService(fake, passwordConfig)
	jwtSvc := NewJWTService(jwtConfig)
	return NewAuthHandler(userSvc, jwtSvc), fake
}

func registerTestUser(t *testing.T, handler *AuthHandler, email, password string) uuid.UUID {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": password,
		"role":     "applicant",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	return resp.User.ID
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	body, _ := json.Marshal(map[string]string{
		"name":     "Alice Chen",
		"email":    "alice@example.com",
		"password": "password123",
		"role":     "recruiter",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "Alice Chen", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, types.RoleRecruiter, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)
	registerTestUser(t, handler, "taken@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"name":     "Second User",
		"email":    "taken@example.com",
		"password": "password123",
		"role":     "applicant",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		reqBody     map[string]string
		description string
	}{
		{
			name:        "missing name",
			reqBody:     map[string]string{"email": "test@example.com", "password": "password123", "role": "applicant"},
			description: "should return 400 when name is missing",
		},
		{
			name:        "empty name",
			reqBody:     map[string]string{"name": "", "email": "test@example.com", "password": "password123", "role": "applicant"},
			description: "should return 400 when name is empty",
		},
		{
			name:        "invalid email",
			reqBody:     map[string]string{"name": "Test User", "email": "invalid-email", "password": "password123", "role": "applicant"},
			description: "should return 400 when email is invalid",
		},
		{
			name:        "missing email",
			reqBody:     map[string]string{"name": "Test User", "password": "password123", "role": "applicant"},
			description: "should return 400 when email is missing",
		},
		{
			name:        "password too short",
			reqBody:     map[string]string{"name": "Test User", "email": "test@example.com", "password": "short", "role": "applicant"},
			description: "should return 400 when password is too short",
		},
		{
			name:        "missing password",
			reqBody:     map[string]string{"name": "Test User", "email": "test@example.com", "role": "applicant"},
			description: "should return 400 when password is missing",
		},
		{
			name:        "missing role",
			reqBody:     map[string]string{"name": "Test User", "email": "test@example.com", "password": "password123"},
			description: "should return 400 when role is missing",
		},
		{
			name:        "unknown role",
			reqBody:     map[string]string{"name": "Test User", "email": "test@example.com", "password": "password123", "role": "admin"},
			description: "should return 400 when role is not applicant or recruiter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := setupTestAuthHandler(t)

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, tt.description)
			assert.Contains(t, w.Body.String(), "validation error", tt.description)
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)
	userID := registerTestUser(t, handler, "login@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, userID, resp.User.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)
	registerTestUser(t, handler, "login@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"email":    "login@example.com",
		"password": "wrongpassword",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		reqBody     map[string]string
		description string
	}{
		{
			name:        "missing email",
			reqBody:     map[string]string{"password": "password123"},
			description: "should return 400 when email is missing",
		},
		{
			name:        "invalid email format",
			reqBody:     map[string]string{"email": "invalid-email", "password": "password123"},
			description: "should return 400 when email format is invalid",
		},
		{
			name:        "missing password",
			reqBody:     map[string]string{"email": "test@example.com"},
			description: "should return 400 when password is missing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := setupTestAuthHandler(t)

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, tt.description)
			assert.Contains(t, w.Body.String(), "validation error", tt.description)
		})
	}
}

func TestAuthHandler_UpdatePassword_Success(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)
	userID := registerTestUser(t, handler, "login@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword456",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/user/password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.UpdatePasswordWithUserID(w, req, userID)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Password updated successfully")

	// Old password no longer works
	loginBody, _ := json.Marshal(map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	handler.Login(loginW, loginReq)
	assert.Equal(t, http.StatusUnauthorized, loginW.Code)
}

func TestAuthHandler_UpdatePassword_WrongCurrentPassword(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)
	userID := registerTestUser(t, handler, "login@example.com", "password123")

	body, _ := json.Marshal(map[string]string{
		"current_password": "notthepassword",
		"new_password":     "newpassword456",
	})
	req := httptest.NewRequest(http.MethodPut, "/api/user/password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.UpdatePasswordWithUserID(w, req, userID)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "current password is incorrect")
}

func TestAuthHandler_UpdatePassword_InvalidJSON(t *testing.T) {
	handler, _ := setupTestAuthHandler(t)
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodPut, "/api/user/password", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.UpdatePasswordWithUserID(w, req, userID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestAuthHandler_UpdatePassword_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		reqBody     map[string]string
		description string
	}{
		{
			name:        "missing current password",
			reqBody:     map[string]string{"new_password": "newpassword123"},
			description: "should return 400 when current password is missing",
		},
		{
			name:        "missing new password",
			reqBody:     map[string]string{"current_password": "oldpassword"},
			description: "should return 400 when new password is missing",
		},
		{
			name:        "new password too short",
			reqBody:     map[string]string{"current_password": "oldpassword", "new_password": "short"},
			description: "should return 400 when new password is too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := setupTestAuthHandler(t)
			userID := uuid.New()

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPut, "/api/user/password", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.UpdatePasswordWithUserID(w, req, userID)

			assert.Equal(t, http.StatusBadRequest, w.Code, tt.description)
			assert.Contains(t, w.Body.String(), "validation error", tt.description)
		})
	}
}
