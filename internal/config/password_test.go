package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewPasswordConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestNewPasswordConfig_CostOverride(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestNewPasswordConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cost string
	}{
		{"non-numeric", "strong"},
		{"below range", "9"},
		{"above range", "15"},
		{"zero", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.cost)

			_, err := NewPasswordConfig()
			assert.Error(t, err)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("applicant-password-123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "applicant-password-123", hash)

	assert.True(t, cfg.VerifyPassword("applicant-password-123", hash))
	assert.False(t, cfg.VerifyPassword("wrong-password", hash))
	assert.False(t, cfg.VerifyPassword("applicant-password-123", "not-a-bcrypt-hash"))
}

func TestPasswordConfig_HashesAreSalted(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	first, err := cfg.HashPassword("applicant-password-123")
	require.NoError(t, err)
	second, err := cfg.HashPassword("applicant-password-123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, cfg.VerifyPassword("applicant-password-123", first))
	assert.True(t, cfg.VerifyPassword("applicant-password-123", second))
}

func TestPasswordConfig_HashCarriesConfiguredCost(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 11}

	hash, err := cfg.HashPassword("recruiter-password-456")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 11, cost)
}

func TestPasswordConfig_VerifyAcrossCosts(t *testing.T) {
	// A hash produced under an older cost still verifies after the
	// configured cost changes; bcrypt reads the cost from the hash.
	old := &PasswordConfig{BcryptCost: 10}
	hash, err := old.HashPassword("applicant-password-123")
	require.NoError(t, err)

	current := &PasswordConfig{BcryptCost: 12}
	assert.True(t, current.VerifyPassword("applicant-password-123", hash))
}
