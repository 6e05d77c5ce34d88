package auth

import (
	"testing"

	"orderdesk/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func testHasherConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost} // Low cost for fast tests.
	cfg.PasswordStrength = &config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        72,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ConfiguredCost(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	hash, err := hasher.Hash("StrongPass123!")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	// Test valid passwords
	validPasswords := []string{
		"StrongPass123!",
		"MySecure@Pass1",
		"Complex#Secret9",
		"Valid$Phrase2024",
	}
	for _, password := range validPasswords {
		err := hasher.ValidatePasswordStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	// Test invalid passwords with specific error cases
	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "at least 8 characters"},
		{"PASSWORD123!", "lowercase"},
		{"password123!", "uppercase"},
		{"PasswordABC!", "digit"},
		{"Password1234", "special"},
	}
	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr)
	}
}

func TestBcryptHasher_NoPolicyAcceptsAnything(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost}
	hasher := NewBcryptHasher(cfg)

	assert.NoError(t, hasher.ValidatePasswordStrength("x"))
}

func TestBcryptHasher_UnicodePassword(t *testing.T) {
	hasher := NewBcryptHasher(testHasherConfig())

	// Rune count, not byte count, drives the length check.
	err := hasher.ValidatePasswordStrength("Pässphräse123!")
	assert.NoError(t, err)
}
