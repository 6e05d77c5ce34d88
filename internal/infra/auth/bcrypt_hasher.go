// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"orderdesk/config"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	return &bcryptHasher{
		cost:   cost,
		policy: cfg.PasswordStrength,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the password against the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	policy := h.policy
	if policy == nil {
		return nil
	}

	length := len([]rune(password))
	if policy.MinLength > 0 && length < policy.MinLength {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			fmt.Sprintf("password must be at least %d characters", policy.MinLength))
	}
	if policy.MaxLength > 0 && length > policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage(
			fmt.Sprintf("password must be at most %d characters", policy.MaxLength))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if policy.RequireUppercase && !hasUpper {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs an uppercase letter")
	}
	if policy.RequireLowercase && !hasLower {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs a lowercase letter")
	}
	if policy.RequireNumbers && !hasNumber {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs a digit")
	}
	if policy.RequireSpecial && !hasSpecial {
		return domainerrors.ErrPasswordStrength.WrapMessage("password needs a special character")
	}

	return nil
}
