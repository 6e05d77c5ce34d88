// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a login-capable identity. Every account belongs to a
// tenant: provider accounts share their tenant with exactly one Provider
// profile, admin accounts share the fixed back-office tenant.
type Account struct {
	ID           uuid.UUID  // The unique identifier of the account record itself.
	TenantID     uuid.UUID  // The tenant this account acts for; join key to the Provider profile.
	DisplayName  string     // Login name shown in the UI; unique across accounts.
	Mobile       string     // Contact mobile number; unique across accounts.
	Email        string     // Address password reset mail goes to. Optional.
	Role         Role       // The single role this account holds (admin or provider).
	PasswordHash string     // bcrypt hash of the account password.
	IsVerified   bool       // Set by an admin once the provider has been vetted.
	LockedUntil  *time.Time // While in the future, login attempts are rejected.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLocked reports whether the account is currently locked out.
func (a *Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}

// PasswordReset is a single-use, short-lived credential for resetting a
// forgotten password. Only its SHA-256 hash is ever stored.
type PasswordReset struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// RefreshToken represents a long-lived, authorized session. It is used to
// obtain a new access token after the old one expires, without requiring
// credentials. Only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
