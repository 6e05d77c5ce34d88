// Package service defines interfaces for domain services whose concrete
// implementations live in the infra layer.
package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims is the validated content of an access or refresh token.
type TokenClaims struct {
	AccountID uuid.UUID
	TenantID  uuid.UUID
	Roles     []string
	TokenType string
}

// TokenService issues and validates the JWT pair used for authentication.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for an account.
	GenerateTokens(accountID, tenantID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*TokenClaims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*TokenClaims, error)

	// HashToken returns the hash under which a raw token is stored server-side.
	HashToken(token string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
