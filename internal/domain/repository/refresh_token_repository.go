package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for refresh token lookups.
var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// RefreshTokenRepository defines the operations for session persistence.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves an unexpired refresh token by its stored hash.
	// Expired records yield ErrRefreshTokenExpired.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes a single session by its stored hash.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByAccountID removes every session of an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}
