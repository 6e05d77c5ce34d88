package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPasswordResetNotFound is returned when no matching reset token exists.
var ErrPasswordResetNotFound = errors.New("password reset not found")

// PasswordResetRepository stores single-use password reset tokens.
type PasswordResetRepository interface {
	// Create persists a new reset token, replacing any previous one for the account.
	Create(ctx context.Context, reset *entity.PasswordReset) error

	// FindByHash retrieves an unexpired reset token by its stored hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error)

	// DeleteByAccountID removes all reset tokens of an account.
	DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error
}
