package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByTenantID retrieves the account acting for the given tenant.
	FindByTenantID(ctx context.Context, tenantID uuid.UUID) (*entity.Account, error)

	// FindByLogin retrieves an account whose display name or mobile matches the login identifier.
	FindByLogin(ctx context.Context, login string) (*entity.Account, error)

	// FindByMobile retrieves an account by its mobile number.
	FindByMobile(ctx context.Context, mobile string) (*entity.Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account.
	Update(ctx context.Context, account *entity.Account) error
}
