package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProviderNotFound is returned when a provider profile is not found.
var ErrProviderNotFound = errors.New("provider not found")

// ProviderRepository defines the operations for provider profile persistence.
type ProviderRepository interface {
	// FindByID retrieves a single provider by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error)

	// FindByTenantID retrieves the provider profile owned by the given tenant.
	FindByTenantID(ctx context.Context, tenantID uuid.UUID) (*entity.Provider, error)

	// Create persists a new provider profile.
	Create(ctx context.Context, provider *entity.Provider) error

	// Update modifies an existing provider profile.
	Update(ctx context.Context, provider *entity.Provider) error

	// List returns one page of providers matching the query plus the total match count.
	List(ctx context.Context, query ProviderQuery) ([]*entity.Provider, int64, error)

	// Count returns the total number of provider profiles.
	Count(ctx context.Context) (int64, error)
}
