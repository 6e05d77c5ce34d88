package usecase

import (
	"context"
	"time"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"

	"github.com/google/uuid"
)

// ProviderListInput filters and pages the provider listing.
type ProviderListInput struct {
	Search   string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// ProviderOutput joins a provider profile with its account state.
type ProviderOutput struct {
	Provider   *entity.Provider
	IsVerified bool
	IsLocked   bool
}

// ProviderListOutput is one page of providers.
type ProviderListOutput struct {
	Items      []*ProviderOutput
	Pagination PaginationInfo
}

// LockProviderInput locks the provider's account until the given time.
type LockProviderInput struct {
	ProviderID  uuid.UUID
	LockedUntil time.Time
}

// ProviderUsecase defines the admin-facing provider management operations.
type ProviderUsecase interface {
	List(ctx context.Context, input ProviderListInput) (*ProviderListOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*ProviderOutput, error)
	Verify(ctx context.Context, id uuid.UUID) error
	Lock(ctx context.Context, input LockProviderInput) error
	Unlock(ctx context.Context, id uuid.UUID) error
}

// SortDirectionFrom converts a query string value into a repository sort direction.
func SortDirectionFrom(s string) repository.SortDirection {
	if s == "desc" {
		return repository.SortDesc
	}

	return repository.SortAsc
}
