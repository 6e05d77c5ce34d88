package usecase

import (
	"context"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryListInput filters and pages the category listing.
type CategoryListInput struct {
	Search   string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// CategoryListOutput is one page of categories.
type CategoryListOutput struct {
	Items      []*entity.Category
	Pagination PaginationInfo
}

// CategoryUsecase defines the category management operations.
type CategoryUsecase interface {
	Create(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context, input CategoryListInput) (*CategoryListOutput, error)

	// ListAll returns every category, for the provider storefront.
	ListAll(ctx context.Context) ([]*entity.Category, error)
}
