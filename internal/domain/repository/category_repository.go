package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. It fails while products still reference it.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of categories matching the query plus the total match count.
	List(ctx context.Context, query CategoryQuery) ([]*entity.Category, int64, error)

	// ListAll returns every category, for the provider storefront.
	ListAll(ctx context.Context) ([]*entity.Category, error)

	// NameExists reports whether another category (excluding excludeID, when
	// non-nil) already uses the given name.
	NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}
