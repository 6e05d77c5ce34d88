package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductStats aggregates product counts for the statistics endpoint.
type ProductStats struct {
	Total      int64
	Active     int64
	ByCategory []CategoryProductCount
}

// CategoryProductCount is one per-category bucket of the product statistics.
type CategoryProductCount struct {
	CategoryID   uuid.UUID
	CategoryName string
	Count        int64
}

// ProductRepository defines the operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of products matching the query plus the total match count.
	List(ctx context.Context, query ProductQuery) ([]*entity.Product, int64, error)

	// NameExistsInCategory reports whether another product in the category
	// (excluding excludeID, when non-nil) already uses the given name.
	NameExistsInCategory(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// CountActive returns the number of active products.
	CountActive(ctx context.Context) (int64, error)

	// Stats aggregates product counts, grouped by category.
	Stats(ctx context.Context) (*ProductStats, error)
}
