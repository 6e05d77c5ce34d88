package usecase

import (
	"context"
	"io"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"

	"github.com/google/uuid"
)

// ImageUpload carries one multipart image upload through the use case layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	CategoryID uuid.UUID
	Name       string
	Price      int64
	NewPrice   *int64
	IsActive   bool
	Image      *ImageUpload
}

// UpdateProductInput defines the data required to update a product.
type UpdateProductInput struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Price      int64
	NewPrice   *int64
	IsActive   bool
	Image      *ImageUpload // Replaces the current image when set.
}

// ProductListInput filters and pages the product listing.
type ProductListInput struct {
	Search     string
	CategoryID *uuid.UUID
	IsActive   *bool
	PriceMin   *int64
	PriceMax   *int64
	SortBy     string
	SortDir    string
	Page       int
	PageSize   int
}

// ProductListOutput is one page of products.
type ProductListOutput struct {
	Items      []*entity.Product
	Pagination PaginationInfo
}

// ProductStatisticsOutput aggregates product counts for the statistics endpoint.
type ProductStatisticsOutput struct {
	Total      int64                            `json:"total"`
	Active     int64                            `json:"active"`
	ByCategory []repository.CategoryProductCount `json:"byCategory"`
}

// ProductUsecase defines the product management operations.
type ProductUsecase interface {
	Create(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	Update(ctx context.Context, input UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, input ProductListInput) (*ProductListOutput, error)
	Statistics(ctx context.Context) (*ProductStatisticsOutput, error)

	// ListActive returns active products only, for the provider storefront.
	ListActive(ctx context.Context, input ProductListInput) (*ProductListOutput, error)
}
