package usecase

import (
	"context"
	"time"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderItemInput is one requested line of a new or updated order.
type OrderItemInput struct {
	ID        *uuid.UUID // Set on update for existing lines, nil for new ones.
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput defines the data required to create an order.
type CreateOrderInput struct {
	ProviderID     uuid.UUID
	DiscountAmount int64
	DeliveryDate   *time.Time
	Items          []OrderItemInput
}

// UpdateOrderInput defines the data required to update an order. The item
// collection is reconciled by ID: absent lines are removed, present ones
// updated, new ones appended.
type UpdateOrderInput struct {
	ID             uuid.UUID
	DiscountAmount int64
	DeliveryDate   *time.Time
	Items          []OrderItemInput
}

// OrderListInput filters and pages the order listing.
type OrderListInput struct {
	Search     string
	Status     *entity.OrderStatus
	ProviderID *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     string
	SortDir    string
	Page       int
	PageSize   int
}

// OrderListOutput is one page of orders.
type OrderListOutput struct {
	Items      []*entity.Order
	Pagination PaginationInfo
}

// OrderStatisticsOutput aggregates order counts and revenue.
type OrderStatisticsOutput struct {
	TotalOrders  int64                            `json:"totalOrders"`
	TotalRevenue int64                            `json:"totalRevenue"`
	ByStatus     map[entity.OrderStatus]int64     `json:"byStatus"`
	Monthly      []repository.MonthlyBucket      `json:"monthly"`
}

// OrderUsecase defines the order management operations.
type OrderUsecase interface {
	// Create places an order for the given provider. Admin callers pass the
	// provider ID explicitly; provider callers resolve it from their tenant
	// via CreateForTenant.
	Create(ctx context.Context, input CreateOrderInput) (*entity.Order, error)
	CreateForTenant(ctx context.Context, tenantID uuid.UUID, input CreateOrderInput) (*entity.Order, error)

	Get(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, input OrderListInput) (*OrderListOutput, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, input OrderListInput) (*OrderListOutput, error)

	Update(ctx context.Context, input UpdateOrderInput) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error

	Statistics(ctx context.Context) (*OrderStatisticsOutput, error)
}
