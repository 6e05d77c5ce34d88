package repository

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderStats aggregates order counts and revenue for statistics endpoints.
// Revenue only counts completed orders.
type OrderStats struct {
	TotalOrders  int64
	TotalRevenue int64
	ByStatus     map[entity.OrderStatus]int64
}

// MonthlyBucket is one month of the trailing revenue series.
type MonthlyBucket struct {
	Year    int
	Month   time.Month
	Orders  int64
	Revenue int64
}

// ProductSales is one row of the top-products table.
type ProductSales struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int64
}

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// Update saves the order header and reconciles the item rows: items
	// missing from order.Items are deleted, the rest are upserted.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of orders matching the query plus the total match count.
	List(ctx context.Context, query OrderQuery) ([]*entity.Order, int64, error)

	// NextOrderSequence atomically increments and returns the daily order
	// counter for the given yyyyMMdd day key. Safe under concurrent callers.
	NextOrderSequence(ctx context.Context, day string) (int, error)

	// Stats aggregates order counts and completed revenue.
	Stats(ctx context.Context) (*OrderStats, error)

	// MonthlyBuckets returns per-month order counts and completed revenue for
	// orders placed on or after the cutoff, oldest month first.
	MonthlyBuckets(ctx context.Context, since time.Time) ([]MonthlyBucket, error)

	// Recent returns the latest n orders by order date.
	Recent(ctx context.Context, n int) ([]*entity.Order, error)

	// TopProducts returns the n products with the highest ordered quantity.
	TopProducts(ctx context.Context, n int) ([]ProductSales, error)
}
