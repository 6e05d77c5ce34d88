package usecase

import (
	"context"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"
)

// DashboardCardsOutput is the headline numbers block of the admin dashboard.
type DashboardCardsOutput struct {
	TotalOrders    int64 `json:"totalOrders"`
	TotalRevenue   int64 `json:"totalRevenue"`
	ProviderCount  int64 `json:"providerCount"`
	ActiveProducts int64 `json:"activeProducts"`
}

// MonthlyRevenuePoint is one month of the revenue chart.
type MonthlyRevenuePoint struct {
	Year    int    `json:"year"`
	Month   string `json:"month"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// OrdersByStatusOutput is the status breakdown chart data.
type OrdersByStatusOutput struct {
	ByStatus map[entity.OrderStatus]int64 `json:"byStatus"`
}

// TopProductsOutput is the top sellers table data.
type TopProductsOutput struct {
	Items []repository.ProductSales `json:"items"`
}

// RecentOrdersOutput is the latest orders table data.
type RecentOrdersOutput struct {
	Items []*entity.Order `json:"items"`
}

// DashboardUsecase serves the admin dashboard aggregates.
type DashboardUsecase interface {
	Cards(ctx context.Context) (*DashboardCardsOutput, error)
	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenuePoint, error)
	OrdersByStatus(ctx context.Context) (*OrdersByStatusOutput, error)
	RecentOrders(ctx context.Context, limit int) (*RecentOrdersOutput, error)
	TopProducts(ctx context.Context, limit int) (*TopProductsOutput, error)
}
