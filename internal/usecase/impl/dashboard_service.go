package impl

import (
	"context"
	"time"

	"orderdesk/internal/domain/repository"
	"orderdesk/internal/usecase"

	"go.uber.org/fx"
)

// dashboardService implements the DashboardUsecase interface. It only reads,
// so it needs no transaction manager.
type dashboardService struct {
	orderRepo    repository.OrderRepository
	providerRepo repository.ProviderRepository
	productRepo  repository.ProductRepository
}

// DashboardServiceParams holds dependencies for dashboardService, injected by Fx.
type DashboardServiceParams struct {
	fx.In

	OrderRepo    repository.OrderRepository
	ProviderRepo repository.ProviderRepository
	ProductRepo  repository.ProductRepository
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(params DashboardServiceParams) usecase.DashboardUsecase {
	return &dashboardService{
		orderRepo:    params.OrderRepo,
		providerRepo: params.ProviderRepo,
		productRepo:  params.ProductRepo,
	}
}

func (srv *dashboardService) Cards(ctx context.Context) (*usecase.DashboardCardsOutput, error) {
	orderStats, err := srv.orderRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	providerCount, err := srv.providerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeProducts, err := srv.productRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.DashboardCardsOutput{
		TotalOrders:    orderStats.TotalOrders,
		TotalRevenue:   orderStats.TotalRevenue,
		ProviderCount:  providerCount,
		ActiveProducts: activeProducts,
	}, nil
}

func (srv *dashboardService) MonthlyRevenue(ctx context.Context) ([]usecase.MonthlyRevenuePoint, error) {
	since := time.Now().AddDate(0, -(monthlyWindow - 1), 0)
	since = time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, since.Location())

	buckets, err := srv.orderRepo.MonthlyBuckets(ctx, since)
	if err != nil {
		return nil, err
	}

	points := make([]usecase.MonthlyRevenuePoint, 0, len(buckets))
	for _, bucket := range buckets {
		points = append(points, usecase.MonthlyRevenuePoint{
			Year:    bucket.Year,
			Month:   bucket.Month.String(),
			Orders:  bucket.Orders,
			Revenue: bucket.Revenue,
		})
	}

	return points, nil
}

func (srv *dashboardService) OrdersByStatus(ctx context.Context) (*usecase.OrdersByStatusOutput, error) {
	stats, err := srv.orderRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.OrdersByStatusOutput{ByStatus: stats.ByStatus}, nil
}

func (srv *dashboardService) RecentOrders(ctx context.Context, limit int) (*usecase.RecentOrdersOutput, error) {
	if limit <= 0 {
		limit = 10
	}

	orders, err := srv.orderRepo.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &usecase.RecentOrdersOutput{Items: orders}, nil
}

func (srv *dashboardService) TopProducts(ctx context.Context, limit int) (*usecase.TopProductsOutput, error) {
	if limit <= 0 {
		limit = 10
	}

	sales, err := srv.orderRepo.TopProducts(ctx, limit)
	if err != nil {
		return nil, err
	}

	return &usecase.TopProductsOutput{Items: sales}, nil
}
