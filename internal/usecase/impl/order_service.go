package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderdesk/config"
	deliverycontext "orderdesk/internal/delivery/context"
	"orderdesk/internal/domain/entity"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/domain/service"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const monthlyWindow = 12

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager     repository.TransactionManager
	orderRepo     repository.OrderRepository
	providerRepo  repository.ProviderRepository
	eventRelay    service.OrderEventPublisher
	adminTenantID uuid.UUID
	logger        *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	ProviderRepo repository.ProviderRepository
	EventRelay   service.OrderEventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) (usecase.OrderUsecase, error) {
	var adminTenantID uuid.UUID
	if params.Config != nil && params.Config.Admin != nil && params.Config.Admin.TenantID != "" {
		parsed, err := uuid.Parse(params.Config.Admin.TenantID)
		if err != nil {
			return nil, errors.Wrap(err, "invalid admin tenant id")
		}
		adminTenantID = parsed
	}

	return &orderService{
		txManager:     params.TxManager,
		orderRepo:     params.OrderRepo,
		providerRepo:  params.ProviderRepo,
		eventRelay:    params.EventRelay,
		adminTenantID: adminTenantID,
		logger:        params.Logger,
	}, nil
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create places an order for an explicitly named provider (admin surface).
func (srv *orderService) Create(ctx context.Context, input usecase.CreateOrderInput) (*entity.Order, error) {
	return srv.create(ctx, input)
}

// CreateForTenant resolves the caller's provider profile from the tenant
// claim and places the order for it (provider surface).
func (srv *orderService) CreateForTenant(ctx context.Context, tenantID uuid.UUID, input usecase.CreateOrderInput) (*entity.Order, error) {
	provider, err := srv.providerRepo.FindByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, domainerrors.ErrProviderNotFound.WrapMessage("no provider profile for tenant")
		}

		return nil, err
	}

	input.ProviderID = provider.ID

	return srv.create(ctx, input)
}

func (srv *orderService) create(ctx context.Context, input usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder.WrapMessage("order needs at least one item")
	}
	if input.DiscountAmount < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("discount must not be negative")
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		providerRepo := repoFactory.ProviderRepo()
		orderRepo := repoFactory.OrderRepo()

		provider, err := providerRepo.FindByID(ctx, input.ProviderID)
		if err != nil {
			if errors.Is(err, repository.ErrProviderNotFound) {
				return domainerrors.ErrProviderNotFound.WrapMessage("provider not found")
			}

			return err
		}

		items, totalAmount, err := srv.buildItems(ctx, repoFactory.ProductRepo(), input.Items)
		if err != nil {
			return err
		}

		finalAmount := totalAmount - input.DiscountAmount
		if finalAmount < 0 {
			return domainerrors.ErrNegativeFinalAmount.WrapMessage("discount exceeds order total")
		}

		now := time.Now()
		orderNumber, err := srv.nextOrderNumber(ctx, orderRepo, now)
		if err != nil {
			return err
		}

		order := &entity.Order{
			OrderNumber:    orderNumber,
			ProviderID:     provider.ID,
			TotalAmount:    totalAmount,
			DiscountAmount: input.DiscountAmount,
			FinalAmount:    finalAmount,
			Status:         entity.OrderStatusNew,
			OrderDate:      now,
			DeliveryDate:   input.DeliveryDate,
			Items:          items,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		// The notification row commits or rolls back together with the order.
		notification := &entity.Notification{
			EntityID: order.ID,
			TenantID: srv.adminTenantID,
			Type:     entity.NotificationTypeOrderCreated,
			Title:    "新訂單",
			Content:  fmt.Sprintf("%s 建立了訂單 %s", provider.ProviderName, order.OrderNumber),
		}
		if err := repoFactory.NotificationRepo().Create(ctx, notification); err != nil {
			return err
		}

		created = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Push after commit so no event ever references a rolled-back order.
	srv.eventRelay.PublishOrderCreated(ctx, srv.adminTenantID, &service.OrderCreatedEvent{
		OrderID: created.ID,
		Msg:     "新訂單 " + created.OrderNumber,
	})

	srv.log(ctx).Info("order created",
		slog.String("orderId", created.ID.String()),
		slog.String("orderNumber", created.OrderNumber),
		slog.Int64("finalAmount", created.FinalAmount),
	)

	return created, nil
}

// buildItems loads every referenced product and snapshots its current name
// and effective price into order items.
func (srv *orderService) buildItems(ctx context.Context, productRepo repository.ProductRepository, inputs []usecase.OrderItemInput) ([]*entity.OrderItem, int64, error) {
	items := make([]*entity.OrderItem, 0, len(inputs))
	var totalAmount int64

	for _, line := range inputs {
		if line.Quantity <= 0 {
			return nil, 0, domainerrors.ErrValidationFailed.WrapMessage("item quantity must be positive")
		}

		product, err := productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, 0, domainerrors.ErrProductNotFound.WrapMessage("ordered product not found")
			}

			return nil, 0, err
		}
		if !product.IsActive {
			return nil, 0, domainerrors.ErrProductInactive.WrapMessage("product " + product.Name + " is not orderable")
		}

		unitPrice := product.EffectivePrice()
		itemTotal := unitPrice * int64(line.Quantity)

		item := &entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			TotalPrice:  itemTotal,
		}
		if line.ID != nil {
			item.ID = *line.ID
		}

		items = append(items, item)
		totalAmount += itemTotal
	}

	return items, totalAmount, nil
}

// nextOrderNumber builds yyyyMMdd plus the zero-padded daily sequence.
func (srv *orderService) nextOrderNumber(ctx context.Context, orderRepo repository.OrderRepository, now time.Time) (string, error) {
	day := now.Format("20060102")
	seq, err := orderRepo.NextOrderSequence(ctx, day)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%04d", day, seq), nil
}

func (srv *orderService) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
	}

	return order, err
}

func (srv *orderService) List(ctx context.Context, input usecase.OrderListInput) (*usecase.OrderListOutput, error) {
	query := repository.OrderQuery{
		Search:     input.Search,
		Status:     input.Status,
		ProviderID: input.ProviderID,
		DateFrom:   input.DateFrom,
		DateTo:     input.DateTo,
		SortBy:     input.SortBy,
		SortDir:    usecase.SortDirectionFrom(input.SortDir),
		Pagination: repository.Pagination{
			Page:     input.Page,
			PageSize: input.PageSize,
		}.Normalize(),
	}

	orders, total, err := srv.orderRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &usecase.OrderListOutput{
		Items:      orders,
		Pagination: usecase.NewPaginationInfo(query.Page, query.PageSize, total),
	}, nil
}

// ListByTenant restricts the listing to the caller's own provider.
func (srv *orderService) ListByTenant(ctx context.Context, tenantID uuid.UUID, input usecase.OrderListInput) (*usecase.OrderListOutput, error) {
	provider, err := srv.providerRepo.FindByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, domainerrors.ErrProviderNotFound.WrapMessage("no provider profile for tenant")
		}

		return nil, err
	}

	input.ProviderID = &provider.ID

	return srv.List(ctx, input)
}

// Update reconciles the item collection and reprices from current product
// data. Only orders still in status "new" are editable.
func (srv *orderService) Update(ctx context.Context, input usecase.UpdateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyOrder.WrapMessage("order needs at least one item")
	}
	if input.DiscountAmount < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("discount must not be negative")
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound.WrapMessage("order not found")
			}

			return err
		}
		if order.Status != entity.OrderStatusNew {
			return domainerrors.ErrOrderNotEditable.WrapMessage("only new orders can be edited")
		}

		items, totalAmount, err := srv.buildItems(ctx, repoFactory.ProductRepo(), input.Items)
		if err != nil {
			return err
		}

		finalAmount := totalAmount - input.DiscountAmount
		if finalAmount < 0 {
			return domainerrors.ErrNegativeFinalAmount.WrapMessage("discount exceeds order total")
		}

		for _, item := range items {
			item.OrderID = order.ID
		}

		order.TotalAmount = totalAmount
		order.DiscountAmount = input.DiscountAmount
		order.FinalAmount = finalAmount
		order.DeliveryDate = input.DeliveryDate
		order.Items = items

		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateStatus moves the order through the allowed transitions only.
func (srv *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown order status " + status.String())
	}

	var updated *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound.WrapMessage("order not found")
			}

			return err
		}

		if !order.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidStatusTransition.WrapMessage(
				"cannot move order from " + order.Status.String() + " to " + status.String())
		}

		order.Status = status
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("order status changed",
		slog.String("orderId", id.String()),
		slog.String("status", status.String()),
	)

	return updated, nil
}

// Delete removes an order that has not left status "new". The status check
// and the delete share one transaction so a concurrent status change cannot
// slip between them.
func (srv *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound.WrapMessage("order not found")
			}

			return err
		}
		if order.Status != entity.OrderStatusNew {
			return domainerrors.ErrOrderNotEditable.WrapMessage("only new orders can be deleted")
		}

		return orderRepo.Delete(ctx, id)
	})
}

func (srv *orderService) Statistics(ctx context.Context) (*usecase.OrderStatisticsOutput, error) {
	stats, err := srv.orderRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, -(monthlyWindow - 1), 0)
	since = time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, since.Location())
	monthly, err := srv.orderRepo.MonthlyBuckets(ctx, since)
	if err != nil {
		return nil, err
	}

	return &usecase.OrderStatisticsOutput{
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: stats.TotalRevenue,
		ByStatus:     stats.ByStatus,
		Monthly:      monthly,
	}, nil
}
