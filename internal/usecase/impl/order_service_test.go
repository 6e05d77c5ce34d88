package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderdesk/config"
	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderTestEnv struct {
	svc           usecase.OrderUsecase
	factory       *fakeRepoFactory
	txManager     *fakeTxManager
	publisher     *fakePublisher
	adminTenantID uuid.UUID
	provider      *entity.Provider
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()

	factory := newFakeRepoFactory()
	publisher := &fakePublisher{}
	adminTenantID := uuid.New()

	cfg := &config.Config{
		Admin: &config.AdminConfig{TenantID: adminTenantID.String()},
	}

	txManager := &fakeTxManager{factory: factory}
	svc, err := NewOrderService(OrderServiceParams{
		TxManager:    txManager,
		OrderRepo:    factory.orderRepo,
		ProviderRepo: factory.providerRepo,
		EventRelay:   publisher,
		Config:       cfg,
		Logger:       discardLogger(),
	})
	require.NoError(t, err)

	provider := &entity.Provider{
		TenantID:     uuid.New(),
		ProviderName: "好味食品",
		Mobile:       "0912345678",
	}
	require.NoError(t, factory.providerRepo.Create(context.Background(), provider))

	return &orderTestEnv{
		svc:           svc,
		factory:       factory,
		txManager:     txManager,
		publisher:     publisher,
		adminTenantID: adminTenantID,
		provider:      provider,
	}
}

func (env *orderTestEnv) addProduct(t *testing.T, name string, price int64, newPrice *int64, active bool) *entity.Product {
	t.Helper()

	product := &entity.Product{
		CategoryID: uuid.New(),
		Name:       name,
		Price:      price,
		NewPrice:   newPrice,
		IsActive:   active,
	}
	require.NoError(t, env.factory.productRepo.Create(context.Background(), product))

	return product
}

func TestOrderService_Create_SnapshotsEffectivePrices(t *testing.T) {
	env := newOrderTestEnv(t)

	discounted := int64(80)
	cheap := env.addProduct(t, "豆腐", 100, &discounted, true)
	plain := env.addProduct(t, "豆漿", 50, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID:     env.provider.ID,
		DiscountAmount: 30,
		Items: []usecase.OrderItemInput{
			{ProductID: cheap.ID, Quantity: 2},
			{ProductID: plain.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 2*80 + 3*50 = 310, minus discount 30.
	assert.Equal(t, int64(310), order.TotalAmount)
	assert.Equal(t, int64(30), order.DiscountAmount)
	assert.Equal(t, int64(280), order.FinalAmount)
	assert.Equal(t, entity.OrderStatusNew, order.Status)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "豆腐", order.Items[0].ProductName)
	assert.Equal(t, int64(80), order.Items[0].UnitPrice)
	assert.Equal(t, int64(160), order.Items[0].TotalPrice)
	assert.Equal(t, int64(50), order.Items[1].UnitPrice)
}

func TestOrderService_Create_OrderNumberFormat(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "白飯", 20, nil, true)

	input := usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	}

	first, err := env.svc.Create(context.Background(), input)
	require.NoError(t, err)
	second, err := env.svc.Create(context.Background(), input)
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, day+"0001", first.OrderNumber)
	assert.Equal(t, day+"0002", second.OrderNumber)
}

func TestOrderService_Create_NotifiesAdminTenant(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "麵條", 40, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	notifications, _, err := env.factory.notificationRepo.ListByTenant(
		context.Background(), env.adminTenantID, repository.NotificationQuery{})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, order.ID, notifications[0].EntityID)
	assert.Equal(t, entity.NotificationTypeOrderCreated, notifications[0].Type)
	assert.Contains(t, notifications[0].Content, order.OrderNumber)
	assert.Contains(t, notifications[0].Content, env.provider.ProviderName)

	require.Len(t, env.publisher.published, 1)
	assert.Equal(t, env.adminTenantID, env.publisher.published[0].TenantID)
	assert.Equal(t, order.ID, env.publisher.published[0].Event.OrderID)
}

func TestOrderService_Create_RejectsEmptyOrder(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")
}

func TestOrderService_Create_RejectsInactiveProduct(t *testing.T) {
	env := newOrderTestEnv(t)
	active := env.addProduct(t, "青菜", 30, nil, true)
	retired := env.addProduct(t, "舊品", 10, nil, false)

	_, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items: []usecase.OrderItemInput{
			{ProductID: active.ID, Quantity: 1},
			{ProductID: retired.ID, Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not orderable")

	// Nothing committed, nothing pushed.
	assert.Empty(t, env.factory.orderRepo.orders)
	assert.Empty(t, env.factory.notificationRepo.notifications)
	assert.Empty(t, env.publisher.published)
}

func TestOrderService_Create_RejectsExcessiveDiscount(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "湯品", 60, nil, true)

	_, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID:     env.provider.ID,
		DiscountAmount: 100,
		Items:          []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discount exceeds order total")
	assert.Empty(t, env.factory.orderRepo.orders)
}

func TestOrderService_CreateForTenant_ResolvesProvider(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "便當", 90, nil, true)

	order, err := env.svc.CreateForTenant(context.Background(), env.provider.TenantID, usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, env.provider.ID, order.ProviderID)
}

func TestOrderService_UpdateStatus_Transitions(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "飲料", 25, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := env.svc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)

	// Completed is terminal.
	_, err = env.svc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCanceled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot move order")

	_, err = env.svc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusNew)
	require.Error(t, err)
}

func TestOrderService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	env := newOrderTestEnv(t)

	_, err := env.svc.UpdateStatus(context.Background(), uuid.New(), entity.OrderStatus("shipped"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order status")
}

func TestOrderService_Update_OnlyNewOrdersAreEditable(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "甜點", 45, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCompleted)
	require.NoError(t, err)

	_, err = env.svc.Update(context.Background(), usecase.UpdateOrderInput{
		ID:    order.ID,
		Items: []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 5}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only new orders can be edited")
}

func TestOrderService_Update_RepricesFromCurrentProducts(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "滷味", 70, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// A price change after creation applies on the next edit.
	product.Price = 100
	require.NoError(t, env.factory.productRepo.Update(context.Background(), product))

	updated, err := env.svc.Update(context.Background(), usecase.UpdateOrderInput{
		ID:    order.ID,
		Items: []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(200), updated.TotalAmount)
	assert.Equal(t, int64(200), updated.FinalAmount)
}

func TestOrderService_Delete_ChecksStatusInsideTransaction(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "便當", 90, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	before := env.txManager.executions
	require.NoError(t, env.svc.Delete(context.Background(), order.ID))
	assert.Equal(t, before+1, env.txManager.executions,
		"status check and delete must share one transaction")

	_, err = env.factory.orderRepo.FindByID(context.Background(), order.ID)
	require.Error(t, err)
}

func TestOrderService_Delete_OnlyNewOrders(t *testing.T) {
	env := newOrderTestEnv(t)
	product := env.addProduct(t, "小菜", 15, nil, true)

	order, err := env.svc.Create(context.Background(), usecase.CreateOrderInput{
		ProviderID: env.provider.ID,
		Items:      []usecase.OrderItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(context.Background(), order.ID, entity.OrderStatusCanceled)
	require.NoError(t, err)

	err = env.svc.Delete(context.Background(), order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only new orders can be deleted")
}
