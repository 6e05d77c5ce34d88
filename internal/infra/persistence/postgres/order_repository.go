package postgres

import (
	"context"
	"time"

	"orderdesk/internal/domain/entity"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("order number already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}

	return nil
}

func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"total_amount":    orderM.TotalAmount,
			"discount_amount": orderM.DiscountAmount,
			"final_amount":    orderM.FinalAmount,
			"status":          orderM.Status,
			"delivery_date":   orderM.DeliveryDate,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	// Reconcile items: drop rows no longer present, upsert the rest.
	keep := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ID != uuid.Nil {
			keep = append(keep, item.ID)
		}
	}

	deleteQuery := repo.db.WithContext(ctx).Where("order_id = ?", order.ID)
	if len(keep) > 0 {
		deleteQuery = deleteQuery.Where("id NOT IN ?", keep)
	}
	if err := deleteQuery.Delete(&model.OrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to prune order items")
	}

	for i := range orderM.Items {
		itemM := &orderM.Items[i]
		itemM.OrderID = order.ID
		if err := repo.db.WithContext(ctx).Save(itemM).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to save order item")
		}
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}

	return nil
}

func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Items go explicitly so the behavior does not depend on cascade support.
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

func (repo *orderRepository) List(ctx context.Context, query repository.OrderQuery) ([]*entity.Order, int64, error) {
	tx := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	if query.Search != "" {
		tx = tx.Where("order_number LIKE ?", "%"+query.Search+"%")
	}
	if query.Status != nil {
		tx = tx.Where("status = ?", query.Status.String())
	}
	if query.ProviderID != nil {
		tx = tx.Where("provider_id = ?", *query.ProviderID)
	}
	if query.DateFrom != nil {
		tx = tx.Where("order_date >= ?", *query.DateFrom)
	}
	if query.DateTo != nil {
		tx = tx.Where("order_date <= ?", *query.DateTo)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	tx = tx.Preload("Items").
		Order(orderOrderClause(query.SortBy, query.SortDir)).
		Limit(query.Limit()).
		Offset(query.Offset())

	var orderModels []*model.OrderModel
	if err := tx.Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

func (repo *orderRepository) NextOrderSequence(ctx context.Context, day string) (int, error) {
	// Single upsert so concurrent order creation never hands out the same
	// sequence twice. RETURNING reads the post-increment value.
	counter := model.OrderCounterModel{Day: day, Counter: 1}
	if err := repo.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "day"}},
				DoUpdates: clause.Assignments(map[string]any{"counter": gorm.Expr("order_counters.counter + 1")}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "counter"}}},
		).
		Create(&counter).Error; err != nil {
		return 0, errors.Wrap(err, "failed to advance order counter")
	}

	return counter.Counter, nil
}

func (repo *orderRepository) Stats(ctx context.Context) (*repository.OrderStats, error) {
	var rows []struct {
		Status  string
		Count   int64
		Revenue int64
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(final_amount), 0) AS revenue").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate order stats")
	}

	stats := &repository.OrderStats{
		ByStatus: make(map[entity.OrderStatus]int64, len(rows)),
	}
	for _, row := range rows {
		status := entity.OrderStatus(row.Status)
		stats.ByStatus[status] = row.Count
		stats.TotalOrders += row.Count
		if status == entity.OrderStatusCompleted {
			stats.TotalRevenue += row.Revenue
		}
	}

	return stats, nil
}

func (repo *orderRepository) MonthlyBuckets(ctx context.Context, since time.Time) ([]repository.MonthlyBucket, error) {
	// Month extraction differs between backends, so bucket in Go over a
	// windowed scan instead of date_trunc.
	var rows []struct {
		OrderDate   time.Time
		FinalAmount int64
		Status      string
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("order_date, final_amount, status").
		Where("order_date >= ?", since).
		Order("order_date ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to scan monthly orders")
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	index := make(map[monthKey]int)
	buckets := make([]repository.MonthlyBucket, 0)
	for _, row := range rows {
		key := monthKey{year: row.OrderDate.Year(), month: row.OrderDate.Month()}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, repository.MonthlyBucket{Year: key.year, Month: key.month})
		}
		buckets[i].Orders++
		if entity.OrderStatus(row.Status) == entity.OrderStatusCompleted {
			buckets[i].Revenue += row.FinalAmount
		}
	}

	return buckets, nil
}

func (repo *orderRepository) Recent(ctx context.Context, n int) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel
	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Order("order_date DESC").
		Limit(n).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

func (repo *orderRepository) TopProducts(ctx context.Context, n int) ([]repository.ProductSales, error) {
	var rows []struct {
		ProductID   uuid.UUID
		ProductName string
		Quantity    int64
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Select("product_id, product_name, SUM(quantity) AS quantity").
		Group("product_id, product_name").
		Order("quantity DESC").
		Limit(n).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate top products")
	}

	sales := make([]repository.ProductSales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, repository.ProductSales{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
		})
	}

	return sales, nil
}

func orderOrderClause(sortBy string, dir repository.SortDirection) string {
	column := ""
	switch sortBy {
	case "orderDate":
		column = "order_date"
	case "orderNumber":
		column = "order_number"
	case "finalAmount":
		column = "final_amount"
	case "status":
		column = "status"
	}
	if column == "" {
		return "order_date DESC"
	}
	if dir == repository.SortDesc {
		return column + " DESC"
	}

	return column + " ASC"
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toOrderItemDomain(&data.Items[i]))
	}

	return &entity.Order{
		ID:             data.ID,
		OrderNumber:    data.OrderNumber,
		ProviderID:     data.ProviderID,
		TotalAmount:    data.TotalAmount,
		DiscountAmount: data.DiscountAmount,
		FinalAmount:    data.FinalAmount,
		Status:         entity.OrderStatus(data.Status),
		OrderDate:      data.OrderDate,
		DeliveryDate:   data.DeliveryDate,
		Items:          items,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	return &entity.OrderItem{
		ID:          data.ID,
		OrderID:     data.OrderID,
		ProductID:   data.ProductID,
		ProductName: data.ProductName,
		Quantity:    data.Quantity,
		UnitPrice:   data.UnitPrice,
		TotalPrice:  data.TotalPrice,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return &model.OrderModel{
		ID:             data.ID,
		OrderNumber:    data.OrderNumber,
		ProviderID:     data.ProviderID,
		TotalAmount:    data.TotalAmount,
		DiscountAmount: data.DiscountAmount,
		FinalAmount:    data.FinalAmount,
		Status:         data.Status.String(),
		OrderDate:      data.OrderDate,
		DeliveryDate:   data.DeliveryDate,
		Items:          items,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}
