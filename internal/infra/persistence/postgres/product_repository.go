package postgres

import (
	"context"

	"orderdesk/internal/domain/entity"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProductNameTaken.WrapMessage("product name already exists in category")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("product references missing category")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	// Save with a full struct would skip zero values for NewPrice cleared to
	// nil, so update through a column map instead.
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"category_id": productM.CategoryID,
			"name":        productM.Name,
			"price":       productM.Price,
			"new_price":   productM.NewPrice,
			"image_url":   productM.ImageURL,
			"is_active":   productM.IsActive,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrProductNameTaken.WrapMessage("product name already exists in category")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) List(ctx context.Context, query repository.ProductQuery) ([]*entity.Product, int64, error) {
	tx := repo.db.WithContext(ctx).Model(&model.ProductModel{})

	if query.Search != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+query.Search+"%")
	}
	if query.CategoryID != nil {
		tx = tx.Where("category_id = ?", *query.CategoryID)
	}
	if query.IsActive != nil {
		tx = tx.Where("is_active = ?", *query.IsActive)
	}
	// Price filters apply to the effective price, so a discounted product
	// still matches the range a buyer would actually pay.
	if query.PriceMin != nil {
		tx = tx.Where("COALESCE(new_price, price) >= ?", *query.PriceMin)
	}
	if query.PriceMax != nil {
		tx = tx.Where("COALESCE(new_price, price) <= ?", *query.PriceMax)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	tx = tx.Order(productOrderClause(query.SortBy, query.SortDir)).
		Limit(query.Limit()).
		Offset(query.Offset())

	var productModels []*model.ProductModel
	if err := tx.Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

func (repo *productRepository) NameExistsInCategory(ctx context.Context, categoryID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("category_id = ?", categoryID).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check product name")
	}

	return count > 0, nil
}

func (repo *productRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active products")
	}

	return count, nil
}

func (repo *productRepository) Stats(ctx context.Context) (*repository.ProductStats, error) {
	stats := &repository.ProductStats{}

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Count(&stats.Total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("is_active = ?", true).
		Count(&stats.Active).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count active products")
	}

	var rows []struct {
		CategoryID   uuid.UUID
		CategoryName string
		Count        int64
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Select("products.category_id AS category_id, categories.name AS category_name, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("products.category_id, categories.name").
		Order("count DESC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to group products by category")
	}

	stats.ByCategory = make([]repository.CategoryProductCount, 0, len(rows))
	for _, row := range rows {
		stats.ByCategory = append(stats.ByCategory, repository.CategoryProductCount{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Count:        row.Count,
		})
	}

	return stats, nil
}

func productOrderClause(sortBy string, dir repository.SortDirection) string {
	column := ""
	switch sortBy {
	case "name":
		column = "name"
	case "price":
		column = "COALESCE(new_price, price)"
	case "createdAt":
		column = "created_at"
	}
	if column == "" {
		return "created_at DESC"
	}
	if dir == repository.SortDesc {
		return column + " DESC"
	}

	return column + " ASC"
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:         data.ID,
		CategoryID: data.CategoryID,
		Name:       data.Name,
		Price:      data.Price,
		NewPrice:   data.NewPrice,
		ImageURL:   data.ImageURL,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:         data.ID,
		CategoryID: data.CategoryID,
		Name:       data.Name,
		Price:      data.Price,
		NewPrice:   data.NewPrice,
		ImageURL:   data.ImageURL,
		IsActive:   data.IsActive,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
