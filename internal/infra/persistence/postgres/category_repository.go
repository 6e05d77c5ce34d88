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

// categoryRepository implements the repository.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		// The unique index closes the check-then-act window left by the
		// service-level name check.
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCategoryNameTaken.WrapMessage("category name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Save(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCategoryNameTaken.WrapMessage("category name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update category")
	}

	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Refuse deletion while products still reference the category, without
	// relying on FK enforcement being configured.
	var productCount int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("category_id = ?", id).
		Count(&productCount).Error; err != nil {
		return errors.Wrap(err, "failed to count category products")
	}
	if productCount > 0 {
		return domainerrors.ErrCategoryInUse.WrapMessage("category still has products")
	}

	result := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrCategoryInUse.WrapMessage("category still has products")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (repo *categoryRepository) List(ctx context.Context, query repository.CategoryQuery) ([]*entity.Category, int64, error) {
	tx := repo.db.WithContext(ctx).Model(&model.CategoryModel{})

	if query.Search != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+query.Search+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count categories")
	}

	tx = tx.Order(categoryOrderClause(query.SortBy, query.SortDir)).
		Limit(query.Limit()).
		Offset(query.Offset())

	var categoryModels []*model.CategoryModel
	if err := tx.Find(&categoryModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, total, nil
}

func (repo *categoryRepository) ListAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []*model.CategoryModel
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list all categories")
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for _, categoryM := range categoryModels {
		categories = append(categories, toCategoryDomain(categoryM))
	}

	return categories, nil
}

func (repo *categoryRepository) NameExists(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		tx = tx.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check category name")
	}

	return count > 0, nil
}

func categoryOrderClause(sortBy string, dir repository.SortDirection) string {
	column := ""
	switch sortBy {
	case "name":
		column = "name"
	case "createdAt":
		column = "created_at"
	}
	if column == "" {
		return "name ASC"
	}
	if dir == repository.SortDesc {
		return column + " DESC"
	}

	return column + " ASC"
}

// --- Mapper Functions ---

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
