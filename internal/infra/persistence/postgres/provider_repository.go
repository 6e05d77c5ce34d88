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

// providerRepository implements the repository.ProviderRepository interface using GORM.
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository is the constructor for providerRepository.
func NewProviderRepository(db *gorm.DB) repository.ProviderRepository {
	return &providerRepository{db: db}
}

func (repo *providerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	var providerM model.ProviderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&providerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider by id")
	}

	return toProviderDomain(&providerM), nil
}

func (repo *providerRepository) FindByTenantID(ctx context.Context, tenantID uuid.UUID) (*entity.Provider, error) {
	var providerM model.ProviderModel

	if err := repo.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&providerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProviderNotFound
		}

		return nil, errors.Wrap(err, "failed to find provider by tenant id")
	}

	return toProviderDomain(&providerM), nil
}

func (repo *providerRepository) Create(ctx context.Context, provider *entity.Provider) error {
	providerM := fromProviderDomain(provider)

	if err := repo.db.WithContext(ctx).Create(providerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("provider profile already exists for this tenant")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required provider information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create provider")
	}

	provider.ID = providerM.ID
	provider.CreatedAt = providerM.CreatedAt
	provider.UpdatedAt = providerM.UpdatedAt

	return nil
}

func (repo *providerRepository) Update(ctx context.Context, provider *entity.Provider) error {
	providerM := fromProviderDomain(provider)

	if err := repo.db.WithContext(ctx).Save(providerM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update provider")
	}

	provider.UpdatedAt = providerM.UpdatedAt

	return nil
}

func (repo *providerRepository) List(ctx context.Context, query repository.ProviderQuery) ([]*entity.Provider, int64, error) {
	tx := repo.db.WithContext(ctx).Model(&model.ProviderModel{})

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Where("LOWER(provider_name) LIKE LOWER(?) OR mobile LIKE ?", pattern, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count providers")
	}

	tx = tx.Order(providerOrderClause(query.SortBy, query.SortDir)).
		Limit(query.Limit()).
		Offset(query.Offset())

	var providerModels []*model.ProviderModel
	if err := tx.Find(&providerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list providers")
	}

	providers := make([]*entity.Provider, 0, len(providerModels))
	for _, providerM := range providerModels {
		providers = append(providers, toProviderDomain(providerM))
	}

	return providers, total, nil
}

func (repo *providerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.ProviderModel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count providers")
	}

	return total, nil
}

// providerOrderClause maps the sort whitelist onto column expressions.
// Unknown columns fall back to newest first.
func providerOrderClause(sortBy string, dir repository.SortDirection) string {
	column := ""
	switch sortBy {
	case "name":
		column = "provider_name"
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

func toProviderDomain(data *model.ProviderModel) *entity.Provider {
	if data == nil {
		return nil
	}

	return &entity.Provider{
		ID:           data.ID,
		TenantID:     data.TenantID,
		ProviderName: data.ProviderName,
		Telephone:    data.Telephone,
		Mobile:       data.Mobile,
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromProviderDomain(data *entity.Provider) *model.ProviderModel {
	if data == nil {
		return nil
	}

	return &model.ProviderModel{
		ID:           data.ID,
		TenantID:     data.TenantID,
		ProviderName: data.ProviderName,
		Telephone:    data.Telephone,
		Mobile:       data.Mobile,
		Address:      data.Address,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
