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
)

// passwordResetRepository implements the repository.PasswordResetRepository interface using GORM.
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository is the constructor for passwordResetRepository.
func NewPasswordResetRepository(db *gorm.DB) repository.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (repo *passwordResetRepository) Create(ctx context.Context, reset *entity.PasswordReset) error {
	// One outstanding reset per account: a fresh request invalidates the old link.
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", reset.AccountID).
		Delete(&model.PasswordResetModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear previous reset tokens")
	}

	resetM := fromPasswordResetDomain(reset)
	if err := repo.db.WithContext(ctx).Create(resetM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create reset token")
	}

	reset.ID = resetM.ID
	reset.CreatedAt = resetM.CreatedAt

	return nil
}

func (repo *passwordResetRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error) {
	var resetM model.PasswordResetModel

	if err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&resetM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPasswordResetNotFound
		}

		return nil, errors.Wrap(err, "failed to find reset token")
	}

	if resetM.ExpiresAt.Before(time.Now()) {
		repo.db.WithContext(ctx).Delete(&model.PasswordResetModel{}, "id = ?", resetM.ID)

		return nil, repository.ErrPasswordResetNotFound
	}

	return toPasswordResetDomain(&resetM), nil
}

func (repo *passwordResetRepository) DeleteByAccountID(ctx context.Context, accountID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.PasswordResetModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete reset tokens")
	}

	return nil
}

// --- Mapper Functions ---

func toPasswordResetDomain(data *model.PasswordResetModel) *entity.PasswordReset {
	if data == nil {
		return nil
	}

	return &entity.PasswordReset{
		ID:        data.ID,
		AccountID: data.AccountID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromPasswordResetDomain(data *entity.PasswordReset) *model.PasswordResetModel {
	if data == nil {
		return nil
	}

	return &model.PasswordResetModel{
		ID:        data.ID,
		AccountID: data.AccountID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
