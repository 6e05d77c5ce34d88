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

// notificationRepository implements the repository.NotificationRepository interface using GORM.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository is the constructor for notificationRepository.
func NewNotificationRepository(db *gorm.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (repo *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationM := fromNotificationDomain(notification)

	if err := repo.db.WithContext(ctx).Create(notificationM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create notification")
	}

	notification.ID = notificationM.ID
	notification.CreatedAt = notificationM.CreatedAt

	return nil
}

func (repo *notificationRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, query repository.NotificationQuery) ([]*entity.Notification, int64, error) {
	tx := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("tenant_id = ?", tenantID)
	if query.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count notifications")
	}

	var notificationModels []*model.NotificationModel
	if err := tx.Order("created_at DESC").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&notificationModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list notifications")
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for _, notificationM := range notificationModels {
		notifications = append(notifications, toNotificationDomain(notificationM))
	}

	return notifications, total, nil
}

func (repo *notificationRepository) CountUnread(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("tenant_id = ? AND is_read = ?", tenantID, false).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count unread notifications")
	}

	return count, nil
}

func (repo *notificationRepository) MarkRead(ctx context.Context, tenantID, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("is_read", true)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to mark notification read")
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotificationNotFound
	}

	return nil
}

func (repo *notificationRepository) MarkAllRead(ctx context.Context, tenantID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("tenant_id = ? AND is_read = ?", tenantID, false).
		Update("is_read", true).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to mark notifications read")
	}

	return nil
}

// --- Mapper Functions ---

func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:        data.ID,
		EntityID:  data.EntityID,
		TenantID:  data.TenantID,
		Type:      entity.NotificationType(data.Type),
		Title:     data.Title,
		Content:   data.Content,
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}

func fromNotificationDomain(data *entity.Notification) *model.NotificationModel {
	if data == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:        data.ID,
		EntityID:  data.EntityID,
		TenantID:  data.TenantID,
		Type:      string(data.Type),
		Title:     data.Title,
		Content:   data.Content,
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}
