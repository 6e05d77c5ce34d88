package usecase

import (
	"context"

	"orderdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationListInput pages through a tenant's notification inbox.
type NotificationListInput struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

// NotificationListOutput is one page of notifications.
type NotificationListOutput struct {
	Items      []*entity.Notification
	Pagination PaginationInfo
}

// NotificationUsecase defines the notification inbox operations. Every
// operation is scoped to the caller's tenant.
type NotificationUsecase interface {
	List(ctx context.Context, tenantID uuid.UUID, input NotificationListInput) (*NotificationListOutput, error)
	UnreadCount(ctx context.Context, tenantID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, tenantID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, tenantID uuid.UUID) error
}
