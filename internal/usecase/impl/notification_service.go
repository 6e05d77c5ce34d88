package impl

import (
	"context"

	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	notificationRepo repository.NotificationRepository
}

// NotificationServiceParams holds dependencies for notificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
	}
}

func (srv *notificationService) List(ctx context.Context, tenantID uuid.UUID, input usecase.NotificationListInput) (*usecase.NotificationListOutput, error) {
	query := repository.NotificationQuery{
		UnreadOnly: input.UnreadOnly,
		Pagination: repository.Pagination{
			Page:     input.Page,
			PageSize: input.PageSize,
		}.Normalize(),
	}

	notifications, total, err := srv.notificationRepo.ListByTenant(ctx, tenantID, query)
	if err != nil {
		return nil, err
	}

	return &usecase.NotificationListOutput{
		Items:      notifications,
		Pagination: usecase.NewPaginationInfo(query.Page, query.PageSize, total),
	}, nil
}

func (srv *notificationService) UnreadCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return srv.notificationRepo.CountUnread(ctx, tenantID)
}

func (srv *notificationService) MarkRead(ctx context.Context, tenantID, id uuid.UUID) error {
	err := srv.notificationRepo.MarkRead(ctx, tenantID, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return domainerrors.ErrNotificationNotFound.WrapMessage("notification not found")
	}

	return err
}

func (srv *notificationService) MarkAllRead(ctx context.Context, tenantID uuid.UUID) error {
	return srv.notificationRepo.MarkAllRead(ctx, tenantID)
}
