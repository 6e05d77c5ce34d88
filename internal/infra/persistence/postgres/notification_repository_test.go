package postgres

import (
	"context"
	"testing"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(t *testing.T, repo repository.NotificationRepository, tenantID uuid.UUID) *entity.Notification {
	t.Helper()

	notification := &entity.Notification{
		EntityID: uuid.New(),
		TenantID: tenantID,
		Type:     entity.NotificationTypeOrderCreated,
		Title:    "新訂單",
		Content:  "測試通知",
	}
	require.NoError(t, repo.Create(context.Background(), notification))

	return notification
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	seedNotification(t, repo, tenantID)
	read := seedNotification(t, repo, tenantID)
	require.NoError(t, repo.MarkRead(ctx, tenantID, read.ID))

	count, err := repo.CountUnread(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestNotificationRepository_MarkRead_GuardsTenant(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	owner := uuid.New()
	notification := seedNotification(t, repo, owner)

	err := repo.MarkRead(ctx, uuid.New(), notification.ID)
	assert.ErrorIs(t, err, repository.ErrNotificationNotFound)

	require.NoError(t, repo.MarkRead(ctx, owner, notification.ID))

	count, err := repo.CountUnread(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationRepository_MarkAllRead_LeavesOtherTenantsAlone(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()

	tenantA := uuid.New()
	tenantB := uuid.New()
	seedNotification(t, repo, tenantA)
	seedNotification(t, repo, tenantA)
	seedNotification(t, repo, tenantB)

	require.NoError(t, repo.MarkAllRead(ctx, tenantA))

	countA, err := repo.CountUnread(ctx, tenantA)
	require.NoError(t, err)
	assert.Zero(t, countA)

	countB, err := repo.CountUnread(ctx, tenantB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), countB)
}

func TestNotificationRepository_ListByTenant_UnreadFilter(t *testing.T) {
	repo := NewNotificationRepository(newTestDB(t))
	ctx := context.Background()
	tenantID := uuid.New()

	seedNotification(t, repo, tenantID)
	read := seedNotification(t, repo, tenantID)
	require.NoError(t, repo.MarkRead(ctx, tenantID, read.ID))

	all, total, err := repo.ListByTenant(ctx, tenantID, repository.NotificationQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	unread, total, err := repo.ListByTenant(ctx, tenantID, repository.NotificationQuery{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, unread, 1)
	assert.False(t, unread[0].IsRead)
}
