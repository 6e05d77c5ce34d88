package postgres

import (
	"context"
	"testing"
	"time"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenRepository_FindByHash(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	token := &entity.RefreshToken{
		AccountID: uuid.New(),
		TokenHash: "live-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, token))

	found, err := repo.FindByHash(ctx, "live-hash")
	require.NoError(t, err)
	assert.Equal(t, token.AccountID, found.AccountID)

	_, err = repo.FindByHash(ctx, "missing-hash")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
}

func TestRefreshTokenRepository_FindByHash_ExpiredIsPurged(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	token := &entity.RefreshToken{
		AccountID: uuid.New(),
		TokenHash: "stale-hash",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, repo.Create(ctx, token))

	_, err := repo.FindByHash(ctx, "stale-hash")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenExpired)

	// The expired row was deleted, so a second lookup misses entirely.
	_, err = repo.FindByHash(ctx, "stale-hash")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
}

func TestRefreshTokenRepository_DeleteByAccountID(t *testing.T) {
	repo := NewRefreshTokenRepository(newTestDB(t))
	ctx := context.Background()

	accountID := uuid.New()
	for _, hash := range []string{"session-1", "session-2"} {
		require.NoError(t, repo.Create(ctx, &entity.RefreshToken{
			AccountID: accountID,
			TokenHash: hash,
			ExpiresAt: time.Now().Add(time.Hour),
		}))
	}
	other := &entity.RefreshToken{
		AccountID: uuid.New(),
		TokenHash: "other-session",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.DeleteByAccountID(ctx, accountID))

	_, err := repo.FindByHash(ctx, "session-1")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	_, err = repo.FindByHash(ctx, "session-2")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)

	_, err = repo.FindByHash(ctx, "other-session")
	assert.NoError(t, err)
}

func TestPasswordResetRepository_CreateReplacesPrevious(t *testing.T) {
	repo := NewPasswordResetRepository(newTestDB(t))
	ctx := context.Background()

	accountID := uuid.New()
	require.NoError(t, repo.Create(ctx, &entity.PasswordReset{
		AccountID: accountID,
		TokenHash: "first-reset",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.PasswordReset{
		AccountID: accountID,
		TokenHash: "second-reset",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	// Only the newest reset survives.
	_, err := repo.FindByHash(ctx, "first-reset")
	assert.ErrorIs(t, err, repository.ErrPasswordResetNotFound)

	found, err := repo.FindByHash(ctx, "second-reset")
	require.NoError(t, err)
	assert.Equal(t, accountID, found.AccountID)
}

func TestPasswordResetRepository_ExpiredTokenRejected(t *testing.T) {
	repo := NewPasswordResetRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.PasswordReset{
		AccountID: uuid.New(),
		TokenHash: "stale-reset",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := repo.FindByHash(ctx, "stale-reset")
	assert.ErrorIs(t, err, repository.ErrPasswordResetNotFound)
}
