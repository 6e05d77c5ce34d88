package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/config"
	"orderdesk/internal/domain/service"
)

func newTestStore(t *testing.T, maxBytes int64) service.ImageStore {
	t.Helper()

	cfg := &config.Config{
		Storage: &config.StorageConfig{
			ImagePath:      t.TempDir(),
			MaxUploadBytes: maxBytes,
		},
	}

	store, err := NewBlobImageStore(cfg)
	require.NoError(t, err)

	return store
}

func TestBlobImageStore_SaveAcceptsAllowedTypes(t *testing.T) {
	store := newTestStore(t, 1<<20)

	for _, contentType := range []string{"image/jpeg", "image/png", "image/webp"} {
		url, err := store.Save(context.Background(), "photo", contentType, strings.NewReader("data"))
		require.NoError(t, err, contentType)
		assert.True(t, strings.HasPrefix(url, "/images/"), contentType)
	}
}

func TestBlobImageStore_SaveRejectsUnsupportedTypes(t *testing.T) {
	store := newTestStore(t, 1<<20)

	for _, contentType := range []string{"image/gif", "image/svg+xml", "application/pdf"} {
		_, err := store.Save(context.Background(), "photo", contentType, strings.NewReader("data"))
		require.Error(t, err, contentType)
		assert.Contains(t, err.Error(), "unsupported content type")
	}
}

func TestBlobImageStore_SaveEnforcesSizeLimit(t *testing.T) {
	store := newTestStore(t, 8)

	_, err := store.Save(context.Background(), "big.png", "image/png", strings.NewReader("123456789"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds upload size limit")
}

func TestBlobImageStore_DeleteIgnoresUnknownPaths(t *testing.T) {
	store := newTestStore(t, 1<<20)

	assert.NoError(t, store.Delete(context.Background(), "/images/no-such-file.png"))
	assert.NoError(t, store.Delete(context.Background(), "not-an-image-url"))
}
