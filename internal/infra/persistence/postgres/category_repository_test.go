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

func TestCategoryRepository_NameExists_IsCaseInsensitive(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	category := &entity.Category{Name: "Drinks"}
	require.NoError(t, repo.Create(ctx, category))

	exists, err := repo.NameExists(ctx, "dRiNkS", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	// The category's own row does not count against itself.
	exists, err = repo.NameExists(ctx, "Drinks", &category.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.NameExists(ctx, "Snacks", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_Delete_RefusesWhileInUse(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	productRepo := NewProductRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "主食"}
	require.NoError(t, categoryRepo.Create(ctx, category))

	product := &entity.Product{
		CategoryID: category.ID,
		Name:       "炒飯",
		Price:      80,
		IsActive:   true,
	}
	require.NoError(t, productRepo.Create(ctx, product))

	err := categoryRepo.Delete(ctx, category.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category still has products")

	require.NoError(t, productRepo.Delete(ctx, product.ID))
	require.NoError(t, categoryRepo.Delete(ctx, category.ID))

	_, err = categoryRepo.FindByID(ctx, category.ID)
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryRepository_Delete_NotFound(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrCategoryNotFound)
}

func TestCategoryRepository_List_SearchAndPaging(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"冷凍水餃", "冷凍包子", "飲料"} {
		require.NoError(t, repo.Create(ctx, &entity.Category{Name: name}))
	}

	items, total, err := repo.List(ctx, repository.CategoryQuery{Search: "冷凍"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	page, total, err := repo.List(ctx, repository.CategoryQuery{
		Pagination: repository.Pagination{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)
}

func TestCategoryRepository_ListAll_SortedByName(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "b-category"}))
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "a-category"}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a-category", all[0].Name)
	assert.Equal(t, "b-category", all[1].Name)
}
