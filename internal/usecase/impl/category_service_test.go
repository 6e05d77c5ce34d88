package impl

import (
	"context"
	"testing"

	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService(factory *fakeRepoFactory) usecase.CategoryUsecase {
	return NewCategoryService(CategoryServiceParams{
		CategoryRepo: factory.categoryRepo,
		Logger:       discardLogger(),
	})
}

func TestCategoryService_Create_TrimsName(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	category, err := svc.Create(context.Background(), "  飲料  ")
	require.NoError(t, err)
	assert.Equal(t, "飲料", category.Name)
}

func TestCategoryService_Create_RejectsEmptyName(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	_, err := svc.Create(context.Background(), "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestCategoryService_Create_RejectsDuplicateName(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	_, err := svc.Create(context.Background(), "主食")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "主食")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category name already exists")
}

func TestCategoryService_Update_AllowsNoOpRename(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	category, err := svc.Create(context.Background(), "甜點")
	require.NoError(t, err)

	// Renaming to its own current name must not trip the uniqueness check.
	updated, err := svc.Update(context.Background(), category.ID, "甜點")
	require.NoError(t, err)
	assert.Equal(t, "甜點", updated.Name)
}

func TestCategoryService_Update_RejectsTakenName(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	_, err := svc.Create(context.Background(), "湯品")
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), "小菜")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), other.ID, "湯品")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category name already exists")
}

func TestCategoryService_Update_UnknownID(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	_, err := svc.Update(context.Background(), uuid.New(), "新名字")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestCategoryService_Get_UnknownID(t *testing.T) {
	factory := newFakeRepoFactory()
	svc := newCategoryService(factory)

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}
