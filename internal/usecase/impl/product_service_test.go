package impl

import (
	"context"
	"strings"
	"testing"

	"orderdesk/internal/domain/entity"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productTestEnv struct {
	svc      usecase.ProductUsecase
	factory  *fakeRepoFactory
	images   *fakeImageStore
	category *entity.Category
}

func newProductTestEnv(t *testing.T) *productTestEnv {
	t.Helper()

	factory := newFakeRepoFactory()
	images := &fakeImageStore{}

	svc := NewProductService(ProductServiceParams{
		ProductRepo:  factory.productRepo,
		CategoryRepo: factory.categoryRepo,
		ImageStore:   images,
		Logger:       discardLogger(),
	})

	category := &entity.Category{Name: "冷凍食品"}
	require.NoError(t, factory.categoryRepo.Create(context.Background(), category))

	return &productTestEnv{svc: svc, factory: factory, images: images, category: category}
}

func TestProductService_Create_RequiresExistingCategory(t *testing.T) {
	env := newProductTestEnv(t)

	_, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: uuid.New(),
		Name:       "水餃",
		Price:      120,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category not found")
}

func TestProductService_Create_RejectsNegativePrices(t *testing.T) {
	env := newProductTestEnv(t)

	_, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "水餃",
		Price:      -1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price must not be negative")

	negative := int64(-5)
	_, err = env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "水餃",
		Price:      100,
		NewPrice:   &negative,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discount price must not be negative")
}

func TestProductService_Create_RejectsDuplicateNameInCategory(t *testing.T) {
	env := newProductTestEnv(t)

	_, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "鍋貼",
		Price:      90,
	})
	require.NoError(t, err)

	_, err = env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "鍋貼",
		Price:      95,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product name already exists in category")

	// The same name in a different category is fine.
	other := &entity.Category{Name: "熟食"}
	require.NoError(t, env.factory.categoryRepo.Create(context.Background(), other))

	_, err = env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: other.ID,
		Name:       "鍋貼",
		Price:      95,
	})
	require.NoError(t, err)
}

func TestProductService_Create_StoresUploadedImage(t *testing.T) {
	env := newProductTestEnv(t)

	product, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "春捲",
		Price:      60,
		IsActive:   true,
		Image: &usecase.ImageUpload{
			Filename:    "spring-roll.jpg",
			ContentType: "image/jpeg",
			Reader:      strings.NewReader("fake image bytes"),
		},
	})
	require.NoError(t, err)

	require.Len(t, env.images.saved, 1)
	assert.Equal(t, env.images.saved[0], product.ImageURL)
}

func TestProductService_Update_ExcludesOwnIDFromUniqueness(t *testing.T) {
	env := newProductTestEnv(t)

	product, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "蛋餅",
		Price:      45,
		IsActive:   true,
	})
	require.NoError(t, err)

	// Saving under its own unchanged name must succeed.
	updated, err := env.svc.Update(context.Background(), usecase.UpdateProductInput{
		ID:         product.ID,
		CategoryID: env.category.ID,
		Name:       "蛋餅",
		Price:      50,
		IsActive:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), updated.Price)
}

func TestProductService_Update_ReplacingImageDeletesOldFile(t *testing.T) {
	env := newProductTestEnv(t)

	product, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "蘿蔔糕",
		Price:      55,
		Image: &usecase.ImageUpload{
			Filename:    "old.png",
			ContentType: "image/png",
			Reader:      strings.NewReader("old"),
		},
	})
	require.NoError(t, err)
	oldURL := product.ImageURL

	updated, err := env.svc.Update(context.Background(), usecase.UpdateProductInput{
		ID:         product.ID,
		CategoryID: env.category.ID,
		Name:       "蘿蔔糕",
		Price:      55,
		Image: &usecase.ImageUpload{
			Filename:    "new.png",
			ContentType: "image/png",
			Reader:      strings.NewReader("new"),
		},
	})
	require.NoError(t, err)
	assert.NotEqual(t, oldURL, updated.ImageURL)
	assert.Equal(t, []string{oldURL}, env.images.deleted)
}

func TestProductService_Update_ClearsDiscountPrice(t *testing.T) {
	env := newProductTestEnv(t)

	discounted := int64(35)
	product, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "飯糰",
		Price:      40,
		NewPrice:   &discounted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(35), product.EffectivePrice())

	updated, err := env.svc.Update(context.Background(), usecase.UpdateProductInput{
		ID:         product.ID,
		CategoryID: env.category.ID,
		Name:       "飯糰",
		Price:      40,
		NewPrice:   nil,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.NewPrice)
	assert.Equal(t, int64(40), updated.EffectivePrice())
}

func TestProductService_Delete_RemovesStoredImage(t *testing.T) {
	env := newProductTestEnv(t)

	product, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "壽司",
		Price:      150,
		Image: &usecase.ImageUpload{
			Filename:    "sushi.webp",
			ContentType: "image/webp",
			Reader:      strings.NewReader("img"),
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(context.Background(), product.ID))
	assert.Equal(t, []string{product.ImageURL}, env.images.deleted)
}

func TestProductService_ListActive_ForcesActiveFilter(t *testing.T) {
	env := newProductTestEnv(t)

	_, err := env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "現售品",
		Price:      10,
		IsActive:   true,
	})
	require.NoError(t, err)
	_, err = env.svc.Create(context.Background(), usecase.CreateProductInput{
		CategoryID: env.category.ID,
		Name:       "下架品",
		Price:      10,
		IsActive:   false,
	})
	require.NoError(t, err)

	inactive := false
	output, err := env.svc.ListActive(context.Background(), usecase.ProductListInput{IsActive: &inactive})
	require.NoError(t, err)
	require.Len(t, output.Items, 1)
	assert.Equal(t, "現售品", output.Items[0].Name)
}
