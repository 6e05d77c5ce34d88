package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "orderdesk/internal/delivery/context"
	"orderdesk/internal/domain/entity"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/domain/service"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	imageStore   service.ImageStore
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ImageStore   service.ImageStore
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		imageStore:   params.ImageStore,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) Create(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if err := srv.validateProductInput(input.Name, input.Price, input.NewPrice); err != nil {
		return nil, err
	}

	if _, err := srv.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category not found")
		}

		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	exists, err := srv.productRepo.NameExistsInCategory(ctx, input.CategoryID, name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrProductNameTaken.WrapMessage("product name already exists in category")
	}

	product := &entity.Product{
		CategoryID: input.CategoryID,
		Name:       name,
		Price:      input.Price,
		NewPrice:   input.NewPrice,
		IsActive:   input.IsActive,
	}

	if input.Image != nil {
		url, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Reader)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		// The row never landed, so the stored image is orphaned.
		srv.cleanupImage(ctx, product.ImageURL)

		return nil, err
	}

	srv.log(ctx).Info("product created",
		slog.String("productId", product.ID.String()),
		slog.String("name", name),
	)

	return product, nil
}

func (srv *productService) Update(ctx context.Context, input usecase.UpdateProductInput) (*entity.Product, error) {
	if err := srv.validateProductInput(input.Name, input.Price, input.NewPrice); err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
		}

		return nil, err
	}

	if _, err := srv.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category not found")
		}

		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	exists, err := srv.productRepo.NameExistsInCategory(ctx, input.CategoryID, name, &input.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrProductNameTaken.WrapMessage("product name already exists in category")
	}

	oldImageURL := product.ImageURL

	product.CategoryID = input.CategoryID
	product.Name = name
	product.Price = input.Price
	product.NewPrice = input.NewPrice
	product.IsActive = input.IsActive

	if input.Image != nil {
		url, err := srv.imageStore.Save(ctx, input.Image.Filename, input.Image.ContentType, input.Image.Reader)
		if err != nil {
			return nil, err
		}
		product.ImageURL = url
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if input.Image != nil {
			srv.cleanupImage(ctx, product.ImageURL)
		}

		return nil, err
	}

	// The old file goes best-effort once the new row is safe.
	if input.Image != nil && oldImageURL != "" && oldImageURL != product.ImageURL {
		srv.cleanupImage(ctx, oldImageURL)
	}

	return product, nil
}

func (srv *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("product not found")
		}

		return err
	}

	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	srv.cleanupImage(ctx, product.ImageURL)

	return nil
}

func (srv *productService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
	}

	return product, err
}

func (srv *productService) List(ctx context.Context, input usecase.ProductListInput) (*usecase.ProductListOutput, error) {
	return srv.list(ctx, input, nil)
}

// ListActive is the provider storefront view: only sellable products.
func (srv *productService) ListActive(ctx context.Context, input usecase.ProductListInput) (*usecase.ProductListOutput, error) {
	active := true

	return srv.list(ctx, input, &active)
}

func (srv *productService) list(ctx context.Context, input usecase.ProductListInput, forceActive *bool) (*usecase.ProductListOutput, error) {
	isActive := input.IsActive
	if forceActive != nil {
		isActive = forceActive
	}

	query := repository.ProductQuery{
		Search:     input.Search,
		CategoryID: input.CategoryID,
		IsActive:   isActive,
		PriceMin:   input.PriceMin,
		PriceMax:   input.PriceMax,
		SortBy:     input.SortBy,
		SortDir:    usecase.SortDirectionFrom(input.SortDir),
		Pagination: repository.Pagination{
			Page:     input.Page,
			PageSize: input.PageSize,
		}.Normalize(),
	}

	products, total, err := srv.productRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &usecase.ProductListOutput{
		Items:      products,
		Pagination: usecase.NewPaginationInfo(query.Page, query.PageSize, total),
	}, nil
}

func (srv *productService) Statistics(ctx context.Context) (*usecase.ProductStatisticsOutput, error) {
	stats, err := srv.productRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &usecase.ProductStatisticsOutput{
		Total:      stats.Total,
		Active:     stats.Active,
		ByCategory: stats.ByCategory,
	}, nil
}

func (srv *productService) validateProductInput(name string, price int64, newPrice *int64) error {
	if strings.TrimSpace(name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("product name must not be empty")
	}
	if price < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}
	if newPrice != nil && *newPrice < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("discount price must not be negative")
	}

	return nil
}

// cleanupImage removes a stored image without letting failures surface.
func (srv *productService) cleanupImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := srv.imageStore.Delete(ctx, url); err != nil {
		srv.log(ctx).Warn("failed to remove product image", slog.String("url", url), slog.Any("error", err))
	}
}
