package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "orderdesk/internal/delivery/context"
	"orderdesk/internal/domain/entity"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for categoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) Create(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name must not be empty")
	}

	// The unique index is the last line of defense; this check gives the
	// caller a friendly error without hitting it.
	exists, err := srv.categoryRepo.NameExists(ctx, name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrCategoryNameTaken.WrapMessage("category name already exists")
	}

	category := &entity.Category{Name: name}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("category created", slog.String("name", name))

	return category, nil
}

func (srv *categoryService) Update(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name must not be empty")
	}

	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category not found")
		}

		return nil, err
	}

	// Excluding the category's own ID keeps a no-op rename legal.
	exists, err := srv.categoryRepo.NameExists(ctx, name, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainerrors.ErrCategoryNameTaken.WrapMessage("category name already exists")
	}

	category.Name = name
	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (srv *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return domainerrors.ErrCategoryNotFound.WrapMessage("category not found")
	}

	return err
}

func (srv *categoryService) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category not found")
	}

	return category, err
}

func (srv *categoryService) List(ctx context.Context, input usecase.CategoryListInput) (*usecase.CategoryListOutput, error) {
	query := repository.CategoryQuery{
		Search:  input.Search,
		SortBy:  input.SortBy,
		SortDir: usecase.SortDirectionFrom(input.SortDir),
		Pagination: repository.Pagination{
			Page:     input.Page,
			PageSize: input.PageSize,
		}.Normalize(),
	}

	categories, total, err := srv.categoryRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &usecase.CategoryListOutput{
		Items:      categories,
		Pagination: usecase.NewPaginationInfo(query.Page, query.PageSize, total),
	}, nil
}

func (srv *categoryService) ListAll(ctx context.Context) ([]*entity.Category, error) {
	return srv.categoryRepo.ListAll(ctx)
}
