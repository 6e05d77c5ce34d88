package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "orderdesk/internal/delivery/context"
	"orderdesk/internal/domain/entity"
	domainerrors "orderdesk/internal/domain/errors"
	"orderdesk/internal/domain/repository"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// providerService implements the ProviderUsecase interface.
type providerService struct {
	providerRepo repository.ProviderRepository
	accountRepo  repository.AccountRepository
	logger       *slog.Logger
}

// ProviderServiceParams holds dependencies for providerService, injected by Fx.
type ProviderServiceParams struct {
	fx.In

	ProviderRepo repository.ProviderRepository
	AccountRepo  repository.AccountRepository
	Logger       *slog.Logger
}

// NewProviderService is the constructor for providerService.
func NewProviderService(params ProviderServiceParams) usecase.ProviderUsecase {
	return &providerService{
		providerRepo: params.ProviderRepo,
		accountRepo:  params.AccountRepo,
		logger:       params.Logger,
	}
}

func (srv *providerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *providerService) List(ctx context.Context, input usecase.ProviderListInput) (*usecase.ProviderListOutput, error) {
	query := repository.ProviderQuery{
		Search:  input.Search,
		SortBy:  input.SortBy,
		SortDir: usecase.SortDirectionFrom(input.SortDir),
		Pagination: repository.Pagination{
			Page:     input.Page,
			PageSize: input.PageSize,
		}.Normalize(),
	}

	providers, total, err := srv.providerRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]*usecase.ProviderOutput, 0, len(providers))
	for _, provider := range providers {
		item := &usecase.ProviderOutput{Provider: provider}
		// Account state decorates the listing; a missing account row only
		// loses the flags.
		if account, err := srv.accountRepo.FindByTenantID(ctx, provider.TenantID); err == nil {
			item.IsVerified = account.IsVerified
			item.IsLocked = account.IsLocked(time.Now())
		}
		items = append(items, item)
	}

	return &usecase.ProviderListOutput{
		Items:      items,
		Pagination: usecase.NewPaginationInfo(query.Page, query.PageSize, total),
	}, nil
}

func (srv *providerService) Get(ctx context.Context, id uuid.UUID) (*usecase.ProviderOutput, error) {
	provider, err := srv.providerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, domainerrors.ErrProviderNotFound.WrapMessage("provider not found")
		}

		return nil, err
	}

	output := &usecase.ProviderOutput{Provider: provider}
	if account, err := srv.accountRepo.FindByTenantID(ctx, provider.TenantID); err == nil {
		output.IsVerified = account.IsVerified
		output.IsLocked = account.IsLocked(time.Now())
	}

	return output, nil
}

// Verify marks the provider's account as vetted.
func (srv *providerService) Verify(ctx context.Context, id uuid.UUID) error {
	account, err := srv.accountForProvider(ctx, id)
	if err != nil {
		return err
	}

	account.IsVerified = true

	srv.log(ctx).Info("provider verified", slog.String("providerId", id.String()))

	return srv.accountRepo.Update(ctx, account)
}

// Lock blocks logins of the provider's account until the given time.
func (srv *providerService) Lock(ctx context.Context, input usecase.LockProviderInput) error {
	if !input.LockedUntil.After(time.Now()) {
		return domainerrors.ErrValidationFailed.WrapMessage("lock time must be in the future")
	}

	account, err := srv.accountForProvider(ctx, input.ProviderID)
	if err != nil {
		return err
	}

	until := input.LockedUntil
	account.LockedUntil = &until

	srv.log(ctx).Info("provider locked",
		slog.String("providerId", input.ProviderID.String()),
		slog.Time("until", until),
	)

	return srv.accountRepo.Update(ctx, account)
}

// Unlock clears the lock window.
func (srv *providerService) Unlock(ctx context.Context, id uuid.UUID) error {
	account, err := srv.accountForProvider(ctx, id)
	if err != nil {
		return err
	}

	account.LockedUntil = nil

	srv.log(ctx).Info("provider unlocked", slog.String("providerId", id.String()))

	return srv.accountRepo.Update(ctx, account)
}

// accountForProvider resolves the account paired with a provider profile
// through the shared tenant ID.
func (srv *providerService) accountForProvider(ctx context.Context, providerID uuid.UUID) (*entity.Account, error) {
	provider, err := srv.providerRepo.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrProviderNotFound) {
			return nil, domainerrors.ErrProviderNotFound.WrapMessage("provider not found")
		}

		return nil, err
	}

	account, err := srv.accountRepo.FindByTenantID(ctx, provider.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("provider account missing")
		}

		return nil, err
	}

	return account, nil
}
