// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"time"

	"orderdesk/config"
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

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager         repository.TransactionManager
	accountRepo       repository.AccountRepository
	providerRepo      repository.ProviderRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	passwordResetRepo repository.PasswordResetRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	mailer            service.Mailer
	resetTokenTTL     time.Duration
	resetBaseURL      string
	logger            *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	AccountRepo       repository.AccountRepository
	ProviderRepo      repository.ProviderRepository
	RefreshTokenRepo  repository.RefreshTokenRepository
	PasswordResetRepo repository.PasswordResetRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	Mailer            service.Mailer
	Config            *config.Config
	Logger            *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	resetTTL := time.Hour
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ResetTokenTTL > 0 {
		resetTTL = params.Config.Auth.ResetTokenTTL
	}
	resetBaseURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		resetBaseURL = params.Config.Mail.ResetBaseURL
	}

	return &accountService{
		txManager:         params.TxManager,
		accountRepo:       params.AccountRepo,
		providerRepo:      params.ProviderRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		passwordResetRepo: params.PasswordResetRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		mailer:            params.Mailer,
		resetTokenTTL:     resetTTL,
		resetBaseURL:      resetBaseURL,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the Account and its Provider profile inside one
// transaction, so a failure leaves neither row behind.
func (srv *accountService) Register(ctx context.Context, input usecase.RegisterProviderInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("starting provider registration", slog.String("providerName", input.ProviderName))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	output := &usecase.RegisterOutput{}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()
		providerRepo := repoFactory.ProviderRepo()

		if _, err := accountRepo.FindByMobile(ctx, input.Mobile); err == nil {
			return domainerrors.ErrMobileAlreadyRegistered.WrapMessage("mobile already registered")
		} else if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check mobile uniqueness")
		}

		tenantID := uuid.New()
		account := &entity.Account{
			TenantID:     tenantID,
			DisplayName:  input.ProviderName,
			Mobile:       input.Mobile,
			Email:        input.Email,
			Role:         entity.RoleProvider,
			PasswordHash: passwordHash,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			return err
		}

		provider := &entity.Provider{
			TenantID:     tenantID,
			ProviderName: input.ProviderName,
			Telephone:    input.Telephone,
			Mobile:       input.Mobile,
			Address:      input.Address,
		}
		if err := providerRepo.Create(ctx, provider); err != nil {
			return err
		}

		output.Account = account
		output.Provider = provider

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("provider registered",
		slog.String("tenantId", output.Account.TenantID.String()),
		slog.String("providerName", input.ProviderName),
	)

	return output, nil
}

// Login checks credentials and the lock window, then issues a token pair and
// persists the hashed refresh token.
func (srv *accountService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	account, err := srv.accountRepo.FindByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown login")
		}

		return nil, errors.Wrap(err, "failed to look up account")
	}

	if account.IsLocked(time.Now()) {
		return nil, domainerrors.ErrAccountLocked.WrapMessage("account locked until " + account.LockedUntil.Format(time.RFC3339))
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	roles := entity.Roles{account.Role}
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(account.ID, account.TenantID, roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	session := &entity.RefreshToken{
		AccountID: account.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	srv.log(ctx).Info("account logged in", slog.String("accountId", account.ID.String()))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	}, nil
}

// Refresh validates the refresh JWT and its stored hash, then issues a new
// access token. The refresh token itself is not rotated.
func (srv *accountService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token rejected")
	}

	if _, err := srv.refreshTokenRepo.FindByHash(ctx, srv.tokenService.HashToken(input.RefreshToken)); err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("session not found or expired")
	}

	account, err := srv.accountRepo.FindByID(ctx, claims.AccountID)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("account gone")
	}
	if account.IsLocked(time.Now()) {
		return nil, domainerrors.ErrAccountLocked.WrapMessage("account locked")
	}

	roles := entity.Roles{account.Role}
	accessToken, _, err := srv.tokenService.GenerateTokens(account.ID, account.TenantID, roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout deletes the presented session.
func (srv *accountService) Logout(ctx context.Context, refreshToken string) error {
	return srv.refreshTokenRepo.DeleteByHash(ctx, srv.tokenService.HashToken(refreshToken))
}

// LogoutAll deletes every session of the account.
func (srv *accountService) LogoutAll(ctx context.Context, accountID uuid.UUID) error {
	return srv.refreshTokenRepo.DeleteByAccountID(ctx, accountID)
}

// ChangePassword verifies the old password, strength-checks the new one and
// rehashes. Other sessions stay valid.
func (srv *accountService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("old password mismatch")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	account.PasswordHash = newHash

	return srv.accountRepo.Update(ctx, account)
}

// ForgotPassword issues a one-time reset token and mails the link. Unknown
// logins and accounts without a mail address return success, so the endpoint
// does not leak which accounts exist.
func (srv *accountService) ForgotPassword(ctx context.Context, mobileOrName string) error {
	account, err := srv.accountRepo.FindByLogin(ctx, mobileOrName)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Info("password reset requested for unknown login")

			return nil
		}

		return errors.Wrap(err, "failed to look up account")
	}
	if account.Email == "" {
		srv.log(ctx).Info("password reset requested for account without mail address",
			slog.String("accountId", account.ID.String()))

		return nil
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	reset := &entity.PasswordReset{
		AccountID: account.ID,
		TokenHash: srv.tokenService.HashToken(rawToken),
		ExpiresAt: time.Now().Add(srv.resetTokenTTL),
	}
	if err := srv.passwordResetRepo.Create(ctx, reset); err != nil {
		return errors.Wrap(err, "failed to persist reset token")
	}

	resetURL := srv.resetBaseURL + "?token=" + rawToken
	if err := srv.mailer.SendPasswordReset(ctx, account.Email, account.DisplayName, resetURL); err != nil {
		return errors.Wrap(err, "failed to send reset mail")
	}

	return nil
}

// ResetPassword consumes a valid reset token, sets the new password and
// revokes every live session of the account.
func (srv *accountService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	reset, err := srv.passwordResetRepo.FindByHash(ctx, srv.tokenService.HashToken(input.Token))
	if err != nil {
		return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token rejected")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, reset.AccountID)
		if err != nil {
			return err
		}

		account.PasswordHash = newHash
		if err := accountRepo.Update(ctx, account); err != nil {
			return err
		}

		if err := repoFactory.PasswordResetRepo().DeleteByAccountID(ctx, account.ID); err != nil {
			return err
		}

		// A reset means the credentials may have been compromised.
		return repoFactory.RefreshTokenRepo().DeleteByAccountID(ctx, account.ID)
	})
}

// CurrentUser returns the authenticated account's profile.
func (srv *accountService) CurrentUser(ctx context.Context, accountID uuid.UUID) (*usecase.CurrentUserOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &usecase.CurrentUserOutput{
		AccountID:   account.ID,
		TenantID:    account.TenantID,
		DisplayName: account.DisplayName,
		Mobile:      account.Mobile,
		Role:        account.Role.String(),
		IsVerified:  account.IsVerified,
	}, nil
}

// generateResetToken returns 32 random bytes as URL-safe base64.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
