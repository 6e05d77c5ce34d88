package main

import (
	"context"
	"log/slog"
	"os"

	"orderdesk/config"
	"orderdesk/internal/delivery"
	"orderdesk/internal/delivery/http"
	"orderdesk/internal/delivery/http/middleware"
	"orderdesk/internal/delivery/http/router/handler"
	"orderdesk/internal/domain/service"
	"orderdesk/internal/infra/auth"
	logs "orderdesk/internal/infra/log"
	"orderdesk/internal/infra/mail"
	"orderdesk/internal/infra/persistence/postgres"
	"orderdesk/internal/infra/realtime"
	"orderdesk/internal/infra/storage"
	"orderdesk/internal/infra/telegram"
	"orderdesk/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewProviderRepository,
			postgres.NewCategoryRepository,
			postgres.NewProductRepository,
			postgres.NewOrderRepository,
			postgres.NewNotificationRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewPasswordResetRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			mail.NewSMTPMailer,
			telegram.NewBotClient,
			storage.NewBlobImageStore,
			realtime.NewHub,
			newOrderEventPublisher,
		),
	)
}

// newOrderEventPublisher exposes the websocket hub as the domain event port.
func newOrderEventPublisher(hub *realtime.Hub) service.OrderEventPublisher {
	return hub
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewProviderService,
			impl.NewCategoryService,
			impl.NewProductService,
			impl.NewOrderService,
			impl.NewDashboardService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewProviderHandler,
			handler.NewCategoryHandler,
			handler.NewProductHandler,
			handler.NewOrderHandler,
			handler.NewDashboardHandler,
			handler.NewNotificationHandler,
			handler.NewTelegramHandler,
			handler.NewWSHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
