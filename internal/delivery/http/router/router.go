// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"orderdesk/internal/delivery/http/middleware"
	"orderdesk/internal/delivery/http/router/handler"
	"orderdesk/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler      *handler.AccountHandler
	ProviderHandler     *handler.ProviderHandler
	CategoryHandler     *handler.CategoryHandler
	ProductHandler      *handler.ProductHandler
	OrderHandler        *handler.OrderHandler
	DashboardHandler    *handler.DashboardHandler
	NotificationHandler *handler.NotificationHandler
	TelegramHandler     *handler.TelegramHandler
	WSHandler           *handler.WSHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Websocket subscribers authenticate with a token query parameter.
	e.GET("/ws/notify", r.params.WSHandler.Notify)

	api := e.Group("/api")

	// Account routes open to anonymous callers
	accountGroup := api.Group("/account")
	{
		accountGroup.POST("/register", r.params.AccountHandler.Register)
		accountGroup.POST("/login", r.params.AccountHandler.Login)
		accountGroup.POST("/refresh", r.params.AccountHandler.Refresh)
		accountGroup.POST("/forgot-password", r.params.AccountHandler.ForgotPassword)
		accountGroup.POST("/reset-password", r.params.AccountHandler.ResetPassword)
	}

	// Account routes that require a valid access token
	sessionGroup := api.Group("/account")
	sessionGroup.Use(r.params.AuthMiddleware.Authenticate)
	{
		sessionGroup.POST("/logout", r.params.AccountHandler.Logout)
		sessionGroup.POST("/change-password", r.params.AccountHandler.ChangePassword)
		sessionGroup.GET("/me", r.params.AccountHandler.Me)
	}

	// Back-office routes that require authentication and the "admin" role
	adminGroup := api.Group("")
	adminGroup.Use(r.params.AuthMiddleware.Authenticate)
	adminGroup.Use(r.params.AuthMiddleware.RequireRole(string(entity.RoleAdmin)))
	{
		adminGroup.GET("/providers", r.params.ProviderHandler.List)
		adminGroup.GET("/providers/:id", r.params.ProviderHandler.Get)
		adminGroup.POST("/providers/:id/verify", r.params.ProviderHandler.Verify)
		adminGroup.POST("/providers/:id/lock", r.params.ProviderHandler.Lock)
		adminGroup.POST("/providers/:id/unlock", r.params.ProviderHandler.Unlock)

		adminGroup.GET("/categories", r.params.CategoryHandler.List)
		adminGroup.GET("/categories/all", r.params.CategoryHandler.ListAll)
		adminGroup.GET("/categories/:id", r.params.CategoryHandler.Get)
		adminGroup.POST("/categories", r.params.CategoryHandler.Create)
		adminGroup.PUT("/categories/:id", r.params.CategoryHandler.Update)
		adminGroup.DELETE("/categories/:id", r.params.CategoryHandler.Delete)

		adminGroup.GET("/products", r.params.ProductHandler.List)
		adminGroup.GET("/products/statistics", r.params.ProductHandler.Statistics)
		adminGroup.GET("/products/:id", r.params.ProductHandler.Get)
		adminGroup.POST("/products", r.params.ProductHandler.Create)
		adminGroup.PUT("/products/:id", r.params.ProductHandler.Update)
		adminGroup.DELETE("/products/:id", r.params.ProductHandler.Delete)

		adminGroup.GET("/orders", r.params.OrderHandler.List)
		adminGroup.GET("/orders/statistics", r.params.OrderHandler.Statistics)
		adminGroup.GET("/orders/provider/:id", r.params.OrderHandler.ListByProvider)
		adminGroup.GET("/orders/:id", r.params.OrderHandler.Get)
		adminGroup.POST("/orders", r.params.OrderHandler.Create)
		adminGroup.PUT("/orders/:id", r.params.OrderHandler.Update)
		adminGroup.PUT("/orders/:id/status", r.params.OrderHandler.UpdateStatus)
		adminGroup.DELETE("/orders/:id", r.params.OrderHandler.Delete)

		adminGroup.GET("/dashboard/cards", r.params.DashboardHandler.Cards)
		adminGroup.GET("/dashboard/monthly-revenue", r.params.DashboardHandler.MonthlyRevenue)
		adminGroup.GET("/dashboard/orders-by-status", r.params.DashboardHandler.OrdersByStatus)
		adminGroup.GET("/dashboard/recent-orders", r.params.DashboardHandler.RecentOrders)
		adminGroup.GET("/dashboard/top-products", r.params.DashboardHandler.TopProducts)

		adminGroup.GET("/notifications", r.params.NotificationHandler.List)
		adminGroup.GET("/notifications/unread-count", r.params.NotificationHandler.UnreadCount)
		adminGroup.PUT("/notifications/:id/read", r.params.NotificationHandler.MarkRead)
		adminGroup.PUT("/notifications/read-all", r.params.NotificationHandler.MarkAllRead)

		adminGroup.POST("/telegram/send", r.params.TelegramHandler.Send)
	}

	// Provider self-service routes
	providerGroup := api.Group("/provider")
	providerGroup.Use(r.params.AuthMiddleware.Authenticate)
	providerGroup.Use(r.params.AuthMiddleware.RequireRole(string(entity.RoleProvider)))
	{
		providerGroup.POST("/orders", r.params.OrderHandler.CreateOwn)
		providerGroup.GET("/orders", r.params.OrderHandler.ListOwn)
		providerGroup.GET("/products", r.params.ProductHandler.ListActive)
		providerGroup.GET("/categories", r.params.CategoryHandler.ListAll)
	}
}
