package handler

import (
	"net/http"

	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// DashboardHandler serves the admin dashboard aggregates.
type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Cards returns the headline numbers block.
func (h *DashboardHandler) Cards(c echo.Context) error {
	output, err := h.uc.Cards(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// MonthlyRevenue returns the trailing monthly revenue series.
func (h *DashboardHandler) MonthlyRevenue(c echo.Context) error {
	points, err := h.uc.MonthlyRevenue(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, points, "")
}

// OrdersByStatus returns the status breakdown chart data.
func (h *DashboardHandler) OrdersByStatus(c echo.Context) error {
	output, err := h.uc.OrdersByStatus(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// RecentOrders returns the latest orders table data.
func (h *DashboardHandler) RecentOrders(c echo.Context) error {
	output, err := h.uc.RecentOrders(c.Request().Context(), queryInt(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// TopProducts returns the top sellers table data.
func (h *DashboardHandler) TopProducts(c echo.Context) error {
	output, err := h.uc.TopProducts(c.Request().Context(), queryInt(c, "limit"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
