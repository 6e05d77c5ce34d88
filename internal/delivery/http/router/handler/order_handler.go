package handler

import (
	"net/http"
	"time"

	"orderdesk/internal/delivery/http/middleware"
	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/domain/entity"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order handlers, serving both the admin
// and the provider surface.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderItemRequest struct {
	ID        *uuid.UUID `json:"id"`
	ProductID uuid.UUID  `json:"productId" validate:"required"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
}

type createOrderRequest struct {
	ProviderID     uuid.UUID          `json:"providerId"`
	DiscountAmount int64              `json:"discountAmount"`
	DeliveryDate   *time.Time         `json:"deliveryDate"`
	Items          []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req *createOrderRequest) toInput() usecase.CreateOrderInput {
	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return usecase.CreateOrderInput{
		ProviderID:     req.ProviderID,
		DiscountAmount: req.DiscountAmount,
		DeliveryDate:   req.DeliveryDate,
		Items:          items,
	}
}

// Create places an order for an explicitly named provider (admin surface).
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.ProviderID == uuid.Nil {
		return response.BadRequest(c, "INVALID_INPUT", "Provider id is required")
	}

	order, err := h.uc.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created")
}

// CreateOwn places an order for the caller's own provider (provider surface).
func (h *OrderHandler) CreateOwn(c echo.Context) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.CreateForTenant(c.Request().Context(), tenantID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created")
}

// Get returns one order with its items.
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order id")
	}

	order, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "")
}

func orderListInput(c echo.Context) usecase.OrderListInput {
	input := usecase.OrderListInput{
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sortBy"),
		SortDir:  c.QueryParam("sortDirection"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}

	if raw := c.QueryParam("status"); raw != "" {
		status := entity.OrderStatus(raw)
		if status.IsValid() {
			input.Status = &status
		}
	}
	if raw := c.QueryParam("providerId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			input.ProviderID = &id
		}
	}
	if raw := c.QueryParam("dateFrom"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			input.DateFrom = &t
		}
	}
	if raw := c.QueryParam("dateTo"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			input.DateTo = &t
		}
	}

	return input
}

// List handles the paginated order listing (admin surface).
func (h *OrderHandler) List(c echo.Context) error {
	output, err := h.uc.List(c.Request().Context(), orderListInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"items":      output.Items,
		"pagination": output.Pagination,
	}, "")
}

// ListByProvider lists one provider's orders (admin surface).
func (h *OrderHandler) ListByProvider(c echo.Context) error {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider id")
	}

	input := orderListInput(c)
	input.ProviderID = &providerID

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"items":      output.Items,
		"pagination": output.Pagination,
	}, "")
}

// ListOwn lists the caller's own orders (provider surface).
func (h *OrderHandler) ListOwn(c echo.Context) error {
	tenantID, ok := middleware.TenantID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	output, err := h.uc.ListByTenant(c.Request().Context(), tenantID, orderListInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"items":      output.Items,
		"pagination": output.Pagination,
	}, "")
}

type updateOrderRequest struct {
	DiscountAmount int64              `json:"discountAmount"`
	DeliveryDate   *time.Time         `json:"deliveryDate"`
	Items          []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// Update reconciles an order's items and reprices it.
func (h *OrderHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order id")
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.uc.Update(c.Request().Context(), usecase.UpdateOrderInput{
		ID:             id,
		DiscountAmount: req.DiscountAmount,
		DeliveryDate:   req.DeliveryDate,
		Items:          items,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order updated")
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order through the allowed status transitions.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// Delete removes an order still in status new.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted")
}

// Statistics returns order count and revenue aggregates.
func (h *OrderHandler) Statistics(c echo.Context) error {
	output, err := h.uc.Statistics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
