package handler

import (
	"net/http"
	"strconv"
	"time"

	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProviderHandler holds dependencies for admin provider management handlers.
type ProviderHandler struct {
	uc usecase.ProviderUsecase
}

// NewProviderHandler is the constructor for ProviderHandler, injected by Fx.
func NewProviderHandler(uc usecase.ProviderUsecase) *ProviderHandler {
	return &ProviderHandler{uc: uc}
}

type providerResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenantId"`
	ProviderName string `json:"providerName"`
	Telephone    string `json:"telephone"`
	Mobile       string `json:"mobile"`
	Address      string `json:"address"`
	IsVerified   bool   `json:"isVerified"`
	IsLocked     bool   `json:"isLocked"`
	CreatedAt    string `json:"createdAt"`
}

func toProviderResponse(item *usecase.ProviderOutput) providerResponse {
	return providerResponse{
		ID:           item.Provider.ID.String(),
		TenantID:     item.Provider.TenantID.String(),
		ProviderName: item.Provider.ProviderName,
		Telephone:    item.Provider.Telephone,
		Mobile:       item.Provider.Mobile,
		Address:      item.Provider.Address,
		IsVerified:   item.IsVerified,
		IsLocked:     item.IsLocked,
		CreatedAt:    item.Provider.CreatedAt.Format(time.RFC3339),
	}
}

// List handles the paginated provider listing.
func (h *ProviderHandler) List(c echo.Context) error {
	input := usecase.ProviderListInput{
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sortBy"),
		SortDir:  c.QueryParam("sortDirection"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}

	output, err := h.uc.List(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]providerResponse, 0, len(output.Items))
	for _, item := range output.Items {
		items = append(items, toProviderResponse(item))
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"items":      items,
		"pagination": output.Pagination,
	}, "")
}

// Get returns one provider with its account flags.
func (h *ProviderHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider id")
	}

	output, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProviderResponse(output), "")
}

// Verify marks the provider's account as vetted.
func (h *ProviderHandler) Verify(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider id")
	}

	if err := h.uc.Verify(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Provider verified")
}

type lockRequest struct {
	LockedUntil time.Time `json:"lockedUntil" validate:"required"`
}

// Lock blocks logins of the provider's account until the given time.
func (h *ProviderHandler) Lock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider id")
	}

	var req lockRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid lock input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.uc.Lock(c.Request().Context(), usecase.LockProviderInput{
		ProviderID:  id,
		LockedUntil: req.LockedUntil,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Provider locked")
}

// Unlock clears the provider account's lock window.
func (h *ProviderHandler) Unlock(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid provider id")
	}

	if err := h.uc.Unlock(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Provider unlocked")
}

// queryInt parses an integer query parameter, zero when absent or malformed.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return v
}
