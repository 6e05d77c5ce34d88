package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"orderdesk/internal/delivery/http/response"
	"orderdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product handlers.
type ProductHandler struct {
	uc usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// productForm reads the multipart form fields shared by create and update.
// Products come in as multipart because of the optional image part.
type productForm struct {
	CategoryID uuid.UUID
	Name       string
	Price      int64
	NewPrice   *int64
	IsActive   bool
}

func bindProductForm(c echo.Context) (*productForm, error) {
	categoryID, err := uuid.Parse(c.FormValue("categoryId"))
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid category id")
	}

	name := c.FormValue("name")
	if name == "" {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Product name is required")
	}

	price, err := strconv.ParseInt(c.FormValue("price"), 10, 64)
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid price")
	}

	form := &productForm{
		CategoryID: categoryID,
		Name:       name,
		Price:      price,
		IsActive:   c.FormValue("isActive") != "false",
	}

	if raw := c.FormValue("newPrice"); raw != "" {
		newPrice, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid discount price")
		}
		form.NewPrice = &newPrice
	}

	return form, nil
}

// imageUpload opens the optional multipart image part. The caller must close
// the returned file.
func imageUpload(c echo.Context) (*usecase.ImageUpload, multipart.File, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No image part is fine.
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open uploaded image")
	}

	return &usecase.ImageUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
	}, file, nil
}

// Create handles product creation with an optional image.
func (h *ProductHandler) Create(c echo.Context) error {
	form, err := bindProductForm(c)
	if err != nil {
		return err
	}

	upload, file, err := imageUpload(c)
	if err != nil {
		return errors.WithStack(err)
	}
	if file != nil {
		defer file.Close()
	}

	product, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		CategoryID: form.CategoryID,
		Name:       form.Name,
		Price:      form.Price,
		NewPrice:   form.NewPrice,
		IsActive:   form.IsActive,
		Image:      upload,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created")
}

// Update handles product updates with an optional replacement image.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product id")
	}

	form, err := bindProductForm(c)
	if err != nil {
		return err
	}

	upload, file, err := imageUpload(c)
	if err != nil {
		return errors.WithStack(err)
	}
	if file != nil {
		defer file.Close()
	}

	product, err := h.uc.Update(c.Request().Context(), usecase.UpdateProductInput{
		ID:         id,
		CategoryID: form.CategoryID,
		Name:       form.Name,
		Price:      form.Price,
		NewPrice:   form.NewPrice,
		IsActive:   form.IsActive,
		Image:      upload,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

// Delete removes a product and its stored image.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}

// Get returns one product.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid product id")
	}

	product, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "")
}

func productListInput(c echo.Context) usecase.ProductListInput {
	input := usecase.ProductListInput{
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sortBy"),
		SortDir:  c.QueryParam("sortDirection"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}

	if raw := c.QueryParam("categoryId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			input.CategoryID = &id
		}
	}
	if raw := c.QueryParam("isActive"); raw != "" {
		active := raw == "true"
		input.IsActive = &active
	}
	if raw := c.QueryParam("priceMin"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			input.PriceMin = &v
		}
	}
	if raw := c.QueryParam("priceMax"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			input.PriceMax = &v
		}
	}

	return input
}

// List handles the paginated product listing (admin surface).
func (h *ProductHandler) List(c echo.Context) error {
	output, err := h.uc.List(c.Request().Context(), productListInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"items":      output.Items,
		"pagination": output.Pagination,
	}, "")
}

// ListActive handles the provider storefront listing (active products only).
func (h *ProductHandler) ListActive(c echo.Context) error {
	output, err := h.uc.ListActive(c.Request().Context(), productListInput(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{
		"items":      output.Items,
		"pagination": output.Pagination,
	}, "")
}

// Statistics returns product count aggregates.
func (h *ProductHandler) Statistics(c echo.Context) error {
	output, err := h.uc.Statistics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}
