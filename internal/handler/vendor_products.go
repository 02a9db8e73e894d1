package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/repository"
)

// VendorHandler exposes inventory management scoped to the owning vendor.
// RequireVendor middleware runs before every method, so the session always
// carries a vendor claim here.
type VendorHandler struct {
	Products *repository.ProductRepo
}

func NewVendorHandler(p *repository.ProductRepo) *VendorHandler {
	if p == nil {
		panic("nil repository passed to NewVendorHandler")
	}
	return &VendorHandler{Products: p}
}

// productReq carries the writable product fields. Price and stock are
// pointers so an absent field is distinguishable from an explicit zero.
type productReq struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Stock       *int     `json:"stock"`
	ImageURL    string   `json:"image_url"`
}

// ListOwnProducts handles GET /api/vendor/products.
func (h *VendorHandler) ListOwnProducts(c echo.Context) error {
	vendorID := middleware.FromContext(c).ID
	products, err := h.Products.ListByVendor(c.Request().Context(), vendorID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not list products"})
	}
	return c.JSON(http.StatusOK, products)
}

// AddProduct handles POST /api/vendor/products. The caller's business name
// is snapshotted onto the product so later renames do not rewrite history.
func (h *VendorHandler) AddProduct(c echo.Context) error {
	s := middleware.FromContext(c)
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" || req.Category == "" || req.Description == "" || req.Price == nil || req.Stock == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required product fields"})
	}

	p := repository.Product{
		VendorID:      s.ID,
		VendorName:    s.Name,
		Title:         req.Title,
		Category:      req.Category,
		Price:         *req.Price,
		Description:   req.Description,
		StockQuantity: *req.Stock,
		ImageURL:      req.ImageURL,
	}
	if err := h.Products.Create(c.Request().Context(), &p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not add product"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Product added successfully", "id": p.ID})
}

// UpdateProduct handles PUT /api/vendor/products/:id. Stock is deliberately
// not updatable here; UpdateStock is the only write path for it.
func (h *VendorHandler) UpdateProduct(c echo.Context) error {
	vendorID := middleware.FromContext(c).ID
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req productReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing required product fields"})
	}
	if err := h.Products.Update(c.Request().Context(), id, vendorID, req.Title, req.Category, *req.Price, req.Description); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found or unauthorized"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not update product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product updated successfully"})
}

// DeleteProduct handles DELETE /api/vendor/products/:id.
func (h *VendorHandler) DeleteProduct(c echo.Context) error {
	vendorID := middleware.FromContext(c).ID
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	if err := h.Products.Delete(c.Request().Context(), id, vendorID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found or unauthorized"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not delete product"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// UpdateStock handles PUT /api/vendor/products/:id/stock. The value is an
// absolute stock level, not a delta, and is stored as given.
func (h *VendorHandler) UpdateStock(c echo.Context) error {
	vendorID := middleware.FromContext(c).ID
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var req struct {
		Stock int `json:"stock"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Products.UpdateStock(c.Request().Context(), id, vendorID, req.Stock); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found or unauthorized"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not update stock"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Stock updated successfully"})
}
