package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/repository"
)

// CatalogHandler serves the public, read-only product catalog.
type CatalogHandler struct {
	Products *repository.ProductRepo
}

func NewCatalogHandler(p *repository.ProductRepo) *CatalogHandler {
	if p == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{Products: p}
}

// ListProducts handles GET /api/products?category&search&sort. Unknown sort
// values (including the default "featured") fall back to natural storage
// order. The full matching set is returned; there is no pagination.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	q := repository.ProductQuery{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	}
	products, err := h.Products.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not list products"})
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id. A non-numeric id can match no
// product, so it reports not-found like any other miss.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
	}
	p, err := h.Products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not load product"})
	}
	return c.JSON(http.StatusOK, p)
}
