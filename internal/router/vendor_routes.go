package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/handler"
	"github.com/iliyamo/shopifier/internal/middleware"
)

// RegisterVendorInventory registers vendor-scoped product management under
// /api/vendor/products. All routes require a vendor identity claim.
func RegisterVendorInventory(e *echo.Echo, h *handler.VendorHandler) {
	g := e.Group("/api/vendor/products", middleware.RequireVendor)

	g.GET("", h.ListOwnProducts)
	g.POST("", h.AddProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
	g.PUT("/:id/stock", h.UpdateStock)
}
