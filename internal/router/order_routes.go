package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/handler"
	"github.com/iliyamo/shopifier/internal/middleware"
)

// RegisterOrders registers shopper-scoped order endpoints under /api/orders.
// All routes require a user identity claim.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler) {
	g := e.Group("/api/orders", middleware.RequireUser)

	g.POST("", h.CreateOrder)
	g.GET("", h.ListOrders)
}
