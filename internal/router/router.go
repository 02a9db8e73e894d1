package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/handler"
)

// RegisterRoutes registers routes that carry no session semantics at all.
// Currently it exposes only a health check for load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication surface for both actor kinds.
// None of these routes require an existing identity claim: register/login
// create one, logout and status work on whatever the session carries.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.GET("/status", a.Status)

	v := e.Group("/api/vendor")
	v.POST("/register", a.RegisterVendor)
	v.POST("/login", a.LoginVendor)
}

// RegisterCatalog registers the public read-only catalog. The optional cache
// middleware is applied here only, because catalog responses are the sole
// session-independent GETs worth caching.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api/products")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", h.ListProducts)
	g.GET("/:id", h.GetProduct)
}

// RegisterCart registers cart persistence. No auth: anonymous sessions own
// carts too.
func RegisterCart(e *echo.Echo, h *handler.CartHandler) {
	e.POST("/api/cart", h.SaveCart)
	e.GET("/api/cart", h.GetCart)
}
