package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/session"
)

// CartHandler persists the session cart. No auth: anonymous sessions carry
// carts too.
type CartHandler struct {
	Carts session.CartStore
}

func NewCartHandler(carts session.CartStore) *CartHandler {
	if carts == nil {
		panic("nil cart store passed to NewCartHandler")
	}
	return &CartHandler{Carts: carts}
}

// SaveCart handles POST /api/cart and replaces the session's cart with the
// given sequence verbatim. Items are not validated against the catalog.
func (h *CartHandler) SaveCart(c echo.Context) error {
	s := middleware.FromContext(c)
	var req struct {
		Cart []session.CartItem `json:"cart"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Carts.Save(c.Request().Context(), s.SID, req.Cart); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not save cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart saved"})
}

// GetCart handles GET /api/cart. A session that never saved a cart gets an
// empty sequence.
func (h *CartHandler) GetCart(c echo.Context) error {
	s := middleware.FromContext(c)
	items, err := h.Carts.Get(c.Request().Context(), s.SID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not load cart"})
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": items})
}
