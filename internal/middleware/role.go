package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUser rejects requests whose session does not carry a shopper
// identity claim. Wraps every order endpoint.
func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !FromContext(c).IsUser() {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		return next(c)
	}
}

// RequireVendor rejects requests whose session does not carry a vendor
// identity claim. Wraps every vendor-inventory endpoint.
func RequireVendor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !FromContext(c).IsVendor() {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "vendor authentication required"})
		}
		return next(c)
	}
}
