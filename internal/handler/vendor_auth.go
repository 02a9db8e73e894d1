package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/repository"
	"github.com/iliyamo/shopifier/internal/session"
	"github.com/iliyamo/shopifier/internal/utils"
)

type vendorRegisterReq struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type vendorPart struct {
	ID           uint64 `json:"id"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
}

// RegisterVendor handles POST /api/vendor/register. Phone and address are
// optional and default to empty. Vendor passwords are bcrypt-hashed exactly
// like shopper passwords.
func (h *AuthHandler) RegisterVendor(c echo.Context) error {
	var req vendorRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.BusinessName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "business name, email, and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Vendors.Create(ctx, req.BusinessName, req.Email, req.Password, req.Phone, req.Address, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not register vendor"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Vendor registered successfully"})
}

// LoginVendor handles POST /api/vendor/login and attaches the vendor
// identity to the current session on a credential match.
func (h *AuthHandler) LoginVendor(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	v, err := h.Vendors.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not log in"})
	}
	if !utils.VerifyPassword(v.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	s := middleware.FromContext(c)
	s.Actor = session.ActorVendor
	s.ID = v.ID
	s.Name = v.BusinessName
	s.Email = v.Email
	if err := middleware.Establish(c, h.Cfg.SessionSecret, h.Cfg.SessionTTLMin, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not establish session"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"vendor":  vendorPart{ID: v.ID, BusinessName: v.BusinessName, Email: v.Email},
	})
}
