package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/config"
	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/repository"
	"github.com/iliyamo/shopifier/internal/session"
	"github.com/iliyamo/shopifier/internal/utils"
)

// AuthHandler bundles dependencies for shopper and vendor auth endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Vendors *repository.VendorRepo
	Carts   session.CartStore
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, v *repository.VendorRepo, carts session.CartStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Vendors: v, Carts: carts}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register handles POST /api/auth/register: create a shopper account.
// Registration does not log the caller in; the client follows up with login.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "all fields are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not register user"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully"})
}

// Login handles POST /api/auth/login: verify credentials and attach the
// shopper identity to the current session. The session ID is kept so a cart
// assembled before login survives it.
func (h *AuthHandler) Login(c echo.Context) error {
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

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not log in"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	s := middleware.FromContext(c)
	s.Actor = session.ActorUser
	s.ID = u.ID
	s.Name = u.Name
	s.Email = u.Email
	if err := middleware.Establish(c, h.Cfg.SessionSecret, h.Cfg.SessionTTLMin, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not establish session"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    userPart{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

// Status handles GET /api/auth/status and reports which identity claim, if
// any, the session carries.
func (h *AuthHandler) Status(c echo.Context) error {
	s := middleware.FromContext(c)
	switch {
	case s.IsUser():
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": true,
			"type":          session.ActorUser,
			"user":          echo.Map{"id": s.ID, "name": s.Name},
		})
	case s.IsVendor():
		return c.JSON(http.StatusOK, echo.Map{
			"authenticated": true,
			"type":          session.ActorVendor,
			"vendor":        echo.Map{"id": s.ID, "name": s.Name},
		})
	default:
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}
}

// Logout handles POST /api/auth/logout: drop the stored cart and rotate to a
// fresh anonymous session, clearing identity and cart unconditionally.
func (h *AuthHandler) Logout(c echo.Context) error {
	s := middleware.FromContext(c)
	if s.SID != "" {
		_ = h.Carts.Delete(c.Request().Context(), s.SID)
	}
	sid, err := session.NewSID()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not reset session"})
	}
	if err := middleware.Establish(c, h.Cfg.SessionSecret, h.Cfg.SessionTTLMin, session.Session{SID: sid}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not reset session"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}
