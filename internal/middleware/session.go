package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shopifier/internal/session"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "shopifier_session"

// contextKey is where the resolved session lives in the echo context.
const contextKey = "session"

// ResolveSession returns middleware that resolves the caller's session on
// every request. A valid cookie rebuilds the session from its claims; a
// missing or invalid cookie mints a fresh anonymous session and sets the
// cookie on the response, so carts work before any login.
func ResolveSession(secret string, ttlMin int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
				if s, err := session.ParseToken(secret, cookie.Value); err == nil {
					c.Set(contextKey, s)
					return next(c)
				}
			}
			sid, err := session.NewSID()
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create session"})
			}
			if err := Establish(c, secret, ttlMin, session.Session{SID: sid}); err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create session"})
			}
			return next(c)
		}
	}
}

// Establish makes s the request's session: it signs a new token, sets the
// cookie on the response and stores the session in the context. Handlers
// call this at login (claims added, sid kept) and logout (fresh anonymous
// session).
func Establish(c echo.Context, secret string, ttlMin int, s session.Session) error {
	signed, exp, err := session.IssueToken(secret, s, ttlMin)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(contextKey, s)
	return nil
}

// FromContext returns the session resolved by ResolveSession. A zero
// session is returned when the middleware did not run.
func FromContext(c echo.Context) session.Session {
	if s, ok := c.Get(contextKey).(session.Session); ok {
		return s
	}
	return session.Session{}
}
