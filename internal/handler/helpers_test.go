package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shopifier/internal/middleware"
	"github.com/iliyamo/shopifier/internal/session"
)

// newTestContext builds an echo context with the given session already
// established, the way ResolveSession would have left it.
func newTestContext(t *testing.T, method, target, body string, s session.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, middleware.Establish(c, "test-secret", 30, s))
	return c, rec
}

func userSession() session.Session {
	return session.Session{SID: "sid-u1", Actor: session.ActorUser, ID: 7, Name: "Ann", Email: "a@x.com"}
}

func vendorSession() session.Session {
	return session.Session{SID: "sid-v1", Actor: session.ActorVendor, ID: 2, Name: "Acme", Email: "v@x.com"}
}

func anonSession() session.Session { return session.Session{SID: "sid-anon"} }

func testTime() time.Time { return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC) }

// findSessionCookie returns the last session cookie written to the response.
// Establish in newTestContext writes one; handlers that re-establish the
// session append another, and the last one is what the client keeps.
func findSessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			found = ck
		}
	}
	require.NotNil(t, found, "no session cookie on response")
	return found
}
