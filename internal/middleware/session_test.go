package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shopifier/internal/session"
)

const testSecret = "test-secret"

func runWithSession(t *testing.T, cookie *http.Cookie) (session.Session, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got session.Session
	h := ResolveSession(testSecret, 30)(func(c echo.Context) error {
		got = FromContext(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return got, rec
}

func TestResolveSessionMintsAnonymous(t *testing.T) {
	got, rec := runWithSession(t, nil)

	assert.NotEmpty(t, got.SID)
	assert.False(t, got.IsUser())
	assert.False(t, got.IsVendor())

	// A cookie is set so the next request reuses the same session.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestResolveSessionAcceptsValidCookie(t *testing.T) {
	want := session.Session{SID: "sid-1", Actor: session.ActorUser, ID: 7, Name: "Ann", Email: "a@x.com"}
	signed, _, err := session.IssueToken(testSecret, want, 30)
	require.NoError(t, err)

	got, rec := runWithSession(t, &http.Cookie{Name: CookieName, Value: signed})

	assert.Equal(t, want, got)
	// Valid cookies are not reissued.
	assert.Empty(t, rec.Result().Cookies())
}

func TestResolveSessionRejectsTamperedCookie(t *testing.T) {
	signed, _, err := session.IssueToken("other-secret", session.Session{SID: "sid-1", Actor: session.ActorUser, ID: 7}, 30)
	require.NoError(t, err)

	got, rec := runWithSession(t, &http.Cookie{Name: CookieName, Value: signed})

	// Tampering yields a fresh anonymous session, never the forged claims.
	assert.NotEqual(t, "sid-1", got.SID)
	assert.False(t, got.IsUser())
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestRequireUser(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name string
		s    session.Session
		want int
	}{
		{"anonymous rejected", session.Session{SID: "s"}, http.StatusUnauthorized},
		{"vendor rejected", session.Session{SID: "s", Actor: session.ActorVendor, ID: 2}, http.StatusUnauthorized},
		{"user allowed", session.Session{SID: "s", Actor: session.ActorUser, ID: 7}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(contextKey, tt.s)

			require.NoError(t, RequireUser(next)(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireVendor(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	tests := []struct {
		name string
		s    session.Session
		want int
	}{
		{"anonymous rejected", session.Session{SID: "s"}, http.StatusUnauthorized},
		{"user rejected", session.Session{SID: "s", Actor: session.ActorUser, ID: 7}, http.StatusUnauthorized},
		{"vendor allowed", session.Session{SID: "s", Actor: session.ActorVendor, ID: 2}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(contextKey, tt.s)

			require.NoError(t, RequireVendor(next)(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
