package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shopifier/internal/config"
)

// keyFor builds a cache key for target the way the router would present it:
// the route template set on the context, the concrete path on the request.
func keyFor(target string) string {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/products/:id")
	return cacheKey("catalog", c)
}

func TestCacheKeyDistinguishesProducts(t *testing.T) {
	// Two ids on the same parameterized route must never share an entry,
	// or one product's body would be served for every other.
	assert.NotEqual(t, keyFor("/api/products/5"), keyFor("/api/products/7"))
}

func TestCacheKeyVariesByQuery(t *testing.T) {
	assert.NotEqual(t, keyFor("/api/products?category=shoes"), keyFor("/api/products?category=mugs"))
}

func TestCacheKeyStableForSameRequest(t *testing.T) {
	assert.Equal(t, keyFor("/api/products/5"), keyFor("/api/products/5"))
}

func TestCatalogCacheWithoutRedisIsPassthrough(t *testing.T) {
	mw := NewCatalogCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
