package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shopifier/internal/session"
)

func TestCartSaveAndGetRoundTrip(t *testing.T) {
	h := NewCartHandler(session.NewMemoryCartStore())
	s := anonSession()

	body := `{"cart":[{"id":1,"title":"Red Shoe","price":19.99,"quantity":2},{"id":4,"price":5,"quantity":1}]}`
	c, rec := newTestContext(t, http.MethodPost, "/api/cart", body, s)
	require.NoError(t, h.SaveCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart saved")

	c, rec = newTestContext(t, http.MethodGet, "/api/cart", "", s)
	require.NoError(t, h.GetCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Red Shoe"`)
	assert.Contains(t, rec.Body.String(), `"quantity":2`)
}

func TestCartEmptyByDefault(t *testing.T) {
	h := NewCartHandler(session.NewMemoryCartStore())

	c, rec := newTestContext(t, http.MethodGet, "/api/cart", "", anonSession())
	require.NoError(t, h.GetCart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cart":[]}`, rec.Body.String())
}

func TestCartIsPerSession(t *testing.T) {
	h := NewCartHandler(session.NewMemoryCartStore())

	c, _ := newTestContext(t, http.MethodPost, "/api/cart", `{"cart":[{"id":1,"quantity":1}]}`, anonSession())
	require.NoError(t, h.SaveCart(c))

	other := session.Session{SID: "sid-other"}
	c, rec := newTestContext(t, http.MethodGet, "/api/cart", "", other)
	require.NoError(t, h.GetCart(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cart":[]}`, rec.Body.String())
}

func TestCartSavedVerbatim(t *testing.T) {
	h := NewCartHandler(session.NewMemoryCartStore())
	s := anonSession()

	// Items are not checked against the catalog; unknown ids and zero
	// quantities are stored as given.
	body := `{"cart":[{"id":999999,"price":-3,"quantity":0}]}`
	c, rec := newTestContext(t, http.MethodPost, "/api/cart", body, s)
	require.NoError(t, h.SaveCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(t, http.MethodGet, "/api/cart", "", s)
	require.NoError(t, h.GetCart(c))
	assert.Contains(t, rec.Body.String(), `"id":999999`)
	assert.Contains(t, rec.Body.String(), `"price":-3`)
}
