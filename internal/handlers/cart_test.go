package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esther-house/internal/models"
)

func newCartRouter() http.Handler {
	store := sessions.NewCookieStore([]byte("test-secret"))
	handler := NewCartHandler(store)

	r := chi.NewRouter()
	r.Get("/api/cart", handler.GetCart)
	r.Delete("/api/cart", handler.ClearCart)
	r.Post("/api/cart/items", handler.AddItem)
	r.Put("/api/cart/items/{categoryID}", handler.UpdateItem)
	r.Delete("/api/cart/items/{categoryID}", handler.RemoveItem)
	return r
}

// doJSON performs a request carrying the session cookies accumulated so far
// and returns the decoded cart response.
func doJSON(t *testing.T, router http.Handler, cookies *[]*http.Cookie, method, path string, body interface{}) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for _, cookie := range *cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if set := rec.Result().Cookies(); len(set) > 0 {
		*cookies = set
	}

	var resp cartResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func cartItemBody(categoryID, quantity int) models.CartItem {
	return models.CartItem{
		EventID:      "42",
		EventName:    "Concert du printemps",
		ZoneID:       1,
		CategoryID:   categoryID,
		CategoryName: "Plein tarif",
		Price:        decimal.RequireFromString("45.00"),
		Quantity:     quantity,
	}
}

func TestCartLifecycle(t *testing.T) {
	router := newCartRouter()
	var cookies []*http.Cookie

	rec, resp := doJSON(t, router, &cookies, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Items)

	rec, resp = doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", cartItemBody(7, 2))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.TotalItems)

	// The cart survives across requests via the session cookie
	rec, resp = doJSON(t, router, &cookies, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.TotalPrice.Equal(decimal.RequireFromString("90.00")))

	rec, resp = doJSON(t, router, &cookies, http.MethodPut, "/api/cart/items/7",
		map[string]int{"quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.TotalItems)

	rec, resp = doJSON(t, router, &cookies, http.MethodDelete, "/api/cart/items/7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Items)
}

func TestCartAddMergesDuplicateLines(t *testing.T) {
	router := newCartRouter()
	var cookies []*http.Cookie

	doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", cartItemBody(7, 1))
	rec, resp := doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", cartItemBody(7, 2))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
}

func TestCartUpdateZeroRemovesLine(t *testing.T) {
	router := newCartRouter()
	var cookies []*http.Cookie

	doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", cartItemBody(7, 2))
	rec, resp := doJSON(t, router, &cookies, http.MethodPut, "/api/cart/items/7",
		map[string]int{"quantity": 0})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Items)
}

func TestCartUpdateUnknownItem(t *testing.T) {
	router := newCartRouter()
	var cookies []*http.Cookie

	rec, _ := doJSON(t, router, &cookies, http.MethodPut, "/api/cart/items/99",
		map[string]int{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddRejectsBadInput(t *testing.T) {
	router := newCartRouter()
	var cookies []*http.Cookie

	rec, _ := doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", cartItemBody(7, 0))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items",
		models.CartItem{Quantity: 2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	negative := cartItemBody(7, 1)
	negative.Price = decimal.RequireFromString("-5.00")
	rec, _ = doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", negative)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := doJSON(t, router, &cookies, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Items)
}

func TestCartClear(t *testing.T) {
	router := newCartRouter()
	var cookies []*http.Cookie

	doJSON(t, router, &cookies, http.MethodPost, "/api/cart/items", cartItemBody(7, 2))
	rec, resp := doJSON(t, router, &cookies, http.MethodDelete, "/api/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Items)

	rec, resp = doJSON(t, router, &cookies, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp.Items)
}
