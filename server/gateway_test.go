package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGateway(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newTestService(t)
	h, err := NewGateway(svc, zap.NewNop())
	require.NoError(t, err)
	return h
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestGateway_CartLifecycle(t *testing.T) {
	h := newTestGateway(t)

	rec := do(t, h, http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, []any{}, body["items"])
	assert.Equal(t, float64(0), body["totalPrice"])
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":"1","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(240), decode(t, rec)["totalPrice"])

	rec = do(t, h, http.MethodPost, "/v1/cart/items", `{"id":"9","title":"Wick pack","price":19.5,"quantity":1,"extra":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 259.5, decode(t, rec)["totalPrice"])

	rec = do(t, h, http.MethodPut, "/v1/cart/items/1", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, 379.5, body["totalPrice"])
	assert.Equal(t, float64(4), body["totalItemCount"])

	rec = do(t, h, http.MethodPut, "/v1/cart/items/9", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 1)

	rec = do(t, h, http.MethodPut, "/v1/cart/open", `{"open":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["open"])

	rec = do(t, h, http.MethodDelete, "/v1/cart/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decode(t, rec)["items"])

	rec = do(t, h, http.MethodDelete, "/v1/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGateway_Errors(t *testing.T) {
	h := newTestGateway(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{"unknown product", http.MethodPost, "/v1/cart/items", `{"productId":"404"}`, http.StatusNotFound, "Product not found"},
		{"missing title", http.MethodPost, "/v1/cart/items", `{"id":"1","price":1}`, http.StatusBadRequest, "Item title is required"},
		{"malformed body", http.MethodPost, "/v1/cart/items", `{"id":`, http.StatusBadRequest, "invalid request body"},
		{"empty cart checkout", http.MethodPost, "/v1/checkout", `{"name":"A","phone":"1","address":"X"}`, http.StatusBadRequest, "Cart is empty"},
		{"bad offset", http.MethodGet, "/v1/products?offset=abc", "", http.StatusBadRequest, "offset must be an integer"},
		{"unknown product page", http.MethodGet, "/v1/products/404", "", http.StatusNotFound, "Product not found"},
		{"unknown route", http.MethodGet, "/v1/nothing", "", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
			if tc.msg != "" {
				assert.Contains(t, decode(t, rec)["message"], tc.msg)
			}
		})
	}
}

func TestGateway_Checkout(t *testing.T) {
	h := newTestGateway(t)
	do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":"2"}`)

	rec := do(t, h, http.MethodPost, "/v1/checkout", `{"name":"","phone":"9999999999","address":"X"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "missing name")

	rec = do(t, h, http.MethodPost, "/v1/checkout", `{"name":"Asha","phone":"9999999999","address":"X","location":"Pune"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Contains(t, body["message"], "• Location: Pune\n")
	assert.Contains(t, body["link"], "https://wa.me/919372340493?text=")

	rec = do(t, h, http.MethodGet, "/v1/cart", "")
	assert.Len(t, decode(t, rec)["items"], 1)
}

func TestGateway_Products(t *testing.T) {
	h := newTestGateway(t)

	rec := do(t, h, http.MethodGet, "/v1/products?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Len(t, body["products"], 1)
	assert.Equal(t, true, body["hasMore"])
	assert.Equal(t, float64(1), body["nextOffset"])

	rec = do(t, h, http.MethodGet, "/v1/products/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Diva Diya 2", decode(t, rec)["title"])

	rec = do(t, h, http.MethodPost, "/v1/products/1/order", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "Quantity: 2\nPrice: ₹240\n")

	rec = do(t, h, http.MethodPost, "/v1/products/1/order", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "Quantity: 1\n")
}

func TestGateway_KeepsCallerRequestID(t *testing.T) {
	h := newTestGateway(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/cart", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
