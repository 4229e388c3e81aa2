package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhiteNexus47/LiquiDator/internal/http/cartcookie"
	"github.com/WhiteNexus47/LiquiDator/internal/http/middleware"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/catalog"
	"github.com/WhiteNexus47/LiquiDator/pkg/view"
)

type staticCatalog struct{ products []catalog.Product }

func (s *staticCatalog) List(ctx context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *staticCatalog) Get(ctx context.Context, id string) (catalog.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, catalog.ErrNotFound
}

type cartFixture struct {
	router *gin.Engine
	jar    []*http.Cookie
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := cart.NewStore(cart.NewMemoryStorage(), cart.NewMemoryNotifier(), logger)
	svc := catalog.NewService(&staticCatalog{products: []catalog.Product{
		{ID: "p1", Name: "Cordless Drill", PriceCents: 4999, InStock: true},
		{ID: "p2", Name: "Hand Saw", PriceCents: 1500, InStock: true},
	}})
	ck := cartcookie.New([]byte("test-secret"), "liq_cart", false)
	h := NewCartHandler(store, svc, ck)

	r := gin.New()
	r.Use(middleware.ErrorHandler(logger))
	r.GET("/api/cart", h.Get)
	r.POST("/api/cart/items", h.Add)
	r.POST("/api/cart/items/:id/quantity", h.Quantity)
	r.DELETE("/api/cart/items/:id", h.Remove)
	r.DELETE("/api/cart", h.Clear)

	return &cartFixture{router: r}
}

// do replays the cookie jar so every request lands on the same cart.
func (f *cartFixture) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, view.CartPage) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	for _, c := range f.jar {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	if cs := w.Result().Cookies(); len(cs) > 0 {
		f.jar = cs
	}

	var page view.CartPage
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	}
	return w, page
}

func TestCartEndToEnd(t *testing.T) {
	f := newCartFixture(t)

	w, page := f.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, page.Count)

	w, page = f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1", "qty": 2})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2, page.Items[0].Qty)
	assert.Equal(t, int64(9998), page.TotalCents)
	assert.Equal(t, "$99.98", page.Total)

	w, page = f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p2"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, page.Count)

	w, page = f.do(t, http.MethodPost, "/api/cart/items/p1/quantity", gin.H{"delta": -2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, page.Count, "quantity at zero removes the line")
	assert.Equal(t, "p2", page.Items[0].ProductID)

	w, page = f.do(t, http.MethodDelete, "/api/cart/items/p2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, page.Count)
}

func TestCartAddUnknownProduct(t *testing.T) {
	f := newCartFixture(t)
	w, _ := f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartStaleQuantityIsNoOp(t *testing.T) {
	f := newCartFixture(t)

	_, _ = f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1"})
	w, page := f.do(t, http.MethodPost, "/api/cart/items/ghost/quantity", gin.H{"delta": 3})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Items[0].Qty)
}

func TestCartDeliveryFee(t *testing.T) {
	f := newCartFixture(t)

	_, page := f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p2"})
	assert.Equal(t, int64(1500), page.DeliveryCents)
	assert.False(t, page.FreeDeliveryUnlocked)
	assert.Equal(t, int64(100000-1500), page.UnlockRemainingCents)

	// 21 drills push the total past the free delivery threshold.
	_, page = f.do(t, http.MethodPost, "/api/cart/items", gin.H{"productId": "p1", "qty": 21})
	assert.True(t, page.FreeDeliveryUnlocked)
	assert.Equal(t, int64(0), page.DeliveryCents)
	assert.Equal(t, page.TotalCents, page.GrandTotalCents)
}
