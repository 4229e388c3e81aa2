package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WhiteNexus47/LiquiDator/internal/http/cartcookie"
	"github.com/WhiteNexus47/LiquiDator/internal/http/middleware"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/catalog"
	"github.com/WhiteNexus47/LiquiDator/internal/shared/apperr"
)

// CartHandler exposes the cart as a JSON resource. Every response body
// is the full cart page so the client never has to diff.
type CartHandler struct {
	Store   *cart.Store
	Catalog *catalog.Service
	CK      *cartcookie.Codec
}

func NewCartHandler(store *cart.Store, cat *catalog.Service, ck *cartcookie.Codec) *CartHandler {
	return &CartHandler{Store: store, Catalog: cat, CK: ck}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	lines, err := h.Store.Lines(c.Request.Context(), cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, cartPage(lines))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Add handles POST /api/cart/items. Name, image and price are snapshotted
// from the catalog at add time.
func (h *CartHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request body.", nil))
		return
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		middleware.Fail(c, apperr.InvalidErr("Product id is required.", map[string]string{"productId": "This field is required."}))
		return
	}

	p, err := h.Catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	qty := clamp(req.Qty, 1, 99)
	cartID := h.CK.Ensure(c)
	if err := h.Store.AddItemQty(c.Request.Context(), cartID, p.Snapshot(), qty); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respondWithCart(c, cartID)
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

// Quantity handles POST /api/cart/items/:id/quantity. Delta may be
// negative; a quantity driven to zero removes the line. A stale product
// id is not an error, the current cart comes back unchanged.
func (h *CartHandler) Quantity(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request body.", nil))
		return
	}
	if req.Delta == 0 {
		middleware.Fail(c, apperr.InvalidErr("Delta must be non-zero.", map[string]string{"delta": "Must be non-zero."}))
		return
	}

	cartID := h.CK.Ensure(c)
	if err := h.Store.SetQuantity(c.Request.Context(), cartID, c.Param("id"), req.Delta); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respondWithCart(c, cartID)
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	if err := h.Store.RemoveItem(c.Request.Context(), cartID, c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respondWithCart(c, cartID)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	if err := h.Store.Clear(c.Request.Context(), cartID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.respondWithCart(c, cartID)
}

// Badge handles GET /api/cart/badge, the polled header counter.
func (h *CartHandler) Badge(c *gin.Context) {
	count := 0
	if cartID, ok := h.CK.GetCartID(c); ok {
		n, err := h.Store.LineCount(c.Request.Context(), cartID)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		count = n
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *CartHandler) respondWithCart(c *gin.Context, cartID string) {
	lines, err := h.Store.Lines(c.Request.Context(), cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, cartPage(lines))
}
