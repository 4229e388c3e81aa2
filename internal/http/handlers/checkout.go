package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/WhiteNexus47/LiquiDator/internal/http/cartcookie"
	"github.com/WhiteNexus47/LiquiDator/internal/http/middleware"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/delivery"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/orders"
	"github.com/WhiteNexus47/LiquiDator/internal/shared/apperr"
	"github.com/WhiteNexus47/LiquiDator/pkg/view"
)

type CheckoutHandler struct {
	Assembler *checkout.Assembler
	Store     *cart.Store
	Orders    *orders.Repo
	Delivery  *delivery.Service
	CK        *cartcookie.Codec
	Logger    *slog.Logger
}

func NewCheckoutHandler(a *checkout.Assembler, store *cart.Store, repo *orders.Repo, d *delivery.Service, ck *cartcookie.Codec, l *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{Assembler: a, Store: store, Orders: repo, Delivery: d, CK: ck, Logger: l}
}

// Summary handles GET /api/checkout: the current cart plus the payment
// options to render the form with.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	cartID := h.CK.Ensure(c)
	lines, err := h.Store.Lines(c.Request.Context(), cartID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	page := cartPage(lines)
	c.JSON(http.StatusOK, view.CheckoutSummary{
		Items:          page.Items,
		Count:          page.Count,
		TotalCents:     page.TotalCents,
		Total:          page.Total,
		PaymentOptions: paymentOptions(),
	})
}

type submitRequest struct {
	checkout.Form
	Channel string `json:"channel"`
}

// Submit handles POST /api/checkout. With ?dry_run=1 it only validates,
// so the client can surface field errors before the real submission.
// Otherwise it freezes the cart into an order, archives it, delivers it
// and clears the cart. Delivery failure still archives the order; the
// response then carries a manual fallback link instead of failing the
// whole submission silently.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request body.", nil))
		return
	}
	channel := req.Channel
	if channel == "" {
		channel = "email"
	}

	ctx := c.Request.Context()
	cartID := h.CK.Ensure(c)

	if queryBool(c, "dry_run") {
		if err := h.Assembler.Validate(ctx, cartID, req.Form); err != nil {
			h.failValidation(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	order, err := h.Assembler.BuildOrder(ctx, cartID, req.Form)
	if err != nil {
		h.failValidation(c, err)
		return
	}

	if err := h.Orders.Save(ctx, order, channel); err != nil {
		if errors.Is(err, orders.ErrDuplicate) {
			middleware.Fail(c, apperr.ConflictErr("This order was already submitted."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	fallback, sendErr := h.Delivery.Send(ctx, channel, order)
	if sendErr != nil {
		if errors.Is(sendErr, delivery.ErrUnknownChannel) {
			middleware.Fail(c, apperr.InvalidErr("Unknown delivery channel.", map[string]string{"channel": "Must be one of: email, whatsapp."}))
			return
		}
		// Archived but undelivered. Hand the customer the manual link.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "We could not send your order automatically. Please use the link below.",
			"orderId":  order.ID,
			"fallback": fallback,
		})
		return
	}

	if err := h.Store.Clear(ctx, cartID); err != nil {
		h.Logger.WarnContext(ctx, "cart_clear_failed",
			"cart_id", cartID,
			"order_id", order.ID,
			"error", err,
		)
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":   order.ID,
		"createdAt": order.CreatedAt,
		"total":     view.MoneyFromCents(order.TotalCents, currency),
		"message":   checkout.RenderMessage(order),
	})
}

func (h *CheckoutHandler) failValidation(c *gin.Context, err error) {
	var ve *checkout.ValidationError
	switch {
	case errors.As(err, &ve):
		ae := apperr.InvalidErr("Please correct the highlighted fields.", ve.Fields)
		middleware.Fail(c, ae)
		// The first invalid field rides next to the field map so the
		// client knows where to move focus.
		c.Writer.Header().Set("X-First-Invalid-Field", ve.First)
	case errors.Is(err, checkout.ErrCartEmpty):
		middleware.Fail(c, apperr.ConflictErr("Your cart is empty."))
	default:
		middleware.Fail(c, apperr.Wrap(err))
	}
}

func paymentOptions() []view.PaymentOption {
	codes := []string{"card", "paypal", "klarna"}
	out := make([]view.PaymentOption, len(codes))
	for i, code := range codes {
		out[i] = view.PaymentOption{Code: code, Label: checkout.PaymentMethodLabel(code)}
	}
	return out
}
