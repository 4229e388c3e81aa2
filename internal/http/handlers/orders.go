package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/WhiteNexus47/LiquiDator/internal/http/middleware"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/orders"
	"github.com/WhiteNexus47/LiquiDator/internal/shared/apperr"
	"github.com/WhiteNexus47/LiquiDator/pkg/view"
)

type OrdersHandler struct {
	Repo *orders.Repo
}

func NewOrdersHandler(repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{Repo: repo}
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *gin.Context) {
	o, items, err := h.Repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, orderDetail(o, items))
}

// List handles GET /api/orders?limit=N, newest first.
func (h *OrdersHandler) List(c *gin.Context) {
	list, err := h.Repo.ListRecent(c.Request.Context(), queryInt(c, "limit", 20))
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	out := make([]view.OrderDetail, len(list))
	for i, o := range list {
		out[i] = orderDetail(o, nil)
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

func orderDetail(o orders.Order, items []orders.OrderItem) view.OrderDetail {
	addr := checkout.Address{
		Street:     o.Street,
		City:       o.City,
		PostalCode: o.PostalCode,
		Country:    o.Country,
	}
	vi := make([]view.OrderItem, len(items))
	for i, it := range items {
		lt := it.UnitPriceCents * int64(it.Quantity)
		vi[i] = view.OrderItem{
			Name:           it.Name,
			Qty:            it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			UnitPrice:      view.MoneyFromCents(it.UnitPriceCents, currency),
			LineTotalCents: lt,
			LineTotal:      view.MoneyFromCents(lt, currency),
		}
	}
	return view.OrderDetail{
		ID:            o.ID,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Address:       addr.String(),
		Note:          o.Note,
		PaymentMethod: o.PaymentMethod,
		Channel:       o.Channel,
		Items:         vi,
		TotalCents:    o.TotalCents,
		Total:         view.MoneyFromCents(o.TotalCents, currency),
	}
}
