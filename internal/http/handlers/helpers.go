package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
	"github.com/WhiteNexus47/LiquiDator/pkg/view"
)

const (
	currency = "USD"

	// Orders at or above the threshold ship free.
	freeDeliveryThresholdCents int64 = 100000
	deliveryFeeCents           int64 = 1500
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func queryInt(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func queryBool(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// cartPage projects cart lines into the cart page view, including the
// free delivery progress box.
func cartPage(lines []cart.Line) view.CartPage {
	items := make([]view.CartItem, 0, len(lines))
	var total int64
	for _, l := range lines {
		lt := l.LineTotalCents()
		total += lt
		items = append(items, view.CartItem{
			ProductID:      l.ProductID,
			Name:           l.Name,
			ImageURL:       l.ImageURL,
			Qty:            l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			LineTotalCents: lt,
			UnitPrice:      view.MoneyFromCents(l.UnitPriceCents, currency),
			LineTotal:      view.MoneyFromCents(lt, currency),
		})
	}

	var delivery int64
	unlocked := total >= freeDeliveryThresholdCents
	remaining := int64(0)
	if len(items) > 0 && !unlocked {
		delivery = deliveryFeeCents
		remaining = freeDeliveryThresholdCents - total
	}

	return view.CartPage{
		Items:                items,
		Count:                len(items),
		TotalCents:           total,
		Total:                view.MoneyFromCents(total, currency),
		DeliveryCents:        delivery,
		Delivery:             view.MoneyFromCents(delivery, currency),
		GrandTotalCents:      total + delivery,
		GrandTotal:           view.MoneyFromCents(total+delivery, currency),
		FreeDeliveryUnlocked: unlocked && len(items) > 0,
		UnlockRemainingCents: remaining,
	}
}
