package checkout

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() OrderRecord {
	return OrderRecord{
		ID:        "ORD-3F9A41C07B",
		CreatedAt: time.Date(2025, 3, 9, 12, 30, 0, 0, time.UTC),
		Customer:  Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
		Address: Address{
			Street:     "12 Analytical Way",
			City:       "London",
			PostalCode: "EC1A 1BB",
			Country:    "United Kingdom",
		},
		PaymentMethod: "card",
		Items: []OrderItem{
			{Name: "Drill", Quantity: 2, UnitPriceCents: 4999},
			{Name: "Saw", Quantity: 1, UnitPriceCents: 1500},
		},
		TotalCents: 11498,
	}
}

func TestRenderMessage(t *testing.T) {
	msg := RenderMessage(sampleOrder())

	assert.Contains(t, msg, "Order ID: ORD-3F9A41C07B")
	assert.Contains(t, msg, "Time: 2025-03-09T12:30:00Z")
	assert.Contains(t, msg, "Name: Ada Lovelace")
	assert.Contains(t, msg, "Email: ada@example.com")
	assert.Contains(t, msg, "Address: 12 Analytical Way, London EC1A 1BB, United Kingdom")
	assert.Contains(t, msg, "Payment: Card (Visa / Mastercard)")
	assert.Contains(t, msg, "• Drill × 2 = $99.98")
	assert.Contains(t, msg, "• Saw × 1 = $15.00")
	assert.Contains(t, msg, "Total: $114.98")
	assert.Contains(t, msg, "Status: pending confirmation")
}

func TestRenderMessageIsPure(t *testing.T) {
	o := sampleOrder()
	require.Equal(t, RenderMessage(o), RenderMessage(o))
}

func TestRenderMessageAddressNote(t *testing.T) {
	o := sampleOrder()
	o.Address.Note = "ring twice"
	msg := RenderMessage(o)
	assert.Contains(t, msg, "United Kingdom — ring twice")

	// No stray separator when the note is absent.
	msg = RenderMessage(sampleOrder())
	assert.False(t, strings.Contains(msg, "—"), "unexpected note separator: %q", msg)
}
