package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/WhiteNexus47/LiquiDator/pkg/view"
)

// PaymentMethodLabel maps a method code to its display label.
func PaymentMethodLabel(code string) string {
	switch code {
	case "card":
		return "Card (Visa / Mastercard)"
	case "paypal":
		return "PayPal"
	case "klarna":
		return "Klarna \"Pay Later\""
	default:
		return code
	}
}

// RenderMessage formats an order into the plain-text message sent over
// the delivery channels and embedded in manual fallback links. Pure
// function of the record, no I/O.
func RenderMessage(o OrderRecord) string {
	var sb strings.Builder
	sb.WriteString("🛒 NEW ORDER\n")
	sb.WriteString("Order ID: " + o.ID + "\n")
	sb.WriteString("Time: " + o.CreatedAt.Format(time.RFC3339) + "\n")
	sb.WriteString("\n")
	sb.WriteString("Name: " + o.Customer.Name + "\n")
	sb.WriteString("Email: " + o.Customer.Email + "\n")
	sb.WriteString("Address: " + o.Address.String() + "\n")
	sb.WriteString("Payment: " + PaymentMethodLabel(o.PaymentMethod) + "\n")
	sb.WriteString("\n")
	sb.WriteString("Items:\n")
	for _, it := range o.Items {
		sb.WriteString(fmt.Sprintf("• %s × %d = %s\n",
			it.Name, it.Quantity, view.MoneyFromCents(it.LineTotalCents(), "USD")))
	}
	sb.WriteString("\n")
	sb.WriteString("Total: " + view.MoneyFromCents(o.TotalCents, "USD") + "\n")
	sb.WriteString("Status: pending confirmation\n")
	return sb.String()
}
