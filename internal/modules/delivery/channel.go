package delivery

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
)

var ErrUnknownChannel = errors.New("unknown delivery channel")

// Channel pushes a finished order to the merchant over one transport.
type Channel interface {
	Name() string
	Send(ctx context.Context, order checkout.OrderRecord) error
}

// Fallback is a manual hand-off the customer can open themselves when
// automated delivery fails. The order stays archived either way.
type Fallback struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
}

// WhatsAppFallback builds a wa.me link carrying the rendered order text,
// ready to open in a chat with the merchant number.
func WhatsAppFallback(number string, order checkout.OrderRecord) Fallback {
	return Fallback{
		Channel: "whatsapp",
		URL:     "https://wa.me/" + number + "?text=" + url.QueryEscape(checkout.RenderMessage(order)),
	}
}

// MailtoFallback builds a mailto link with the order message as body.
func MailtoFallback(to string, order checkout.OrderRecord) Fallback {
	q := url.Values{}
	q.Set("subject", "New Order – "+order.ID)
	q.Set("body", checkout.RenderMessage(order))
	// url.Values encodes spaces as '+', which mail clients read literally.
	return Fallback{
		Channel: "email",
		URL:     "mailto:" + to + "?" + strings.ReplaceAll(q.Encode(), "+", "%20"),
	}
}
