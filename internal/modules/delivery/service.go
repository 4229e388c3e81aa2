package delivery

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
)

// Service routes a built order to the requested channel. On failure it
// hands back a Fallback link so the customer can deliver the order
// themselves; the caller keeps the archived order either way.
type Service struct {
	channels   map[string]Channel
	timeout    time.Duration
	emailTo    string
	whatsappTo string
	logger     *slog.Logger
}

func NewService(logger *slog.Logger, channels ...Channel) *Service {
	m := make(map[string]Channel, len(channels))
	for _, c := range channels {
		m[c.Name()] = c
	}
	return &Service{
		channels:   m,
		timeout:    10 * time.Second,
		emailTo:    os.Getenv("ORDER_EMAIL_TO"),
		whatsappTo: os.Getenv("WHATSAPP_TO"),
		logger:     logger,
	}
}

// Send attempts delivery over the named channel. A non-nil error comes
// with a Fallback the caller should surface to the customer.
func (s *Service) Send(ctx context.Context, channel string, order checkout.OrderRecord) (Fallback, error) {
	ch, ok := s.channels[channel]
	if !ok {
		return Fallback{}, ErrUnknownChannel
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := ch.Send(ctx, order); err != nil {
		s.logger.WarnContext(ctx, "order_delivery_failed",
			"order_id", order.ID,
			"channel", channel,
			"error", err,
		)
		return s.fallback(channel, order), err
	}

	s.logger.InfoContext(ctx, "order_delivered",
		"order_id", order.ID,
		"channel", channel,
	)
	return Fallback{}, nil
}

// Channels lists the registered channel names.
func (s *Service) Channels() []string {
	out := make([]string, 0, len(s.channels))
	for name := range s.channels {
		out = append(out, name)
	}
	return out
}

func (s *Service) fallback(channel string, order checkout.OrderRecord) Fallback {
	if channel == "whatsapp" && s.whatsappTo != "" {
		return WhatsAppFallback(s.whatsappTo, order)
	}
	if s.emailTo != "" {
		return MailtoFallback(s.emailTo, order)
	}
	if s.whatsappTo != "" {
		return WhatsAppFallback(s.whatsappTo, order)
	}
	return Fallback{}
}
