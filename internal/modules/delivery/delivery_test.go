package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
)

func testOrder() checkout.OrderRecord {
	return checkout.OrderRecord{
		ID:        "ORD-3F9A41C07B",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Customer:  checkout.Customer{Name: "Ada Lovelace", Email: "ada@example.com"},
		Address: checkout.Address{
			Street: "12 Engine St", City: "London", PostalCode: "E1 1AA", Country: "UK",
		},
		PaymentMethod: "card",
		Items: []checkout.OrderItem{
			{Name: "Cordless Drill", Quantity: 2, UnitPriceCents: 4999},
		},
		TotalCents: 9998,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEmailChannelSend(t *testing.T) {
	var got emailPayload
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := &EmailChannel{
		apiURL: srv.URL,
		apiKey: "test-token",
		from:   "shop@example.com",
		to:     "orders@example.com",
		client: srv.Client(),
	}
	require.NoError(t, ch.Send(context.Background(), testOrder()))

	assert.Equal(t, "Bearer test-token", auth)
	assert.Equal(t, "New Order – ORD-3F9A41C07B", got.Subject)
	assert.Equal(t, "orders@example.com", got.To[0].Email)
	assert.Contains(t, got.Text, "Ada Lovelace")
	assert.Contains(t, got.Text, "Total: $99.98")
}

func TestEmailChannelAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ch := &EmailChannel{apiURL: srv.URL, apiKey: "bad", to: "orders@example.com", client: srv.Client()}
	err := ch.Send(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestWhatsAppChannelSend(t *testing.T) {
	var got waMessage
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := &WhatsAppChannel{
		apiBase:     srv.URL,
		accessToken: "test-token",
		phoneID:     "12345",
		to:          "491700000000",
		client:      srv.Client(),
	}
	require.NoError(t, ch.Send(context.Background(), testOrder()))

	assert.Equal(t, "/12345/messages", path)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "491700000000", got.To)
	assert.Contains(t, got.Text.Body, "🛒 NEW ORDER")
}

func TestWhatsAppChannelReadsDocumentedEnv(t *testing.T) {
	t.Setenv("WHATSAPP_TOKEN", "env-token")
	t.Setenv("WHATSAPP_PHONE_ID", "55555")
	t.Setenv("WHATSAPP_TO", "491700000000")
	t.Setenv("WHATSAPP_API_URL", "")

	ch := NewWhatsAppChannel()
	assert.Equal(t, "env-token", ch.accessToken)
	assert.Equal(t, "55555", ch.phoneID)
	assert.Equal(t, "491700000000", ch.to)
	assert.Equal(t, "https://graph.facebook.com/v20.0", ch.apiBase)
}

type stubChannel struct {
	name string
	err  error
	got  *checkout.OrderRecord
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) Send(ctx context.Context, order checkout.OrderRecord) error {
	s.got = &order
	return s.err
}

func TestServiceSendSuccess(t *testing.T) {
	ch := &stubChannel{name: "email"}
	svc := NewService(discardLogger(), ch)

	fb, err := svc.Send(context.Background(), "email", testOrder())
	require.NoError(t, err)
	assert.Empty(t, fb.URL)
	require.NotNil(t, ch.got)
	assert.Equal(t, "ORD-3F9A41C07B", ch.got.ID)
}

func TestServiceSendUnknownChannel(t *testing.T) {
	svc := NewService(discardLogger(), &stubChannel{name: "email"})
	_, err := svc.Send(context.Background(), "carrier-pigeon", testOrder())
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestServiceSendFailureReturnsFallback(t *testing.T) {
	ch := &stubChannel{name: "whatsapp", err: errors.New("api down")}
	svc := NewService(discardLogger(), ch)
	svc.whatsappTo = "491700000000"

	fb, err := svc.Send(context.Background(), "whatsapp", testOrder())
	require.Error(t, err)
	assert.Equal(t, "whatsapp", fb.Channel)
	assert.True(t, strings.HasPrefix(fb.URL, "https://wa.me/491700000000?text="), fb.URL)
	assert.Contains(t, fb.URL, "ORD-3F9A41C07B")
	assert.NotContains(t, fb.URL, " ", "message must be url encoded")
}

func TestMailtoFallback(t *testing.T) {
	fb := MailtoFallback("orders@example.com", testOrder())
	assert.Equal(t, "email", fb.Channel)
	assert.True(t, strings.HasPrefix(fb.URL, "mailto:orders@example.com?"), fb.URL)
	assert.Contains(t, fb.URL, "subject=")
	assert.NotContains(t, fb.URL, "+", "spaces must use percent encoding")
}
