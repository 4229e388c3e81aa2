package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
)

// WhatsAppChannel delivers orders through the WhatsApp Cloud API as a
// plain text message to the merchant number.
type WhatsAppChannel struct {
	apiBase     string
	accessToken string
	phoneID     string
	to          string
	client      *http.Client
}

type waMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             waText `json:"text"`
}

type waText struct {
	Body string `json:"body"`
}

func NewWhatsAppChannel() *WhatsAppChannel {
	apiBase := os.Getenv("WHATSAPP_API_URL")
	if apiBase == "" {
		apiBase = "https://graph.facebook.com/v20.0"
	}
	return &WhatsAppChannel{
		apiBase:     apiBase,
		accessToken: os.Getenv("WHATSAPP_TOKEN"),
		phoneID:     os.Getenv("WHATSAPP_PHONE_ID"),
		to:          os.Getenv("WHATSAPP_TO"),
		client:      &http.Client{},
	}
}

func (c *WhatsAppChannel) Name() string { return "whatsapp" }

func (c *WhatsAppChannel) Send(ctx context.Context, order checkout.OrderRecord) error {
	if c.accessToken == "" || c.phoneID == "" {
		return fmt.Errorf("whatsapp credentials not configured")
	}
	if c.to == "" {
		return fmt.Errorf("order recipient not configured")
	}

	msg := waMessage{
		MessagingProduct: "whatsapp",
		To:               c.to,
		Type:             "text",
		Text:             waText{Body: checkout.RenderMessage(order)},
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiBase, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", "Bearer "+c.accessToken)
	req.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("whatsapp API error: %d", res.StatusCode)
	}
	return nil
}
