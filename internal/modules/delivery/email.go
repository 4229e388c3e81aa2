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

// EmailChannel delivers orders over the Mailtrap HTTP send API.
type EmailChannel struct {
	apiURL   string
	apiKey   string
	from     string
	fromName string
	to       string
	client   *http.Client
}

type emailPayload struct {
	From     personInfo   `json:"from"`
	To       []personInfo `json:"to"`
	Subject  string       `json:"subject"`
	Text     string       `json:"text,omitempty"`
	Category string       `json:"category,omitempty"`
}

type personInfo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func NewEmailChannel() *EmailChannel {
	return &EmailChannel{
		apiURL:   os.Getenv("MAILTRAP_API_URL"),
		apiKey:   os.Getenv("MAILTRAP_API_TOKEN"),
		from:     os.Getenv("EMAIL_FROM"),
		fromName: os.Getenv("EMAIL_FROM_NAME"),
		to:       os.Getenv("ORDER_EMAIL_TO"),
		client:   &http.Client{},
	}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Send(ctx context.Context, order checkout.OrderRecord) error {
	if c.apiURL == "" || c.apiKey == "" {
		return fmt.Errorf("mailtrap credentials not configured")
	}
	if c.to == "" {
		return fmt.Errorf("order recipient not configured")
	}

	payload := emailPayload{
		From:     personInfo{Email: c.from, Name: c.fromName},
		To:       []personInfo{{Email: c.to}},
		Subject:  "New Order – " + order.ID,
		Text:     checkout.RenderMessage(order),
		Category: "Orders",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", "Bearer "+c.apiKey)
	req.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return fmt.Errorf("mailtrap API error: %d", res.StatusCode)
	}
	return nil
}
