package view

type PaymentOption struct {
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

type CheckoutSummary struct {
	Items      []CartItem `json:"items"`
	Count      int        `json:"count"`
	TotalCents int64      `json:"totalCents"`
	Total      string     `json:"total"`

	PaymentOptions []PaymentOption `json:"paymentOptions"`
}

type OrderItem struct {
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	UnitPrice      string `json:"unitPrice"`
	LineTotalCents int64  `json:"lineTotalCents"`
	LineTotal      string `json:"lineTotal"`
}

type OrderDetail struct {
	ID            string      `json:"id"`
	CreatedAt     string      `json:"createdAt"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Address       string      `json:"address"`
	Note          string      `json:"note,omitempty"`
	PaymentMethod string      `json:"paymentMethod"`
	Channel       string      `json:"channel,omitempty"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"totalCents"`
	Total         string      `json:"total"`
}
