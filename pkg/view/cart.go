package view

type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	Qty       int    `json:"qty"`

	UnitPriceCents int64 `json:"unitPriceCents"`
	LineTotalCents int64 `json:"lineTotalCents"`

	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type CartPage struct {
	Items []CartItem `json:"items"`

	// Count is the number of distinct lines, what the header badge shows.
	Count int `json:"count"`

	TotalCents int64  `json:"totalCents"`
	Total      string `json:"total"`

	// Free delivery progress, mirrors the cart page summary box.
	DeliveryCents        int64  `json:"deliveryCents"`
	Delivery             string `json:"delivery"`
	GrandTotalCents      int64  `json:"grandTotalCents"`
	GrandTotal           string `json:"grandTotal"`
	FreeDeliveryUnlocked bool   `json:"freeDeliveryUnlocked"`
	UnlockRemainingCents int64  `json:"unlockRemainingCents"`
}
