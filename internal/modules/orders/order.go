package orders

import "time"

// Order is the archived form of a built order. Fields are denormalized
// snapshots; nothing here follows later catalog or cart edits.
type Order struct {
	ID            string    `gorm:"primaryKey;size:32" json:"orderId"`
	CustomerName  string    `gorm:"size:201" json:"customerName"`
	CustomerEmail string    `gorm:"size:255;index" json:"customerEmail"`
	Street        string    `gorm:"size:255" json:"street"`
	City          string    `gorm:"size:100" json:"city"`
	PostalCode    string    `gorm:"size:32" json:"postalCode"`
	Country       string    `gorm:"size:100" json:"country"`
	Note          string    `gorm:"size:500" json:"note,omitempty"`
	PaymentMethod string    `gorm:"size:32" json:"paymentMethod"`
	Channel       string    `gorm:"size:32" json:"channel"`
	TotalCents    int64     `json:"total"`
	CreatedAt     time.Time `json:"timestamp"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID        string `gorm:"size:32;index" json:"-"`
	Name           string `gorm:"size:255" json:"name"`
	Quantity       int    `json:"qty"`
	UnitPriceCents int64  `json:"price"`
	Position       int    `json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }
