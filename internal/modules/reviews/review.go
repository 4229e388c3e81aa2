package reviews

import "time"

type Review struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ProductID string    `gorm:"size:64;index" json:"productId"`
	Author    string    `gorm:"size:100" json:"author"`
	Rating    int       `json:"rating"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Review) TableName() string { return "reviews" }

// Summary is the aggregate shown on product cards.
type Summary struct {
	ProductID     string  `json:"productId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
