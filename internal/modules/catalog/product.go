// Package catalog is the read-only product collaborator: the cart takes
// its snapshots from here and the listing pages page through it. Nothing
// in this package mutates catalog data.
package catalog

import (
	"math"
	"time"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
)

type Product struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	PriceCents    int64 `gorm:"not null" json:"priceCents"`
	OldPriceCents int64 `json:"oldPriceCents,omitempty"` // 0 = never discounted

	ImageURL    string   `gorm:"size:512" json:"imageUrl"`
	ExtraImages []string `gorm:"serializer:json" json:"extraImages,omitempty"`

	Tag      string `gorm:"size:64;index" json:"tag,omitempty"`
	InStock  bool   `gorm:"not null;default:true" json:"inStock"`
	Premium  bool   `json:"premium"`
	Trending bool   `json:"trending"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (Product) TableName() string { return "products" }

// DiscountPercent is derived from the crossed-out price; 0 when there is
// no real discount.
func (p Product) DiscountPercent() int {
	if p.OldPriceCents <= p.PriceCents || p.OldPriceCents == 0 {
		return 0
	}
	return int(math.Round((1 - float64(p.PriceCents)/float64(p.OldPriceCents)) * 100))
}

// Snapshot freezes the attributes the cart keeps per line.
func (p Product) Snapshot() cart.Snapshot {
	return cart.Snapshot{
		ProductID:      p.ID,
		Name:           p.Name,
		ImageURL:       p.ImageURL,
		UnitPriceCents: p.PriceCents,
	}
}
