package view

import "github.com/WhiteNexus47/LiquiDator/internal/shared/pagination"

type ProductCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Tag      string `json:"tag,omitempty"`
	InStock  bool   `json:"inStock"`
	Premium  bool   `json:"premium"`
	Trending bool   `json:"trending"`

	PriceCents    int64  `json:"priceCents"`
	Price         string `json:"price"`
	OldPriceCents int64  `json:"oldPriceCents,omitempty"`
	OldPrice      string `json:"oldPrice,omitempty"`
	DiscountPct   int    `json:"discountPct,omitempty"`

	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

type ProductListPage struct {
	Products []ProductCard     `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PerPage  int               `json:"perPage"`
	Window   pagination.Window `json:"window"`
}

type ProductDetail struct {
	ProductCard
	Description string   `json:"description"`
	ExtraImages []string `json:"extraImages,omitempty"`
}
