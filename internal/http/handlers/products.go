package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/WhiteNexus47/LiquiDator/internal/http/middleware"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/catalog"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/reviews"
	"github.com/WhiteNexus47/LiquiDator/internal/shared/apperr"
	"github.com/WhiteNexus47/LiquiDator/internal/shared/pagination"
	"github.com/WhiteNexus47/LiquiDator/pkg/view"
)

const (
	defaultPerPage    = 9
	defaultMaxVisible = 5
)

type ProductsHandler struct {
	Catalog *catalog.Service
	Reviews *reviews.Repo
}

func NewProductsHandler(cat *catalog.Service, rev *reviews.Repo) *ProductsHandler {
	return &ProductsHandler{Catalog: cat, Reviews: rev}
}

// List handles GET /api/products: filter, sort, then page. The window
// in the response is ready to render as pager buttons.
func (h *ProductsHandler) List(c *gin.Context) {
	filter := catalog.Filter{
		InStockOnly:  queryBool(c, "in_stock"),
		PremiumOnly:  queryBool(c, "premium"),
		TrendingOnly: queryBool(c, "trending"),
		Tag:          strings.TrimSpace(c.Query("tag")),
		Query:        c.Query("q"),
		Sort:         catalog.Sort(c.Query("sort")),
	}

	matched, err := h.Catalog.Search(c.Request.Context(), filter)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	perPage := clamp(queryInt(c, "per_page", defaultPerPage), 1, 60)
	maxVisible := clamp(queryInt(c, "max_visible", defaultMaxVisible), 1, 15)
	page := queryInt(c, "page", 1)

	window := pagination.Compute(len(matched), perPage, page, maxVisible)
	pageItems := pagination.Paginate(matched, window.CurrentPage, perPage)

	cards, err := h.cards(c, pageItems)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, view.ProductListPage{
		Products: cards,
		Total:    len(matched),
		Page:     window.CurrentPage,
		PerPage:  perPage,
		Window:   window,
	})
}

// Detail handles GET /api/products/:id.
func (h *ProductsHandler) Detail(c *gin.Context) {
	p, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	cards, err := h.cards(c, []catalog.Product{p})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, view.ProductDetail{
		ProductCard: cards[0],
		Description: p.Description,
		ExtraImages: p.ExtraImages,
	})
}

// ProductReviews handles GET /api/products/:id/reviews.
func (h *ProductsHandler) ProductReviews(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Catalog.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	list, err := h.Reviews.ListByProduct(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list})
}

func (h *ProductsHandler) cards(c *gin.Context, products []catalog.Product) ([]view.ProductCard, error) {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	summaries, err := h.Reviews.Summaries(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}

	cards := make([]view.ProductCard, len(products))
	for i, p := range products {
		card := view.ProductCard{
			ID:         p.ID,
			Name:       p.Name,
			ImageURL:   p.ImageURL,
			Tag:        p.Tag,
			InStock:    p.InStock,
			Premium:    p.Premium,
			Trending:   p.Trending,
			PriceCents: p.PriceCents,
			Price:      view.MoneyFromCents(p.PriceCents, currency),
		}
		if p.OldPriceCents > p.PriceCents {
			card.OldPriceCents = p.OldPriceCents
			card.OldPrice = view.MoneyFromCents(p.OldPriceCents, currency)
			card.DiscountPct = p.DiscountPercent()
		}
		if s, ok := summaries[p.ID]; ok {
			card.AverageRating = s.AverageRating
			card.ReviewCount = s.ReviewCount
		}
		cards[i] = card
	}
	return cards, nil
}
