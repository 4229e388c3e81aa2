package reviews

import (
	"context"
	"math"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// ListByProduct returns a product's reviews, newest first.
func (r *Repo) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	var out []Review
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out, "product_id = ?", productID).Error
	return out, err
}

// Summaries aggregates rating stats for the given product IDs in one
// query. Products without reviews are absent from the result map.
func (r *Repo) Summaries(ctx context.Context, productIDs []string) (map[string]Summary, error) {
	if len(productIDs) == 0 {
		return map[string]Summary{}, nil
	}
	var rows []struct {
		ProductID string
		Avg       float64
		Cnt       int
	}
	err := r.db.WithContext(ctx).Model(&Review{}).
		Select("product_id, AVG(rating) AS avg, COUNT(*) AS cnt").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]Summary, len(rows))
	for _, row := range rows {
		out[row.ProductID] = Summary{
			ProductID:     row.ProductID,
			AverageRating: math.Round(row.Avg*10) / 10,
			ReviewCount:   row.Cnt,
		}
	}
	return out, nil
}
