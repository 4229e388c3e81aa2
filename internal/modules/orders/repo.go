package orders

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// Save archives a built order and its items in one transaction. The
// channel records how delivery was attempted. Re-archiving the same
// order id returns ErrDuplicate.
func (r *Repo) Save(ctx context.Context, rec checkout.OrderRecord, channel string) error {
	o := Order{
		ID:            rec.ID,
		CustomerName:  rec.Customer.Name,
		CustomerEmail: rec.Customer.Email,
		Street:        rec.Address.Street,
		City:          rec.Address.City,
		PostalCode:    rec.Address.PostalCode,
		Country:       rec.Address.Country,
		Note:          rec.Address.Note,
		PaymentMethod: rec.PaymentMethod,
		Channel:       channel,
		TotalCents:    rec.TotalCents,
		CreatedAt:     rec.CreatedAt,
	}
	items := make([]OrderItem, len(rec.Items))
	for i, it := range rec.Items {
		items[i] = OrderItem{
			OrderID:        rec.ID,
			Name:           it.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Position:       i,
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return archiveErr(err)
}

// archiveErr maps driver errors to the package sentinels. The id column
// is the primary key, so a replayed submission surfaces as a duplicate
// key violation and the archive stays idempotent per order id.
func archiveErr(err error) error {
	if IsDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Order{}, nil, ErrNotFound
		}
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *Repo) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var out []Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
