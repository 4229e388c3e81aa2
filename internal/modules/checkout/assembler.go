package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
)

// Customer identifies who placed the order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Address is kept structured; String renders the single-line form the
// order message and archive use.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Note       string `json:"note,omitempty"`
}

func (a Address) String() string {
	s := fmt.Sprintf("%s, %s %s, %s", a.Street, a.City, a.PostalCode, a.Country)
	if a.Note != "" {
		s += " — " + a.Note
	}
	return s
}

// OrderItem is a frozen cart line inside an order. The image reference
// is deliberately dropped to keep the payload minimal.
type OrderItem struct {
	Name           string `json:"name"`
	Quantity       int    `json:"qty"`
	UnitPriceCents int64  `json:"price"`
}

func (i OrderItem) LineTotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// OrderRecord is the finalized order: a snapshot of the cart plus the
// validated form, stamped with an id and timestamp. Once built it never
// changes, no matter what happens to the cart afterwards.
type OrderRecord struct {
	ID            string      `json:"orderId"`
	CreatedAt     time.Time   `json:"timestamp"`
	Customer      Customer    `json:"customer"`
	Address       Address     `json:"address"`
	PaymentMethod string      `json:"paymentMethod"`
	Items         []OrderItem `json:"items"`
	TotalCents    int64       `json:"total"`
}

// NewOrderID generates an order identifier, e.g. ORD-3F9A41C07B. Unique
// enough per submission; global uniqueness is not a contract.
func NewOrderID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(hex[:10])
}

// CartReader is the slice of the cart store the assembler needs.
type CartReader interface {
	Lines(ctx context.Context, cartID string) ([]cart.Line, error)
}

// Assembler validates checkout forms against the live cart and produces
// immutable OrderRecords.
type Assembler struct {
	carts    CartReader
	validate *validator.Validate

	now   func() time.Time
	newID func() string
}

func NewAssembler(carts CartReader) *Assembler {
	return &Assembler{
		carts:    carts,
		validate: newValidator(),
		now:      time.Now,
		newID:    NewOrderID,
	}
}

// Validate checks every required field (after trimming) and that the
// live cart is non-empty. Returns nil on success, a *ValidationError
// with per-field messages, or ErrCartEmpty.
func (a *Assembler) Validate(ctx context.Context, cartID string, f Form) error {
	f = f.trimmed()
	if err := a.validate.Struct(f); err != nil {
		return fieldErrors(err)
	}
	lines, err := a.carts.Lines(ctx, cartID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrCartEmpty
	}
	return nil
}

// BuildOrder re-validates and, on success, freezes the current cart into
// an OrderRecord. Two builds over an unchanged cart produce distinct ids
// but identical items and totals.
func (a *Assembler) BuildOrder(ctx context.Context, cartID string, f Form) (OrderRecord, error) {
	f = f.trimmed()
	if err := a.Validate(ctx, cartID, f); err != nil {
		return OrderRecord{}, err
	}

	lines, err := a.carts.Lines(ctx, cartID)
	if err != nil {
		return OrderRecord{}, err
	}
	if len(lines) == 0 {
		return OrderRecord{}, ErrCartEmpty
	}

	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, l := range lines {
		items = append(items, OrderItem{
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
		total += l.LineTotalCents()
	}

	return OrderRecord{
		ID:        a.newID(),
		CreatedAt: a.now().UTC(),
		Customer: Customer{
			Name:  f.FirstName + " " + f.LastName,
			Email: f.Email,
		},
		Address: Address{
			Street:     f.Street,
			City:       f.City,
			PostalCode: f.PostalCode,
			Country:    f.Country,
			Note:       f.Note,
		},
		PaymentMethod: f.PaymentMethod,
		Items:         items,
		TotalCents:    total,
	}, nil
}
