package checkout

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
)

func newCartWith(t *testing.T, lines ...cart.Snapshot) (*cart.Store, string) {
	t.Helper()
	s := cart.NewStore(cart.NewMemoryStorage(), cart.NewMemoryNotifier(), slog.Default())
	for _, snap := range lines {
		require.NoError(t, s.AddItem(context.Background(), "c1", snap))
	}
	return s, "c1"
}

func validForm() Form {
	return Form{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Street:        "12 Analytical Way",
		City:          "London",
		PostalCode:    "EC1A 1BB",
		Country:       "United Kingdom",
		PaymentMethod: "card",
		AcceptTerms:   true,
	}
}

var drill = cart.Snapshot{ProductID: "p1", Name: "Drill", ImageURL: "img/drill.webp", UnitPriceCents: 4999}

func TestValidateSuccess(t *testing.T) {
	store, cartID := newCartWith(t, drill)
	a := NewAssembler(store)

	assert.NoError(t, a.Validate(context.Background(), cartID, validForm()))
}

func TestValidateNamesOnlyTheMissingField(t *testing.T) {
	store, cartID := newCartWith(t, drill)
	a := NewAssembler(store)

	cases := []struct {
		field  string
		mutate func(*Form)
	}{
		{"first_name", func(f *Form) { f.FirstName = "" }},
		{"last_name", func(f *Form) { f.LastName = "  " }}, // whitespace only
		{"email", func(f *Form) { f.Email = "" }},
		{"street", func(f *Form) { f.Street = "" }},
		{"city", func(f *Form) { f.City = "" }},
		{"postal_code", func(f *Form) { f.PostalCode = "" }},
		{"country", func(f *Form) { f.Country = "" }},
		{"payment_method", func(f *Form) { f.PaymentMethod = "" }},
		{"accept_terms", func(f *Form) { f.AcceptTerms = false }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)

			err := a.Validate(context.Background(), cartID, f)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Fields, 1)
			assert.Contains(t, ve.Fields, tc.field)
			assert.Equal(t, tc.field, ve.First)
		})
	}
}

func TestValidateFirstFieldFollowsFormOrder(t *testing.T) {
	store, cartID := newCartWith(t, drill)
	a := NewAssembler(store)

	f := validForm()
	f.City = ""
	f.Email = ""

	err := a.Validate(context.Background(), cartID, f)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "email", ve.First)
	assert.Len(t, ve.Fields, 2)
}

func TestValidateRejectsBadEmailAndUnknownPayment(t *testing.T) {
	store, cartID := newCartWith(t, drill)
	a := NewAssembler(store)

	f := validForm()
	f.Email = "not-an-address"
	err := a.Validate(context.Background(), cartID, f)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")

	f = validForm()
	f.PaymentMethod = "barter"
	err = a.Validate(context.Background(), cartID, f)
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "payment_method")
}

func TestValidateEmptyCart(t *testing.T) {
	store, cartID := newCartWith(t) // nothing added
	a := NewAssembler(store)

	err := a.Validate(context.Background(), cartID, validForm())
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestBuildOrderSnapshotsCart(t *testing.T) {
	ctx := context.Background()
	store, cartID := newCartWith(t, drill)
	require.NoError(t, store.AddItem(ctx, cartID, drill)) // qty 2

	a := NewAssembler(store)
	order, err := a.BuildOrder(ctx, cartID, validForm())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Drill", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, int64(4999), order.Items[0].UnitPriceCents)
	assert.Equal(t, int64(9998), order.TotalCents)
	assert.Equal(t, "Ada Lovelace", order.Customer.Name)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	// The record is frozen: later cart mutations must not leak into it.
	require.NoError(t, store.Clear(ctx, cartID))
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, int64(9998), order.TotalCents)
}

func TestBuildOrderTwiceDistinctIDsSameSnapshot(t *testing.T) {
	ctx := context.Background()
	store, cartID := newCartWith(t, drill)
	a := NewAssembler(store)

	first, err := a.BuildOrder(ctx, cartID, validForm())
	require.NoError(t, err)
	second, err := a.BuildOrder(ctx, cartID, validForm())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, first.TotalCents, second.TotalCents)
}

func TestBuildOrderTrimsFields(t *testing.T) {
	ctx := context.Background()
	store, cartID := newCartWith(t, drill)
	a := NewAssembler(store)

	f := validForm()
	f.FirstName = "  Ada "
	f.City = " London "

	order, err := a.BuildOrder(ctx, cartID, f)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", order.Customer.Name)
	assert.Equal(t, "London", order.Address.City)
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	assert.Regexp(t, `^ORD-[0-9A-F]{10}$`, id)
	assert.NotEqual(t, id, NewOrderID())
}

func TestBuildOrderUsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	store, cartID := newCartWith(t, drill)

	a := NewAssembler(store)
	at := time.Date(2025, 3, 9, 12, 30, 0, 0, time.UTC)
	a.now = func() time.Time { return at }
	a.newID = func() string { return "ORD-FIXED00001" }

	order, err := a.BuildOrder(ctx, cartID, validForm())
	require.NoError(t, err)
	assert.Equal(t, at, order.CreatedAt)
	assert.Equal(t, "ORD-FIXED00001", order.ID)
}
