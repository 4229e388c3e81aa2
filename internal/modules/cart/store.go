package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by Storage.Load when no value exists under the
// key. The Store treats it the same as an empty cart.
var ErrNotFound = errors.New("cart: not found")

// Storage is the key-value port the cart persists through. A cart is one
// value under one key, rewritten whole on every mutation; concurrent
// writers are last-writer-wins.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Notifier broadcasts "cart changed" to every view of the same cart.
// The event carries no payload; subscribers re-read the store.
type Notifier interface {
	Publish(ctx context.Context, cartID string) error
	Subscribe(ctx context.Context, cartID string) (<-chan struct{}, func())
}

// Store exposes the cart operations over a Storage and a Notifier. All
// operations are synchronous; the notification fan-out is fire-and-forget.
type Store struct {
	storage Storage
	notify  Notifier
	logger  *slog.Logger
}

func NewStore(storage Storage, notify Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, notify: notify, logger: logger}
}

func storageKey(cartID string) string { return "cart:" + cartID }

// Lines returns a read-only snapshot of the cart. A missing or corrupt
// stored value reads as an empty cart.
func (s *Store) Lines(ctx context.Context, cartID string) ([]Line, error) {
	data, err := s.storage.Load(ctx, storageKey(cartID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", cartID, err)
	}
	return DecodeLines(data), nil
}

// AddItem adds one unit of the product, appending a new quantity-1 line
// or incrementing the existing one. The snapshot's name, image and price
// are frozen on first add.
func (s *Store) AddItem(ctx context.Context, cartID string, snap Snapshot) error {
	return s.AddItemQty(ctx, cartID, snap, 1)
}

// AddItemQty adds qty units at once (the product page's quantity picker).
func (s *Store) AddItemQty(ctx context.Context, cartID string, snap Snapshot, qty int) error {
	if qty < 1 {
		qty = 1
	}
	return s.mutate(ctx, cartID, func(lines []Line) ([]Line, bool) {
		for i := range lines {
			if lines[i].ProductID == snap.ProductID {
				lines[i].Quantity += qty
				return lines, true
			}
		}
		return append(lines, Line{
			ProductID:      snap.ProductID,
			Name:           snap.Name,
			ImageURL:       snap.ImageURL,
			UnitPriceCents: snap.UnitPriceCents,
			Quantity:       qty,
		}), true
	})
}

// SetQuantity adds delta (positive or negative) to the line's quantity.
// A resulting quantity of zero or less removes the line. An unknown
// product id is a silent no-op: the caller's view may be stale and that
// is not an error.
func (s *Store) SetQuantity(ctx context.Context, cartID, productID string, delta int) error {
	return s.mutate(ctx, cartID, func(lines []Line) ([]Line, bool) {
		for i := range lines {
			if lines[i].ProductID != productID {
				continue
			}
			lines[i].Quantity += delta
			if lines[i].Quantity <= 0 {
				return append(lines[:i], lines[i+1:]...), true
			}
			return lines, true
		}
		return lines, false
	})
}

// RemoveItem removes the line if present, no-op otherwise.
func (s *Store) RemoveItem(ctx context.Context, cartID, productID string) error {
	return s.mutate(ctx, cartID, func(lines []Line) ([]Line, bool) {
		for i := range lines {
			if lines[i].ProductID == productID {
				return append(lines[:i], lines[i+1:]...), true
			}
		}
		return lines, false
	})
}

// Clear empties the cart. Called once, after a successful order submission.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	if err := s.storage.Delete(ctx, storageKey(cartID)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear cart %s: %w", cartID, err)
	}
	s.publish(ctx, cartID)
	return nil
}

// TotalCents is the sum of unitPrice*quantity over all lines; 0 for an
// empty cart.
func (s *Store) TotalCents(ctx context.Context, cartID string) (int64, error) {
	lines, err := s.Lines(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return TotalCents(lines), nil
}

// LineCount is the number of distinct lines (not summed quantity); it
// backs the header badge.
func (s *Store) LineCount(ctx context.Context, cartID string) (int, error) {
	lines, err := s.Lines(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return len(lines), nil
}

// Subscribe delivers a signal after every mutation of the cart, local or
// from a sibling view. The returned cancel func must be called.
func (s *Store) Subscribe(ctx context.Context, cartID string) (<-chan struct{}, func()) {
	return s.notify.Subscribe(ctx, cartID)
}

func (s *Store) mutate(ctx context.Context, cartID string, fn func([]Line) ([]Line, bool)) error {
	lines, err := s.Lines(ctx, cartID)
	if err != nil {
		return err
	}
	next, changed := fn(lines)
	if !changed {
		return nil
	}
	data, err := EncodeLines(next)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", cartID, err)
	}
	if err := s.storage.Save(ctx, storageKey(cartID), data); err != nil {
		return fmt.Errorf("save cart %s: %w", cartID, err)
	}
	// Notify only after the write is durable.
	s.publish(ctx, cartID)
	return nil
}

func (s *Store) publish(ctx context.Context, cartID string) {
	if err := s.notify.Publish(ctx, cartID); err != nil {
		s.logger.WarnContext(ctx, "cart_notify_failed",
			slog.String("cart_id", cartID),
			slog.Any("err", err),
		)
	}
}
