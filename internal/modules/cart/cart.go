// Package cart owns the persisted shopping cart: an ordered list of
// lines keyed by product id, stored as a single serialized value and
// shared by every view of the same cart.
package cart

import "encoding/json"

// Line is one product in the cart. Name, image and price are snapshots
// taken when the product was added; they are not re-synced if the
// catalog changes afterwards.
type Line struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	ImageURL       string `json:"imageUrl"`
	UnitPriceCents int64  `json:"unitPrice"`
	Quantity       int    `json:"quantity"`
}

func (l Line) LineTotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Snapshot carries the product attributes AddItem freezes into a line.
type Snapshot struct {
	ProductID      string
	Name           string
	ImageURL       string
	UnitPriceCents int64
}

// Normalize re-establishes the line invariants on data read back from
// storage: lines without a product id, with a non-positive quantity or a
// negative price are dropped, and duplicate product ids are merged into
// the first occurrence. Insertion order is preserved.
func Normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 || l.UnitPriceCents < 0 {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return out
}

// EncodeLines serializes the cart for storage. The wire form is a plain
// JSON array of lines and must round-trip exactly.
func EncodeLines(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// DecodeLines parses a stored cart. Malformed payloads decode as an
// empty cart: bad persisted data must never take a page down.
func DecodeLines(data []byte) []Line {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil
	}
	return Normalize(lines)
}

// TotalCents sums unit price times quantity over the given lines.
func TotalCents(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.LineTotalCents()
	}
	return sum
}
