// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
	ErrInvalidLine = errors.New("cart: invalid line")
)

// DefaultCartTTL is the inactivity window after which a cart becomes eligible
// for auto deletion (Firestore TTL configured on expiresAt; Redis EXPIRE).
const DefaultCartTTL = 7 * 24 * time.Hour

// Line is one product entry in the cart. Display fields are copied from the
// product at add-time so the cart renders without a catalog round-trip.
type Line struct {
	ProductID string `json:"productId" firestore:"productId"`
	Name      string `json:"name" firestore:"name"`
	Category  string `json:"category" firestore:"category"`
	Unit      string `json:"unit" firestore:"unit"`
	ImageURL  string `json:"imageUrl" firestore:"imageUrl"`

	// UnitPrice is in centavos.
	UnitPrice int64 `json:"unitPrice" firestore:"unitPrice"`
	Qty       int   `json:"qty" firestore:"qty"`
}

// Subtotal returns unitPrice * qty in centavos.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Qty)
}

// Cart is one cart document.
//   - docId = cartId (client session identifier)
//   - Lines: ordered slice, insertion order preserved for display
//   - invariant: at most one Line per ProductID
type Cart struct {
	ID    string `json:"id" firestore:"id"`
	Lines []Line `json:"lines" firestore:"lines"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`

	// ExpiresAt is refreshed on each mutation (TTL basis).
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// New creates an empty cart for the given id.
func New(id string, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Lines:     []Line{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges qty into an existing line for line.ProductID, or appends a new
// line at the end. qty must be >= 1; the display fields of an existing line
// are refreshed from the incoming snapshot.
func (c *Cart) Add(line Line, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(line.ProductID)
	if pid == "" || qty <= 0 || line.UnitPrice < 0 {
		return ErrInvalidLine
	}

	if c.Lines == nil {
		c.Lines = []Line{}
	}

	idx := c.indexOf(pid)
	if idx >= 0 {
		c.Lines[idx].Qty += qty
		c.Lines[idx].Name = strings.TrimSpace(line.Name)
		c.Lines[idx].Category = strings.TrimSpace(line.Category)
		c.Lines[idx].Unit = strings.TrimSpace(line.Unit)
		c.Lines[idx].ImageURL = strings.TrimSpace(line.ImageURL)
		c.Lines[idx].UnitPrice = line.UnitPrice
	} else {
		c.Lines = append(c.Lines, Line{
			ProductID: pid,
			Name:      strings.TrimSpace(line.Name),
			Category:  strings.TrimSpace(line.Category),
			Unit:      strings.TrimSpace(line.Unit),
			ImageURL:  strings.TrimSpace(line.ImageURL),
			UnitPrice: line.UnitPrice,
			Qty:       qty,
		})
	}

	c.touch(now)
	return c.validate()
}

// UpdateQty applies delta to the line's quantity, clamped at 1.
// Silent no-op when productID is not in the cart: it never creates a line
// and never removes one (removal is explicit via Remove).
func (c *Cart) UpdateQty(productID string, delta int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	idx := c.indexOf(strings.TrimSpace(productID))
	if idx < 0 {
		return nil
	}

	q := c.Lines[idx].Qty + delta
	if q < 1 {
		q = 1
	}
	c.Lines[idx].Qty = q

	c.touch(now)
	return c.validate()
}

// Remove drops the line for productID. No-op when absent.
func (c *Cart) Remove(productID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	idx := c.indexOf(strings.TrimSpace(productID))
	if idx < 0 {
		return nil
	}

	// preserve order
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)

	c.touch(now)
	return c.validate()
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear(now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	c.Lines = []Line{}
	c.touch(now)
	return c.validate()
}

// Snapshot returns an independent copy of the lines. Mutating the cart after
// Snapshot does not affect the returned slice (order creation relies on this).
func (c *Cart) Snapshot() []Line {
	if c == nil || len(c.Lines) == 0 {
		return []Line{}
	}
	out := make([]Line, len(c.Lines))
	copy(out, c.Lines)
	return out
}

// TotalItems is the sum of all line quantities (badge count).
func (c *Cart) TotalItems() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, l := range c.Lines {
		n += l.Qty
	}
	return n
}

// TotalAmount is the sum of unitPrice*qty across lines, in centavos.
func (c *Cart) TotalAmount() int64 {
	if c == nil {
		return 0
	}
	var sum int64
	for _, l := range c.Lines {
		sum += l.Subtotal()
	}
	return sum
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	seen := map[string]struct{}{}
	for _, l := range c.Lines {
		pid := strings.TrimSpace(l.ProductID)
		if pid == "" || l.Qty < 1 || l.UnitPrice < 0 {
			return ErrInvalidLine
		}
		if _, dup := seen[pid]; dup {
			return ErrInvalidLine
		}
		seen[pid] = struct{}{}
	}
	return nil
}
