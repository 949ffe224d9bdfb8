// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrInvalidOrder    = errors.New("order: invalid")
	ErrEmptyItems      = errors.New("order: items empty")
	ErrInvalidItem     = errors.New("order: invalid item")
	ErrUnknownStatus   = errors.New("order: unknown status")
	ErrUnknownDelivery = errors.New("order: unknown delivery type")
)

// =====================================================================
// Status / DeliveryType
// =====================================================================

// Status values are stored verbatim (Portuguese, as shown in the admin UI).
type Status string

const (
	StatusPending  Status = "Pendente"
	StatusApproved Status = "Aprovado"
	StatusCanceled Status = "Cancelado"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusCanceled:
		return StatusCanceled, nil
	default:
		return "", ErrUnknownStatus
	}
}

type DeliveryType string

const (
	DeliveryPickup   DeliveryType = "Retirar"
	DeliveryDelivery DeliveryType = "Entrega"
)

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch DeliveryType(strings.TrimSpace(s)) {
	case DeliveryPickup:
		return DeliveryPickup, nil
	case DeliveryDelivery:
		return DeliveryDelivery, nil
	default:
		return "", ErrUnknownDelivery
	}
}

// StockSign is the per-item inventory effect of a status transition:
// -1 reserves stock (quantity subtracted), +1 releases it, 0 leaves it alone.
//
//	Pendente  -> Aprovado   : -1
//	Aprovado  -> Cancelado  : +1
//	Pendente  -> Cancelado  :  0
//	Aprovado  -> Aprovado   :  0 (guard against double decrement)
//
// Stock is only ever held by an Aprovado order, so any transition into
// Aprovado from a non-Aprovado state reserves, and any transition out of
// Aprovado releases.
func StockSign(from, to Status) int {
	if from == to {
		return 0
	}
	if to == StatusApproved {
		return -1
	}
	if from == StatusApproved {
		return +1
	}
	return 0
}

// =====================================================================
// Item
// =====================================================================

// Item is a frozen snapshot of a cart line at checkout time. Later catalog
// edits never reach into persisted orders.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Unit      string `json:"unit"`
	ImageURL  string `json:"imageUrl"`

	// UnitPrice is in centavos.
	UnitPrice int64 `json:"unitPrice"`
	Qty       int   `json:"qty"`
}

func (it Item) Subtotal() int64 {
	return it.UnitPrice * int64(it.Qty)
}

// =====================================================================
// Order
// =====================================================================

type Order struct {
	ID string `json:"id"`

	CustomerName         string       `json:"customerName"`
	CustomerNeighborhood string       `json:"customerNeighborhood"`
	DeliveryType         DeliveryType `json:"deliveryType"`
	Observations         string       `json:"observations"`

	Items []Item `json:"items"`

	// TotalAmount is in centavos, always recomputed from Items.
	TotalAmount int64  `json:"totalAmount"`
	Status      Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New builds a Pendente order from a checkout snapshot.
func New(id, customerName, neighborhood string, delivery DeliveryType, observations string, items []Item, now time.Time) (*Order, error) {
	o := &Order{
		ID:                   strings.TrimSpace(id),
		CustomerName:         strings.TrimSpace(customerName),
		CustomerNeighborhood: strings.TrimSpace(neighborhood),
		DeliveryType:         delivery,
		Observations:         strings.TrimSpace(observations),
		Status:               StatusPending,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	norm, err := normalizeItems(items)
	if err != nil {
		return nil, err
	}
	o.Items = norm
	o.TotalAmount = sumItems(norm)

	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// ApplyStatus records the transition and returns the inventory effect sign.
// The caller is responsible for performing the stock writes and the status
// write atomically.
func (o *Order) ApplyStatus(to Status, now time.Time) (int, error) {
	if o == nil {
		return 0, ErrInvalidOrder
	}
	if _, err := ParseStatus(string(to)); err != nil {
		return 0, err
	}
	sign := StockSign(o.Status, to)
	o.Status = to
	o.UpdatedAt = now
	return sign, nil
}

// ReplaceItems swaps the order's item snapshot (admin edit) and recomputes
// the total. Duplicated product ids are merged and quantities clamped at 1,
// mirroring the cart rules. Product stock is never touched here.
func (o *Order) ReplaceItems(items []Item, now time.Time) error {
	if o == nil {
		return ErrInvalidOrder
	}
	norm, err := normalizeItems(items)
	if err != nil {
		return err
	}
	if len(norm) == 0 {
		return ErrEmptyItems
	}
	o.Items = norm
	o.TotalAmount = sumItems(norm)
	o.UpdatedAt = now
	return o.validate()
}

func (o *Order) validate() error {
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return ErrInvalidOrder
	}
	if o.CustomerName == "" || o.CustomerNeighborhood == "" {
		return ErrInvalidOrder
	}
	if _, err := ParseDeliveryType(string(o.DeliveryType)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
		return ErrInvalidOrder
	}
	return nil
}

// ---------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------

func normalizeItems(items []Item) ([]Item, error) {
	out := make([]Item, 0, len(items))
	index := map[string]int{}

	for _, it := range items {
		pid := strings.TrimSpace(it.ProductID)
		if pid == "" || it.UnitPrice < 0 {
			return nil, ErrInvalidItem
		}
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		if i, ok := index[pid]; ok {
			out[i].Qty += qty
			continue
		}
		index[pid] = len(out)
		out = append(out, Item{
			ProductID: pid,
			Name:      strings.TrimSpace(it.Name),
			Category:  strings.TrimSpace(it.Category),
			Unit:      strings.TrimSpace(it.Unit),
			ImageURL:  strings.TrimSpace(it.ImageURL),
			UnitPrice: it.UnitPrice,
			Qty:       qty,
		})
	}
	return out, nil
}

func sumItems(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}
