// internal/domain/order/repository_port.go
package order

import "context"

// Filter narrows List results. Zero value lists everything newest-first.
type Filter struct {
	// Status limits results to one lifecycle state when non-nil.
	Status *Status
	// Query matches the order id exactly or the customer name
	// case-insensitively (substring).
	Query string
}

// Repository persists orders. Find returns (nil, nil) when the id is unknown.
//
// UpdateStatus only writes the status and updatedAt columns; callers run it
// inside a transaction together with the stock adjustments so an order is
// never marked Aprovado over a failed stock write.
type Repository interface {
	Insert(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	UpdateStatus(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, f Filter) ([]*Order, error)
	Delete(ctx context.Context, id string) error
}
