// internal/domain/cart/store_port.go
package cart

import "context"

// Store is the durable cart cache port.
//
// Get returns (nil, nil) when the cart does not exist or its stored form is
// unreadable; callers treat both as an empty cart.
type Store interface {
	Get(ctx context.Context, cartID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, cartID string) error
}
