// internal/domain/product/repository_port.go
package product

import "context"

// Filter narrows List results. Zero value lists everything newest-first.
type Filter struct {
	// ActiveOnly keeps status=true products (storefront view).
	ActiveOnly bool
	// Category filters by exact category name when non-empty.
	Category string
	// Query matches name or category case-insensitively (substring).
	Query string
}

// Stats backs the admin dashboard widgets.
type Stats struct {
	ProductCount  int      `json:"productCount"`
	CategoryCount int      `json:"categoryCount"`
	Latest        *Product `json:"latest"`
}

// Repository persists products. FindByID returns (nil, nil) when unknown.
//
// AdjustStock applies delta atomically at the storage layer, flooring the
// result at zero, and returns the resulting quantity. It participates in a
// surrounding transaction when the context carries one.
type Repository interface {
	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, f Filter) ([]*Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	Stats(ctx context.Context) (*Stats, error)
}
