// internal/domain/category/repository_port.go
package category

import "context"

// Repository persists categories. FindByID returns (nil, nil) when unknown.
// List is ordered by name ascending.
type Repository interface {
	Insert(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}
