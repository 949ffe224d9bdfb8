// internal/domain/product/entity.go
package product

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound       = errors.New("product: not found")
	ErrInvalidProduct = errors.New("product: invalid")
	ErrInvalidPrice   = errors.New("product: invalid price")
)

// Product is one catalog entry.
//   - Price is in centavos.
//   - Status=false hides the product from the storefront without deleting it.
//   - StockQuantity is adjusted by the order lifecycle, never below zero.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	ImageURL    string `json:"imageUrl"`

	Price  int64 `json:"price"`
	Status bool  `json:"status"`

	StockQuantity    int `json:"stockQuantity"`
	MinStockQuantity int `json:"minStockQuantity"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New validates and normalizes a product for insertion. Name and a
// non-negative price are required; everything else defaults.
func New(id, name, description, category, unit, imageURL string, price int64, stockQty, minStockQty int, now time.Time) (*Product, error) {
	p := &Product{
		ID:               strings.TrimSpace(id),
		Name:             strings.TrimSpace(name),
		Description:      strings.TrimSpace(description),
		Category:         strings.TrimSpace(category),
		Unit:             strings.TrimSpace(unit),
		ImageURL:         strings.TrimSpace(imageURL),
		Price:            price,
		Status:           true,
		StockQuantity:    stockQty,
		MinStockQuantity: minStockQty,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// LowStock reports whether the product is at or below its minimum stock.
func (p *Product) LowStock() bool {
	return p != nil && p.StockQuantity <= p.MinStockQuantity
}

// MarshalJSON adds the computed lowStock flag the admin stock view reads.
func (p *Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		*alias
		LowStock bool `json:"lowStock"`
	}{(*alias)(p), p.LowStock()})
}

// Patch carries partial updates; nil fields are left untouched.
type Patch struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Category         *string `json:"category"`
	Unit             *string `json:"unit"`
	ImageURL         *string `json:"imageUrl"`
	Price            *int64  `json:"price"`
	Status           *bool   `json:"status"`
	StockQuantity    *int    `json:"stockQuantity"`
	MinStockQuantity *int    `json:"minStockQuantity"`
}

// Apply merges the patch into the product and re-validates.
func (p *Product) Apply(patch Patch, now time.Time) error {
	if p == nil {
		return ErrInvalidProduct
	}
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		p.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Unit != nil {
		p.Unit = strings.TrimSpace(*patch.Unit)
	}
	if patch.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.MinStockQuantity != nil {
		p.MinStockQuantity = *patch.MinStockQuantity
	}
	p.UpdatedAt = now
	return p.validate()
}

func (p *Product) validate() error {
	if p == nil || strings.TrimSpace(p.ID) == "" || p.Name == "" {
		return ErrInvalidProduct
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.StockQuantity < 0 || p.MinStockQuantity < 0 {
		return ErrInvalidProduct
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		return ErrInvalidProduct
	}
	return nil
}
