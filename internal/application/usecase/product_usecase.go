// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	productdom "ardulimp/internal/domain/product"
)

var (
	ErrProductInvalidArgument = errors.New("product_usecase: invalid argument")
	ErrProductNotFound        = errors.New("product_usecase: not found")
)

// ImageStore uploads product images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// CreateProductInput carries the admin form for a new product.
type CreateProductInput struct {
	Name             string
	Description      string
	Category         string
	Unit             string
	ImageURL         string
	Price            int64
	StockQuantity    int
	MinStockQuantity int
}

// ProductUsecase covers the public catalog and the admin product CRUD.
type ProductUsecase struct {
	products productdom.Repository
	images   ImageStore // optional
	clock    Clock
	newID    func() string
}

func NewProductUsecase(products productdom.Repository, images ImageStore) *ProductUsecase {
	return &ProductUsecase{
		products: products,
		images:   images,
		clock:    systemClock{},
		newID:    uuid.NewString,
	}
}

// NewProductUsecaseWithClock is useful for tests.
func NewProductUsecaseWithClock(products productdom.Repository, images ImageStore, clock Clock, newID func() string) *ProductUsecase {
	uc := NewProductUsecase(products, images)
	if clock != nil {
		uc.clock = clock
	}
	if newID != nil {
		uc.newID = newID
	}
	return uc
}

// ListCatalog returns active products newest-first for the storefront,
// optionally narrowed by category and name query.
func (uc *ProductUsecase) ListCatalog(ctx context.Context, category, query string) ([]*productdom.Product, error) {
	return uc.products.List(ctx, productdom.Filter{
		ActiveOnly: true,
		Category:   strings.TrimSpace(category),
		Query:      strings.TrimSpace(query),
	})
}

// ListAdmin returns all products newest-first, including inactive ones.
func (uc *ProductUsecase) ListAdmin(ctx context.Context, query string) ([]*productdom.Product, error) {
	return uc.products.List(ctx, productdom.Filter{Query: strings.TrimSpace(query)})
}

// Get returns the product for id.
func (uc *ProductUsecase) Get(ctx context.Context, id string) (*productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return nil, ErrProductInvalidArgument
	}
	p, err := uc.products.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Create validates and persists a new active product.
func (uc *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (*productdom.Product, error) {
	p, err := productdom.New(uc.newID(), in.Name, in.Description, in.Category, in.Unit, in.ImageURL,
		in.Price, in.StockQuantity, in.MinStockQuantity, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies a partial patch to the product.
func (uc *ProductUsecase) Update(ctx context.Context, id string, patch productdom.Patch) (*productdom.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(patch, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the product permanently.
func (uc *ProductUsecase) Delete(ctx context.Context, id string) error {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return ErrProductInvalidArgument
	}
	if err := uc.products.Delete(ctx, pid); err != nil {
		if errors.Is(err, productdom.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// UploadImage stores the image under the product id and saves its public URL
// on the product.
func (uc *ProductUsecase) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*productdom.Product, error) {
	p, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.images == nil {
		return nil, ErrProductInvalidArgument
	}

	objectName := "products/" + p.ID + "/" + strings.TrimSpace(filename)
	url, err := uc.images.Upload(ctx, objectName, contentType, r)
	if err != nil {
		return nil, err
	}

	if err := p.Apply(productdom.Patch{ImageURL: &url}, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Stats returns the dashboard widgets.
func (uc *ProductUsecase) Stats(ctx context.Context) (*productdom.Stats, error) {
	return uc.products.Stats(ctx)
}
