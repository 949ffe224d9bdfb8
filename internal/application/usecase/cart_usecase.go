// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	cartdom "ardulimp/internal/domain/cart"
	productdom "ardulimp/internal/domain/product"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartProductNotFound = errors.New("cart_usecase: product not found")
)

// CartUsecase coordinates cart operations. Every mutation persists the full
// cart snapshot to the store; reads rehydrate from the store and fall back to
// an empty cart when the stored copy is missing or unreadable.
type CartUsecase struct {
	store    cartdom.Store
	products productdom.Repository
	clock    Clock
}

func NewCartUsecase(store cartdom.Store, products productdom.Repository) *CartUsecase {
	return &CartUsecase{
		store:    store,
		products: products,
		clock:    systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(store cartdom.Store, products productdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{store: store, products: products, clock: clock}
}

// Get returns the cart for cartID, creating an empty (unpersisted) cart when
// the store has none.
func (uc *CartUsecase) Get(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCartInvalidArgument
	}
	return uc.load(ctx, cid)
}

// AddItem snapshots the product into a cart line and merges qty into the
// cart. qty must be >= 1.
func (uc *CartUsecase) AddItem(ctx context.Context, cartID, productID string, qty int) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	pid := strings.TrimSpace(productID)
	if cid == "" || pid == "" || qty <= 0 {
		return nil, ErrCartInvalidArgument
	}

	p, err := uc.products.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrCartProductNotFound
	}

	c, err := uc.load(ctx, cid)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	line := cartdom.Line{
		ProductID: p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Unit:      p.Unit,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
	}
	if err := c.Add(line, qty, now); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQty applies delta to the line's quantity (clamped at 1). Absent
// product ids are a silent no-op; the cart is persisted either way.
func (uc *CartUsecase) UpdateQty(ctx context.Context, cartID, productID string, delta int) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	pid := strings.TrimSpace(productID)
	if cid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.load(ctx, cid)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateQty(pid, delta, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops the line for productID.
func (uc *CartUsecase) RemoveItem(ctx context.Context, cartID, productID string) (*cartdom.Cart, error) {
	cid := strings.TrimSpace(cartID)
	pid := strings.TrimSpace(productID)
	if cid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.load(ctx, cid)
	if err != nil {
		return nil, err
	}

	if err := c.Remove(pid, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear deletes the cart document.
func (uc *CartUsecase) Clear(ctx context.Context, cartID string) error {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return ErrCartInvalidArgument
	}
	return uc.store.Delete(ctx, cid)
}

func (uc *CartUsecase) load(ctx context.Context, cartID string) (*cartdom.Cart, error) {
	c, err := uc.store.Get(ctx, cartID)
	if err != nil {
		// unreadable store entry degrades to an empty cart
		log.Printf("[cart_uc] store read failed for %s: %v", cartID, err)
		c = nil
	}
	if c != nil {
		return c, nil
	}
	return cartdom.New(cartID, uc.clock.Now())
}
