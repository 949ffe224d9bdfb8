// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	orderdom "ardulimp/internal/domain/order"
	productdom "ardulimp/internal/domain/product"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
	ErrOrderNotFound        = errors.New("order_usecase: not found")

	// ErrInventoryInconsistency marks a status change that failed mid stock
	// adjustment; the transaction is rolled back, so neither the status nor
	// any stock write is persisted.
	ErrInventoryInconsistency = errors.New("order_usecase: inventory inconsistency")
)

// Tx runs fn inside one storage transaction.
type Tx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// OrderUsecase manages the order lifecycle and its inventory side effects.
type OrderUsecase struct {
	orders   orderdom.Repository
	products productdom.Repository
	tx       Tx
	clock    Clock
}

func NewOrderUsecase(orders orderdom.Repository, products productdom.Repository, tx Tx) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		products: products,
		tx:       tx,
		clock:    systemClock{},
	}
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(orders orderdom.Repository, products productdom.Repository, tx Tx, clock Clock) *OrderUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &OrderUsecase{orders: orders, products: products, tx: tx, clock: clock}
}

// Get returns the order for id.
func (uc *OrderUsecase) Get(ctx context.Context, id string) (*orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, ErrOrderInvalidArgument
	}
	o, err := uc.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// List returns orders newest-first, optionally narrowed by status and a
// customer-name/id query.
func (uc *OrderUsecase) List(ctx context.Context, status, query string) ([]*orderdom.Order, error) {
	f := orderdom.Filter{Query: strings.TrimSpace(query)}
	if s := strings.TrimSpace(status); s != "" {
		parsed, err := orderdom.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		f.Status = &parsed
	}
	return uc.orders.List(ctx, f)
}

// SetStatus applies the lifecycle transition:
//
//	Pendente -> Aprovado:  stock -= qty per item (floored at 0 in storage)
//	Aprovado -> Cancelado: stock += qty per item
//	anything else:         status only
//
// Stock writes and the status write run in one transaction; a failed stock
// write rolls everything back and surfaces ErrInventoryInconsistency.
func (uc *OrderUsecase) SetStatus(ctx context.Context, id, status string) (*orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, ErrOrderInvalidArgument
	}
	to, err := orderdom.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := uc.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	sign, err := o.ApplyStatus(to, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	if sign == 0 {
		if err := uc.orders.UpdateStatus(ctx, o); err != nil {
			return nil, err
		}
		return o, nil
	}

	err = uc.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, it := range o.Items {
			if _, err := uc.products.AdjustStock(txCtx, it.ProductID, sign*it.Qty); err != nil {
				return fmt.Errorf("%w: product %s: %v", ErrInventoryInconsistency, it.ProductID, err)
			}
		}
		return uc.orders.UpdateStatus(txCtx, o)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[order_uc] order %s -> %s (stock sign %+d)", o.ID, o.Status, sign)
	return o, nil
}

// UpdateItems replaces the order's item snapshot and recomputes the total.
// Product stock is never touched by item edits.
func (uc *OrderUsecase) UpdateItems(ctx context.Context, id string, items []orderdom.Item) (*orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return nil, ErrOrderInvalidArgument
	}

	o, err := uc.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	if err := o.ReplaceItems(items, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete removes the order permanently. Stock is not restored: delete is an
// administrative correction, not a cancellation.
func (uc *OrderUsecase) Delete(ctx context.Context, id string) error {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return ErrOrderInvalidArgument
	}
	if err := uc.orders.Delete(ctx, oid); err != nil {
		if errors.Is(err, orderdom.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}
