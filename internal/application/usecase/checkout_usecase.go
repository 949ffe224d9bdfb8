// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	cartdom "ardulimp/internal/domain/cart"
	orderdom "ardulimp/internal/domain/order"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutEmptyCart       = errors.New("checkout_usecase: cart is empty")
)

// HandoffLinkBuilder renders the WhatsApp deep link for a new order.
type HandoffLinkBuilder interface {
	Link(o *orderdom.Order) string
}

// OrderNotifier sends the shop owner a new-order notification. Failures are
// logged and never fail the checkout.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, o *orderdom.Order) error
}

// CheckoutInput is the customer block collected at checkout.
type CheckoutInput struct {
	CustomerName         string
	CustomerNeighborhood string
	DeliveryType         string
	Observations         string
}

// CheckoutResult pairs the persisted order with its WhatsApp handoff link.
type CheckoutResult struct {
	Order        *orderdom.Order
	WhatsAppLink string
}

// CheckoutUsecase turns a cart into a Pendente order: snapshot items and
// totals, persist, clear the cart, hand off to WhatsApp.
type CheckoutUsecase struct {
	carts    cartdom.Store
	orders   orderdom.Repository
	links    HandoffLinkBuilder
	notifier OrderNotifier // optional
	clock    Clock
	newID    func() string
}

func NewCheckoutUsecase(carts cartdom.Store, orders orderdom.Repository, links HandoffLinkBuilder, notifier OrderNotifier) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		orders:   orders,
		links:    links,
		notifier: notifier,
		clock:    systemClock{},
		newID:    uuid.NewString,
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(carts cartdom.Store, orders orderdom.Repository, links HandoffLinkBuilder, notifier OrderNotifier, clock Clock, newID func() string) *CheckoutUsecase {
	uc := NewCheckoutUsecase(carts, orders, links, notifier)
	if clock != nil {
		uc.clock = clock
	}
	if newID != nil {
		uc.newID = newID
	}
	return uc
}

// CreateOrder validates the customer block, freezes the cart into an order,
// clears the cart and returns the order plus the WhatsApp link.
func (uc *CheckoutUsecase) CreateOrder(ctx context.Context, cartID string, in CheckoutInput) (*CheckoutResult, error) {
	cid := strings.TrimSpace(cartID)
	if cid == "" {
		return nil, ErrCheckoutInvalidArgument
	}
	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerNeighborhood) == "" {
		return nil, ErrCheckoutInvalidArgument
	}
	delivery, err := orderdom.ParseDeliveryType(in.DeliveryType)
	if err != nil {
		return nil, err
	}

	c, err := uc.carts.Get(ctx, cid)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrCheckoutEmptyCart
	}

	now := uc.clock.Now()
	o, err := orderdom.New(uc.newID(), in.CustomerName, in.CustomerNeighborhood, delivery, in.Observations, itemsFromCart(c), now)
	if err != nil {
		return nil, err
	}

	if err := uc.orders.Insert(ctx, o); err != nil {
		return nil, err
	}

	// The order is committed; a failed cart delete only leaves a stale cart
	// behind, so it is logged rather than surfaced.
	if err := uc.carts.Delete(ctx, cid); err != nil {
		log.Printf("[checkout_uc] clear cart %s failed: %v", cid, err)
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyNewOrder(ctx, o); err != nil {
			log.Printf("[checkout_uc] order mail for %s failed: %v", o.ID, err)
		}
	}

	return &CheckoutResult{Order: o, WhatsAppLink: uc.links.Link(o)}, nil
}

func itemsFromCart(c *cartdom.Cart) []orderdom.Item {
	lines := c.Snapshot()
	items := make([]orderdom.Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, orderdom.Item{
			ProductID: l.ProductID,
			Name:      l.Name,
			Category:  l.Category,
			Unit:      l.Unit,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice,
			Qty:       l.Qty,
		})
	}
	return items
}
