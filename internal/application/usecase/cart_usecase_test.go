package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdom "ardulimp/internal/domain/product"
)

func testProduct(id string, price int64) *productdom.Product {
	p, err := productdom.New(id, "Produto "+id, "", "Limpeza", "un", "", price, 10, 2, testNow)
	if err != nil {
		panic(err)
	}
	return p
}

func TestCartGetReturnsEmptyCartWhenMissing(t *testing.T) {
	store := newFakeCartStore()
	uc := NewCartUsecaseWithClock(store, newFakeProductRepo(), fixedClock{testNow})

	c, err := uc.Get(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// a plain read never persists
	assert.Empty(t, store.carts)
}

func TestCartGetDegradesOnStoreError(t *testing.T) {
	store := newFakeCartStore()
	store.getErr = errBoom
	uc := NewCartUsecaseWithClock(store, newFakeProductRepo(), fixedClock{testNow})

	c, err := uc.Get(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartAddItemPersistsSnapshot(t *testing.T) {
	store := newFakeCartStore()
	products := newFakeProductRepo(testProduct("p1", 1000), testProduct("p2", 550))
	uc := NewCartUsecaseWithClock(store, products, fixedClock{testNow})

	ctx := context.Background()
	_, err := uc.AddItem(ctx, "cart-1", "p1", 2)
	require.NoError(t, err)
	c, err := uc.AddItem(ctx, "cart-1", "p2", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(2550), c.TotalAmount())

	stored := store.carts["cart-1"]
	require.NotNil(t, stored)
	assert.Equal(t, int64(2550), stored.TotalAmount())
	assert.Equal(t, "Produto p1", stored.Lines[0].Name)
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	uc := NewCartUsecaseWithClock(newFakeCartStore(), newFakeProductRepo(), fixedClock{testNow})

	_, err := uc.AddItem(context.Background(), "cart-1", "ghost", 1)
	assert.ErrorIs(t, err, ErrCartProductNotFound)
}

func TestCartAddItemInvalidArgs(t *testing.T) {
	uc := NewCartUsecaseWithClock(newFakeCartStore(), newFakeProductRepo(), fixedClock{testNow})

	_, err := uc.AddItem(context.Background(), "", "p1", 1)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
	_, err = uc.AddItem(context.Background(), "cart-1", "p1", 0)
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

func TestCartUpdateQty(t *testing.T) {
	store := newFakeCartStore()
	products := newFakeProductRepo(testProduct("p1", 1000))
	uc := NewCartUsecaseWithClock(store, products, fixedClock{testNow})

	ctx := context.Background()
	_, err := uc.AddItem(ctx, "cart-1", "p1", 2)
	require.NoError(t, err)

	c, err := uc.UpdateQty(ctx, "cart-1", "p1", -5)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Qty)

	// absent product: silent no-op, cart unchanged
	c, err = uc.UpdateQty(ctx, "cart-1", "ghost", 3)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Qty)
}

func TestCartRemoveAndClear(t *testing.T) {
	store := newFakeCartStore()
	products := newFakeProductRepo(testProduct("p1", 1000))
	uc := NewCartUsecaseWithClock(store, products, fixedClock{testNow})

	ctx := context.Background()
	_, err := uc.AddItem(ctx, "cart-1", "p1", 2)
	require.NoError(t, err)

	c, err := uc.RemoveItem(ctx, "cart-1", "p1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	require.NoError(t, uc.Clear(ctx, "cart-1"))
	assert.Contains(t, store.deleted, "cart-1")
}
