package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "ardulimp/internal/domain/order"
)

func testOrder(t *testing.T, id string) *orderdom.Order {
	t.Helper()
	o, err := orderdom.New(id, "Maria", "Centro", orderdom.DeliveryPickup, "", []orderdom.Item{
		{ProductID: "p1", Name: "Detergente", UnitPrice: 1000, Qty: 2},
		{ProductID: "p2", Name: "Sabão", UnitPrice: 550, Qty: 3},
	}, testNow)
	require.NoError(t, err)
	return o
}

func TestSetStatusApproveDecrementsStock(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	products := newFakeProductRepo(testProduct("p1", 1000), testProduct("p2", 550))
	tx := &fakeTx{}
	uc := NewOrderUsecaseWithClock(orders, products, tx, fixedClock{testNow})

	o, err := uc.SetStatus(context.Background(), "o-1", "Aprovado")
	require.NoError(t, err)

	assert.Equal(t, orderdom.StatusApproved, o.Status)
	assert.Equal(t, 8, products.products["p1"].StockQuantity)
	assert.Equal(t, 7, products.products["p2"].StockQuantity)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, orders.statusWrites)
}

func TestSetStatusApproveIsIdempotentOnStock(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	products := newFakeProductRepo(testProduct("p1", 1000), testProduct("p2", 550))
	tx := &fakeTx{}
	uc := NewOrderUsecaseWithClock(orders, products, tx, fixedClock{testNow})
	ctx := context.Background()

	_, err := uc.SetStatus(ctx, "o-1", "Aprovado")
	require.NoError(t, err)
	_, err = uc.SetStatus(ctx, "o-1", "Aprovado")
	require.NoError(t, err)

	// second approval must not decrement again
	assert.Equal(t, 8, products.products["p1"].StockQuantity)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 2, orders.statusWrites)
}

func TestSetStatusCancelRestoresStockOnlyFromApproved(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	products := newFakeProductRepo(testProduct("p1", 1000), testProduct("p2", 550))
	uc := NewOrderUsecaseWithClock(orders, products, &fakeTx{}, fixedClock{testNow})
	ctx := context.Background()

	// Pendente -> Cancelado: no stock movement
	_, err := uc.SetStatus(ctx, "o-1", "Cancelado")
	require.NoError(t, err)
	assert.Equal(t, 10, products.products["p1"].StockQuantity)

	// back through Aprovado, then Cancelado: reserve then release
	_, err = uc.SetStatus(ctx, "o-1", "Aprovado")
	require.NoError(t, err)
	assert.Equal(t, 8, products.products["p1"].StockQuantity)

	_, err = uc.SetStatus(ctx, "o-1", "Cancelado")
	require.NoError(t, err)
	assert.Equal(t, 10, products.products["p1"].StockQuantity)
	assert.Equal(t, 10, products.products["p2"].StockQuantity)
}

func TestSetStatusFloorsStockAtZero(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	p1 := testProduct("p1", 1000)
	p1.StockQuantity = 1
	products := newFakeProductRepo(p1, testProduct("p2", 550))
	uc := NewOrderUsecaseWithClock(orders, products, &fakeTx{}, fixedClock{testNow})

	_, err := uc.SetStatus(context.Background(), "o-1", "Aprovado")
	require.NoError(t, err)
	assert.Equal(t, 0, products.products["p1"].StockQuantity)
}

func TestSetStatusInventoryFailureRollsBack(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	products := newFakeProductRepo(testProduct("p1", 1000), testProduct("p2", 550))
	products.adjustFail["p2"] = errBoom

	tx := &fakeTx{rollback: func() {
		products.products["p1"].StockQuantity = 10
		products.products["p2"].StockQuantity = 10
	}}
	uc := NewOrderUsecaseWithClock(orders, products, tx, fixedClock{testNow})

	_, err := uc.SetStatus(context.Background(), "o-1", "Aprovado")
	assert.ErrorIs(t, err, ErrInventoryInconsistency)

	// status never persisted over inconsistent stock
	assert.Equal(t, 0, orders.statusWrites)
	assert.Equal(t, orderdom.StatusPending, orders.orders["o-1"].Status)
	assert.Equal(t, 10, products.products["p1"].StockQuantity)
}

func TestSetStatusValidation(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	uc := NewOrderUsecaseWithClock(orders, newFakeProductRepo(), &fakeTx{}, fixedClock{testNow})
	ctx := context.Background()

	_, err := uc.SetStatus(ctx, "o-1", "Enviado")
	assert.ErrorIs(t, err, orderdom.ErrUnknownStatus)

	_, err = uc.SetStatus(ctx, "ghost", "Aprovado")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateItemsRecomputesTotalWithoutStockWrites(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	products := newFakeProductRepo(testProduct("p1", 1000))
	uc := NewOrderUsecaseWithClock(orders, products, &fakeTx{}, fixedClock{testNow})

	o, err := uc.UpdateItems(context.Background(), "o-1", []orderdom.Item{
		{ProductID: "p1", Name: "Detergente", UnitPrice: 1000, Qty: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), o.TotalAmount)
	require.Len(t, o.Items, 1)
	assert.Empty(t, products.adjustCalls)
	assert.Equal(t, int64(5000), orders.orders["o-1"].TotalAmount)
}

func TestDeleteDoesNotRestoreStock(t *testing.T) {
	orders := newFakeOrderRepo(testOrder(t, "o-1"))
	products := newFakeProductRepo(testProduct("p1", 1000), testProduct("p2", 550))
	uc := NewOrderUsecaseWithClock(orders, products, &fakeTx{}, fixedClock{testNow})
	ctx := context.Background()

	_, err := uc.SetStatus(ctx, "o-1", "Aprovado")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "o-1"))
	assert.Nil(t, orders.orders["o-1"])

	// delete is not a cancel: reserved stock stays reserved
	assert.Equal(t, 8, products.products["p1"].StockQuantity)

	assert.ErrorIs(t, uc.Delete(ctx, "o-1"), ErrOrderNotFound)
}

func TestListFilters(t *testing.T) {
	o1 := testOrder(t, "o-1")
	o2 := testOrder(t, "o-2")
	o2.CustomerName = "João"
	o2.Status = orderdom.StatusApproved
	orders := newFakeOrderRepo(o1, o2)
	uc := NewOrderUsecaseWithClock(orders, newFakeProductRepo(), &fakeTx{}, fixedClock{testNow})
	ctx := context.Background()

	all, err := uc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := uc.List(ctx, "Aprovado", "")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "o-2", approved[0].ID)

	byName, err := uc.List(ctx, "", "joão")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "o-2", byName[0].ID)

	_, err = uc.List(ctx, "nope", "")
	assert.ErrorIs(t, err, orderdom.ErrUnknownStatus)
}
