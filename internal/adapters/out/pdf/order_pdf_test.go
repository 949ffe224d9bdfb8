package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "ardulimp/internal/domain/order"
)

func TestRenderProducesPDF(t *testing.T) {
	o, err := orderdom.New("o-1", "Maria", "Centro", orderdom.DeliveryPickup, "sem perfume", []orderdom.Item{
		{ProductID: "p1", Name: "Água sanitária", Unit: "1L", UnitPrice: 899, Qty: 3},
	}, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out, err := NewOrderRenderer("").Render(o)
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderNilOrder(t *testing.T) {
	_, err := NewOrderRenderer("Ardulimp").Render(nil)
	assert.Error(t, err)
}
