package whatsapp

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "ardulimp/internal/domain/order"
)

func sampleOrder(t *testing.T) *orderdom.Order {
	t.Helper()
	o, err := orderdom.New("o-1", "Maria", "Centro", orderdom.DeliveryDelivery, "entregar à tarde", []orderdom.Item{
		{ProductID: "p1", Name: "Detergente", Unit: "500ml", UnitPrice: 1000, Qty: 2},
		{ProductID: "p2", Name: "Sabão", Unit: "1kg", UnitPrice: 550, Qty: 1},
	}, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func TestMessage(t *testing.T) {
	msg := Message(sampleOrder(t))

	assert.Contains(t, msg, "2x Detergente (500ml) - R$ 20,00")
	assert.Contains(t, msg, "1x Sabão (1kg) - R$ 5,50")
	assert.Contains(t, msg, "*Total: R$ 25,50*")
	assert.Contains(t, msg, "*Nome:* Maria")
	assert.Contains(t, msg, "*Bairro:* Centro")
	assert.Contains(t, msg, "*Entrega:* Entrega")
	assert.Contains(t, msg, "*Observações:* entregar à tarde")
}

func TestMessageOmitsEmptyObservations(t *testing.T) {
	o := sampleOrder(t)
	o.Observations = ""
	assert.NotContains(t, Message(o), "Observações")
}

func TestLink(t *testing.T) {
	b := NewLinkBuilder("+55 (11) 99999-9999")
	link := b.Link(sampleOrder(t))

	require.True(t, strings.HasPrefix(link, "https://wa.me/5511999999999?text="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Maria")
	assert.Contains(t, text, "R$ 25,50")
}

func TestFormatBRLGrouping(t *testing.T) {
	assert.Equal(t, "R$ 0,00", orderdom.FormatBRL(0))
	assert.Equal(t, "R$ 0,05", orderdom.FormatBRL(5))
	assert.Equal(t, "R$ 2,55", orderdom.FormatBRL(255))
	assert.Equal(t, "R$ 1.234,56", orderdom.FormatBRL(123456))
	assert.Equal(t, "-R$ 10,00", orderdom.FormatBRL(-1000))
}
