// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "ardulimp/internal/domain/order"
)

// OrderMailer implements the checkout's OrderNotifier port: a plain-text
// summary of every new order, sent to the shop owner.
type OrderMailer struct {
	client EmailClient
	from   string
	to     string
}

func NewOrderMailer(client EmailClient, from, to string) *OrderMailer {
	return &OrderMailer{
		client: client,
		from:   strings.TrimSpace(from),
		to:     strings.TrimSpace(to),
	}
}

func (m *OrderMailer) NotifyNewOrder(ctx context.Context, o *orderdom.Order) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order_mailer: client is nil")
	}
	if o == nil {
		return fmt.Errorf("order_mailer: order is nil")
	}

	subject := fmt.Sprintf("Novo pedido de %s (%s)", o.CustomerName, orderdom.FormatBRL(o.TotalAmount))

	var b strings.Builder
	fmt.Fprintf(&b, "Novo pedido recebido.\n\n")
	fmt.Fprintf(&b, "Pedido: %s\n", o.ID)
	fmt.Fprintf(&b, "Cliente: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Bairro: %s\n", o.CustomerNeighborhood)
	fmt.Fprintf(&b, "Entrega: %s\n", o.DeliveryType)
	if o.Observations != "" {
		fmt.Fprintf(&b, "Observações: %s\n", o.Observations)
	}
	b.WriteString("\nItens:\n")
	for _, it := range o.Items {
		unit := ""
		if it.Unit != "" {
			unit = " (" + it.Unit + ")"
		}
		fmt.Fprintf(&b, "  %dx %s%s - %s\n", it.Qty, it.Name, unit, orderdom.FormatBRL(it.Subtotal()))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", orderdom.FormatBRL(o.TotalAmount))

	return m.client.Send(ctx, m.from, m.to, subject, b.String())
}
