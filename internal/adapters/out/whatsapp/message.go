// internal/adapters/out/whatsapp/message.go
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	orderdom "ardulimp/internal/domain/order"
)

// LinkBuilder renders the Portuguese order summary and the wa.me deep link
// the storefront opens after checkout. Sending the message stays with the
// customer; the backend only builds the handoff URL.
type LinkBuilder struct {
	// Number is the shop's WhatsApp number, digits only with country code
	// (e.g. 5511999999999).
	Number string
}

func NewLinkBuilder(number string) *LinkBuilder {
	return &LinkBuilder{Number: sanitizeNumber(number)}
}

// Link returns "https://wa.me/<number>?text=<encoded message>".
func (b *LinkBuilder) Link(o *orderdom.Order) string {
	if b == nil || o == nil {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.Number, url.QueryEscape(Message(o)))
}

// Message builds the plain-text order message.
func Message(o *orderdom.Order) string {
	var sb strings.Builder

	sb.WriteString("Olá! Gostaria de fazer um pedido:\n\n")
	sb.WriteString("*Itens do pedido:*\n")
	for _, it := range o.Items {
		unit := ""
		if it.Unit != "" {
			unit = " (" + it.Unit + ")"
		}
		fmt.Fprintf(&sb, "%dx %s%s - %s\n", it.Qty, it.Name, unit, orderdom.FormatBRL(it.Subtotal()))
	}

	fmt.Fprintf(&sb, "\n*Total: %s*\n\n", orderdom.FormatBRL(o.TotalAmount))
	fmt.Fprintf(&sb, "*Nome:* %s\n", o.CustomerName)
	fmt.Fprintf(&sb, "*Bairro:* %s\n", o.CustomerNeighborhood)
	fmt.Fprintf(&sb, "*Entrega:* %s\n", o.DeliveryType)
	if o.Observations != "" {
		fmt.Fprintf(&sb, "*Observações:* %s\n", o.Observations)
	}

	return sb.String()
}

// sanitizeNumber keeps digits only ("+55 (11) 99999-9999" -> "5511999999999").
func sanitizeNumber(s string) string {
	var out strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out.WriteRune(r)
		}
	}
	return out.String()
}
