// internal/adapters/out/pdf/order_pdf.go
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	orderdom "ardulimp/internal/domain/order"
)

// OrderRenderer renders an order as a downloadable A4 PDF: shop header,
// customer block, item table and total.
type OrderRenderer struct {
	// ShopName heads the document ("Ardulimp" by default).
	ShopName string
}

func NewOrderRenderer(shopName string) *OrderRenderer {
	if shopName == "" {
		shopName = "Ardulimp"
	}
	return &OrderRenderer{ShopName: shopName}
}

func (r *OrderRenderer) Render(o *orderdom.Order) ([]byte, error) {
	if o == nil {
		return nil, fmt.Errorf("order_pdf: order is nil")
	}

	doc := fpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; translate the pt-BR text
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	// header
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr(r.ShopName), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr(fmt.Sprintf("Pedido %s", o.ID)), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, o.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	doc.Ln(4)

	// customer block
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 7, tr("Dados do cliente"), "B", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr("Nome: "+o.CustomerName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr("Bairro: "+o.CustomerNeighborhood), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr("Entrega: "+string(o.DeliveryType)), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, tr("Status: "+string(o.Status)), "", 1, "L", false, 0, "")
	if o.Observations != "" {
		doc.MultiCell(0, 6, tr("Observações: "+o.Observations), "", "L", false)
	}
	doc.Ln(4)

	// item table
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(95, 7, tr("Produto"), "1", 0, "L", true, 0, "")
	doc.CellFormat(20, 7, tr("Qtd"), "1", 0, "C", true, 0, "")
	doc.CellFormat(35, 7, tr("Unitário"), "1", 0, "R", true, 0, "")
	doc.CellFormat(40, 7, tr("Subtotal"), "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 11)
	for _, it := range o.Items {
		name := it.Name
		if it.Unit != "" {
			name += " (" + it.Unit + ")"
		}
		doc.CellFormat(95, 7, tr(name), "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 7, fmt.Sprintf("%d", it.Qty), "1", 0, "C", false, 0, "")
		doc.CellFormat(35, 7, tr(orderdom.FormatBRL(it.UnitPrice)), "1", 0, "R", false, 0, "")
		doc.CellFormat(40, 7, tr(orderdom.FormatBRL(it.Subtotal())), "1", 1, "R", false, 0, "")
	}

	// total row
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(150, 8, tr("Total"), "1", 0, "R", false, 0, "")
	doc.CellFormat(40, 8, tr(orderdom.FormatBRL(o.TotalAmount)), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("order_pdf: render %s: %w", o.ID, err)
	}
	return buf.Bytes(), nil
}
