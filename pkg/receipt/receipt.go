// Package receipt gera o comprovante em PDF de uma venda.
package receipt

import (
	"fmt"
	"io"

	"github.com/hugohenrick/barbearia-api/internal/domain/sale"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// Header identifica o estabelecimento no topo do comprovante
type Header struct {
	ShopName string
	Document string
}

// Render escreve o comprovante da venda em w
func Render(w io.Writer, h Header, s *sale.Sale) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Comprovante "+s.ID), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(h.ShopName), "", 1, "C", false, 0, "")
	if h.Document != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(h.Document), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Venda: %s", s.ID)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Cliente: %s", s.CustomerName)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Data: %s", s.CreatedAt.Format("02/01/2006 15:04"))))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Pagamento: %s", paymentLabel(s.PaymentMethod))))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, tr("Item"), "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qtd", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, tr("Unitário"), "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, it := range s.Items {
		pdf.CellFormat(90, 7, tr(it.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(it.UnitPrice), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(it.LineSubtotal), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	totalLine(pdf, tr("Subtotal"), s.Subtotal)
	if s.Discount.IsPositive() {
		totalLine(pdf, tr("Desconto (corte grátis)"), s.Discount.Neg())
	}
	pdf.SetFont("Arial", "B", 12)
	totalLine(pdf, tr("Total"), s.FinalTotal)

	if s.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, tr("Obs.: "+s.Notes), "", "L", false)
	}

	return pdf.Output(w)
}

func totalLine(pdf *gofpdf.Fpdf, label string, v decimal.Decimal) {
	pdf.CellFormat(150, 7, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, money(v), "", 1, "R", false, 0, "")
}

func money(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func paymentLabel(m sale.PaymentMethod) string {
	switch m {
	case sale.PaymentCash:
		return "Dinheiro"
	case sale.PaymentCard:
		return "Cartão"
	case sale.PaymentTransfer:
		return "Transferência"
	default:
		return "Outro"
	}
}
