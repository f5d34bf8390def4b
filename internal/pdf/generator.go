package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
)

// Generator renders the batch pricing summary with the core Helvetica font.
// Text goes through a cp1252 translator so Portuguese accents survive.
type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(report model.BatchReport) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	batch := report.Batch
	totals := report.Totals()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Resumo de precificação"), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Nota / arquivo %s de %s", batch.Code, formatDate(batch.IssueDate))), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Fornecedor: %s", safeValue(batch.Supplier))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	summary := []string{
		fmt.Sprintf("Situação: %s", batch.Status.Label()),
		fmt.Sprintf("Itens: %d (calculados %d, salvos %d)", len(report.Items), totals.Computed, totals.Saved),
		fmt.Sprintf("Custo total: %s", pricing.FormatBRL(totals.Cost)),
		fmt.Sprintf("Venda total dos itens calculados: %s", pricing.FormatBRL(totals.Sale)),
	}
	for _, line := range summary {
		pdf.MultiCell(0, 6, tr(line), "", "L", false)
	}
	pdf.Ln(2)

	saleHeader := "Venda unit."
	if batch.Kind == model.BatchKindRental {
		saleHeader = "Aluguel mensal"
	}
	headers := []string{"Código", "Descrição", "Qtd", "Aquisição", "Frete", "Margem", saleHeader, "Situação"}
	colWidths := []float64{28, 82, 15, 30, 25, 22, 30, 35}
	drawTableRow(pdf, g.fontName, tr, headers, colWidths, true)

	for i := range report.Items {
		item := &report.Items[i]
		margin := "—"
		if item.Margin != nil {
			margin = pricing.FormatPercent(*item.Margin)
		}
		sale := "—"
		if item.Computed {
			sale = pricing.FormatBRL(item.SaleValue)
		}
		row := []string{
			item.Code,
			truncate(item.Description, 48),
			fmt.Sprintf("%d", item.Quantity),
			pricing.FormatBRL(item.AcquisitionValue),
			pricing.FormatBRL(item.Freight),
			margin,
			sale,
			itemState(item),
		}
		drawTableRow(pdf, g.fontName, tr, row, colWidths, false)
	}

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Gerado em %s", report.GeneratedAt.Format("02/01/2006 15:04"))), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		align := "L"
		if i > 1 && i < len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, header, 0, "")
	}
	pdf.Ln(-1)
}

func itemState(item *model.LineItem) string {
	switch {
	case item.Saved:
		return "Salvo"
	case item.Computed:
		return "Calculado"
	case item.HasMargin():
		return "Pendente"
	default:
		return "Sem margem"
	}
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}
