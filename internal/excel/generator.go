package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/meuprecocerto/precificacao/internal/model"
)

const (
	summarySheet = "Resumo"
	itemsSheet   = "Itens"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.BatchReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), summarySheet); err != nil {
		return nil, err
	}
	if _, err := file.NewSheet(itemsSheet); err != nil {
		return nil, err
	}

	if err := g.writeSummary(file, report); err != nil {
		return nil, err
	}
	if err := g.writeItems(file, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, report model.BatchReport) error {
	batch := report.Batch
	totals := report.Totals()

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Nota / arquivo")
	set("B1", batch.Code)
	set("A2", "Tipo")
	set("B2", batch.Kind.Label())
	set("A3", "Fornecedor")
	set("B3", batch.Supplier)
	set("A4", "Emissão")
	set("B4", formatDate(batch.IssueDate))
	set("A5", "Importação")
	set("B5", formatDate(batch.ImportDate))
	set("A6", "Situação")
	set("B6", batch.Status.Label())
	set("A7", "Valor total")
	set("B7", batch.TotalValue.InexactFloat64())
	set("A8", "Itens")
	set("B8", len(report.Items))
	set("A9", "Calculados")
	set("B9", totals.Computed)
	set("A10", "Salvos")
	set("B10", totals.Saved)
	set("A11", "Sem margem")
	set("B11", totals.MissingRate)
	set("A12", "Custo total")
	set("B12", totals.Cost.InexactFloat64())
	set("A13", "Venda total (calculados)")
	set("B13", totals.Sale.InexactFloat64())
	set("A15", "Gerado em")
	set("B15", report.GeneratedAt.Format("02/01/2006 15:04"))

	money, err := file.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}
	_ = file.SetCellStyle(summarySheet, "B7", "B7", money)
	_ = file.SetCellStyle(summarySheet, "B12", "B13", money)
	_ = file.SetColWidth(summarySheet, "A", "A", 28)
	_ = file.SetColWidth(summarySheet, "B", "B", 40)
	return nil
}

func (g *Generator) writeItems(file *excelize.File, report model.BatchReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(itemsSheet, cell, value)
	}

	saleHeader := "Valor venda (unit.)"
	if report.Batch.Kind == model.BatchKindRental {
		saleHeader = "Valor aluguel (mensal)"
	}
	headers := []string{
		"Código",
		"Descrição",
		"Quantidade",
		"Valor aquisição",
		"Frete",
		"Prazo (meses)",
		"Margem (%)",
		saleHeader,
		"Calculado",
		"Salvo",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = file.SetRowStyle(itemsSheet, 1, 1, bold)

	for i := range report.Items {
		item := &report.Items[i]
		row := i + 2
		set(fmt.Sprintf("A%d", row), item.Code)
		set(fmt.Sprintf("B%d", row), item.Description)
		set(fmt.Sprintf("C%d", row), item.Quantity)
		set(fmt.Sprintf("D%d", row), item.AcquisitionValue.InexactFloat64())
		set(fmt.Sprintf("E%d", row), item.Freight.InexactFloat64())
		if item.ContractDuration > 0 {
			set(fmt.Sprintf("F%d", row), item.ContractDuration)
		}
		if item.Margin != nil {
			set(fmt.Sprintf("G%d", row), item.Margin.InexactFloat64())
		}
		if item.Computed {
			set(fmt.Sprintf("H%d", row), item.SaleValue.InexactFloat64())
		}
		set(fmt.Sprintf("I%d", row), yesNo(item.Computed))
		set(fmt.Sprintf("J%d", row), yesNo(item.Saved))
	}

	_ = file.SetColWidth(itemsSheet, "A", "A", 16)
	_ = file.SetColWidth(itemsSheet, "B", "B", 45)
	_ = file.SetColWidth(itemsSheet, "C", "J", 16)
	return file.SetPanes(itemsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func yesNo(v bool) string {
	if v {
		return "Sim"
	}
	return "Não"
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
