package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/meuprecocerto/precificacao/internal/model"
)

func TestGenerator_Generate(t *testing.T) {
	margin := decimal.NewFromInt(30)
	issued := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	report := model.BatchReport{
		Batch: model.Batch{
			ID:         uuid.New(),
			Code:       "NF-1234",
			Kind:       model.BatchKindRental,
			Supplier:   "Locadora Paulista",
			IssueDate:  &issued,
			TotalValue: decimal.RequireFromString("1500"),
			Status:     model.BatchStatusPartiallyPriced,
		},
		Items: []model.LineItem{
			{Code: "EQ-1", Description: "Betoneira", Quantity: 1, AcquisitionValue: decimal.NewFromInt(1200), ContractDuration: 12, Margin: &margin, SaleValue: decimal.NewFromInt(130), Computed: true, Saved: true},
			{Code: "EQ-2", Description: "Andaime", Quantity: 3, AcquisitionValue: decimal.NewFromInt(100), ContractDuration: 6},
		},
		GeneratedAt: time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC),
	}

	content, err := NewGenerator().Generate(report)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != summarySheet || sheets[1] != itemsSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	if v, _ := f.GetCellValue(summarySheet, "B1"); v != "NF-1234" {
		t.Fatalf("unexpected code cell %q", v)
	}
	if v, _ := f.GetCellValue(summarySheet, "B4"); v != "05/03/2024" {
		t.Fatalf("unexpected issue date %q", v)
	}
	if v, _ := f.GetCellValue(summarySheet, "B6"); v != "Parcialmente precificado" {
		t.Fatalf("unexpected status %q", v)
	}
	if v, _ := f.GetCellValue(itemsSheet, "H1"); v != "Valor aluguel (mensal)" {
		t.Fatalf("unexpected sale header %q", v)
	}

	rows, err := f.GetRows(itemsSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][7] != "130" || rows[1][9] != "Sim" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[2][7] != "" || rows[2][8] != "Não" {
		t.Fatalf("unexpected second row %v", rows[2])
	}
}
