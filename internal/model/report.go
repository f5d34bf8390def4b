package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchReport is the export view of one batch.
type BatchReport struct {
	Batch       Batch
	Items       []LineItem
	GeneratedAt time.Time
}

type BatchTotals struct {
	Cost        decimal.Decimal
	Sale        decimal.Decimal
	Computed    int
	Saved       int
	MissingRate int
}

// Totals sums cost and sale over the report items. Sale only counts
// computed rows; MissingRate counts rows without a margin.
func (r BatchReport) Totals() BatchTotals {
	var t BatchTotals
	for i := range r.Items {
		item := &r.Items[i]
		qty := decimal.NewFromInt(int64(item.Quantity))
		t.Cost = t.Cost.Add(item.TotalCost())
		if item.Computed {
			t.Computed++
			t.Sale = t.Sale.Add(item.SaleValue.Mul(qty))
		}
		if item.Saved {
			t.Saved++
		}
		if !item.HasMargin() {
			t.MissingRate++
		}
	}
	return t
}
