package model

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/pricing"
)

func margin(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestLineItem_SetMarginResetsState(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultFeeTable(), 12)
	states := []string{"uncomputed", "computed", "saved"}

	for _, state := range states {
		t.Run(state, func(t *testing.T) {
			item := LineItem{Code: "A1", Quantity: 1, AcquisitionValue: decimal.NewFromInt(100), Margin: margin("10")}
			if state != "uncomputed" {
				if err := item.Calculate(calc, BatchKindProduct); err != nil {
					t.Fatalf("calculate: %v", err)
				}
			}
			if state == "saved" {
				if err := item.MarkSaved(time.Now()); err != nil {
					t.Fatalf("save: %v", err)
				}
			}

			item.SetMargin(margin("25"))
			if item.Computed || item.Saved || item.SavedAt != nil {
				t.Fatalf("expected reset flags, got %+v", item)
			}
			if !item.Margin.Equal(decimal.NewFromInt(25)) {
				t.Fatalf("expected margin 25, got %s", item.Margin)
			}
		})
	}
}

func TestLineItem_Calculate(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultFeeTable(), 12)

	t.Run("missing margin", func(t *testing.T) {
		item := LineItem{Code: "A1", Quantity: 1, AcquisitionValue: decimal.NewFromInt(100)}
		if err := item.Calculate(calc, BatchKindProduct); !errors.Is(err, ErrMarginMissing) {
			t.Fatalf("expected ErrMarginMissing, got %v", err)
		}
	})

	t.Run("product", func(t *testing.T) {
		item := LineItem{Code: "A1", Quantity: 2, AcquisitionValue: decimal.NewFromInt(100), Freight: decimal.NewFromInt(10), Margin: margin("50")}
		if err := item.Calculate(calc, BatchKindProduct); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.Computed || !item.SaleValue.Equal(decimal.NewFromInt(165)) {
			t.Fatalf("unexpected item: %+v", item)
		}
	})

	t.Run("rental", func(t *testing.T) {
		item := LineItem{Code: "R1", Quantity: 1, AcquisitionValue: decimal.NewFromInt(2400), ContractDuration: 24, Margin: margin("50")}
		if err := item.Calculate(calc, BatchKindRental); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !item.SaleValue.Equal(decimal.NewFromInt(150)) {
			t.Fatalf("expected 150/month, got %s", item.SaleValue)
		}
	})
}

func TestLineItem_MarkSavedRequiresComputed(t *testing.T) {
	item := LineItem{Code: "A1", Quantity: 1}
	if err := item.MarkSaved(time.Now()); !errors.Is(err, ErrNotComputed) {
		t.Fatalf("expected ErrNotComputed, got %v", err)
	}
	if item.Saved {
		t.Fatalf("item must stay unsaved")
	}
}

func TestLineItem_Validate(t *testing.T) {
	valid := LineItem{Code: "A1", Quantity: 1, AcquisitionValue: decimal.NewFromInt(10), ContractDuration: 12}
	if err := valid.Validate(BatchKindRental); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string]LineItem{
		"no code":          {Quantity: 1},
		"zero quantity":    {Code: "A", Quantity: 0},
		"negative cost":    {Code: "A", Quantity: 1, AcquisitionValue: decimal.NewFromInt(-1)},
		"margin over 100":  {Code: "A", Quantity: 1, Margin: margin("100.5")},
		"rental no months": {Code: "A", Quantity: 1},
	}
	for name, item := range cases {
		if err := item.Validate(BatchKindRental); !errors.Is(err, ErrInvalidItem) {
			t.Fatalf("%s: expected ErrInvalidItem, got %v", name, err)
		}
	}
}

func TestBatch_Transition(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		b := Batch{Status: BatchStatusNotPriced}
		for _, next := range []BatchStatus{BatchStatusPartiallyPriced, BatchStatusPartiallyPriced, BatchStatusFullyPriced, BatchStatusImported} {
			if err := b.Transition(next); err != nil {
				t.Fatalf("transition to %s: %v", next, err)
			}
		}
	})

	t.Run("skip ahead", func(t *testing.T) {
		b := Batch{Status: BatchStatusNotPriced}
		if err := b.Transition(BatchStatusFullyPriced); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("import requires fully priced", func(t *testing.T) {
		for _, from := range []BatchStatus{BatchStatusNotPriced, BatchStatusPartiallyPriced} {
			b := Batch{Status: from}
			if err := b.Transition(BatchStatusImported); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("%s -> imported: expected ErrInvalidTransition, got %v", from, err)
			}
			if b.Status != from {
				t.Fatalf("%s: status must not change, got %s", from, b.Status)
			}
		}
	})

	t.Run("backwards", func(t *testing.T) {
		b := Batch{Status: BatchStatusFullyPriced}
		if err := b.Transition(BatchStatusPartiallyPriced); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		if b.Status != BatchStatusFullyPriced {
			t.Fatalf("status must not change")
		}
	})

	t.Run("imported is terminal", func(t *testing.T) {
		b := Batch{Status: BatchStatusImported}
		if err := b.Transition(BatchStatusImported); err != nil {
			t.Fatalf("self transition should be a no-op, got %v", err)
		}
		if err := b.Transition(BatchStatusFullyPriced); !errors.Is(err, ErrBatchImported) {
			t.Fatalf("expected ErrBatchImported, got %v", err)
		}
		if b.Editable() || b.Priceable() {
			t.Fatalf("imported batch must be read-only")
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		b := Batch{Status: BatchStatusNotPriced}
		if err := b.Transition("archived"); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}
