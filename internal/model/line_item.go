package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/pricing"
)

var (
	ErrMarginMissing = errors.New("margin is not set")
	ErrNotComputed   = errors.New("item is not calculated")
	ErrInvalidItem   = errors.New("invalid line item")
)

var (
	minMargin = decimal.Zero
	maxMargin = decimal.NewFromInt(100)
)

// LineItem is one priceable row of a batch. Margin nil means "unset".
// SaleValue is meaningful only while Computed is true, and Saved implies
// Computed.
type LineItem struct {
	ID               uuid.UUID        `gorm:"column:id;primaryKey" json:"id"`
	BatchID          uuid.UUID        `gorm:"column:batch_id" json:"batch_id"`
	Position         int              `gorm:"column:position" json:"position"`
	Code             string           `gorm:"column:code" json:"code"`
	Description      string           `gorm:"column:description" json:"description"`
	Quantity         int              `gorm:"column:quantity" json:"quantity"`
	AcquisitionValue decimal.Decimal  `gorm:"column:acquisition_value" json:"acquisition_value"`
	Freight          decimal.Decimal  `gorm:"column:freight" json:"freight"`
	ContractDuration int              `gorm:"column:contract_duration" json:"contract_duration"`
	Margin           *decimal.Decimal `gorm:"column:margin" json:"margin"`
	SaleValue        decimal.Decimal  `gorm:"column:sale_value" json:"sale_value"`
	Computed         bool             `gorm:"column:computed" json:"computed"`
	Saved            bool             `gorm:"column:saved" json:"saved"`
	SavedAt          *time.Time       `gorm:"column:saved_at" json:"saved_at"`
}

func (LineItem) TableName() string {
	return "line_items"
}

func ValidateMargin(m decimal.Decimal) error {
	if m.LessThan(minMargin) || m.GreaterThan(maxMargin) {
		return fmt.Errorf("%w: margin must be between 0 and 100", ErrInvalidItem)
	}
	return nil
}

func (li *LineItem) Validate(kind BatchKind) error {
	if li.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidItem)
	}
	if li.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
	}
	if li.AcquisitionValue.IsNegative() || li.Freight.IsNegative() {
		return fmt.Errorf("%w: values must not be negative", ErrInvalidItem)
	}
	if kind == BatchKindRental && li.ContractDuration <= 0 {
		return fmt.Errorf("%w: contract duration must be positive", ErrInvalidItem)
	}
	if li.Margin != nil {
		return ValidateMargin(*li.Margin)
	}
	return nil
}

func (li *LineItem) HasMargin() bool {
	return li.Margin != nil
}

// SetMargin replaces the margin and invalidates any previous calculation and
// save, whatever state the row was in.
func (li *LineItem) SetMargin(m *decimal.Decimal) {
	if m != nil {
		v := *m
		li.Margin = &v
	} else {
		li.Margin = nil
	}
	li.Computed = false
	li.Saved = false
	li.SavedAt = nil
	li.SaleValue = decimal.Zero
}

// Calculate prices the row from its unit cost. Rentals use the periodic
// rate over ContractDuration; services and products use the sale formula.
func (li *LineItem) Calculate(calc pricing.Calculator, kind BatchKind) error {
	if li.Margin == nil {
		return ErrMarginMissing
	}
	in := pricing.Input{
		BaseCost:      li.AcquisitionValue,
		Freight:       li.Freight,
		MarginPercent: *li.Margin,
	}

	var sale decimal.Decimal
	if kind == BatchKindRental {
		res, err := calc.Rental(pricing.RentalInput{Input: in, ContractMonths: li.ContractDuration})
		if err != nil {
			return err
		}
		sale = res.SaleValue
	} else {
		res, err := calc.Product(in)
		if err != nil {
			return err
		}
		sale = res.SaleValue
	}

	li.SaleValue = sale
	li.Computed = true
	return nil
}

func (li *LineItem) MarkSaved(now time.Time) error {
	if !li.Computed {
		return ErrNotComputed
	}
	li.Saved = true
	li.SavedAt = &now
	return nil
}

func (li *LineItem) MarkUnsaved() {
	li.Saved = false
	li.SavedAt = nil
}

// TotalCost is the acquisition cost of the whole row.
func (li *LineItem) TotalCost() decimal.Decimal {
	return li.AcquisitionValue.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
