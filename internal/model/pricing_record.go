package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/meuprecocerto/precificacao/internal/pricing"
)

type PricingFormula string

const (
	PricingFormulaRental  PricingFormula = "rental"
	PricingFormulaProduct PricingFormula = "product"
)

// PricingRecord is a saved calculation snapshot, optionally linked to a
// catalog item.
type PricingRecord struct {
	ID               uuid.UUID                            `gorm:"column:id;primaryKey" json:"id"`
	Formula          PricingFormula                       `gorm:"column:formula" json:"formula"`
	CatalogItemID    *uuid.UUID                           `gorm:"column:catalog_item_id" json:"catalog_item_id"`
	Description      string                               `gorm:"column:description" json:"description"`
	BaseCost         decimal.Decimal                      `gorm:"column:base_cost" json:"base_cost"`
	Freight          decimal.Decimal                      `gorm:"column:freight" json:"freight"`
	ExtraCosts       datatypes.JSONSlice[decimal.Decimal] `gorm:"column:extra_costs" json:"extra_costs"`
	MarginPercent    decimal.Decimal                      `gorm:"column:margin_percent" json:"margin_percent"`
	PaymentMethod    pricing.PaymentMethod                `gorm:"column:payment_method" json:"payment_method"`
	Installments     int                                  `gorm:"column:installments" json:"installments"`
	ContractMonths   int                                  `gorm:"column:contract_months" json:"contract_months"`
	TotalCost        decimal.Decimal                      `gorm:"column:total_cost" json:"total_cost"`
	SaleValue        decimal.Decimal                      `gorm:"column:sale_value" json:"sale_value"`
	ContractValue    decimal.Decimal                      `gorm:"column:contract_value" json:"contract_value"`
	GrossProfit      decimal.Decimal                      `gorm:"column:gross_profit" json:"gross_profit"`
	TotalFees        decimal.Decimal                      `gorm:"column:total_fees" json:"total_fees"`
	NetProfit        decimal.Decimal                      `gorm:"column:net_profit" json:"net_profit"`
	ProfitPercent    decimal.Decimal                      `gorm:"column:profit_percent" json:"profit_percent"`
	InstallmentValue *decimal.Decimal                     `gorm:"column:installment_value" json:"installment_value"`
	CreatedAt        time.Time                            `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time                            `gorm:"column:updated_at" json:"updated_at"`
}

func (PricingRecord) TableName() string {
	return "pricing_records"
}

func (r *PricingRecord) Input() pricing.Input {
	return pricing.Input{
		BaseCost:      r.BaseCost,
		Freight:       r.Freight,
		ExtraCosts:    []decimal.Decimal(r.ExtraCosts),
		MarginPercent: r.MarginPercent,
		PaymentMethod: r.PaymentMethod,
		Installments:  r.Installments,
	}
}

// Snapshot is the cost/price pair the record writes onto its catalog item.
func (r *PricingRecord) Snapshot() CatalogPricing {
	pricedAt := r.CreatedAt
	return CatalogPricing{Cost: r.TotalCost, SaleValue: r.SaleValue, PricedAt: &pricedAt}
}

// Newer orders records by creation time; ties fall back to the id so the
// order is total.
func (r *PricingRecord) Newer(other *PricingRecord) bool {
	if !r.CreatedAt.Equal(other.CreatedAt) {
		return r.CreatedAt.After(other.CreatedAt)
	}
	return r.ID.String() > other.ID.String()
}
