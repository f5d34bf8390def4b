package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CatalogKind string

const (
	CatalogKindProduct   CatalogKind = "product"
	CatalogKindEquipment CatalogKind = "equipment"
)

func (k CatalogKind) Valid() bool {
	return k == CatalogKindProduct || k == CatalogKindEquipment
}

// CatalogItem is a product or rental equipment whose displayed cost and
// price come from its current saved pricing record.
type CatalogItem struct {
	ID               uuid.UUID       `gorm:"column:id;primaryKey" json:"id"`
	Kind             CatalogKind     `gorm:"column:kind" json:"kind"`
	Code             string          `gorm:"column:code" json:"code"`
	Name             string          `gorm:"column:name" json:"name"`
	Category         string          `gorm:"column:category" json:"category"`
	CurrentCost      decimal.Decimal `gorm:"column:current_cost" json:"current_cost"`
	CurrentSaleValue decimal.Decimal `gorm:"column:current_sale_value" json:"current_sale_value"`
	PricedAt         *time.Time      `gorm:"column:priced_at" json:"priced_at"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

// CatalogPricing is what a pricing record writes back onto its catalog item.
type CatalogPricing struct {
	Cost      decimal.Decimal
	SaleValue decimal.Decimal
	PricedAt  *time.Time
}

// CatalogPricingUpdate targets one catalog item. A nil Pricing clears the
// item's current cost and price.
type CatalogPricingUpdate struct {
	ItemID  uuid.UUID
	Pricing *CatalogPricing
}
