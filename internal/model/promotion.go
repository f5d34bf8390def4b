package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PromotionType string

const (
	PromotionTypeDiscount     PromotionType = "DESCONTO"
	PromotionTypeFreeShipping PromotionType = "FRETE_GRATIS"
	PromotionTypeCoupon       PromotionType = "CUPOM"
)

type DiscountKind string

const (
	DiscountKindPercent DiscountKind = "PERCENTUAL"
	DiscountKindFixed   DiscountKind = "VALOR_FIXO"
)

type ConditionKind string

const (
	ConditionKindNone        ConditionKind = "NENHUMA"
	ConditionKindMinQuantity ConditionKind = "QUANTIDADE_MINIMA"
	ConditionKindMinValue    ConditionKind = "VALOR_MINIMO"
	ConditionKindRegion      ConditionKind = "POR_REGIAO"
)

var ErrInvalidPromotion = errors.New("invalid promotion")

var brazilianStates = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

func ValidState(uf string) bool {
	_, ok := brazilianStates[strings.ToUpper(strings.TrimSpace(uf))]
	return ok
}

// PurchaseContext describes the purchase a promotion is evaluated against.
type PurchaseContext struct {
	UnitPrice  decimal.Decimal
	Quantity   int
	OrderValue decimal.Decimal
	State      string
	CouponCode string
}

type Discount interface {
	Kind() DiscountKind
	Apply(price decimal.Decimal) decimal.Decimal
	validate() error
}

type PercentDiscount struct {
	Percent decimal.Decimal
}

func (PercentDiscount) Kind() DiscountKind { return DiscountKindPercent }

func (d PercentDiscount) Apply(price decimal.Decimal) decimal.Decimal {
	off := price.Mul(d.Percent).Div(decimal.NewFromInt(100))
	return price.Sub(off).Round(2)
}

func (d PercentDiscount) validate() error {
	if !d.Percent.IsPositive() || d.Percent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percent discount must be in (0, 100]", ErrInvalidPromotion)
	}
	return nil
}

type FixedDiscount struct {
	Amount decimal.Decimal
}

func (FixedDiscount) Kind() DiscountKind { return DiscountKindFixed }

func (d FixedDiscount) Apply(price decimal.Decimal) decimal.Decimal {
	result := price.Sub(d.Amount)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result.Round(2)
}

func (d FixedDiscount) validate() error {
	if !d.Amount.IsPositive() {
		return fmt.Errorf("%w: fixed discount must be positive", ErrInvalidPromotion)
	}
	return nil
}

type Condition interface {
	Kind() ConditionKind
	Satisfied(ctx PurchaseContext) bool
	validate() error
}

type NoCondition struct{}

func (NoCondition) Kind() ConditionKind { return ConditionKindNone }

func (NoCondition) Satisfied(PurchaseContext) bool { return true }

func (NoCondition) validate() error { return nil }

type MinQuantityCondition struct {
	MinQuantity int
}

func (MinQuantityCondition) Kind() ConditionKind { return ConditionKindMinQuantity }

func (c MinQuantityCondition) Satisfied(ctx PurchaseContext) bool {
	return ctx.Quantity >= c.MinQuantity
}

func (c MinQuantityCondition) validate() error {
	if c.MinQuantity <= 0 {
		return fmt.Errorf("%w: minimum quantity must be positive", ErrInvalidPromotion)
	}
	return nil
}

type MinValueCondition struct {
	MinValue decimal.Decimal
}

func (MinValueCondition) Kind() ConditionKind { return ConditionKindMinValue }

func (c MinValueCondition) Satisfied(ctx PurchaseContext) bool {
	return ctx.OrderValue.GreaterThanOrEqual(c.MinValue)
}

func (c MinValueCondition) validate() error {
	if !c.MinValue.IsPositive() {
		return fmt.Errorf("%w: minimum value must be positive", ErrInvalidPromotion)
	}
	return nil
}

type RegionCondition struct {
	States []string
}

func (RegionCondition) Kind() ConditionKind { return ConditionKindRegion }

func (c RegionCondition) Satisfied(ctx PurchaseContext) bool {
	state := strings.ToUpper(strings.TrimSpace(ctx.State))
	for _, uf := range c.States {
		if strings.EqualFold(strings.TrimSpace(uf), state) {
			return true
		}
	}
	return false
}

func (c RegionCondition) validate() error {
	if len(c.States) == 0 {
		return fmt.Errorf("%w: at least one state is required", ErrInvalidPromotion)
	}
	for _, uf := range c.States {
		if !ValidState(uf) {
			return fmt.Errorf("%w: unknown state %q", ErrInvalidPromotion, uf)
		}
	}
	return nil
}

// Promotion targets either one linked catalog item or a whole category,
// never both. Discount and Condition are stored together in Rules.
type Promotion struct {
	ID                 uuid.UUID      `gorm:"column:id;primaryKey" json:"id"`
	Name               string         `gorm:"column:name" json:"name"`
	Description        string         `gorm:"column:description" json:"description"`
	Type               PromotionType  `gorm:"column:type" json:"type"`
	Category           string         `gorm:"column:category" json:"category"`
	LinkedItemID       *uuid.UUID     `gorm:"column:linked_item_id" json:"linked_item_id"`
	ApplyWholeCategory bool           `gorm:"column:apply_whole_category" json:"apply_whole_category"`
	CouponCode         string         `gorm:"column:coupon_code" json:"coupon_code,omitempty"`
	StartsAt           time.Time      `gorm:"column:starts_at" json:"starts_at"`
	EndsAt             *time.Time     `gorm:"column:ends_at" json:"ends_at"`
	Active             bool           `gorm:"column:active" json:"active"`
	Discount           Discount       `gorm:"-" json:"-"`
	Condition          Condition      `gorm:"-" json:"-"`
	Rules              datatypes.JSON `gorm:"column:rules" json:"rules"`
	CreatedAt          time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Promotion) TableName() string {
	return "promotions"
}

func (p *Promotion) SelectLinkedItem(id uuid.UUID) {
	p.LinkedItemID = &id
	p.ApplyWholeCategory = false
}

func (p *Promotion) SelectWholeCategory(category string) {
	p.Category = strings.TrimSpace(category)
	p.ApplyWholeCategory = true
	p.LinkedItemID = nil
}

func (p *Promotion) ConditionOrNone() Condition {
	if p.Condition == nil {
		return NoCondition{}
	}
	return p.Condition
}

func (p *Promotion) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPromotion)
	}
	switch p.Type {
	case PromotionTypeDiscount, PromotionTypeCoupon:
		if p.Discount == nil {
			return fmt.Errorf("%w: discount is required for %s", ErrInvalidPromotion, p.Type)
		}
		if err := p.Discount.validate(); err != nil {
			return err
		}
	case PromotionTypeFreeShipping:
		if p.Discount != nil {
			return fmt.Errorf("%w: free shipping does not take a discount", ErrInvalidPromotion)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPromotion, p.Type)
	}
	if p.Type == PromotionTypeCoupon && strings.TrimSpace(p.CouponCode) == "" {
		return fmt.Errorf("%w: coupon code is required", ErrInvalidPromotion)
	}
	if p.Type != PromotionTypeCoupon && p.CouponCode != "" {
		return fmt.Errorf("%w: coupon code only applies to coupons", ErrInvalidPromotion)
	}

	linked := p.LinkedItemID != nil && *p.LinkedItemID != uuid.Nil
	if linked == p.ApplyWholeCategory {
		return fmt.Errorf("%w: choose either a linked item or the whole category", ErrInvalidPromotion)
	}
	if p.ApplyWholeCategory && strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidPromotion)
	}

	if err := p.ConditionOrNone().validate(); err != nil {
		return err
	}
	if p.EndsAt != nil && !p.EndsAt.After(p.StartsAt) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidPromotion)
	}
	return nil
}

type PromotionOutcome struct {
	Eligible        bool            `json:"eligible"`
	Reason          string          `json:"reason,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	FreeShipping    bool            `json:"free_shipping"`
}

func (p *Promotion) Apply(ctx PurchaseContext, now time.Time) PromotionOutcome {
	out := PromotionOutcome{UnitPrice: ctx.UnitPrice, DiscountedPrice: ctx.UnitPrice}

	switch {
	case !p.Active:
		out.Reason = "promotion inactive"
		return out
	case now.Before(p.StartsAt):
		out.Reason = "promotion not started"
		return out
	case p.EndsAt != nil && !now.Before(*p.EndsAt):
		out.Reason = "promotion expired"
		return out
	}
	if p.Type == PromotionTypeCoupon && !strings.EqualFold(strings.TrimSpace(ctx.CouponCode), p.CouponCode) {
		out.Reason = "coupon code does not match"
		return out
	}
	if !p.ConditionOrNone().Satisfied(ctx) {
		out.Reason = "condition not met"
		return out
	}

	out.Eligible = true
	if p.Type == PromotionTypeFreeShipping {
		out.FreeShipping = true
		return out
	}
	out.DiscountedPrice = p.Discount.Apply(ctx.UnitPrice)
	return out
}

type promotionRules struct {
	Discount  *DiscountDoc `json:"discount,omitempty"`
	Condition ConditionDoc `json:"condition"`
}

// DiscountDoc and ConditionDoc are the tagged JSON forms of the variants.
type DiscountDoc struct {
	Kind    DiscountKind     `json:"kind"`
	Percent *decimal.Decimal `json:"percent,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

type ConditionDoc struct {
	Kind        ConditionKind    `json:"kind"`
	MinQuantity *int             `json:"min_quantity,omitempty"`
	MinValue    *decimal.Decimal `json:"min_value,omitempty"`
	States      []string         `json:"states,omitempty"`
}

// EncodeRules serializes Discount and Condition into Rules.
func (p *Promotion) EncodeRules() error {
	rules := promotionRules{Condition: EncodeCondition(p.ConditionOrNone())}
	if p.Discount != nil {
		doc := EncodeDiscount(p.Discount)
		rules.Discount = &doc
	}
	raw, err := json.Marshal(rules)
	if err != nil {
		return err
	}
	p.Rules = datatypes.JSON(raw)
	return nil
}

// DecodeRules rebuilds Discount and Condition from Rules.
func (p *Promotion) DecodeRules() error {
	p.Discount = nil
	p.Condition = NoCondition{}
	if len(p.Rules) == 0 {
		return nil
	}
	var rules promotionRules
	if err := json.Unmarshal(p.Rules, &rules); err != nil {
		return fmt.Errorf("decode promotion rules: %w", err)
	}
	if rules.Discount != nil {
		d, err := DecodeDiscount(*rules.Discount)
		if err != nil {
			return err
		}
		p.Discount = d
	}
	c, err := DecodeCondition(rules.Condition)
	if err != nil {
		return err
	}
	p.Condition = c
	return nil
}

func (p *Promotion) BeforeSave(_ *gorm.DB) error {
	return p.EncodeRules()
}

func (p *Promotion) AfterFind(_ *gorm.DB) error {
	return p.DecodeRules()
}

func EncodeDiscount(d Discount) DiscountDoc {
	switch v := d.(type) {
	case PercentDiscount:
		return DiscountDoc{Kind: DiscountKindPercent, Percent: &v.Percent}
	case FixedDiscount:
		return DiscountDoc{Kind: DiscountKindFixed, Amount: &v.Amount}
	}
	return DiscountDoc{Kind: d.Kind()}
}

func DecodeDiscount(doc DiscountDoc) (Discount, error) {
	switch doc.Kind {
	case DiscountKindPercent:
		if doc.Percent == nil {
			return nil, fmt.Errorf("%w: percent is required", ErrInvalidPromotion)
		}
		return PercentDiscount{Percent: *doc.Percent}, nil
	case DiscountKindFixed:
		if doc.Amount == nil {
			return nil, fmt.Errorf("%w: amount is required", ErrInvalidPromotion)
		}
		return FixedDiscount{Amount: *doc.Amount}, nil
	default:
		return nil, fmt.Errorf("%w: unknown discount kind %q", ErrInvalidPromotion, doc.Kind)
	}
}

func EncodeCondition(c Condition) ConditionDoc {
	switch v := c.(type) {
	case MinQuantityCondition:
		return ConditionDoc{Kind: ConditionKindMinQuantity, MinQuantity: &v.MinQuantity}
	case MinValueCondition:
		return ConditionDoc{Kind: ConditionKindMinValue, MinValue: &v.MinValue}
	case RegionCondition:
		return ConditionDoc{Kind: ConditionKindRegion, States: v.States}
	}
	return ConditionDoc{Kind: ConditionKindNone}
}

func DecodeCondition(doc ConditionDoc) (Condition, error) {
	switch doc.Kind {
	case ConditionKindNone, "":
		return NoCondition{}, nil
	case ConditionKindMinQuantity:
		if doc.MinQuantity == nil {
			return nil, fmt.Errorf("%w: min_quantity is required", ErrInvalidPromotion)
		}
		return MinQuantityCondition{MinQuantity: *doc.MinQuantity}, nil
	case ConditionKindMinValue:
		if doc.MinValue == nil {
			return nil, fmt.Errorf("%w: min_value is required", ErrInvalidPromotion)
		}
		return MinValueCondition{MinValue: *doc.MinValue}, nil
	case ConditionKindRegion:
		states := make([]string, 0, len(doc.States))
		for _, uf := range doc.States {
			states = append(states, strings.ToUpper(strings.TrimSpace(uf)))
		}
		return RegionCondition{States: states}, nil
	default:
		return nil, fmt.Errorf("%w: unknown condition %q", ErrInvalidPromotion, doc.Kind)
	}
}
