package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPromotion_TargetIsExclusive(t *testing.T) {
	p := Promotion{Name: "x", Type: PromotionTypeFreeShipping}
	p.SelectLinkedItem(uuid.New())
	p.SelectWholeCategory("Ferramentas")
	if p.LinkedItemID != nil || !p.ApplyWholeCategory {
		t.Fatalf("whole category must clear the link: %+v", p)
	}
	p.SelectLinkedItem(uuid.New())
	if p.ApplyWholeCategory || p.LinkedItemID == nil {
		t.Fatalf("linking must clear whole category: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	p.ApplyWholeCategory = true
	if err := p.Validate(); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("expected ErrInvalidPromotion, got %v", err)
	}
}

func TestPromotion_Apply(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	during := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	coupon := Promotion{
		Name:       "Cupom",
		Type:       PromotionTypeCoupon,
		CouponCode: "VERAO",
		StartsAt:   start,
		EndsAt:     &end,
		Active:     true,
		Discount:   FixedDiscount{Amount: d("30")},
		Condition:  RegionCondition{States: []string{"BA", "PE"}},
	}

	tests := []struct {
		name     string
		ctx      PurchaseContext
		now      time.Time
		eligible bool
		price    string
	}{
		{"matching coupon and region", PurchaseContext{UnitPrice: d("100"), CouponCode: "verao", State: "ba"}, during, true, "70"},
		{"fixed discount floors at zero", PurchaseContext{UnitPrice: d("20"), CouponCode: "VERAO", State: "PE"}, during, true, "0"},
		{"wrong coupon", PurchaseContext{UnitPrice: d("100"), CouponCode: "INVERNO", State: "BA"}, during, false, "100"},
		{"other region", PurchaseContext{UnitPrice: d("100"), CouponCode: "VERAO", State: "SP"}, during, false, "100"},
		{"before start", PurchaseContext{UnitPrice: d("100"), CouponCode: "VERAO", State: "BA"}, start.Add(-time.Hour), false, "100"},
		{"at end", PurchaseContext{UnitPrice: d("100"), CouponCode: "VERAO", State: "BA"}, end, false, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := coupon.Apply(tt.ctx, tt.now)
			if out.Eligible != tt.eligible {
				t.Fatalf("expected eligible=%v, got %+v", tt.eligible, out)
			}
			if !out.DiscountedPrice.Equal(d(tt.price)) {
				t.Fatalf("expected price %s, got %s", tt.price, out.DiscountedPrice)
			}
		})
	}

	t.Run("free shipping", func(t *testing.T) {
		p := Promotion{Type: PromotionTypeFreeShipping, StartsAt: start, Active: true, Condition: MinQuantityCondition{MinQuantity: 2}}
		out := p.Apply(PurchaseContext{UnitPrice: d("10"), Quantity: 2}, during)
		if !out.Eligible || !out.FreeShipping || !out.DiscountedPrice.Equal(d("10")) {
			t.Fatalf("unexpected outcome %+v", out)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		p := coupon
		p.Active = false
		if out := p.Apply(PurchaseContext{UnitPrice: d("100"), CouponCode: "VERAO", State: "BA"}, during); out.Eligible {
			t.Fatalf("inactive promotion must not apply")
		}
	})
}

func TestPromotion_RulesRoundTrip(t *testing.T) {
	p := Promotion{
		Discount:  PercentDiscount{Percent: d("12.5")},
		Condition: MinValueCondition{MinValue: d("300")},
	}
	if err := p.EncodeRules(); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := Promotion{Rules: p.Rules}
	if err := decoded.DecodeRules(); err != nil {
		t.Fatalf("decode: %v", err)
	}
	percent, ok := decoded.Discount.(PercentDiscount)
	if !ok || !percent.Percent.Equal(d("12.5")) {
		t.Fatalf("unexpected discount %#v", decoded.Discount)
	}
	if cond, ok := decoded.Condition.(MinValueCondition); !ok || !cond.MinValue.Equal(d("300")) {
		t.Fatalf("unexpected condition %#v", decoded.Condition)
	}

	empty := Promotion{}
	if err := empty.DecodeRules(); err != nil || empty.Discount != nil {
		t.Fatalf("empty rules must decode to no discount: %v", err)
	}
	if _, ok := empty.Condition.(NoCondition); !ok {
		t.Fatalf("empty rules must decode to no condition")
	}

	if _, err := DecodeCondition(ConditionDoc{Kind: "POR_CLIENTE"}); !errors.Is(err, ErrInvalidPromotion) {
		t.Fatalf("expected ErrInvalidPromotion, got %v", err)
	}
}

func TestAddress_NormalizeAndValidate(t *testing.T) {
	a := Address{Type: " Entrega ", CEP: "40.010-000", Street: " Rua Chile ", Number: "12", District: "Centro", City: "Salvador", State: "ba"}
	a.Normalize()
	if err := a.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if a.CEP != "40010000" || a.State != "BA" || a.Type != AddressTypeDelivery || a.Street != "Rua Chile" {
		t.Fatalf("unexpected normalized address %+v", a)
	}

	a.State = "ZZ"
	if err := a.Validate(); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
}
