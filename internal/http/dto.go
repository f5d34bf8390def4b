package http

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
	"github.com/meuprecocerto/precificacao/internal/service"
)

type listResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func newListResponse[T any](page listview.Page[T]) listResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

type batchResponse struct {
	Batch model.Batch      `json:"batch"`
	Items []model.LineItem `json:"items"`
}

type itemResponse struct {
	Batch model.Batch    `json:"batch"`
	Item  model.LineItem `json:"item"`
}

type marginRequest struct {
	Margin *decimal.Decimal `json:"margin"`
}

type calculateRequest struct {
	DefaultMargin *decimal.Decimal `json:"default_margin"`
}

type commitRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type pricingRequest struct {
	BaseCost       decimal.Decimal   `json:"base_cost"`
	Freight        decimal.Decimal   `json:"freight"`
	ExtraCosts     []decimal.Decimal `json:"extra_costs"`
	MarginPercent  decimal.Decimal   `json:"margin_percent"`
	PaymentMethod  string            `json:"payment_method"`
	Installments   int               `json:"installments"`
	ContractMonths int               `json:"contract_months"`
}

func (r pricingRequest) preview(formula model.PricingFormula) (service.PreviewInput, error) {
	method, err := pricing.ParsePaymentMethod(r.PaymentMethod)
	if err != nil {
		return service.PreviewInput{}, err
	}
	return service.PreviewInput{
		Formula: formula,
		Input: pricing.Input{
			BaseCost:      r.BaseCost,
			Freight:       r.Freight,
			ExtraCosts:    r.ExtraCosts,
			MarginPercent: r.MarginPercent,
			PaymentMethod: method,
			Installments:  r.Installments,
		},
		ContractMonths: r.ContractMonths,
	}, nil
}

type recordRequest struct {
	pricingRequest
	Formula       string     `json:"formula" binding:"required"`
	CatalogItemID *uuid.UUID `json:"catalog_item_id"`
	Description   string     `json:"description"`
}

func (r recordRequest) input(principal model.Principal) (service.RecordInput, error) {
	preview, err := r.preview(model.PricingFormula(strings.ToLower(strings.TrimSpace(r.Formula))))
	if err != nil {
		return service.RecordInput{}, err
	}
	return service.RecordInput{
		PreviewInput:  preview,
		CatalogItemID: r.CatalogItemID,
		Description:   r.Description,
		Principal:     principal,
	}, nil
}

type catalogItemRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

type promotionRequest struct {
	Name               string              `json:"name" binding:"required"`
	Description        string              `json:"description"`
	Type               string              `json:"type" binding:"required"`
	Category           string              `json:"category"`
	LinkedItemID       *uuid.UUID          `json:"linked_item_id"`
	ApplyWholeCategory bool                `json:"apply_whole_category"`
	CouponCode         string              `json:"coupon_code"`
	StartsAt           *time.Time          `json:"starts_at"`
	EndsAt             *time.Time          `json:"ends_at"`
	Active             *bool               `json:"active"`
	Discount           *model.DiscountDoc  `json:"discount"`
	Condition          *model.ConditionDoc `json:"condition"`
}

func (r promotionRequest) input(principal model.Principal) service.PromotionInput {
	input := service.PromotionInput{
		Name:               r.Name,
		Description:        r.Description,
		Type:               model.PromotionType(r.Type),
		Category:           r.Category,
		LinkedItemID:       r.LinkedItemID,
		ApplyWholeCategory: r.ApplyWholeCategory,
		CouponCode:         r.CouponCode,
		EndsAt:             r.EndsAt,
		Active:             true,
		Discount:           r.Discount,
		Condition:          r.Condition,
		Principal:          principal,
	}
	if r.StartsAt != nil {
		input.StartsAt = *r.StartsAt
	}
	if r.Active != nil {
		input.Active = *r.Active
	}
	return input
}

type evaluateRequest struct {
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	OrderValue decimal.Decimal `json:"order_value"`
	State      string          `json:"state"`
	CouponCode string          `json:"coupon_code"`
}

type addressRequest struct {
	Type       string `json:"tipo" binding:"required"`
	CEP        string `json:"cep" binding:"required"`
	Street     string `json:"logradouro" binding:"required"`
	Number     string `json:"numero" binding:"required"`
	Complement string `json:"complemento"`
	District   string `json:"bairro" binding:"required"`
	City       string `json:"cidade" binding:"required"`
	State      string `json:"estado" binding:"required"`
	Principal  bool   `json:"principal"`
}

func (r addressRequest) input(user model.Principal) service.AddressInput {
	return service.AddressInput{
		Type:       model.AddressType(r.Type),
		CEP:        r.CEP,
		Street:     r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.District,
		City:       r.City,
		State:      r.State,
		Principal:  r.Principal,
		User:       user,
	}
}
