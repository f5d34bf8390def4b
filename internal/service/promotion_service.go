package service

//go:generate mockgen -source=promotion_service.go -destination=../http/mocks/mock_promotion_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
)

const resourcePromotion = "promotion"

type PromotionUseCase interface {
	List(ctx context.Context, input ListPromotionsInput) (listview.Page[model.Promotion], error)
	Get(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	Create(ctx context.Context, input PromotionInput) (*model.Promotion, error)
	Update(ctx context.Context, id uuid.UUID, input PromotionInput) (*model.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error
	Evaluate(ctx context.Context, id uuid.UUID, purchase model.PurchaseContext) (*model.PromotionOutcome, error)
}

type ListPromotionsInput struct {
	Type  model.PromotionType
	Query listview.Query
}

// PromotionInput carries the variant payloads in their tagged form. A nil
// Condition means no condition.
type PromotionInput struct {
	Name               string
	Description        string
	Type               model.PromotionType
	Category           string
	LinkedItemID       *uuid.UUID
	ApplyWholeCategory bool
	CouponCode         string
	StartsAt           time.Time
	EndsAt             *time.Time
	Active             bool
	Discount           *model.DiscountDoc
	Condition          *model.ConditionDoc
	Principal          model.Principal
}

type PromotionService struct {
	repo    PromotionRepository
	catalog CatalogRepository
	events  events.Publisher
	log     zerolog.Logger
	now     func() time.Time
}

var _ PromotionUseCase = (*PromotionService)(nil)

func NewPromotionService(repo PromotionRepository, catalog CatalogRepository, publisher events.Publisher, log zerolog.Logger) *PromotionService {
	return &PromotionService{
		repo:    repo,
		catalog: catalog,
		events:  publisher,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *PromotionService) List(ctx context.Context, input ListPromotionsInput) (listview.Page[model.Promotion], error) {
	if input.Type != "" && !validPromotionType(input.Type) {
		return listview.Page[model.Promotion]{}, fmt.Errorf("%w: unknown promotion type %q", ErrInvalidInput, input.Type)
	}
	promotions, err := s.repo.ListPromotions(ctx, input.Type)
	if err != nil {
		return listview.Page[model.Promotion]{}, err
	}
	return listview.Project(promotions, input.Query, func(p model.Promotion) []string {
		return []string{p.Name, p.Description, p.Category, p.CouponCode, string(p.Type)}
	}), nil
}

func (s *PromotionService) Get(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	promotion, err := s.repo.GetPromotion(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "promotion %s", id)
	}
	return promotion, nil
}

func (s *PromotionService) Create(ctx context.Context, input PromotionInput) (*model.Promotion, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	now := s.now()
	promotion := &model.Promotion{ID: uuid.New(), CreatedAt: now}
	if err := s.build(ctx, promotion, input); err != nil {
		return nil, err
	}
	promotion.UpdatedAt = now

	if err := s.repo.CreatePromotion(ctx, promotion); err != nil {
		return nil, err
	}
	s.log.Info().Str("promotion", promotion.ID.String()).Str("type", string(promotion.Type)).Msg("promotion created")
	s.events.Publish(resourcePromotion, events.ActionCreate, *promotion)
	return promotion, nil
}

// Update replaces every field of the promotion, keeping its id and creation
// time.
func (s *PromotionService) Update(ctx context.Context, id uuid.UUID, input PromotionInput) (*model.Promotion, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	promotion := &model.Promotion{ID: existing.ID, CreatedAt: existing.CreatedAt}
	if err := s.build(ctx, promotion, input); err != nil {
		return nil, err
	}
	promotion.UpdatedAt = s.now()

	if err := s.repo.UpdatePromotion(ctx, promotion); err != nil {
		return nil, err
	}
	s.events.Publish(resourcePromotion, events.ActionUpdate, *promotion)
	return promotion, nil
}

func (s *PromotionService) Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if err := requireWriter(principal); err != nil {
		return err
	}
	promotion, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePromotion(ctx, id); err != nil {
		return err
	}
	s.events.Publish(resourcePromotion, events.ActionDelete, *promotion)
	return nil
}

// Evaluate checks a purchase against the promotion at the current time.
// OrderValue defaults to unit price times quantity.
func (s *PromotionService) Evaluate(ctx context.Context, id uuid.UUID, purchase model.PurchaseContext) (*model.PromotionOutcome, error) {
	if purchase.UnitPrice.IsNegative() || purchase.Quantity < 0 || purchase.OrderValue.IsNegative() {
		return nil, fmt.Errorf("%w: purchase values must not be negative", ErrInvalidInput)
	}
	promotion, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase.OrderValue.IsZero() {
		purchase.OrderValue = purchase.UnitPrice.Mul(decimal.NewFromInt(int64(purchase.Quantity)))
	}
	outcome := promotion.Apply(purchase, s.now())
	return &outcome, nil
}

// build fills promotion from input and validates the result.
func (s *PromotionService) build(ctx context.Context, promotion *model.Promotion, input PromotionInput) error {
	promotion.Name = strings.TrimSpace(input.Name)
	promotion.Description = strings.TrimSpace(input.Description)
	promotion.Type = model.PromotionType(strings.ToUpper(strings.TrimSpace(string(input.Type))))
	promotion.CouponCode = strings.ToUpper(strings.TrimSpace(input.CouponCode))
	promotion.StartsAt = input.StartsAt
	promotion.EndsAt = input.EndsAt
	promotion.Active = input.Active
	if promotion.StartsAt.IsZero() {
		promotion.StartsAt = s.now()
	}

	promotion.Category = strings.TrimSpace(input.Category)
	switch {
	case input.ApplyWholeCategory:
		promotion.SelectWholeCategory(input.Category)
	case input.LinkedItemID != nil:
		if _, err := s.catalog.GetCatalogItem(ctx, *input.LinkedItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: linked item %s does not exist", ErrInvalidInput, *input.LinkedItemID)
			}
			return err
		}
		promotion.SelectLinkedItem(*input.LinkedItemID)
	}

	promotion.Discount = nil
	if input.Discount != nil {
		discount, err := model.DecodeDiscount(*input.Discount)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		promotion.Discount = discount
	}
	promotion.Condition = model.NoCondition{}
	if input.Condition != nil {
		condition, err := model.DecodeCondition(*input.Condition)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		promotion.Condition = condition
	}

	if err := promotion.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if promotion.CouponCode != "" {
		taken, err := s.repo.CouponCodeTaken(ctx, promotion.CouponCode, promotion.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: coupon %s is already in use", ErrConflict, promotion.CouponCode)
		}
	}
	return promotion.EncodeRules()
}

func validPromotionType(t model.PromotionType) bool {
	switch t {
	case model.PromotionTypeDiscount, model.PromotionTypeFreeShipping, model.PromotionTypeCoupon:
		return true
	}
	return false
}
