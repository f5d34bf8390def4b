package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/model"
)

// PromotionRepository stores promotions with their discount and condition
// in the rules column; the model hooks encode and decode it.
type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) ListPromotions(ctx context.Context, promotionType model.PromotionType) ([]model.Promotion, error) {
	query := r.db.WithContext(ctx).Model(&model.Promotion{})
	if promotionType != "" {
		query = query.Where("type = ?", promotionType)
	}
	var promotions []model.Promotion
	if err := query.Order("starts_at DESC, name ASC").Find(&promotions).Error; err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *PromotionRepository) GetPromotion(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	var promotion model.Promotion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&promotion).Error; err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *PromotionRepository) CouponCodeTaken(ctx context.Context, code string, exceptID uuid.UUID) (bool, error) {
	var taken bool
	if err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM promotions
			WHERE coupon_code <> '' AND UPPER(coupon_code) = UPPER(?) AND id <> ?
		)
	`, code, exceptID).Scan(&taken).Error; err != nil {
		return false, err
	}
	return taken, nil
}

func (r *PromotionRepository) CreatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return r.db.WithContext(ctx).Create(promotion).Error
}

func (r *PromotionRepository) UpdatePromotion(ctx context.Context, promotion *model.Promotion) error {
	return r.db.WithContext(ctx).Save(promotion).Error
}

func (r *PromotionRepository) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Promotion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
