package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCatalogItems(ctx context.Context, kind model.CatalogKind) ([]model.CatalogItem, error) {
	query := r.db.WithContext(ctx).Model(&model.CatalogItem{})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	var items []model.CatalogItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepository) GetCatalogItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	var item model.CatalogItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) CatalogCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM catalog_items WHERE LOWER(code) = LOWER(?)
		)
	`, code).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

func (r *CatalogRepository) CreateCatalogItem(ctx context.Context, item *model.CatalogItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

type PricingRecordRepository struct {
	db *gorm.DB
}

func NewPricingRecordRepository(db *gorm.DB) *PricingRecordRepository {
	return &PricingRecordRepository{db: db}
}

func (r *PricingRecordRepository) ListRecords(ctx context.Context, catalogItemID *uuid.UUID) ([]model.PricingRecord, error) {
	query := r.db.WithContext(ctx).Model(&model.PricingRecord{})
	if catalogItemID != nil {
		query = query.Where("catalog_item_id = ?", *catalogItemID)
	}
	var records []model.PricingRecord
	if err := query.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PricingRecordRepository) GetRecord(ctx context.Context, id uuid.UUID) (*model.PricingRecord, error) {
	var record model.PricingRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PricingRecordRepository) SaveRecord(ctx context.Context, record *model.PricingRecord, update *model.CatalogPricingUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return err
		}
		return applyCatalogPricing(tx, update)
	})
}

func (r *PricingRecordRepository) DeleteRecord(ctx context.Context, id uuid.UUID, update *model.CatalogPricingUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&model.PricingRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return applyCatalogPricing(tx, update)
	})
}

func applyCatalogPricing(tx *gorm.DB, update *model.CatalogPricingUpdate) error {
	if update == nil {
		return nil
	}
	values := map[string]interface{}{
		"current_cost":       0,
		"current_sale_value": 0,
		"priced_at":          nil,
		"updated_at":         tx.NowFunc(),
	}
	if p := update.Pricing; p != nil {
		values["current_cost"] = p.Cost
		values["current_sale_value"] = p.SaleValue
		values["priced_at"] = nullable(p.PricedAt)
	}
	res := tx.Model(&model.CatalogItem{}).Where("id = ?", update.ItemID).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
