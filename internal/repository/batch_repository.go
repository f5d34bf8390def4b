package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/model"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) ListBatches(ctx context.Context, status model.BatchStatus) ([]model.Batch, error) {
	query := r.db.WithContext(ctx).Model(&model.Batch{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var batches []model.Batch
	if err := query.Order("created_at DESC, code ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *BatchRepository) GetBatch(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	var batch model.Batch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *BatchRepository) ListItems(ctx context.Context, batchID uuid.UUID) ([]model.LineItem, error) {
	var items []model.LineItem
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *BatchRepository) BatchCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	if err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM batches WHERE LOWER(code) = LOWER(?)
		)
	`, code).Scan(&exists).Error; err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BatchRepository) CreateBatch(ctx context.Context, batch *model.Batch, items []model.LineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(batch).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 200).Error
	})
}

// UpdateBatch writes the batch counters and status together with the pricing
// columns of the given items.
func (r *BatchRepository) UpdateBatch(ctx context.Context, batch *model.Batch, items []model.LineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Batch{}).
			Where("id = ?", batch.ID).
			Updates(map[string]interface{}{
				"status":      batch.Status,
				"item_count":  batch.ItemCount,
				"saved_count": batch.SavedCount,
				"updated_at":  batch.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		for i := range items {
			item := &items[i]
			res := tx.Model(&model.LineItem{}).
				Where("id = ? AND batch_id = ?", item.ID, batch.ID).
				Updates(map[string]interface{}{
					"margin":     nullable(item.Margin),
					"sale_value": item.SaleValue,
					"computed":   item.Computed,
					"saved":      item.Saved,
					"saved_at":   nullable(item.SavedAt),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// nullable turns a nil pointer into an untyped nil so the column is set to
// NULL.
func nullable[T any](value *T) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
