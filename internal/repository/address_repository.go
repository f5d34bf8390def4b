package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/model"
)

// AddressRepository keeps at most one principal address per user. Every
// write that sets a principal first clears the current one in the same
// transaction; uq_addresses_user_principal backs this up.
type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	var addresses []model.Address
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("principal DESC, created_at ASC").
		Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *AddressRepository) GetAddress(ctx context.Context, userID, id uuid.UUID) (*model.Address, error) {
	var address model.Address
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&address).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *AddressRepository) CreateAddress(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.Principal {
			if err := clearPrincipal(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
}

func (r *AddressRepository) UpdateAddress(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.Principal {
			if err := clearPrincipal(tx, address.UserID, address.ID); err != nil {
				return err
			}
		}
		res := tx.Model(&model.Address{}).
			Where("id = ? AND user_id = ?", address.ID, address.UserID).
			Updates(map[string]interface{}{
				"type":       address.Type,
				"cep":        address.CEP,
				"street":     address.Street,
				"number":     address.Number,
				"complement": address.Complement,
				"district":   address.District,
				"city":       address.City,
				"state":      address.State,
				"principal":  address.Principal,
				"updated_at": address.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *AddressRepository) DeleteAddress(ctx context.Context, userID, id uuid.UUID, promoteID *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Address{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if promoteID == nil {
			return nil
		}
		return markPrincipal(tx, userID, *promoteID)
	})
}

func (r *AddressRepository) SetPrincipal(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearPrincipal(tx, userID, id); err != nil {
			return err
		}
		return markPrincipal(tx, userID, id)
	})
}

func clearPrincipal(tx *gorm.DB, userID, exceptID uuid.UUID) error {
	return tx.Model(&model.Address{}).
		Where("user_id = ? AND principal AND id <> ?", userID, exceptID).
		Update("principal", false).Error
}

func markPrincipal(tx *gorm.DB, userID, id uuid.UUID) error {
	res := tx.Model(&model.Address{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"principal": true, "updated_at": tx.NowFunc()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
