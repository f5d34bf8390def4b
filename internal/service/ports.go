package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/model"
)

// Repositories report missing rows with gorm.ErrRecordNotFound.

type BatchRepository interface {
	ListBatches(ctx context.Context, status model.BatchStatus) ([]model.Batch, error)
	GetBatch(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	ListItems(ctx context.Context, batchID uuid.UUID) ([]model.LineItem, error)
	BatchCodeExists(ctx context.Context, code string) (bool, error)
	CreateBatch(ctx context.Context, batch *model.Batch, items []model.LineItem) error
	// UpdateBatch writes the batch row and the given items in one transaction.
	UpdateBatch(ctx context.Context, batch *model.Batch, items []model.LineItem) error
}

type CatalogRepository interface {
	ListCatalogItems(ctx context.Context, kind model.CatalogKind) ([]model.CatalogItem, error)
	GetCatalogItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error)
	CatalogCodeExists(ctx context.Context, code string) (bool, error)
	CreateCatalogItem(ctx context.Context, item *model.CatalogItem) error
}

type PricingRecordRepository interface {
	ListRecords(ctx context.Context, catalogItemID *uuid.UUID) ([]model.PricingRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*model.PricingRecord, error)
	// SaveRecord inserts or updates the record. A non-nil update is applied
	// to its catalog item in the same transaction.
	SaveRecord(ctx context.Context, record *model.PricingRecord, update *model.CatalogPricingUpdate) error
	DeleteRecord(ctx context.Context, id uuid.UUID, update *model.CatalogPricingUpdate) error
}

type PromotionRepository interface {
	ListPromotions(ctx context.Context, promotionType model.PromotionType) ([]model.Promotion, error)
	GetPromotion(ctx context.Context, id uuid.UUID) (*model.Promotion, error)
	CouponCodeTaken(ctx context.Context, code string, exceptID uuid.UUID) (bool, error)
	CreatePromotion(ctx context.Context, promotion *model.Promotion) error
	UpdatePromotion(ctx context.Context, promotion *model.Promotion) error
	DeletePromotion(ctx context.Context, id uuid.UUID) error
}

type AddressRepository interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	GetAddress(ctx context.Context, userID, id uuid.UUID) (*model.Address, error)
	// CreateAddress and UpdateAddress clear the user's other principal
	// address in the same transaction when address.Principal is set.
	CreateAddress(ctx context.Context, address *model.Address) error
	UpdateAddress(ctx context.Context, address *model.Address) error
	// DeleteAddress removes the address and, when promoteID is set, flags
	// that address as principal in the same transaction.
	DeleteAddress(ctx context.Context, userID, id uuid.UUID, promoteID *uuid.UUID) error
	// SetPrincipal clears the user's current principal and flags id, in one
	// transaction.
	SetPrincipal(ctx context.Context, userID, id uuid.UUID) error
}

// ReportGenerator renders a batch export (spreadsheet or PDF).
type ReportGenerator interface {
	Generate(report model.BatchReport) ([]byte, error)
}

func mapNotFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}

func requireWriter(principal model.Principal) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	return nil
}
