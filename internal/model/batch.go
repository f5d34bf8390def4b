package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BatchStatus string

const (
	BatchStatusNotPriced       BatchStatus = "not_priced"
	BatchStatusPartiallyPriced BatchStatus = "partially_priced"
	BatchStatusFullyPriced     BatchStatus = "fully_priced"
	BatchStatusImported        BatchStatus = "imported"
)

var batchStatusRank = map[BatchStatus]int{
	BatchStatusNotPriced:       0,
	BatchStatusPartiallyPriced: 1,
	BatchStatusFullyPriced:     2,
	BatchStatusImported:        3,
}

func (s BatchStatus) Valid() bool {
	_, ok := batchStatusRank[s]
	return ok
}

// Label is the Portuguese name shown in exports.
func (s BatchStatus) Label() string {
	switch s {
	case BatchStatusNotPriced:
		return "Não precificado"
	case BatchStatusPartiallyPriced:
		return "Parcialmente precificado"
	case BatchStatusFullyPriced:
		return "Precificado"
	case BatchStatusImported:
		return "Importado"
	}
	return string(s)
}

type BatchKind string

const (
	BatchKindRental  BatchKind = "rental"
	BatchKindService BatchKind = "service"
	BatchKindProduct BatchKind = "product"
)

func (k BatchKind) Valid() bool {
	switch k {
	case BatchKindRental, BatchKindService, BatchKindProduct:
		return true
	}
	return false
}

func (k BatchKind) Label() string {
	switch k {
	case BatchKindRental:
		return "Locação"
	case BatchKindService:
		return "Serviço"
	case BatchKindProduct:
		return "Produto"
	}
	return string(k)
}

type SourceFormat string

const (
	SourceFormatXLSX SourceFormat = "xlsx"
	SourceFormatCSV  SourceFormat = "csv"
	SourceFormatNFe  SourceFormat = "nfe"
)

var (
	ErrInvalidTransition = errors.New("invalid batch status transition")
	ErrBatchImported     = errors.New("batch already imported")
)

// Batch is one imported data file (nota fiscal, spreadsheet) whose line items
// share a pricing status.
type Batch struct {
	ID           uuid.UUID       `gorm:"column:id;primaryKey" json:"id"`
	Code         string          `gorm:"column:code" json:"code"`
	Kind         BatchKind       `gorm:"column:kind" json:"kind"`
	Supplier     string          `gorm:"column:supplier" json:"supplier"`
	Description  string          `gorm:"column:description" json:"description"`
	SourceFile   string          `gorm:"column:source_file" json:"source_file"`
	SourceFormat SourceFormat    `gorm:"column:source_format" json:"source_format"`
	IssueDate    *time.Time      `gorm:"column:issue_date" json:"issue_date"`
	ImportDate   *time.Time      `gorm:"column:import_date" json:"import_date"`
	TotalValue   decimal.Decimal `gorm:"column:total_value" json:"total_value"`
	Status       BatchStatus     `gorm:"column:status" json:"status"`
	ItemCount    int             `gorm:"column:item_count" json:"item_count"`
	SavedCount   int             `gorm:"column:saved_count" json:"saved_count"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Batch) TableName() string {
	return "batches"
}

// Transition moves the batch forward. Skipping states is allowed, going back
// is not, and imported is final. Only a fully priced batch can be imported.
func (b *Batch) Transition(next BatchStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	if b.Status == BatchStatusImported {
		if next == BatchStatusImported {
			return nil
		}
		return ErrBatchImported
	}
	if next == BatchStatusImported && b.Status != BatchStatusFullyPriced {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	if batchStatusRank[next] < batchStatusRank[b.Status] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, next)
	}
	b.Status = next
	return nil
}

func (b *Batch) Editable() bool {
	return b.Status != BatchStatusImported
}

// Priceable reports whether margins may still be changed and recalculated.
func (b *Batch) Priceable() bool {
	return b.Status == BatchStatusNotPriced || b.Status == BatchStatusPartiallyPriced
}
