package service

//go:generate mockgen -source=pricing_service.go -destination=../http/mocks/mock_pricing_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
)

const (
	resourcePricingRecord = "pricing_record"
	resourceCatalogItem   = "catalog_item"
)

type PricingUseCase interface {
	Preview(ctx context.Context, input PreviewInput) (*model.PricingRecord, error)
	ListRecords(ctx context.Context, input ListRecordsInput) (listview.Page[model.PricingRecord], error)
	GetRecord(ctx context.Context, id uuid.UUID) (*model.PricingRecord, error)
	CurrentRecord(ctx context.Context, catalogItemID uuid.UUID) (*model.PricingRecord, error)
	CreateRecord(ctx context.Context, input RecordInput) (*model.PricingRecord, error)
	UpdateRecord(ctx context.Context, id uuid.UUID, input RecordInput) (*model.PricingRecord, error)
	DeleteRecord(ctx context.Context, id uuid.UUID, principal model.Principal) error
	ListCatalogItems(ctx context.Context, input ListCatalogInput) (listview.Page[model.CatalogItem], error)
	GetCatalogItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error)
	CreateCatalogItem(ctx context.Context, input CatalogItemInput) (*model.CatalogItem, error)
}

type PreviewInput struct {
	Formula        model.PricingFormula
	Input          pricing.Input
	ContractMonths int
}

type RecordInput struct {
	PreviewInput
	CatalogItemID *uuid.UUID
	Description   string
	Principal     model.Principal
}

type ListRecordsInput struct {
	CatalogItemID *uuid.UUID
	Query         listview.Query
}

type ListCatalogInput struct {
	Kind  model.CatalogKind
	Query listview.Query
}

type CatalogItemInput struct {
	Kind      model.CatalogKind
	Code      string
	Name      string
	Category  string
	Principal model.Principal
}

type PricingService struct {
	catalog CatalogRepository
	records PricingRecordRepository
	calc    pricing.Calculator
	events  events.Publisher
	log     zerolog.Logger
	now     func() time.Time
}

var _ PricingUseCase = (*PricingService)(nil)

func NewPricingService(catalog CatalogRepository, records PricingRecordRepository, calc pricing.Calculator, publisher events.Publisher, log zerolog.Logger) *PricingService {
	return &PricingService{
		catalog: catalog,
		records: records,
		calc:    calc,
		events:  publisher,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Preview runs the calculator without storing anything.
func (s *PricingService) Preview(_ context.Context, input PreviewInput) (*model.PricingRecord, error) {
	record := &model.PricingRecord{}
	if err := s.apply(record, input); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *PricingService) ListRecords(ctx context.Context, input ListRecordsInput) (listview.Page[model.PricingRecord], error) {
	records, err := s.records.ListRecords(ctx, input.CatalogItemID)
	if err != nil {
		return listview.Page[model.PricingRecord]{}, err
	}
	return listview.ProjectSorted(records, input.Query, recordSearchFields, newestFirst), nil
}

func recordSearchFields(r model.PricingRecord) []string {
	return []string{r.Description, string(r.Formula), string(r.PaymentMethod)}
}

func newestFirst(a, b model.PricingRecord) bool {
	return a.Newer(&b)
}

func (s *PricingService) GetRecord(ctx context.Context, id uuid.UUID) (*model.PricingRecord, error) {
	record, err := s.records.GetRecord(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "pricing record %s", id)
	}
	return record, nil
}

// CurrentRecord returns the most recently created record linked to the item.
func (s *PricingService) CurrentRecord(ctx context.Context, catalogItemID uuid.UUID) (*model.PricingRecord, error) {
	if _, err := s.GetCatalogItem(ctx, catalogItemID); err != nil {
		return nil, err
	}
	records, err := s.records.ListRecords(ctx, &catalogItemID)
	if err != nil {
		return nil, err
	}
	current := currentRecord(records)
	if current == nil {
		return nil, fmt.Errorf("%w: catalog item %s has no pricing record", ErrNotFound, catalogItemID)
	}
	return current, nil
}

func (s *PricingService) CreateRecord(ctx context.Context, input RecordInput) (*model.PricingRecord, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	now := s.now()
	record := &model.PricingRecord{
		ID:            uuid.New(),
		CatalogItemID: input.CatalogItemID,
		Description:   strings.TrimSpace(input.Description),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.apply(record, input.PreviewInput); err != nil {
		return nil, err
	}

	var update *model.CatalogPricingUpdate
	if record.CatalogItemID != nil {
		if _, err := s.GetCatalogItem(ctx, *record.CatalogItemID); err != nil {
			return nil, err
		}
		existing, err := s.records.ListRecords(ctx, record.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if current := currentRecord(append(existing, *record)); current.ID == record.ID {
			update = pricingUpdate(*record.CatalogItemID, current)
		}
	}

	if err := s.records.SaveRecord(ctx, record, update); err != nil {
		return nil, err
	}
	s.publishRecord(events.ActionCreate, record, update)
	return record, nil
}

// UpdateRecord recomputes the record in place. The catalog link cannot be
// changed; a record that is current re-applies its values to the item.
func (s *PricingService) UpdateRecord(ctx context.Context, id uuid.UUID, input RecordInput) (*model.PricingRecord, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.CatalogItemID != nil && (record.CatalogItemID == nil || *record.CatalogItemID != *input.CatalogItemID) {
		return nil, fmt.Errorf("%w: catalog_item_id cannot be changed", ErrInvalidInput)
	}

	updated := *record
	updated.Description = strings.TrimSpace(input.Description)
	updated.UpdatedAt = s.now()
	if err := s.apply(&updated, input.PreviewInput); err != nil {
		return nil, err
	}

	var update *model.CatalogPricingUpdate
	if updated.CatalogItemID != nil {
		records, err := s.records.ListRecords(ctx, updated.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if current := currentRecord(records); current != nil && current.ID == updated.ID {
			update = pricingUpdate(*updated.CatalogItemID, &updated)
		}
	}

	if err := s.records.SaveRecord(ctx, &updated, update); err != nil {
		return nil, err
	}
	s.publishRecord(events.ActionUpdate, &updated, update)
	return &updated, nil
}

// DeleteRecord removes the record. Deleting an item's current record
// promotes the next most recent one, or clears the item when none is left.
func (s *PricingService) DeleteRecord(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if err := requireWriter(principal); err != nil {
		return err
	}
	record, err := s.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	var update *model.CatalogPricingUpdate
	if record.CatalogItemID != nil {
		records, err := s.records.ListRecords(ctx, record.CatalogItemID)
		if err != nil {
			return err
		}
		if current := currentRecord(records); current != nil && current.ID == record.ID {
			remaining := make([]model.PricingRecord, 0, len(records))
			for _, r := range records {
				if r.ID != record.ID {
					remaining = append(remaining, r)
				}
			}
			update = pricingUpdate(*record.CatalogItemID, currentRecord(remaining))
		}
	}

	if err := s.records.DeleteRecord(ctx, id, update); err != nil {
		return mapNotFound(err, "pricing record %s", id)
	}
	if update != nil {
		event := s.log.Info().Str("catalog_item", update.ItemID.String()).Str("deleted_record", id.String())
		if update.Pricing == nil {
			event.Msg("catalog item pricing cleared")
		} else {
			event.Str("cost", update.Pricing.Cost.String()).Msg("previous pricing record promoted")
		}
	}
	s.publishRecord(events.ActionDelete, record, update)
	return nil
}

func (s *PricingService) ListCatalogItems(ctx context.Context, input ListCatalogInput) (listview.Page[model.CatalogItem], error) {
	if input.Kind != "" && !input.Kind.Valid() {
		return listview.Page[model.CatalogItem]{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, input.Kind)
	}
	items, err := s.catalog.ListCatalogItems(ctx, input.Kind)
	if err != nil {
		return listview.Page[model.CatalogItem]{}, err
	}
	return listview.Project(items, input.Query, func(item model.CatalogItem) []string {
		return []string{item.Code, item.Name, item.Category}
	}), nil
}

func (s *PricingService) GetCatalogItem(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	item, err := s.catalog.GetCatalogItem(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "catalog item %s", id)
	}
	return item, nil
}

func (s *PricingService) CreateCatalogItem(ctx context.Context, input CatalogItemInput) (*model.CatalogItem, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be product or equipment", ErrInvalidInput)
	}
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", ErrInvalidInput)
	}
	exists, err := s.catalog.CatalogCodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: catalog item %s already exists", ErrConflict, code)
	}

	now := s.now()
	item := &model.CatalogItem{
		ID:        uuid.New(),
		Kind:      input.Kind,
		Code:      code,
		Name:      name,
		Category:  strings.TrimSpace(input.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.catalog.CreateCatalogItem(ctx, item); err != nil {
		return nil, err
	}
	s.events.Publish(resourceCatalogItem, events.ActionCreate, *item)
	return item, nil
}

// apply copies the calculation inputs onto record and fills its outputs.
func (s *PricingService) apply(record *model.PricingRecord, input PreviewInput) error {
	in := input.Input
	record.Formula = input.Formula
	record.BaseCost = in.BaseCost
	record.Freight = in.Freight
	record.ExtraCosts = datatypes.JSONSlice[decimal.Decimal](append([]decimal.Decimal{}, in.ExtraCosts...))
	record.MarginPercent = in.MarginPercent
	record.PaymentMethod = in.PaymentMethod
	record.Installments = in.Installments
	if record.Installments < 1 {
		record.Installments = 1
	}

	var (
		res pricing.Result
		err error
	)
	switch input.Formula {
	case model.PricingFormulaProduct:
		res, err = s.calc.Product(in)
		record.ContractMonths = 0
		record.ContractValue = decimal.Zero
	case model.PricingFormulaRental:
		var rental pricing.RentalResult
		rental, err = s.calc.Rental(pricing.RentalInput{Input: in, ContractMonths: input.ContractMonths})
		res = rental.Result
		record.ContractMonths = rental.ContractMonths
		record.ContractValue = rental.ContractValue
	default:
		return fmt.Errorf("%w: formula must be rental or product", ErrInvalidInput)
	}
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidInput) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return err
	}

	record.TotalCost = res.TotalCost
	record.SaleValue = res.SaleValue
	record.GrossProfit = res.GrossProfit
	record.TotalFees = res.TotalFees
	record.NetProfit = res.NetProfit
	record.ProfitPercent = res.ProfitPercent
	record.InstallmentValue = res.InstallmentValue
	return nil
}

func (s *PricingService) publishRecord(action events.Action, record *model.PricingRecord, update *model.CatalogPricingUpdate) {
	s.events.Publish(resourcePricingRecord, action, *record)
	if update != nil {
		s.events.Publish(resourceCatalogItem, events.ActionUpdate, update)
	}
}

func currentRecord(records []model.PricingRecord) *model.PricingRecord {
	var current *model.PricingRecord
	for i := range records {
		if current == nil || records[i].Newer(current) {
			current = &records[i]
		}
	}
	return current
}

func pricingUpdate(itemID uuid.UUID, record *model.PricingRecord) *model.CatalogPricingUpdate {
	update := &model.CatalogPricingUpdate{ItemID: itemID}
	if record != nil {
		snapshot := record.Snapshot()
		update.Pricing = &snapshot
	}
	return update
}
