package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
)

var (
	operator = model.Principal{UserID: uuid.New(), Role: model.RoleOperator}
	viewer   = model.Principal{UserID: uuid.New(), Role: model.RoleViewer}
	errDB    = errors.New("database unavailable")
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(resource string, action events.Action, data interface{}) {
	p.events = append(p.events, events.Event{Resource: resource, Action: action, Data: data})
}

func (p *recordingPublisher) count(resource string) int {
	n := 0
	for _, e := range p.events {
		if e.Resource == resource {
			n++
		}
	}
	return n
}

type fakeGenerator struct {
	reports []model.BatchReport
}

func (g *fakeGenerator) Generate(report model.BatchReport) ([]byte, error) {
	g.reports = append(g.reports, report)
	return []byte("report:" + report.Batch.Code), nil
}

type fakeBatchRepo struct {
	batches   map[uuid.UUID]model.Batch
	items     map[uuid.UUID][]model.LineItem
	failWrite error
	writes    int
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{
		batches: make(map[uuid.UUID]model.Batch),
		items:   make(map[uuid.UUID][]model.LineItem),
	}
}

func (r *fakeBatchRepo) ListBatches(_ context.Context, status model.BatchStatus) ([]model.Batch, error) {
	result := make([]model.Batch, 0, len(r.batches))
	for _, b := range r.batches {
		if status == "" || b.Status == status {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeBatchRepo) GetBatch(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *fakeBatchRepo) ListItems(_ context.Context, batchID uuid.UUID) ([]model.LineItem, error) {
	stored := r.items[batchID]
	result := make([]model.LineItem, len(stored))
	copy(result, stored)
	return result, nil
}

func (r *fakeBatchRepo) BatchCodeExists(_ context.Context, code string) (bool, error) {
	for _, b := range r.batches {
		if strings.EqualFold(b.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBatchRepo) CreateBatch(_ context.Context, batch *model.Batch, items []model.LineItem) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.writes++
	r.batches[batch.ID] = *batch
	r.items[batch.ID] = append([]model.LineItem(nil), items...)
	return nil
}

func (r *fakeBatchRepo) UpdateBatch(_ context.Context, batch *model.Batch, items []model.LineItem) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.writes++
	r.batches[batch.ID] = *batch
	stored := r.items[batch.ID]
	for _, item := range items {
		for i := range stored {
			if stored[i].ID == item.ID {
				stored[i] = item
			}
		}
	}
	return nil
}

func (r *fakeBatchRepo) seed(kind model.BatchKind, status model.BatchStatus, items ...model.LineItem) model.Batch {
	batch := model.Batch{
		ID:        uuid.New(),
		Code:      "NF-" + uuid.NewString()[:8],
		Kind:      kind,
		Status:    status,
		CreatedAt: time.Now(),
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].BatchID = batch.ID
		items[i].Position = i
	}
	refreshCounts(&batch, items)
	r.batches[batch.ID] = batch
	r.items[batch.ID] = items
	return batch
}

func productItem(code, cost string, margin *decimal.Decimal) model.LineItem {
	return model.LineItem{Code: code, Description: "Item " + code, Quantity: 1, AcquisitionValue: dec(cost), Margin: margin}
}

func newBatchService(repo BatchRepository) (*BatchService, *recordingPublisher, *fakeGenerator) {
	publisher := &recordingPublisher{}
	gen := &fakeGenerator{}
	svc := NewBatchService(repo, pricing.NewCalculator(pricing.DefaultFeeTable(), 12), gen, gen, publisher, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, publisher, gen
}

// fakePricingRepo backs both the catalog and the pricing record ports.
type fakePricingRepo struct {
	items     map[uuid.UUID]model.CatalogItem
	records   map[uuid.UUID]model.PricingRecord
	failWrite error
}

func newFakePricingRepo() *fakePricingRepo {
	return &fakePricingRepo{
		items:   make(map[uuid.UUID]model.CatalogItem),
		records: make(map[uuid.UUID]model.PricingRecord),
	}
}

func (r *fakePricingRepo) ListCatalogItems(_ context.Context, kind model.CatalogKind) ([]model.CatalogItem, error) {
	result := make([]model.CatalogItem, 0, len(r.items))
	for _, item := range r.items {
		if kind == "" || item.Kind == kind {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (r *fakePricingRepo) GetCatalogItem(_ context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *fakePricingRepo) CatalogCodeExists(_ context.Context, code string) (bool, error) {
	for _, item := range r.items {
		if strings.EqualFold(item.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePricingRepo) CreateCatalogItem(_ context.Context, item *model.CatalogItem) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakePricingRepo) ListRecords(_ context.Context, catalogItemID *uuid.UUID) ([]model.PricingRecord, error) {
	result := make([]model.PricingRecord, 0, len(r.records))
	for _, record := range r.records {
		if catalogItemID == nil || (record.CatalogItemID != nil && *record.CatalogItemID == *catalogItemID) {
			result = append(result, record)
		}
	}
	return result, nil
}

func (r *fakePricingRepo) GetRecord(_ context.Context, id uuid.UUID) (*model.PricingRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &record, nil
}

func (r *fakePricingRepo) SaveRecord(_ context.Context, record *model.PricingRecord, update *model.CatalogPricingUpdate) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.records[record.ID] = *record
	r.applyUpdate(update)
	return nil
}

func (r *fakePricingRepo) DeleteRecord(_ context.Context, id uuid.UUID, update *model.CatalogPricingUpdate) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	delete(r.records, id)
	r.applyUpdate(update)
	return nil
}

func (r *fakePricingRepo) applyUpdate(update *model.CatalogPricingUpdate) {
	if update == nil {
		return
	}
	item := r.items[update.ItemID]
	if update.Pricing == nil {
		item.CurrentCost = decimal.Zero
		item.CurrentSaleValue = decimal.Zero
		item.PricedAt = nil
	} else {
		item.CurrentCost = update.Pricing.Cost
		item.CurrentSaleValue = update.Pricing.SaleValue
		item.PricedAt = update.Pricing.PricedAt
	}
	r.items[update.ItemID] = item
}

// tickingClock advances one minute per call so records get distinct
// creation times.
func tickingClock() func() time.Time {
	current := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newPricingService(repo *fakePricingRepo) (*PricingService, *recordingPublisher) {
	publisher := &recordingPublisher{}
	svc := NewPricingService(repo, repo, pricing.NewCalculator(pricing.DefaultFeeTable(), 12), publisher, zerolog.Nop())
	svc.now = tickingClock()
	return svc, publisher
}

type fakePromotionRepo struct {
	promotions map[uuid.UUID]model.Promotion
}

func newFakePromotionRepo() *fakePromotionRepo {
	return &fakePromotionRepo{promotions: make(map[uuid.UUID]model.Promotion)}
}

func (r *fakePromotionRepo) ListPromotions(_ context.Context, promotionType model.PromotionType) ([]model.Promotion, error) {
	result := make([]model.Promotion, 0, len(r.promotions))
	for _, p := range r.promotions {
		if promotionType == "" || p.Type == promotionType {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakePromotionRepo) GetPromotion(_ context.Context, id uuid.UUID) (*model.Promotion, error) {
	p, ok := r.promotions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// Round-trip the rules the way a database read would.
	if err := p.DecodeRules(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *fakePromotionRepo) CouponCodeTaken(_ context.Context, code string, exceptID uuid.UUID) (bool, error) {
	for _, p := range r.promotions {
		if p.ID != exceptID && strings.EqualFold(p.CouponCode, code) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePromotionRepo) CreatePromotion(_ context.Context, promotion *model.Promotion) error {
	r.promotions[promotion.ID] = *promotion
	return nil
}

func (r *fakePromotionRepo) UpdatePromotion(_ context.Context, promotion *model.Promotion) error {
	r.promotions[promotion.ID] = *promotion
	return nil
}

func (r *fakePromotionRepo) DeletePromotion(_ context.Context, id uuid.UUID) error {
	delete(r.promotions, id)
	return nil
}

type fakeAddressRepo struct {
	addresses map[uuid.UUID]model.Address
	failWrite error
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uuid.UUID]model.Address)}
}

func (r *fakeAddressRepo) ListAddresses(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	var result []model.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeAddressRepo) GetAddress(_ context.Context, userID, id uuid.UUID) (*model.Address, error) {
	a, ok := r.addresses[id]
	if !ok || a.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r *fakeAddressRepo) CreateAddress(_ context.Context, address *model.Address) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	if address.Principal {
		r.clearPrincipal(address.UserID)
	}
	r.addresses[address.ID] = *address
	return nil
}

func (r *fakeAddressRepo) UpdateAddress(_ context.Context, address *model.Address) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	if address.Principal {
		r.clearPrincipal(address.UserID)
	}
	r.addresses[address.ID] = *address
	return nil
}

func (r *fakeAddressRepo) DeleteAddress(_ context.Context, userID, id uuid.UUID, promoteID *uuid.UUID) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	delete(r.addresses, id)
	if promoteID != nil {
		return r.SetPrincipal(context.Background(), userID, *promoteID)
	}
	return nil
}

func (r *fakeAddressRepo) SetPrincipal(_ context.Context, userID, id uuid.UUID) error {
	if r.failWrite != nil {
		return r.failWrite
	}
	r.clearPrincipal(userID)
	a := r.addresses[id]
	a.Principal = true
	r.addresses[id] = a
	return nil
}

func (r *fakeAddressRepo) clearPrincipal(userID uuid.UUID) {
	for id, a := range r.addresses {
		if a.UserID == userID && a.Principal {
			a.Principal = false
			r.addresses[id] = a
		}
	}
}

func (r *fakeAddressRepo) principals(userID uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	for _, a := range r.addresses {
		if a.UserID == userID && a.Principal {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
