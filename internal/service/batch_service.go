package service

//go:generate mockgen -source=batch_service.go -destination=../http/mocks/mock_batch_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/events"
	"github.com/meuprecocerto/precificacao/internal/importer"
	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
)

const (
	resourceBatch    = "batch"
	resourceLineItem = "line_item"
)

type CommitMode string

const (
	CommitModeAll     CommitMode = "all"
	CommitModePartial CommitMode = "partial"
)

func ParseCommitMode(raw string) (CommitMode, error) {
	switch CommitMode(strings.ToLower(strings.TrimSpace(raw))) {
	case CommitModeAll:
		return CommitModeAll, nil
	case CommitModePartial:
		return CommitModePartial, nil
	}
	return "", fmt.Errorf("%w: mode must be all or partial", ErrInvalidInput)
}

type BatchUseCase interface {
	ListBatches(ctx context.Context, input ListBatchesInput) (listview.Page[model.Batch], error)
	GetBatch(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	ListItems(ctx context.Context, batchID uuid.UUID, query listview.Query) (listview.Page[model.LineItem], error)
	Import(ctx context.Context, input ImportInput) (*BatchResult, error)
	UpdateMargin(ctx context.Context, input ItemInput) (*model.LineItem, error)
	CalculateItem(ctx context.Context, input ItemInput) (*model.LineItem, error)
	SaveItem(ctx context.Context, input ItemInput) (*ItemResult, error)
	CalculateAll(ctx context.Context, input CalculateAllInput) (*BatchResult, error)
	Commit(ctx context.Context, input CommitInput) (*BatchResult, error)
	MarkImported(ctx context.Context, input BatchInput) (*model.Batch, error)
	ExportXLSX(ctx context.Context, batchID uuid.UUID) (*ExportResult, error)
	ExportPDF(ctx context.Context, batchID uuid.UUID) (*ExportResult, error)
}

type ListBatchesInput struct {
	Status model.BatchStatus
	Query  listview.Query
}

type ImportInput struct {
	Kind        model.BatchKind
	Code        string
	Supplier    string
	Description string
	IssueDate   *time.Time
	FileName    string
	Content     []byte
	Principal   model.Principal
}

// ItemInput addresses one line item. Margin is only read by UpdateMargin
// and CalculateItem; nil means "unset" for the former and "keep" for the
// latter.
type ItemInput struct {
	BatchID   uuid.UUID
	Code      string
	Margin    *decimal.Decimal
	Principal model.Principal
}

type CalculateAllInput struct {
	BatchID       uuid.UUID
	DefaultMargin *decimal.Decimal
	Principal     model.Principal
}

type CommitInput struct {
	BatchID   uuid.UUID
	Mode      CommitMode
	Principal model.Principal
}

type BatchInput struct {
	BatchID   uuid.UUID
	Principal model.Principal
}

type BatchResult struct {
	Batch model.Batch
	Items []model.LineItem
}

type ItemResult struct {
	Batch model.Batch
	Item  model.LineItem
}

type ExportResult struct {
	FileName string
	Content  []byte
}

type BatchService struct {
	repo   BatchRepository
	calc   pricing.Calculator
	excel  ReportGenerator
	pdf    ReportGenerator
	events events.Publisher
	log    zerolog.Logger
	now    func() time.Time
}

var _ BatchUseCase = (*BatchService)(nil)

func NewBatchService(repo BatchRepository, calc pricing.Calculator, excel, pdf ReportGenerator, publisher events.Publisher, log zerolog.Logger) *BatchService {
	return &BatchService{
		repo:   repo,
		calc:   calc,
		excel:  excel,
		pdf:    pdf,
		events: publisher,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *BatchService) ListBatches(ctx context.Context, input ListBatchesInput) (listview.Page[model.Batch], error) {
	if input.Status != "" && !input.Status.Valid() {
		return listview.Page[model.Batch]{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, input.Status)
	}
	batches, err := s.repo.ListBatches(ctx, input.Status)
	if err != nil {
		return listview.Page[model.Batch]{}, err
	}
	return listview.Project(batches, input.Query, batchSearchFields), nil
}

func batchSearchFields(b model.Batch) []string {
	return []string{b.Code, b.Supplier, b.Description, b.Kind.Label(), b.Status.Label()}
}

func (s *BatchService) GetBatch(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	batch, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "batch %s", id)
	}
	return batch, nil
}

func (s *BatchService) ListItems(ctx context.Context, batchID uuid.UUID, query listview.Query) (listview.Page[model.LineItem], error) {
	_, items, err := s.load(ctx, batchID)
	if err != nil {
		return listview.Page[model.LineItem]{}, err
	}
	return listview.ProjectSorted(items, query, itemSearchFields, byPosition), nil
}

func itemSearchFields(li model.LineItem) []string {
	return []string{li.Code, li.Description}
}

func byPosition(a, b model.LineItem) bool {
	return a.Position < b.Position
}

func (s *BatchService) Import(ctx context.Context, input ImportInput) (*BatchResult, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("%w: kind must be rental, service or product", ErrInvalidInput)
	}
	if len(input.Content) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	doc, err := importer.Parse(input.FileName, input.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	code := firstNonEmpty(input.Code, doc.Code, strings.TrimSuffix(filepath.Base(input.FileName), filepath.Ext(input.FileName)))
	if code == "" || code == "." {
		return nil, fmt.Errorf("%w: batch code is required", ErrInvalidInput)
	}
	exists, err := s.repo.BatchCodeExists(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: batch %s already exists", ErrConflict, code)
	}

	now := s.now()
	batch := model.Batch{
		ID:           uuid.New(),
		Code:         code,
		Kind:         input.Kind,
		Supplier:     firstNonEmpty(input.Supplier, doc.Supplier),
		Description:  strings.TrimSpace(input.Description),
		SourceFile:   filepath.Base(input.FileName),
		SourceFormat: doc.Format,
		IssueDate:    input.IssueDate,
		ImportDate:   &now,
		Status:       model.BatchStatusNotPriced,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if batch.IssueDate == nil {
		batch.IssueDate = doc.IssueDate
	}

	perr := &importer.ParseError{}
	items := make([]model.LineItem, 0, len(doc.Items))
	total := decimal.Zero
	for i, row := range doc.Items {
		item := model.LineItem{
			ID:               uuid.New(),
			BatchID:          batch.ID,
			Position:         i,
			Code:             row.Code,
			Description:      row.Description,
			Quantity:         row.Quantity,
			AcquisitionValue: row.AcquisitionValue,
			Freight:          row.Freight,
			ContractDuration: row.ContractDuration,
			Margin:           row.Margin,
		}
		if err := item.Validate(batch.Kind); err != nil {
			perr.Rows = append(perr.Rows, importer.RowError{Row: row.Row, Message: err.Error()})
			continue
		}
		total = total.Add(item.TotalCost())
		items = append(items, item)
	}
	if len(perr.Rows) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, perr)
	}

	batch.TotalValue = total.Round(2)
	if doc.TotalValue != nil {
		batch.TotalValue = *doc.TotalValue
	}
	refreshCounts(&batch, items)

	if err := s.repo.CreateBatch(ctx, &batch, items); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("batch", batch.Code).
		Str("kind", string(batch.Kind)).
		Str("format", string(batch.SourceFormat)).
		Int("items", len(items)).
		Msg("batch imported from file")
	s.events.Publish(resourceBatch, events.ActionCreate, batch)
	return &BatchResult{Batch: batch, Items: items}, nil
}

func (s *BatchService) UpdateMargin(ctx context.Context, input ItemInput) (*model.LineItem, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	batch, items, err := s.load(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(batch); err != nil {
		return nil, err
	}
	item, err := findItem(items, input.Code)
	if err != nil {
		return nil, err
	}
	if item.Saved {
		return nil, fmt.Errorf("%w: item %s is saved and cannot be edited", ErrPreconditionFailed, item.Code)
	}
	if input.Margin != nil {
		if err := model.ValidateMargin(*input.Margin); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	item.SetMargin(input.Margin)
	if err := s.persist(ctx, batch, []model.LineItem{*item}); err != nil {
		return nil, err
	}
	s.events.Publish(resourceLineItem, events.ActionUpdate, *item)
	return item, nil
}

func (s *BatchService) CalculateItem(ctx context.Context, input ItemInput) (*model.LineItem, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	batch, items, err := s.load(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(batch); err != nil {
		return nil, err
	}
	item, err := findItem(items, input.Code)
	if err != nil {
		return nil, err
	}
	if item.Saved {
		return nil, fmt.Errorf("%w: item %s is saved and cannot be recalculated", ErrPreconditionFailed, item.Code)
	}
	if input.Margin != nil {
		if err := model.ValidateMargin(*input.Margin); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		item.SetMargin(input.Margin)
	}
	if err := s.calculate(item, batch.Kind); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, batch, []model.LineItem{*item}); err != nil {
		return nil, err
	}
	s.events.Publish(resourceLineItem, events.ActionUpdate, *item)
	return item, nil
}

func (s *BatchService) SaveItem(ctx context.Context, input ItemInput) (*ItemResult, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	batch, items, err := s.load(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(batch); err != nil {
		return nil, err
	}
	item, err := findItem(items, input.Code)
	if err != nil {
		return nil, err
	}
	if item.Saved {
		return &ItemResult{Batch: *batch, Item: *item}, nil
	}
	if err := item.MarkSaved(s.now()); err != nil {
		return nil, fmt.Errorf("%w: item %s is not calculated", ErrPreconditionFailed, item.Code)
	}

	previous := batch.Status
	refreshCounts(batch, items)
	next := model.BatchStatusPartiallyPriced
	if batch.SavedCount == batch.ItemCount {
		next = model.BatchStatusFullyPriced
	}
	if err := batch.Transition(next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}

	if err := s.persist(ctx, batch, []model.LineItem{*item}); err != nil {
		return nil, err
	}
	s.logTransition(batch, previous)
	s.events.Publish(resourceLineItem, events.ActionUpdate, *item)
	s.events.Publish(resourceBatch, events.ActionUpdate, *batch)
	return &ItemResult{Batch: *batch, Item: *item}, nil
}

// CalculateAll prices every row. Rows without a margin take defaultMargin;
// without one the call fails with MissingMarginError and nothing changes.
// Every row comes back unsaved.
func (s *BatchService) CalculateAll(ctx context.Context, input CalculateAllInput) (*BatchResult, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	batch, items, err := s.load(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(batch); err != nil {
		return nil, err
	}
	if !batch.Priceable() {
		return nil, fmt.Errorf("%w: batch %s is %s and can no longer be recalculated", ErrPreconditionFailed, batch.Code, batch.Status)
	}

	missing := 0
	for i := range items {
		if !items[i].HasMargin() {
			missing++
		}
	}
	if missing > 0 && input.DefaultMargin == nil {
		return nil, &MissingMarginError{Count: missing}
	}
	if input.DefaultMargin != nil {
		if err := model.ValidateMargin(*input.DefaultMargin); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	for i := range items {
		item := &items[i]
		if !item.HasMargin() {
			item.SetMargin(input.DefaultMargin)
		}
		item.MarkUnsaved()
		if err := s.calculate(item, batch.Kind); err != nil {
			return nil, err
		}
	}
	refreshCounts(batch, items)

	if err := s.persist(ctx, batch, items); err != nil {
		return nil, err
	}
	s.log.Info().Str("batch", batch.Code).Int("items", len(items)).Int("defaulted", missing).Msg("batch recalculated")
	s.events.Publish(resourceBatch, events.ActionUpdate, *batch)
	return &BatchResult{Batch: *batch, Items: items}, nil
}

func (s *BatchService) Commit(ctx context.Context, input CommitInput) (*BatchResult, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	if input.Mode != CommitModeAll && input.Mode != CommitModePartial {
		return nil, fmt.Errorf("%w: mode must be all or partial", ErrInvalidInput)
	}
	batch, items, err := s.load(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(batch); err != nil {
		return nil, err
	}

	now := s.now()
	uncomputed := 0
	for i := range items {
		if !items[i].Computed {
			uncomputed++
		}
	}

	next := model.BatchStatusFullyPriced
	switch input.Mode {
	case CommitModeAll:
		if uncomputed > 0 {
			return nil, &UncomputedItemsError{Count: uncomputed}
		}
		for i := range items {
			if !items[i].Saved {
				_ = items[i].MarkSaved(now)
			}
		}
	case CommitModePartial:
		for i := range items {
			item := &items[i]
			switch {
			case !item.Computed:
				item.MarkUnsaved()
			case !item.Saved:
				_ = item.MarkSaved(now)
			}
		}
		if uncomputed > 0 {
			next = model.BatchStatusPartiallyPriced
		}
	}

	previous := batch.Status
	if err := batch.Transition(next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}
	refreshCounts(batch, items)

	if err := s.persist(ctx, batch, items); err != nil {
		return nil, err
	}
	s.logTransition(batch, previous)
	s.events.Publish(resourceBatch, events.ActionUpdate, *batch)
	return &BatchResult{Batch: *batch, Items: items}, nil
}

// MarkImported closes a fully priced batch. Calling it again on an imported
// batch is a no-op.
func (s *BatchService) MarkImported(ctx context.Context, input BatchInput) (*model.Batch, error) {
	if err := requireWriter(input.Principal); err != nil {
		return nil, err
	}
	batch, err := s.GetBatch(ctx, input.BatchID)
	if err != nil {
		return nil, err
	}
	switch batch.Status {
	case model.BatchStatusImported:
		return batch, nil
	case model.BatchStatusFullyPriced:
	default:
		return nil, fmt.Errorf("%w: batch %s is %s, only fully priced batches can be imported", ErrPreconditionFailed, batch.Code, batch.Status)
	}

	previous := batch.Status
	if err := batch.Transition(model.BatchStatusImported); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreconditionFailed, err)
	}
	if err := s.persist(ctx, batch, nil); err != nil {
		return nil, err
	}
	s.logTransition(batch, previous)
	s.events.Publish(resourceBatch, events.ActionUpdate, *batch)
	return batch, nil
}

func (s *BatchService) ExportXLSX(ctx context.Context, batchID uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, batchID, s.excel, "xlsx")
}

func (s *BatchService) ExportPDF(ctx context.Context, batchID uuid.UUID) (*ExportResult, error) {
	return s.export(ctx, batchID, s.pdf, "pdf")
}

func (s *BatchService) export(ctx context.Context, batchID uuid.UUID, generator ReportGenerator, ext string) (*ExportResult, error) {
	batch, items, err := s.load(ctx, batchID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	content, err := generator.Generate(model.BatchReport{Batch: *batch, Items: items, GeneratedAt: s.now()})
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", ext, err)
	}
	return &ExportResult{
		FileName: fmt.Sprintf("precificacao_%s.%s", safeFileName(batch.Code), ext),
		Content:  content,
	}, nil
}

func (s *BatchService) load(ctx context.Context, id uuid.UUID) (*model.Batch, []model.LineItem, error) {
	batch, err := s.GetBatch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.repo.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return batch, items, nil
}

func (s *BatchService) persist(ctx context.Context, batch *model.Batch, items []model.LineItem) error {
	batch.UpdatedAt = s.now()
	return s.repo.UpdateBatch(ctx, batch, items)
}

func (s *BatchService) calculate(item *model.LineItem, kind model.BatchKind) error {
	err := item.Calculate(s.calc, kind)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrMarginMissing):
		return fmt.Errorf("%w: item %s has no margin", ErrPreconditionFailed, item.Code)
	case errors.Is(err, pricing.ErrInvalidInput):
		return fmt.Errorf("%w: item %s: %v", ErrInvalidInput, item.Code, err)
	default:
		return err
	}
}

func (s *BatchService) logTransition(batch *model.Batch, previous model.BatchStatus) {
	if batch.Status == previous {
		return
	}
	s.log.Info().
		Str("batch", batch.Code).
		Str("from", string(previous)).
		Str("to", string(batch.Status)).
		Int("saved", batch.SavedCount).
		Int("items", batch.ItemCount).
		Msg("batch status changed")
}

func requireEditable(batch *model.Batch) error {
	if !batch.Editable() {
		return fmt.Errorf("%w: batch %s is already imported", ErrPreconditionFailed, batch.Code)
	}
	return nil
}

func findItem(items []model.LineItem, code string) (*model.LineItem, error) {
	code = strings.TrimSpace(code)
	for i := range items {
		if items[i].Code == code {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: item %s", ErrNotFound, code)
}

func refreshCounts(batch *model.Batch, items []model.LineItem) {
	batch.ItemCount = len(items)
	batch.SavedCount = 0
	for i := range items {
		if items[i].Saved {
			batch.SavedCount++
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func safeFileName(value string) string {
	value = unsafeFileChars.ReplaceAllString(value, "_")
	if value == "" {
		return "lote"
	}
	return value
}
