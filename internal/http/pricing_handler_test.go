package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
	"github.com/meuprecocerto/precificacao/internal/service"
)

func TestPricingHandler_Preview(t *testing.T) {
	t.Run("product", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().Preview(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.PreviewInput) (*model.PricingRecord, error) {
				if in.Formula != model.PricingFormulaProduct {
					t.Fatalf("unexpected formula %q", in.Formula)
				}
				if in.Input.PaymentMethod != pricing.PaymentMethodCredito || in.Input.Installments != 3 {
					t.Fatalf("unexpected payment %+v", in.Input)
				}
				if !in.Input.BaseCost.Equal(decimal.NewFromInt(100)) || len(in.Input.ExtraCosts) != 1 {
					t.Fatalf("unexpected costs %+v", in.Input)
				}
				return &model.PricingRecord{Formula: in.Formula}, nil
			})

		body := `{"base_cost":100,"freight":0,"extra_costs":[5],"margin_percent":20,"payment_method":"credito","installments":3}`
		w := perform(r, http.MethodPost, "/pricing/product", strings.NewReader(body))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rental months", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().Preview(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.PreviewInput) (*model.PricingRecord, error) {
				if in.Formula != model.PricingFormulaRental || in.ContractMonths != 24 {
					t.Fatalf("unexpected input %+v", in)
				}
				return &model.PricingRecord{Formula: in.Formula}, nil
			})

		w := perform(r, http.MethodPost, "/pricing/rental", strings.NewReader(`{"base_cost":5000,"margin_percent":30,"contract_months":24}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("unknown payment method", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)
		w := perform(r, http.MethodPost, "/pricing/product", strings.NewReader(`{"base_cost":100,"payment_method":"cheque"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().Preview(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: margin must be between 0 and 100", service.ErrInvalidInput))

		w := perform(r, http.MethodPost, "/pricing/product", strings.NewReader(`{"base_cost":100,"margin_percent":150}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPricingHandler_Records(t *testing.T) {
	itemID := uuid.New()

	t.Run("create linked", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.RecordInput) (*model.PricingRecord, error) {
				if in.Formula != model.PricingFormulaRental || in.CatalogItemID == nil || *in.CatalogItemID != itemID {
					t.Fatalf("unexpected input %+v", in)
				}
				if in.Principal != testPrincipal {
					t.Fatalf("principal not forwarded")
				}
				return &model.PricingRecord{ID: uuid.New(), CatalogItemID: in.CatalogItemID}, nil
			})

		body := fmt.Sprintf(`{"formula":" Rental ","catalog_item_id":%q,"base_cost":5000,"margin_percent":30}`, itemID)
		w := perform(r, http.MethodPost, "/pricing/records", strings.NewReader(body))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("formula required", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)
		w := perform(r, http.MethodPost, "/pricing/records", strings.NewReader(`{"base_cost":1}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list filtered by item", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().ListRecords(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.ListRecordsInput) (listview.Page[model.PricingRecord], error) {
				if in.CatalogItemID == nil || *in.CatalogItemID != itemID {
					t.Fatalf("unexpected filter %+v", in)
				}
				return listview.Page[model.PricingRecord]{Items: []model.PricingRecord{{ID: uuid.New()}}, TotalItems: 1, TotalPages: 1}, nil
			})

		w := perform(r, http.MethodGet, "/pricing/records?catalog_item_id="+itemID.String(), nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if items := decodeBody(t, w)["items"].([]interface{}); len(items) != 1 {
			t.Fatalf("expected one record, got %d", len(items))
		}
	})

	t.Run("list bad filter", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)
		w := perform(r, http.MethodGet, "/pricing/records?catalog_item_id=abc", nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		id := uuid.New()
		m.pricing.EXPECT().DeleteRecord(gomock.Any(), id, testPrincipal).Return(nil)

		w := perform(r, http.MethodDelete, "/pricing/records/"+id.String(), nil)
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("current pricing missing", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().CurrentRecord(gomock.Any(), itemID).Return(nil, fmt.Errorf("%w: no pricing record", service.ErrNotFound))

		w := perform(r, http.MethodGet, "/catalog/items/"+itemID.String()+"/current-pricing", nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPricingHandler_Catalog(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().CreateCatalogItem(gomock.Any(), service.CatalogItemInput{
			Kind:      model.CatalogKindEquipment,
			Code:      "EQ-1",
			Name:      "Betoneira",
			Principal: testPrincipal,
		}).Return(&model.CatalogItem{Code: "EQ-1"}, nil)

		w := perform(r, http.MethodPost, "/catalog/items", strings.NewReader(`{"kind":"EQUIPMENT","code":"EQ-1","name":"Betoneira"}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().CreateCatalogItem(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: code EQ-1", service.ErrConflict))

		w := perform(r, http.MethodPost, "/catalog/items", strings.NewReader(`{"kind":"equipment","code":"EQ-1","name":"Betoneira"}`))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("list by kind", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.pricing.EXPECT().ListCatalogItems(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.ListCatalogInput) (listview.Page[model.CatalogItem], error) {
				if in.Kind != model.CatalogKindProduct {
					t.Fatalf("unexpected kind %q", in.Kind)
				}
				return listview.Page[model.CatalogItem]{}, nil
			})

		w := perform(r, http.MethodGet, "/catalog/items?kind=product", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
