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

	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/service"
)

func TestPromotionHandler_Create(t *testing.T) {
	t.Run("defaults to active", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.PromotionInput) (*model.Promotion, error) {
				if !in.Active {
					t.Fatalf("promotion must default to active")
				}
				if !in.StartsAt.IsZero() {
					t.Fatalf("start left to the service, got %v", in.StartsAt)
				}
				if in.Discount == nil || in.Discount.Kind != model.DiscountKindPercent || !in.Discount.Percent.Equal(decimal.NewFromInt(10)) {
					t.Fatalf("unexpected discount %+v", in.Discount)
				}
				if in.Condition != nil {
					t.Fatalf("expected no condition, got %+v", in.Condition)
				}
				return &model.Promotion{ID: uuid.New(), Name: in.Name}, nil
			})

		body := `{"name":"Ferramentas","type":"CUPOM","category":"Ferramentas","apply_whole_category":true,"coupon_code":"ferr10","discount":{"kind":"PERCENTUAL","percent":10}}`
		w := perform(r, http.MethodPost, "/promotions", strings.NewReader(body))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("explicitly inactive", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in service.PromotionInput) (*model.Promotion, error) {
				if in.Active {
					t.Fatalf("active=false must be kept")
				}
				return &model.Promotion{}, nil
			})

		w := perform(r, http.MethodPost, "/promotions", strings.NewReader(`{"name":"Frete","type":"FRETE_GRATIS","category":"Ferramentas","apply_whole_category":true,"active":false}`))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("coupon taken", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: coupon FERR10", service.ErrConflict))

		w := perform(r, http.MethodPost, "/promotions", strings.NewReader(`{"name":"x","type":"CUPOM","coupon_code":"FERR10"}`))
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("name required", func(t *testing.T) {
		r, _ := newTestRouter(t, nil)
		w := perform(r, http.MethodPost, "/promotions", strings.NewReader(`{"type":"CUPOM"}`))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestPromotionHandler_Evaluate(t *testing.T) {
	id := uuid.New()
	path := "/promotions/" + id.String() + "/evaluate"

	t.Run("order value defaults to unit times quantity", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Evaluate(gomock.Any(), id, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, purchase model.PurchaseContext) (*model.PromotionOutcome, error) {
				if purchase.Quantity != 3 || !purchase.OrderValue.Equal(decimal.NewFromInt(150)) || purchase.State != "SP" {
					t.Fatalf("unexpected purchase %+v", purchase)
				}
				return &model.PromotionOutcome{Eligible: true, UnitPrice: purchase.UnitPrice, DiscountedPrice: decimal.NewFromInt(45)}, nil
			})

		w := perform(r, http.MethodPost, path, strings.NewReader(`{"unit_price":50,"quantity":3,"state":"SP"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["eligible"] != true {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Evaluate(gomock.Any(), id, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ uuid.UUID, purchase model.PurchaseContext) (*model.PromotionOutcome, error) {
				if purchase.Quantity != 1 || !purchase.OrderValue.Equal(decimal.NewFromInt(80)) {
					t.Fatalf("unexpected purchase %+v", purchase)
				}
				return &model.PromotionOutcome{}, nil
			})

		w := perform(r, http.MethodPost, path, strings.NewReader(`{"unit_price":80,"order_value":0}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPromotionHandler_UpdateAndDelete(t *testing.T) {
	id := uuid.New()

	t.Run("update", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Update(gomock.Any(), id, gomock.Any()).Return(&model.Promotion{ID: id}, nil)

		w := perform(r, http.MethodPut, "/promotions/"+id.String(), strings.NewReader(`{"name":"x","type":"DESCONTO"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		r, m := newTestRouter(t, nil)
		m.promotions.EXPECT().Delete(gomock.Any(), id, testPrincipal).Return(fmt.Errorf("%w: promotion", service.ErrNotFound))

		w := perform(r, http.MethodDelete, "/promotions/"+id.String(), nil)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
