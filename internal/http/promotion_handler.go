package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/service"
)

func (h *Handler) listPromotions(c *gin.Context) {
	query, ok := h.listQuery(c)
	if !ok {
		return
	}
	page, err := h.promotions.List(c.Request.Context(), service.ListPromotionsInput{
		Type:  model.PromotionType(strings.ToUpper(strings.TrimSpace(c.Query("type")))),
		Query: query,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

func (h *Handler) createPromotion(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	promotion, err := h.promotions.Create(c.Request.Context(), req.input(principal))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, promotion)
}

func (h *Handler) getPromotion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	promotion, err := h.promotions.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, promotion)
}

func (h *Handler) updatePromotion(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req promotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	promotion, err := h.promotions.Update(c.Request.Context(), id, req.input(principal))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, promotion)
}

func (h *Handler) deletePromotion(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.promotions.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) evaluatePromotion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.OrderValue.IsZero() {
		req.OrderValue = req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))
	}

	outcome, err := h.promotions.Evaluate(c.Request.Context(), id, model.PurchaseContext{
		UnitPrice:  req.UnitPrice,
		Quantity:   req.Quantity,
		OrderValue: req.OrderValue,
		State:      req.State,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
