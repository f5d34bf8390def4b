package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/service"
)

func (h *Handler) previewProduct(c *gin.Context) {
	h.preview(c, model.PricingFormulaProduct)
}

func (h *Handler) previewRental(c *gin.Context) {
	h.preview(c, model.PricingFormulaRental)
}

func (h *Handler) preview(c *gin.Context, formula model.PricingFormula) {
	var req pricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.preview(formula)
	if err != nil {
		h.handleError(c, err)
		return
	}
	record, err := h.pricing.Preview(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) listRecords(c *gin.Context) {
	query, ok := h.listQuery(c)
	if !ok {
		return
	}
	input := service.ListRecordsInput{Query: query}
	if raw := strings.TrimSpace(c.Query("catalog_item_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog_item_id"})
			return
		}
		input.CatalogItemID = &id
	}

	page, err := h.pricing.ListRecords(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

func (h *Handler) createRecord(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.input(principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	record, err := h.pricing.CreateRecord(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) getRecord(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.pricing.GetRecord(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) updateRecord(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.input(principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	record, err := h.pricing.UpdateRecord(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) deleteRecord(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.pricing.DeleteRecord(c.Request.Context(), id, principal); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCatalogItems(c *gin.Context) {
	query, ok := h.listQuery(c)
	if !ok {
		return
	}
	page, err := h.pricing.ListCatalogItems(c.Request.Context(), service.ListCatalogInput{
		Kind:  model.CatalogKind(strings.ToLower(strings.TrimSpace(c.Query("kind")))),
		Query: query,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

func (h *Handler) createCatalogItem(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	var req catalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.pricing.CreateCatalogItem(c.Request.Context(), service.CatalogItemInput{
		Kind:      model.CatalogKind(strings.ToLower(strings.TrimSpace(req.Kind))),
		Code:      req.Code,
		Name:      req.Name,
		Category:  req.Category,
		Principal: principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) getCatalogItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	item, err := h.pricing.GetCatalogItem(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// currentPricing returns the record that currently drives the item's price.
func (h *Handler) currentPricing(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	record, err := h.pricing.CurrentRecord(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}
