package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

func (h *Handler) listBatches(c *gin.Context) {
	query, ok := h.listQuery(c)
	if !ok {
		return
	}
	page, err := h.batches.ListBatches(c.Request.Context(), service.ListBatchesInput{
		Status: model.BatchStatus(strings.TrimSpace(c.Query("status"))),
		Query:  query,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

func (h *Handler) importBatch(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	var issueDate *time.Time
	if raw := strings.TrimSpace(c.PostForm("issue_date")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue_date"})
			return
		}
		issueDate = &parsed
	}

	result, err := h.batches.Import(c.Request.Context(), service.ImportInput{
		Kind:        model.BatchKind(strings.ToLower(strings.TrimSpace(c.PostForm("kind")))),
		Code:        c.PostForm("code"),
		Supplier:    c.PostForm("supplier"),
		Description: c.PostForm("description"),
		IssueDate:   issueDate,
		FileName:    header.Filename,
		Content:     content,
		Principal:   principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batchResponse{Batch: result.Batch, Items: result.Items})
}

func (h *Handler) getBatch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	batch, err := h.batches.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *Handler) listItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	query, ok := h.listQuery(c)
	if !ok {
		return
	}
	page, err := h.batches.ListItems(c.Request.Context(), id, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, newListResponse(page))
}

func (h *Handler) updateMargin(c *gin.Context) {
	input, ok := h.itemInput(c)
	if !ok {
		return
	}
	var req marginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Margin = req.Margin

	item, err := h.batches.UpdateMargin(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) priceItem(c *gin.Context) {
	input, ok := h.itemInput(c)
	if !ok {
		return
	}
	var req marginRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	input.Margin = req.Margin

	item, err := h.batches.CalculateItem(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) saveItem(c *gin.Context) {
	input, ok := h.itemInput(c)
	if !ok {
		return
	}
	result, err := h.batches.SaveItem(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemResponse{Batch: result.Batch, Item: result.Item})
}

func (h *Handler) calculateAll(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req calculateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.batches.CalculateAll(c.Request.Context(), service.CalculateAllInput{
		BatchID:       id,
		DefaultMargin: req.DefaultMargin,
		Principal:     principal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batchResponse{Batch: result.Batch, Items: result.Items})
}

func (h *Handler) commit(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := service.ParseCommitMode(req.Mode)
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.batches.Commit(c.Request.Context(), service.CommitInput{BatchID: id, Mode: mode, Principal: principal})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batchResponse{Batch: result.Batch, Items: result.Items})
}

func (h *Handler) markImported(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	batch, err := h.batches.MarkImported(c.Request.Context(), service.BatchInput{BatchID: id, Principal: principal})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *Handler) exportXLSX(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.batches.ExportXLSX(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypeXLSX, result.FileName, result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.batches.ExportPDF(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendFile(c, contentTypePDF, result.FileName, result.Content)
}

func (h *Handler) itemInput(c *gin.Context) (service.ItemInput, bool) {
	principal, ok := h.principal(c)
	if !ok {
		return service.ItemInput{}, false
	}
	id, ok := pathID(c, "id")
	if !ok {
		return service.ItemInput{}, false
	}
	return service.ItemInput{BatchID: id, Code: c.Param("code"), Principal: principal}, true
}

func parseDate(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"02/01/2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
