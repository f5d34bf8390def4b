package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meuprecocerto/precificacao/internal/http/middleware"
	"github.com/meuprecocerto/precificacao/internal/importer"
	"github.com/meuprecocerto/precificacao/internal/listview"
	"github.com/meuprecocerto/precificacao/internal/model"
	"github.com/meuprecocerto/precificacao/internal/pricing"
	"github.com/meuprecocerto/precificacao/internal/service"
)

// EventStream upgrades a request to the websocket event feed.
type EventStream interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type Services struct {
	Batches    service.BatchUseCase
	Pricing    service.PricingUseCase
	Promotions service.PromotionUseCase
	Addresses  service.AddressUseCase
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
	MaxUploadBytes  int64
}

type Handler struct {
	batches    service.BatchUseCase
	pricing    service.PricingUseCase
	promotions service.PromotionUseCase
	addresses  service.AddressUseCase
	stream     EventStream
	opts       Options
	log        zerolog.Logger
}

func NewHandler(services Services, stream EventStream, opts Options, log zerolog.Logger) *Handler {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = listview.DefaultPageSize
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Handler{
		batches:    services.Batches,
		pricing:    services.Pricing,
		promotions: services.Promotions,
		addresses:  services.Addresses,
		stream:     stream,
		opts:       opts,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/health", h.health)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	batches := protected.Group("/batches")
	batches.GET("", h.listBatches)
	batches.POST("/import", h.importBatch)
	batches.GET("/:id", h.getBatch)
	batches.GET("/:id/items", h.listItems)
	batches.PATCH("/:id/items/:code", h.updateMargin)
	batches.POST("/:id/items/:code/price", h.priceItem)
	batches.POST("/:id/items/:code/save", h.saveItem)
	batches.POST("/:id/calculate", h.calculateAll)
	batches.POST("/:id/commit", h.commit)
	batches.POST("/:id/import", h.markImported)
	batches.GET("/:id/export.xlsx", h.exportXLSX)
	batches.GET("/:id/export.pdf", h.exportPDF)

	pricing := protected.Group("/pricing")
	pricing.POST("/product", h.previewProduct)
	pricing.POST("/rental", h.previewRental)
	pricing.GET("/records", h.listRecords)
	pricing.POST("/records", h.createRecord)
	pricing.GET("/records/:id", h.getRecord)
	pricing.PUT("/records/:id", h.updateRecord)
	pricing.DELETE("/records/:id", h.deleteRecord)

	catalog := protected.Group("/catalog/items")
	catalog.GET("", h.listCatalogItems)
	catalog.POST("", h.createCatalogItem)
	catalog.GET("/:id", h.getCatalogItem)
	catalog.GET("/:id/current-pricing", h.currentPricing)

	promotions := protected.Group("/promotions")
	promotions.GET("", h.listPromotions)
	promotions.POST("", h.createPromotion)
	promotions.GET("/:id", h.getPromotion)
	promotions.PUT("/:id", h.updatePromotion)
	promotions.DELETE("/:id", h.deletePromotion)
	promotions.POST("/:id/evaluate", h.evaluatePromotion)

	addresses := protected.Group("/addresses")
	addresses.GET("", h.listAddresses)
	addresses.POST("", h.createAddress)
	addresses.GET("/:id", h.getAddress)
	addresses.PUT("/:id", h.updateAddress)
	addresses.DELETE("/:id", h.deleteAddress)
	addresses.POST("/:id/principal", h.setPrincipalAddress)

	protected.GET("/ws", h.events)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) events(c *gin.Context) {
	if h.stream == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream disabled"})
		return
	}
	h.stream.ServeWS(c.Writer, c.Request)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var (
		missing    *service.MissingMarginError
		uncomputed *service.UncomputedItemsError
		parseErr   *importer.ParseError
	)
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error(), "code": "missing_margin", "count": missing.Count})
	case errors.As(err, &uncomputed):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error(), "code": "uncomputed_items", "count": uncomputed.Count})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		body := gin.H{"error": err.Error()}
		if errors.As(err, &parseErr) {
			body["rows"] = parseErr.Rows
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPreconditionFailed):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) principal(c *gin.Context) (model.Principal, bool) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
	}
	return principal, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// listQuery reads search, page (0-based) and page_size. Oversized pages are
// capped at the configured maximum.
func (h *Handler) listQuery(c *gin.Context) (listview.Query, bool) {
	q := listview.Query{Search: strings.TrimSpace(c.Query("search")), PageSize: h.opts.DefaultPageSize}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return q, false
		}
		q.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
			return q, false
		}
		if size > h.opts.MaxPageSize {
			size = h.opts.MaxPageSize
		}
		q.PageSize = size
	}
	return q, true
}

// bindOptionalJSON binds the body when one was sent.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func sendFile(c *gin.Context, contentType, fileName string, content []byte) {
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, contentType, content)
}
