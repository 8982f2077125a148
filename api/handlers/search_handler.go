package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/internal/app"
	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// SearchHandler handles media search requests
type SearchHandler struct {
	aggregator *app.Aggregator
	logger     *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(aggregator *app.Aggregator, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// Search handles GET /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	result, err := h.aggregator.Search(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("Aggregated search failed",
			zap.String("query", params.Query),
			zap.Error(err))
		switch {
		case errors.Is(err, domain.ErrNoProviders):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no providers configured"})
		case errors.Is(err, domain.ErrAllProvidersFailed):
			c.JSON(http.StatusBadGateway, gin.H{"error": "all providers failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// SearchProvider handles GET /api/v1/search/:provider
func (h *SearchHandler) SearchProvider(c *gin.Context) {
	params, ok := h.bindParams(c)
	if !ok {
		return
	}

	name := c.Param("provider")
	result, err := h.aggregator.SearchFromProvider(c.Request.Context(), name, params)
	if err != nil {
		if domain.IsUnknownProvider(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Provider search failed",
			zap.String("provider", name),
			zap.String("query", params.Query),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// bindParams extracts search parameters from the query string. Writes
// the 400 response itself when validation fails.
func (h *SearchHandler) bindParams(c *gin.Context) (domain.SearchParams, bool) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return domain.SearchParams{}, false
	}

	mediaType := domain.MediaTypeImage
	if t := c.Query("type"); t != "" {
		parsed, err := domain.ParseMediaType(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return domain.SearchParams{}, false
		}
		mediaType = parsed
	}

	params := domain.NewSearchParams(query, mediaType)
	if perPage := c.Query("per_page"); perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid per_page"})
			return domain.SearchParams{}, false
		}
		params = params.WithLimit(n)
	}
	if page := c.Query("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
			return domain.SearchParams{}, false
		}
		params = params.WithPage(n)
	}

	return params, true
}
