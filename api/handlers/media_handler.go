package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/internal/app"
	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// MediaHandler handles single-item lookup requests
type MediaHandler struct {
	aggregator *app.Aggregator
	logger     *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(aggregator *app.Aggregator, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// GetMedia handles GET /api/v1/media/:provider/:id
func (h *MediaHandler) GetMedia(c *gin.Context) {
	name := c.Param("provider")
	id := c.Param("id")

	mediaType := domain.MediaTypeImage
	if t := c.Query("type"); t != "" {
		parsed, err := domain.ParseMediaType(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mediaType = parsed
	}

	item, err := h.aggregator.GetMediaFromProvider(c.Request.Context(), name, id, mediaType)
	if err != nil {
		switch {
		case domain.IsUnknownProvider(err), domain.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Media lookup failed",
				zap.String("provider", name),
				zap.String("id", id),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}
