package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tornado-product/fusion-media-provider/internal/app"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	aggregator *app.Aggregator
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(aggregator *app.Aggregator) *HealthHandler {
	return &HealthHandler{
		aggregator: aggregator,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Providers []string `json:"providers"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	providers := h.aggregator.Providers()
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name())
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   "1.0.0",
		Providers: names,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if len(h.aggregator.Providers()) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "no providers configured",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
