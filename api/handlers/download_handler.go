package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/internal/app"
	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	downloader *app.Downloader
	logger     *zap.Logger
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(downloader *app.Downloader, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		downloader: downloader,
		logger:     logger,
	}
}

// AddDownloadsRequest represents a request to download a set of items
type AddDownloadsRequest struct {
	Items []domain.MediaItem `json:"items" binding:"required,min=1"`
}

// DownloadItemResponse is the outcome of one item in the batch
type DownloadItemResponse struct {
	ID    string `json:"id"`
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// AddDownloadsResponse summarizes a finished batch
type AddDownloadsResponse struct {
	Total     int                    `json:"total"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
	Results   []DownloadItemResponse `json:"results"`
}

// AddDownloads handles POST /api/v1/downloads. The call blocks until
// every item has settled; partial failure is reported per item, not as
// a request-level error.
func (h *DownloadHandler) AddDownloads(c *gin.Context) {
	var req AddDownloadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.downloader.DownloadItems(c.Request.Context(), req.Items)

	resp := AddDownloadsResponse{
		Total:   len(results),
		Results: make([]DownloadItemResponse, len(results)),
	}
	for i, res := range results {
		item := DownloadItemResponse{ID: req.Items[i].ID, Path: res.Path}
		if res.Err != nil {
			item.Error = res.Err.Error()
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results[i] = item
	}

	h.logger.Info("Batch download finished",
		zap.Int("total", resp.Total),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed))

	c.JSON(http.StatusOK, resp)
}
