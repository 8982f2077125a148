//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/api"
	"github.com/tornado-product/fusion-media-provider/internal/app"
	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// stubProvider serves canned results without touching the network
type stubProvider struct {
	name  string
	items []domain.MediaItem
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) SearchImages(ctx context.Context, query string, limit, page int) (*domain.SearchResult, error) {
	return &domain.SearchResult{
		Total:      len(p.items),
		TotalHits:  len(p.items),
		Page:       page,
		PerPage:    limit,
		TotalPages: domain.TotalPages(len(p.items), limit),
		Items:      p.items,
		Provider:   p.name,
	}, nil
}

func (p *stubProvider) SearchVideos(ctx context.Context, query string, limit, page int) (*domain.SearchResult, error) {
	return p.SearchImages(ctx, query, limit, page)
}

func (p *stubProvider) GetMedia(ctx context.Context, id string, mediaType domain.MediaType) (*domain.MediaItem, error) {
	for i := range p.items {
		if p.items[i].ID == id {
			return &p.items[i], nil
		}
	}
	return nil, &domain.NotFoundError{ID: id, MediaType: mediaType, Provider: p.name}
}

func setupTestServer(t *testing.T) (*httptest.Server, *httptest.Server) {
	t.Helper()

	fileServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegdata"))
	}))
	t.Cleanup(fileServer.Close)

	provider := &stubProvider{
		name: "StubStock",
		items: []domain.MediaItem{
			{
				ID:        "101",
				MediaType: domain.MediaTypeImage,
				Title:     "sunset",
				Provider:  "StubStock",
				Urls: domain.MediaUrls{
					Thumbnail: fileServer.URL + "/101_thumb.jpg",
					Large:     fileServer.URL + "/101_large.jpg",
				},
			},
		},
	}

	aggregator := app.NewAggregator(zap.NewNop())
	aggregator.Register(provider)

	config := domain.DefaultConfig()
	config.Download.OutputDir = t.TempDir()
	downloader := app.NewDownloader(aggregator, config.Download, zap.NewNop())

	router := api.SetupRouter(aggregator, downloader, zap.NewNop())
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, fileServer
}

func TestAPI_Health(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result["status"])
	assert.Contains(t, result["providers"], "StubStock")
}

func TestAPI_Search(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/search?query=sunset&type=image")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.AggregatedSearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "101", result.Items[0].ID)
}

func TestAPI_Search_MissingQuery(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/search")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SearchProvider_Unknown(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/search/nosuch?query=sunset")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_GetMedia(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/media/stubstock/101?type=image")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var item domain.MediaItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, "101", item.ID)
	assert.Equal(t, "StubStock", item.Provider)
}

func TestAPI_GetMedia_NotFound(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/media/stubstock/999?type=image")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_AddDownloads(t *testing.T) {
	server, fileServer := setupTestServer(t)

	payload := map[string]interface{}{
		"items": []domain.MediaItem{
			{
				ID:        "101",
				MediaType: domain.MediaTypeImage,
				Title:     "sunset",
				Provider:  "StubStock",
				Urls: domain.MediaUrls{
					Thumbnail: fileServer.URL + "/101_thumb.jpg",
					Large:     fileServer.URL + "/101_large.jpg",
				},
			},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/v1/downloads", "application/json", bytes.NewBuffer(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, float64(1), result["total"])
	assert.Equal(t, float64(1), result["succeeded"])
	assert.Equal(t, float64(0), result["failed"])
}

func TestAPI_AddDownloads_EmptyBody(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Post(server.URL+"/api/v1/downloads", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
