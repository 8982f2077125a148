package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

func testDownloadConfig(t *testing.T) domain.DownloadConfig {
	t.Helper()
	return domain.DownloadConfig{
		ImageQuality:  domain.ImageQualityLarge,
		VideoQuality:  domain.VideoQualityLarge,
		OutputDir:     t.TempDir(),
		MaxConcurrent: 5,
	}
}

func imageItem(id, base string) domain.MediaItem {
	return domain.MediaItem{
		ID:        id,
		MediaType: domain.MediaTypeImage,
		Title:     "item " + id,
		Provider:  "Pixabay",
		Urls: domain.MediaUrls{
			Thumbnail: base + "/thumb_" + id + ".jpg",
			Medium:    base + "/medium_" + id + ".jpg",
			Large:     base + "/large_" + id + ".jpg",
		},
	}
}

func TestDownloader_DownloadItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	d := NewDownloader(nil, config, nil)

	item := imageItem("42", server.URL)
	path, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(config.OutputDir, "pixabay_42.jpg"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))
}

func TestDownloader_DownloadItem_OriginalName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	config.UseOriginalNames = true
	d := NewDownloader(nil, config, nil)

	item := imageItem("42", server.URL)
	path, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)

	assert.Equal(t, "large_42.jpg", filepath.Base(path))
}

func TestDownloader_QualityFallback_Image(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("data"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	config.ImageQuality = domain.ImageQualityOriginal
	d := NewDownloader(nil, config, nil)

	// no original rendition, must degrade to large
	item := imageItem("7", server.URL)
	_, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)
	assert.Equal(t, "/large_7.jpg", requested)
}

func TestDownloader_QualityFallback_ThumbnailOnly(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("data"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	config.ImageQuality = domain.ImageQualityOriginal
	d := NewDownloader(nil, config, nil)

	item := domain.MediaItem{
		ID:        "9",
		MediaType: domain.MediaTypeImage,
		Provider:  "Pexels",
		Urls:      domain.MediaUrls{Thumbnail: server.URL + "/thumb_9.jpg"},
	}
	_, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)
	assert.Equal(t, "/thumb_9.jpg", requested)
}

func TestDownloader_QualitySelection_Video(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("data"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	config.VideoQuality = domain.VideoQualityMedium
	d := NewDownloader(nil, config, nil)

	item := domain.MediaItem{
		ID:        "5",
		MediaType: domain.MediaTypeVideo,
		Provider:  "Pixabay",
		Urls: domain.MediaUrls{
			Thumbnail: server.URL + "/thumb.jpg",
			VideoFiles: []domain.VideoFile{
				{Quality: "large", URL: server.URL + "/large.mp4", Width: 1920},
				{Quality: "medium", URL: server.URL + "/medium.mp4", Width: 1280},
				{Quality: "tiny", URL: server.URL + "/tiny.mp4", Width: 640},
			},
		},
	}
	_, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)
	assert.Equal(t, "/medium.mp4", requested)
}

func TestDownloader_QualitySelection_Video_WidestFallback(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("data"))
	}))
	defer server.Close()

	d := NewDownloader(nil, testDownloadConfig(t), nil)

	// no tags match the tier names, widest file wins
	item := domain.MediaItem{
		ID:        "6",
		MediaType: domain.MediaTypeVideo,
		Provider:  "Pexels",
		Urls: domain.MediaUrls{
			Thumbnail: server.URL + "/thumb.jpg",
			VideoFiles: []domain.VideoFile{
				{Quality: "hls", URL: server.URL + "/a.m3u8", Width: 0},
				{Quality: "uhd-raw", URL: server.URL + "/b.mp4", Width: 3840},
			},
		},
	}
	_, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)
	assert.Equal(t, "/b.mp4", requested)
}

func TestDownloader_QualitySelection_Video_UntaggedMinWidth(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte("data"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	config.VideoQuality = domain.VideoQualityMedium
	d := NewDownloader(nil, config, nil)

	// no tags at all; narrowest file meeting medium's minimum width wins
	item := domain.MediaItem{
		ID:        "8",
		MediaType: domain.MediaTypeVideo,
		Provider:  "Pexels",
		Urls: domain.MediaUrls{
			Thumbnail: server.URL + "/thumb.jpg",
			VideoFiles: []domain.VideoFile{
				{URL: server.URL + "/960.mp4", Width: 960},
				{URL: server.URL + "/3840.mp4", Width: 3840},
				{URL: server.URL + "/1280.mp4", Width: 1280},
			},
		},
	}
	_, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)
	assert.Equal(t, "/1280.mp4", requested)
}

func TestDownloader_DownloadItem_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDownloader(nil, testDownloadConfig(t), nil)

	item := imageItem("42", server.URL)
	_, err := d.DownloadItem(context.Background(), &item)

	assert.True(t, domain.IsDownloadError(err))
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestDownloader_ProgressSequence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	}))
	defer server.Close()

	var states []domain.DownloadState
	var bytes []int64
	config := testDownloadConfig(t)
	config.Progress = func(p domain.DownloadProgress) {
		states = append(states, p.State)
		bytes = append(bytes, p.DownloadedBytes)
	}
	d := NewDownloader(nil, config, nil)

	item := imageItem("42", server.URL)
	_, err := d.DownloadItem(context.Background(), &item)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(states), 3)
	assert.Equal(t, domain.DownloadStatePending, states[0])
	assert.Equal(t, domain.DownloadStateDownloading, states[1])
	assert.Equal(t, domain.DownloadStateCompleted, states[len(states)-1])
	assert.Equal(t, int64(8), bytes[len(bytes)-1])
	for i := 1; i < len(bytes); i++ {
		assert.GreaterOrEqual(t, bytes[i], bytes[i-1])
	}
}

func TestDownloader_FailedProgressOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var last domain.DownloadProgress
	config := testDownloadConfig(t)
	config.Progress = func(p domain.DownloadProgress) { last = p }
	d := NewDownloader(nil, config, nil)

	item := imageItem("42", server.URL)
	_, err := d.DownloadItem(context.Background(), &item)
	require.Error(t, err)

	assert.Equal(t, domain.DownloadStateFailed, last.State)
	assert.NotEmpty(t, last.ErrorMessage)
}

func TestDownloader_DownloadItems_BoundedConcurrency(t *testing.T) {
	var current, peak atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := current.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		current.Add(-1)
		w.Write([]byte("data"))
	}))
	defer server.Close()

	config := testDownloadConfig(t)
	config.MaxConcurrent = 2
	d := NewDownloader(nil, config, nil)

	items := make([]domain.MediaItem, 5)
	for i := range items {
		items[i] = imageItem("c"+string(rune('0'+i)), server.URL)
	}

	results := d.DownloadItems(context.Background(), items)

	require.Len(t, results, 5)
	for _, res := range results {
		assert.NoError(t, res.Err)
	}
	assert.LessOrEqual(t, peak.Load(), int64(2))
}

func TestDownloader_DownloadItems_PartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/large_bad.jpg" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("data"))
	}))
	defer server.Close()

	d := NewDownloader(nil, testDownloadConfig(t), nil)

	items := []domain.MediaItem{
		imageItem("ok1", server.URL),
		imageItem("bad", server.URL),
		imageItem("ok2", server.URL),
	}
	results := d.DownloadItems(context.Background(), items)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.True(t, domain.IsDownloadError(results[1].Err))
	assert.NoError(t, results[2].Err)
	assert.NotEmpty(t, results[2].Path)
}

func TestDownloader_BatchProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/large_bad.jpg" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("data"))
	}))
	defer server.Close()

	var mu sync.Mutex
	var snapshots []domain.BatchDownloadProgress
	observer := func(b domain.BatchDownloadProgress) {
		mu.Lock()
		snapshots = append(snapshots, b)
		mu.Unlock()
	}

	d := NewDownloader(nil, testDownloadConfig(t), nil)
	items := []domain.MediaItem{
		imageItem("a", server.URL),
		imageItem("bad", server.URL),
		imageItem("b", server.URL),
	}

	results := d.DownloadItemsWithBatchProgress(context.Background(), items, observer)
	require.Len(t, results, 3)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, snapshots)

	last := snapshots[len(snapshots)-1]
	assert.NotEmpty(t, last.BatchID)
	assert.Equal(t, 3, last.TotalItems)
	assert.Equal(t, 3, last.CompletedItems)
	assert.Equal(t, 1, last.FailedItems)
	assert.InDelta(t, 100.0, last.OverallPercentage, 0.01)
	assert.Len(t, last.ItemProgress, 3)

	// finished-item counter never decreases
	prev := 0
	for _, snap := range snapshots {
		assert.GreaterOrEqual(t, snap.CompletedItems, prev)
		prev = snap.CompletedItems
	}
}

func TestDownloader_BatchProgress_MonotonicUnderConcurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	var mu sync.Mutex
	var completed []int
	observer := func(b domain.BatchDownloadProgress) {
		mu.Lock()
		completed = append(completed, b.CompletedItems)
		mu.Unlock()
	}

	config := testDownloadConfig(t)
	config.MaxConcurrent = 8
	d := NewDownloader(nil, config, nil)

	items := make([]domain.MediaItem, 12)
	for i := range items {
		items[i] = imageItem("m"+string(rune('a'+i)), server.URL)
	}

	results := d.DownloadItemsWithBatchProgress(context.Background(), items, observer)
	require.Len(t, results, 12)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, completed)
	for i := 1; i < len(completed); i++ {
		assert.GreaterOrEqual(t, completed[i], completed[i-1])
	}
	assert.Equal(t, 12, completed[len(completed)-1])
}

func TestDownloader_DownloadItems_Empty(t *testing.T) {
	d := NewDownloader(nil, testDownloadConfig(t), nil)
	results := d.DownloadItems(context.Background(), nil)
	assert.Empty(t, results)
}

func TestDownloader_DownloadItems_CancelledContext(t *testing.T) {
	d := NewDownloader(nil, testDownloadConfig(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []domain.MediaItem{
		imageItem("a", "http://127.0.0.1:0"),
		imageItem("b", "http://127.0.0.1:0"),
		imageItem("c", "http://127.0.0.1:0"),
	}

	// select between the free semaphore and the done channel is random,
	// so repeat to cover both branches with no batch observer attached
	for i := 0; i < 100; i++ {
		results := d.DownloadItems(ctx, items)
		require.Len(t, results, 3)
		for _, res := range results {
			assert.Error(t, res.Err)
		}
	}
}

func TestNewDownloader_NormalizesConcurrency(t *testing.T) {
	config := testDownloadConfig(t)
	config.MaxConcurrent = 0
	d := NewDownloader(nil, config, nil)
	assert.Equal(t, 1, d.config.MaxConcurrent)

	config.MaxConcurrent = -3
	d = NewDownloader(nil, config, nil)
	assert.Equal(t, 1, d.config.MaxConcurrent)
}

func TestDownloader_DownloadByID(t *testing.T) {
	fileServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer fileServer.Close()

	provider := newFakeProvider("Stub", 1, 1)
	provider.items[0].Urls.Large = fileServer.URL + "/large_x.jpg"

	agg := NewAggregator(nil)
	agg.Register(provider)

	d := NewDownloader(agg, testDownloadConfig(t), nil)

	path, err := d.DownloadByID(context.Background(), "Stub-0", domain.MediaTypeImage)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = d.DownloadByID(context.Background(), "missing", domain.MediaTypeImage)
	assert.True(t, domain.IsNotFound(err))
}
