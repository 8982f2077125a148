package app

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/internal/domain"
)

// progressInterval throttles downloading-state progress events
const progressInterval = 100 * time.Millisecond

// ItemResult is the outcome of one item in a batch download. Path is
// set on success, Err on failure.
type ItemResult struct {
	Path string
	Err  error
}

// Downloader transfers media items to local storage with bounded
// concurrency and optional progress reporting. Configuration is read
// once at construction and never mutated afterwards.
type Downloader struct {
	config domain.DownloadConfig
	client *http.Client
	agg    *Aggregator
	logger *zap.Logger
}

// NewDownloader creates a new downloader. A MaxConcurrent of zero or
// less degrades to 1 (serial), never unbounded. The aggregator is only
// needed for DownloadByID and may be nil otherwise.
func NewDownloader(agg *Aggregator, config domain.DownloadConfig, logger *zap.Logger) *Downloader {
	if config.MaxConcurrent < 1 {
		config.MaxConcurrent = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{
		config: config,
		client: &http.Client{Timeout: 10 * time.Minute},
		agg:    agg,
		logger: logger,
	}
}

// DownloadItem downloads a single media item, selecting the best URL
// under the configured quality preference, and returns the path of the
// written file. Progress events go to the configured observer:
// pending, then downloading ticks, then completed or failed.
func (d *Downloader) DownloadItem(ctx context.Context, item *domain.MediaItem) (string, error) {
	return d.downloadItem(ctx, item, nil)
}

// downloadItem performs the transfer, emitting progress to the
// configured observer and to the optional extra observer (used by the
// batch variants to track per-slot state).
func (d *Downloader) downloadItem(ctx context.Context, item *domain.MediaItem, extra domain.ProgressFunc) (string, error) {
	start := time.Now()
	progress := domain.NewDownloadProgress(item)
	d.notify(progress, extra)

	rawURL, err := d.resolveURL(item)
	if err != nil {
		return "", d.fail(&progress, extra, "no downloadable url", err)
	}

	if err := os.MkdirAll(d.config.OutputDir, 0755); err != nil {
		return "", d.fail(&progress, extra, "create output directory", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", d.fail(&progress, extra, "build request", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", d.fail(&progress, extra, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", d.fail(&progress, extra, fmt.Sprintf("HTTP %d", resp.StatusCode), nil)
	}

	if resp.ContentLength > 0 {
		progress.TotalBytes = resp.ContentLength
	}

	progress.State = domain.DownloadStateDownloading
	d.notify(progress, extra)

	outPath := filepath.Join(d.config.OutputDir, d.filename(item, rawURL, resp.Header.Get("Content-Type")))
	file, err := os.Create(outPath)
	if err != nil {
		return "", d.fail(&progress, extra, "create file", err)
	}

	var downloaded int64
	lastTick := time.Now()
	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := file.Write(buf[:n]); writeErr != nil {
				file.Close()
				return "", d.fail(&progress, extra, "write file", writeErr)
			}
			downloaded += int64(n)

			progress.DownloadedBytes = downloaded
			progress.Elapsed = time.Since(start)
			progress.UpdateDerived()

			if time.Since(lastTick) >= progressInterval {
				d.notify(progress, extra)
				lastTick = time.Now()
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			file.Close()
			return "", d.fail(&progress, extra, "read response", readErr)
		}
	}

	if err := file.Close(); err != nil {
		return "", d.fail(&progress, extra, "close file", err)
	}

	progress.DownloadedBytes = downloaded
	progress.Elapsed = time.Since(start)
	progress.UpdateDerived()
	progress.State = domain.DownloadStateCompleted
	d.notify(progress, extra)

	d.logger.Info("download completed",
		zap.String("id", item.ID),
		zap.String("provider", item.Provider),
		zap.String("path", outPath),
		zap.Int64("bytes", downloaded))

	return outPath, nil
}

// DownloadItems downloads multiple items with at most MaxConcurrent
// transfers in flight. The result slice matches the input order
// regardless of completion order; one item's failure never cancels or
// blocks the others.
func (d *Downloader) DownloadItems(ctx context.Context, items []domain.MediaItem) []ItemResult {
	return d.run(ctx, items, nil)
}

// DownloadItemsWithBatchProgress behaves like DownloadItems and
// additionally streams batch-aggregate progress to the observer. The
// observer fires on every per-item progress event, which includes every
// transition to a terminal state; CompletedItems counts finished items
// (failures included) and never decreases.
func (d *Downloader) DownloadItemsWithBatchProgress(ctx context.Context, items []domain.MediaItem, observer domain.BatchProgressFunc) []ItemResult {
	return d.run(ctx, items, observer)
}

// DownloadBatch is a named variant of DownloadItemsWithBatchProgress
// kept for call-site clarity; it shares the same concurrency and
// ordering contract and returns every item's result, failures included.
func (d *Downloader) DownloadBatch(ctx context.Context, items []domain.MediaItem, observer domain.BatchProgressFunc) []ItemResult {
	return d.run(ctx, items, observer)
}

// DownloadByID resolves an item through the aggregator's providers and
// downloads it
func (d *Downloader) DownloadByID(ctx context.Context, id string, mediaType domain.MediaType) (string, error) {
	if d.agg == nil {
		return "", &domain.DownloadError{ItemID: id, Message: "no aggregator bound"}
	}
	item, err := d.agg.GetMedia(ctx, id, mediaType)
	if err != nil {
		return "", err
	}
	return d.DownloadItem(ctx, item)
}

// run executes the bounded-concurrency batch. Each item gets its own
// result slot so output order matches input order.
func (d *Downloader) run(ctx context.Context, items []domain.MediaItem, observer domain.BatchProgressFunc) []ItemResult {
	results := make([]ItemResult, len(items))
	if len(items) == 0 {
		return results
	}

	tracker := newBatchTracker(len(items), observer)
	sem := make(chan struct{}, d.config.MaxConcurrent)

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				err := &domain.DownloadError{ItemID: items[i].ID, ItemTitle: items[i].Title, Message: "cancelled before start", Err: ctx.Err()}
				if fn := tracker.observe(i); fn != nil {
					fn(domain.DownloadProgress{
						ItemID:       items[i].ID,
						ItemTitle:    items[i].Title,
						Provider:     items[i].Provider,
						State:        domain.DownloadStateFailed,
						ErrorMessage: err.Error(),
					})
				}
				results[i] = ItemResult{Err: err}
				return
			}

			path, err := d.downloadItem(ctx, &items[i], tracker.observe(i))
			results[i] = ItemResult{Path: path, Err: err}
		}(i)
	}
	wg.Wait()

	return results
}

// fail marks the progress as failed, notifies observers and wraps the
// cause in a DownloadError
func (d *Downloader) fail(progress *domain.DownloadProgress, extra domain.ProgressFunc, message string, err error) error {
	dlErr := &domain.DownloadError{
		ItemID:    progress.ItemID,
		ItemTitle: progress.ItemTitle,
		Message:   message,
		Err:       err,
	}
	progress.State = domain.DownloadStateFailed
	progress.ErrorMessage = dlErr.Error()
	d.notify(*progress, extra)

	d.logger.Warn("download failed",
		zap.String("id", progress.ItemID),
		zap.String("provider", progress.Provider),
		zap.Error(dlErr))

	return dlErr
}

// notify delivers a progress snapshot to the configured observer and
// the per-slot observer. Both are invoked synchronously.
func (d *Downloader) notify(progress domain.DownloadProgress, extra domain.ProgressFunc) {
	if d.config.Progress != nil {
		d.config.Progress(progress)
	}
	if extra != nil {
		extra(progress)
	}
}

// resolveURL selects the transfer URL for the configured quality
// preference, degrading through lower tiers when the preferred one is
// absent
func (d *Downloader) resolveURL(item *domain.MediaItem) (string, error) {
	if item.MediaType == domain.MediaTypeVideo {
		return resolveVideoURL(item, d.config.VideoQuality)
	}
	return resolveImageURL(item, d.config.ImageQuality)
}

// resolveImageURL walks the fixed tier order original > large > medium
// > thumbnail starting at the preferred tier and picks the first
// rendition present. Thumbnail is always present, so this only fails on
// malformed items.
func resolveImageURL(item *domain.MediaItem, preferred domain.ImageQuality) (string, error) {
	start := 0
	for i, q := range domain.ImageQualityOrder {
		if q == preferred {
			start = i
			break
		}
	}

	for _, q := range domain.ImageQualityOrder[start:] {
		var u string
		switch q {
		case domain.ImageQualityOriginal:
			u = item.Urls.Original
		case domain.ImageQualityLarge:
			u = item.Urls.Large
		case domain.ImageQualityMedium:
			u = item.Urls.Medium
		case domain.ImageQualityThumbnail:
			u = item.Urls.Thumbnail
		}
		if u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("no image url available")
}

// resolveVideoURL picks the video file whose quality tag matches the
// preferred tier, degrading large > medium > small > tiny. When no tag
// matches, the narrowest file still meeting the preferred tier's
// minimum width wins, else the widest available.
func resolveVideoURL(item *domain.MediaItem, preferred domain.VideoQuality) (string, error) {
	files := item.Urls.VideoFiles
	if len(files) == 0 {
		return "", fmt.Errorf("no video files available")
	}

	start := 0
	for i, q := range domain.VideoQualityOrder {
		if q == preferred {
			start = i
			break
		}
	}

	for _, q := range domain.VideoQualityOrder[start:] {
		for _, f := range files {
			if f.Quality == string(q) && f.URL != "" {
				return f.URL, nil
			}
		}
	}

	minWidth := domain.VideoQualityOrder[start].MinWidth()
	var best *domain.VideoFile
	for i := range files {
		f := &files[i]
		if f.URL == "" {
			continue
		}
		if f.Width >= minWidth && (best == nil || f.Width < best.Width) {
			best = f
		}
	}
	if best != nil {
		return best.URL, nil
	}

	widest := files[0]
	for _, f := range files[1:] {
		if f.Width > widest.Width {
			widest = f
		}
	}
	if widest.URL == "" {
		return "", fmt.Errorf("no video url available")
	}
	return widest.URL, nil
}

// filename derives the output file name. With UseOriginalNames the
// trailing path segment of the URL is kept; otherwise the name is
// {provider}_{id}.{ext} with the extension taken from the URL or the
// response content type.
func (d *Downloader) filename(item *domain.MediaItem, rawURL, contentType string) string {
	parsed, err := url.Parse(rawURL)
	urlPath := ""
	if err == nil {
		urlPath = parsed.Path
	}

	if d.config.UseOriginalNames {
		base := path.Base(urlPath)
		if base != "" && base != "." && base != "/" {
			return base
		}
	}

	ext := strings.TrimPrefix(path.Ext(urlPath), ".")
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = strings.TrimPrefix(exts[0], ".")
		}
	}
	if ext == "" {
		if item.MediaType == domain.MediaTypeVideo {
			ext = "mp4"
		} else {
			ext = "jpg"
		}
	}

	return fmt.Sprintf("%s_%s.%s", strings.ToLower(item.Provider), item.ID, ext)
}

// batchTracker folds per-item progress events into batch-aggregate
// snapshots. All mutation happens under the mutex, and the observer is
// invoked with a copied snapshot while the mutex is still held so
// snapshots arrive in counter order.
type batchTracker struct {
	mu       sync.Mutex
	observer domain.BatchProgressFunc
	batch    domain.BatchDownloadProgress
	slots    []domain.DownloadProgress
	finished []bool
	active   []bool
}

func newBatchTracker(total int, observer domain.BatchProgressFunc) *batchTracker {
	return &batchTracker{
		observer: observer,
		batch: domain.BatchDownloadProgress{
			BatchID:    uuid.NewString(),
			TotalItems: total,
		},
		slots:    make([]domain.DownloadProgress, total),
		finished: make([]bool, total),
		active:   make([]bool, total),
	}
}

// observe returns the per-slot progress observer for item i, or nil
// when no batch observer is attached
func (t *batchTracker) observe(i int) domain.ProgressFunc {
	if t.observer == nil {
		return nil
	}
	return func(p domain.DownloadProgress) {
		t.mu.Lock()
		t.slots[i] = p

		switch {
		case p.State == domain.DownloadStateDownloading && !t.active[i]:
			t.active[i] = true
			t.batch.DownloadingItems++
		case p.State.IsTerminal() && !t.finished[i]:
			t.finished[i] = true
			t.batch.CompletedItems++
			if p.State == domain.DownloadStateFailed {
				t.batch.FailedItems++
			}
			if t.active[i] {
				t.active[i] = false
				t.batch.DownloadingItems--
			}
		}
		t.batch.UpdateOverallPercentage()

		snapshot := t.batch
		snapshot.ItemProgress = append([]domain.DownloadProgress(nil), t.slots...)
		t.observer(snapshot)
		t.mu.Unlock()
	}
}
