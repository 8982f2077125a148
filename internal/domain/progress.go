package domain

import (
	"fmt"
	"time"
)

// DownloadState represents the lifecycle state of one download.
// States are strictly ordered: pending -> downloading -> completed|failed.
type DownloadState string

const (
	DownloadStatePending     DownloadState = "pending"
	DownloadStateDownloading DownloadState = "downloading"
	DownloadStateCompleted   DownloadState = "completed"
	DownloadStateFailed      DownloadState = "failed"
)

// IsTerminal reports whether the state is completed or failed
func (s DownloadState) IsTerminal() bool {
	return s == DownloadStateCompleted || s == DownloadStateFailed
}

// ProgressFunc receives per-item download progress events. It is invoked
// synchronously from the pipeline; a slow observer slows the download.
type ProgressFunc func(DownloadProgress)

// BatchProgressFunc receives batch-aggregate progress events
type BatchProgressFunc func(BatchDownloadProgress)

// DownloadProgress is an ephemeral snapshot of one item's transfer.
// TotalBytes is 0 when the response carries no Content-Length, in which
// case Percentage stays 0 and ETA is unknown.
type DownloadProgress struct {
	ItemID          string        `json:"item_id"`
	ItemTitle       string        `json:"item_title"`
	Provider        string        `json:"provider"`
	State           DownloadState `json:"state"`
	DownloadedBytes int64         `json:"downloaded_bytes"`
	TotalBytes      int64         `json:"total_bytes,omitempty"`
	SpeedBPS        int64         `json:"speed_bps"`
	Percentage      float64       `json:"percentage"`
	Elapsed         time.Duration `json:"elapsed"`
	ETA             time.Duration `json:"eta,omitempty"`
	ErrorMessage    string        `json:"error_message,omitempty"`
}

// NewDownloadProgress creates a pending progress snapshot for an item
func NewDownloadProgress(item *MediaItem) DownloadProgress {
	return DownloadProgress{
		ItemID:    item.ID,
		ItemTitle: item.Title,
		Provider:  item.Provider,
		State:     DownloadStatePending,
	}
}

// UpdateDerived recomputes percentage, speed and ETA from the byte
// counters and elapsed time
func (p *DownloadProgress) UpdateDerived() {
	if p.Elapsed > 0 {
		p.SpeedBPS = int64(float64(p.DownloadedBytes) / p.Elapsed.Seconds())
	}
	if p.TotalBytes > 0 {
		p.Percentage = float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
		if p.SpeedBPS > 0 && p.DownloadedBytes < p.TotalBytes {
			remaining := p.TotalBytes - p.DownloadedBytes
			p.ETA = time.Duration(float64(remaining)/float64(p.SpeedBPS)*float64(time.Second))
		}
	}
}

// FormatBytes renders a byte count in human-readable units
func FormatBytes(bytes int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	idx := 0
	for size >= 1024 && idx < len(units)-1 {
		size /= 1024
		idx++
	}
	return fmt.Sprintf("%.2f %s", size, units[idx])
}

// FormatSpeed renders the transfer speed in human-readable units
func (p *DownloadProgress) FormatSpeed() string {
	return FormatBytes(p.SpeedBPS) + "/s"
}

// FormatETA renders the estimated time remaining
func (p *DownloadProgress) FormatETA() string {
	if p.ETA <= 0 {
		return "unknown"
	}
	secs := p.ETA.Seconds()
	switch {
	case secs < 60:
		return fmt.Sprintf("%.0fs", secs)
	case secs < 3600:
		return fmt.Sprintf("%.0fm %.0fs", secs/60, float64(int(secs)%60))
	default:
		return fmt.Sprintf("%.0fh %.0fm", secs/3600, float64(int(secs)%3600)/60)
	}
}

// BatchDownloadProgress is a batch-aggregate snapshot. CompletedItems
// counts finished items, failures included; OverallPercentage is
// completed over total.
type BatchDownloadProgress struct {
	BatchID           string             `json:"batch_id"`
	TotalItems        int                `json:"total_items"`
	CompletedItems    int                `json:"completed_items"`
	FailedItems       int                `json:"failed_items"`
	DownloadingItems  int                `json:"downloading_items"`
	OverallPercentage float64            `json:"overall_percentage"`
	ItemProgress      []DownloadProgress `json:"item_progress,omitempty"`
}

// UpdateOverallPercentage recomputes the batch percentage from the
// finished-item counter
func (b *BatchDownloadProgress) UpdateOverallPercentage() {
	if b.TotalItems > 0 {
		b.OverallPercentage = float64(b.CompletedItems) / float64(b.TotalItems) * 100
	}
}
