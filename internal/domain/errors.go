package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProviders is returned when a search is attempted with no
	// providers registered. No network calls are made.
	ErrNoProviders = errors.New("no providers registered")

	// ErrAllProvidersFailed is returned when every registered provider's
	// attempt failed. Individual causes are logged, not carried.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrAPIKeyMissing is returned when a provider is constructed with
	// an empty API key
	ErrAPIKeyMissing = errors.New("api key not set or empty")
)

// UnknownProviderError is returned by name-routed calls when no
// registered provider matches
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %s", e.Name)
}

// IsUnknownProvider checks if an error is an unknown provider error
func IsUnknownProvider(err error) bool {
	var upe *UnknownProviderError
	return errors.As(err, &upe)
}

// NotFoundError is returned when an id does not resolve to a media item
type NotFoundError struct {
	ID        string
	MediaType MediaType
	Provider  string
}

func (e *NotFoundError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s not found on %s", e.MediaType, e.ID, e.Provider)
	}
	return fmt.Sprintf("%s %s not found on any provider", e.MediaType, e.ID)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// DownloadError tags a transport, non-success status or filesystem
// failure with the offending item
type DownloadError struct {
	ItemID    string
	ItemTitle string
	Message   string
	Err       error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download %s: %s: %v", e.ItemID, e.Message, e.Err)
	}
	return fmt.Sprintf("download %s: %s", e.ItemID, e.Message)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// IsDownloadError checks if an error is a download error
func IsDownloadError(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}
