package pixabay

import (
	"errors"
	"fmt"
)

var (
	// ErrRateLimited is returned on HTTP 429. The default Pixabay quota
	// is 100 requests per 60 seconds, tied to the API key.
	ErrRateLimited = errors.New("pixabay: rate limit exceeded")

	// ErrInvalidAPIKey is returned on HTTP 401/403
	ErrInvalidAPIKey = errors.New("pixabay: invalid api key")
)

// APIError is returned for other non-success responses
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pixabay: HTTP %d: %s", e.StatusCode, e.Message)
}

// NotFoundError is returned when an id lookup matches no hits
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pixabay: no media with id %d", e.ID)
}
