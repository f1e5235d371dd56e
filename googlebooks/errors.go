package googlebooks

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors returned by the Google Books client.
var (
	// ErrEmptyQuery is returned when a query is constructed from an empty seed string.
	ErrEmptyQuery = errors.New("search query must not be empty")

	// ErrEmptyVolumeID is returned when a volume fetch is attempted without an ID.
	ErrEmptyVolumeID = errors.New("volume ID must not be empty")

	// ErrInvalidBaseURL is returned when the configured base URL cannot be
	// parsed. This indicates a configuration bug, not a transient failure.
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// RequestError indicates the HTTP call itself could not complete (network
// failure, timeout, cancelled context). It is surfaced as-is and never
// retried internally.
type RequestError struct {
	URL string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("google books request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a response body that does not match the expected
// schema for its status class. Raw carries the offending body for diagnosis.
type DecodeError struct {
	StatusCode int
	Raw        string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding google books response (status %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RateLimitError indicates the API reported quota exhaustion (code 429 in the
// error envelope). It is surfaced distinctly so callers can apply their own
// backoff; the client never retries on its own.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("google books rate limit exceeded: %s", e.Message)
}

// IsRateLimitError reports whether err is a RateLimitError (even when wrapped).
func IsRateLimitError(err error) bool {
	var rateErr *RateLimitError
	return errors.As(err, &rateErr)
}

// APIError represents any other non-success response from the API. Reason
// carries the first machine-readable reason from the envelope when present.
type APIError struct {
	Code    int
	Message string
	Status  string
	Reason  string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("google books API error %d (%s): %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("google books API error %d: %s", e.Code, e.Message)
}

// IsNotFound checks if the error indicates a missing volume.
func (e *APIError) IsNotFound() bool {
	return e.Code == http.StatusNotFound
}

// IsForbidden checks if the error indicates an authentication or quota problem
// other than rate limiting.
func (e *APIError) IsForbidden() bool {
	return e.Code == http.StatusForbidden || e.Code == http.StatusUnauthorized
}
