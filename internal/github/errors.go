package github

import (
	"errors"
	"fmt"
	"time"
)

// RateLimitError indicates the GitHub API rate limit was exhausted. It
// carries the wait suggested by the Retry-After / X-RateLimit-Reset
// headers when available.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded, retry after %v", e.RetryAfter)
	}
	return "rate limit exceeded"
}

// NotFoundError indicates a requested resource does not exist.
type NotFoundError struct {
	ResourceType string
	ResourceID   string
}

func (e *NotFoundError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s not found: %s", e.ResourceType, e.ResourceID)
	}
	return fmt.Sprintf("%s not found", e.ResourceType)
}

// HTTPError represents any other non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRateLimitError checks for a RateLimitError, unwrapping as needed.
func IsRateLimitError(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsNotFoundError checks for a NotFoundError, unwrapping as needed.
func IsNotFoundError(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// GetRetryAfter extracts the retry duration from a RateLimitError, 0 when
// the error is something else.
func GetRetryAfter(err error) time.Duration {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle.RetryAfter
	}
	return 0
}
