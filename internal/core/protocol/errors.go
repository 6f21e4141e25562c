package protocol

import (
	"fmt"
	"time"
)

// Fault is a generic error reported by the API.
type Fault struct {
	StatusCode int
	Message    string
}

func (e *Fault) Error() string {
	return fmt.Sprintf("api fault (status %d): %s", e.StatusCode, e.Message)
}

// UnauthorizedError reports a rejected credential. It is not retried
// locally; the token was either invalid or expired beyond local refresh.
type UnauthorizedError struct {
	StatusCode int
	Message    string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized (status %d): %s", e.StatusCode, e.Message)
}

// NotFoundError reports a missing or inaccessible resource.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// RateLimitExceededError reports that the server rejected a request for
// quota reasons despite local throttling. It is a hard stop, not retried
// automatically; RetryAfter is the time until the governing window resets
// so the caller can choose to wait or abort.
type RateLimitExceededError struct {
	RetryAfter time.Duration
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets in %s", e.RetryAfter.Round(time.Second))
}
