package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAttemptInFlight    = errors.New("attempt already in flight")
	ErrRemoteUpdateFailed = errors.New("remote update failed")
)

// QuotaExceededError reports that the daily ceiling for one action kind has
// been reached. It is local and recoverable; the quota resets at midnight.
type QuotaExceededError struct {
	Kind  ActionKind
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily quota exceeded for %s (limit %d)", e.Kind, e.Limit)
}

// RateLimitedError is an HTTP 429 from an upstream data source. Reason carries
// the server-supplied explanation when there is one.
type RateLimitedError struct {
	Reason string
}

func (e *RateLimitedError) Error() string {
	if e.Reason == "" {
		return "upstream rate limited"
	}
	return "upstream rate limited: " + e.Reason
}

// StatusError is any other non-success status from an upstream data source.
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d for %s", e.Status, e.URL)
}
