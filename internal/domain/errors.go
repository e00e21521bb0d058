package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors forming the verification error taxonomy.
// Resolvers and fetchers wrap these so the orchestrator can distinguish
// "keep cascading" conditions from real transport failures with errors.Is.
var (
	// ErrInvalidFormat indicates a malformed DOI or ISSN detected before
	// any network call. Never retried.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrNotFound indicates the registry responded but holds no record.
	// Not retried; the verification cascade continues.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the registry returned 429 Too Many Requests.
	ErrRateLimited = errors.New("rate limited")

	// ErrServiceUnavailable indicates the registry returned 503 or an
	// equivalent server-side failure.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("timeout")

	// ErrTransport indicates a connection-level failure (DNS, reset, TLS).
	ErrTransport = errors.New("transport error")

	// ErrBlocked indicates the source's circuit breaker is open after a
	// bot-defense block signature was detected. Calls fail fast until the
	// cool-down elapses.
	ErrBlocked = errors.New("source blocked")
)

// IsTransient reports whether an error belongs to the retryable class:
// rate limiting, service unavailability, timeouts and connection failures.
// InvalidFormat, NotFound and Blocked are never transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrTransport)
}

// InvalidFormatError reports a malformed identifier with the offending value.
type InvalidFormatError struct {
	Kind  string // "doi" or "issn"
	Value string
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid %s format: %q", e.Kind, e.Value)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *InvalidFormatError) Unwrap() error {
	return ErrInvalidFormat
}

// NotFoundError provides details about a registry miss.
type NotFoundError struct {
	Source string
	Key    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no record for %s", e.Source, e.Key)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// BlockedError reports a circuit-broken source and when it reopens.
type BlockedError struct {
	Source       string
	BlockedUntil time.Time
}

// Error implements the error interface.
func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s is currently blocked until %s", e.Source, e.BlockedUntil.Format(time.RFC3339))
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}

// ExternalAPIError provides details about an external registry failure.
type ExternalAPIError struct {
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Source, e.StatusCode, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *ExternalAPIError) Unwrap() error {
	return e.Cause
}

// NewInvalidFormatError creates a new InvalidFormatError.
func NewInvalidFormatError(kind, value string) *InvalidFormatError {
	return &InvalidFormatError{Kind: kind, Value: value}
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(source, key string) *NotFoundError {
	return &NotFoundError{Source: source, Key: key}
}

// NewBlockedError creates a new BlockedError.
func NewBlockedError(source string, until time.Time) *BlockedError {
	return &BlockedError{Source: source, BlockedUntil: until}
}

// NewExternalAPIError creates a new ExternalAPIError.
func NewExternalAPIError(source string, statusCode int, message string, cause error) *ExternalAPIError {
	return &ExternalAPIError{
		Source:     source,
		StatusCode: statusCode,
		Message:    message,
		Cause:      cause,
	}
}
