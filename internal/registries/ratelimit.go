// Package registries provides the shared HTTP fetcher for external
// bibliographic registries: minimum inter-request spacing, staged retry
// backoff, bounded timeouts and a per-source circuit breaker for
// bot-defended endpoints.
package registries

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter wraps a token bucket limiter configured for minimum
// inter-request spacing. It is safe for concurrent use because the
// underlying rate.Limiter is goroutine-safe for all operations.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a limiter that enforces a minimum interval
// between consecutive requests. Burst is fixed at 1 so two back-to-back
// calls are always separated by at least the interval.
//
// Example configurations:
//   - Crossref / DOAJ / ISSN Portal: NewRateLimiter(time.Second)
//   - Google Scholar: NewRateLimiter(5 * time.Second)
func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Wait blocks until a request is allowed or the context is canceled.
// Requests are never dropped; callers queue behind the interval.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow returns true if a request is allowed without waiting.
// It consumes one token if allowed.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// SetInterval updates the minimum spacing between requests.
func (r *RateLimiter) SetInterval(minInterval time.Duration) {
	r.limiter.SetLimit(rate.Every(minInterval))
}

// Tokens returns the current number of available tokens, for monitoring.
func (r *RateLimiter) Tokens() float64 {
	return r.limiter.Tokens()
}
