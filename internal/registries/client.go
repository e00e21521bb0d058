package registries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/observability"
)

const (
	// DefaultMinInterval is the default minimum spacing between requests
	// to one source.
	DefaultMinInterval = time.Second

	// DefaultTimeout bounds each request attempt.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries caps retry attempts for transient failures.
	DefaultMaxRetries = 3

	// maxResponseBytes bounds response bodies to prevent resource
	// exhaustion from a misbehaving registry.
	maxResponseBytes = 10 << 20
)

// DefaultRetrySchedule is the staged backoff applied between retries of
// transient failures. The last entry repeats if retries exceed its length.
func DefaultRetrySchedule() []time.Duration {
	return []time.Duration{10 * time.Second, 30 * time.Second, 60 * time.Second}
}

// ClientConfig configures a per-source fetcher.
type ClientConfig struct {
	// Source names the registry, used in errors, logs and metrics.
	Source string

	// MinInterval is the minimum spacing between consecutive requests.
	MinInterval time.Duration

	// Timeout bounds each request attempt.
	Timeout time.Duration

	// MaxRetries caps retry attempts for transient failures.
	MaxRetries int

	// RetrySchedule is the staged backoff between retries.
	RetrySchedule []time.Duration

	// UserAgent is the identifying client token sent with every request,
	// per the registries' fair-use conventions.
	UserAgent string

	// BlockSignatures are phrases that, found in an otherwise-200
	// response, indicate the source is bot-blocking us. A non-empty list
	// enables the circuit breaker for this source.
	BlockSignatures []string

	// BlockCooldown is how long the source stays blocked after a trip.
	// Zero uses DefaultBlockCooldown.
	BlockCooldown time.Duration

	// Logger receives per-request debug logs and retry warnings.
	Logger zerolog.Logger

	// Metrics, when non-nil, receives request/retry/breaker observations.
	Metrics *observability.Metrics
}

// Client is a rate-limited HTTP fetcher for one external registry. All
// verification runs that query the same source must share one Client so
// its limiter and breaker serialize access. It is safe for concurrent use.
type Client struct {
	source  string
	client  *http.Client
	limiter *RateLimiter
	breaker *CircuitBreaker // nil unless block signatures are configured
	config  ClientConfig
	logger  zerolog.Logger
	metrics *observability.Metrics

	// sleep waits between retries; overridable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a fetcher for one source, applying defaults for any
// unset configuration fields.
func NewClient(cfg ClientConfig) *Client {
	if cfg.MinInterval == 0 {
		cfg.MinInterval = DefaultMinInterval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if len(cfg.RetrySchedule) == 0 {
		cfg.RetrySchedule = DefaultRetrySchedule()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "PaperVerify/1.0"
	}

	var breaker *CircuitBreaker
	if len(cfg.BlockSignatures) > 0 {
		breaker = NewCircuitBreaker(cfg.BlockCooldown)
	}

	return &Client{
		source:  cfg.Source,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: NewRateLimiter(cfg.MinInterval),
		breaker: breaker,
		config:  cfg,
		logger:  cfg.Logger.With().Str("source", cfg.Source).Logger(),
		metrics: cfg.Metrics,
		sleep:   sleepCtx,
	}
}

// Source returns the registry name this client fetches from.
func (c *Client) Source() string {
	return c.source
}

// Breaker returns the source's circuit breaker, or nil when no block
// signatures are configured.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// CircuitState returns the breaker snapshot, or a zero state when this
// source has no breaker configured.
func (c *Client) CircuitState() CircuitState {
	if c.breaker == nil {
		return CircuitState{}
	}
	return c.breaker.State()
}

// Get performs a GET against rawURL with the given query parameters,
// returning the response body. The caller blocks behind the source's
// rate limiter; transient failures are retried on the staged backoff
// schedule; a blocked source fails fast with domain.ErrBlocked.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	if c.breaker != nil {
		if blocked, until := c.breaker.Blocked(); blocked {
			if c.metrics != nil {
				c.metrics.RecordCircuitBreakerShortCircuit(c.source)
			}
			return nil, domain.NewBlockedError(c.source, until)
		}
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}

	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
		if c.metrics != nil {
			c.metrics.RecordRateLimitWait(c.source)
		}

		body, err := c.do(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		if !domain.IsTransient(err) {
			return nil, err
		}
		lastErr = err

		if attempt >= c.config.MaxRetries {
			break
		}

		delay := c.retryDelay(attempt, err)
		c.logger.Warn().
			Err(err).
			Dur("delay", delay).
			Int("attempt", attempt+1).
			Msg("transient registry failure, backing off")
		if c.metrics != nil {
			c.metrics.RecordSourceRetry(c.source)
		}
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%s: retries exhausted after %d attempts: %w", c.source, c.config.MaxRetries+1, lastErr)
}

// do performs a single request attempt and classifies the outcome into
// the domain error taxonomy.
func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.5")

	start := time.Now()
	resp, err := c.client.Do(req)
	if c.metrics != nil {
		c.metrics.RecordSourceRequest(c.source, time.Since(start).Seconds())
	}
	if err != nil {
		return nil, c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", c.source, domain.ErrTransport)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if c.breaker != nil {
			if sig, found := c.findBlockSignature(body); found {
				until := c.breaker.Trip()
				if c.metrics != nil {
					c.metrics.RecordCircuitBreakerTrip(c.source)
				}
				c.logger.Error().
					Str("signature", sig).
					Time("blocked_until", until).
					Msg("block signature detected, tripping circuit breaker")
				return nil, domain.NewBlockedError(c.source, until)
			}
			c.breaker.Reset()
		}
		return body, nil

	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.NewExternalAPIError(c.source, resp.StatusCode, "no record", domain.ErrNotFound)

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &retryAfterError{
			err:        domain.NewExternalAPIError(c.source, resp.StatusCode, "rate limited", domain.ErrRateLimited),
			retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}

	case resp.StatusCode >= 500:
		return nil, domain.NewExternalAPIError(c.source, resp.StatusCode, "server error", domain.ErrServiceUnavailable)

	default:
		return nil, domain.NewExternalAPIError(c.source, resp.StatusCode, http.StatusText(resp.StatusCode), nil)
	}
}

// classifyTransportError maps connection-level failures onto the taxonomy.
func (c *Client) classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return fmt.Errorf("%s: %v: %w", c.source, err, domain.ErrTimeout)
	}
	return fmt.Errorf("%s: %v: %w", c.source, err, domain.ErrTransport)
}

// findBlockSignature scans the body for a configured bot-defense phrase.
func (c *Client) findBlockSignature(body []byte) (string, bool) {
	lower := strings.ToLower(string(body))
	for _, sig := range c.config.BlockSignatures {
		if strings.Contains(lower, strings.ToLower(sig)) {
			return sig, true
		}
	}
	return "", false
}

// retryDelay picks the backoff for the given attempt, honoring a
// Retry-After hint when the registry supplied one.
func (c *Client) retryDelay(attempt int, err error) time.Duration {
	var ra *retryAfterError
	if errors.As(err, &ra) && ra.retryAfter > 0 {
		return ra.retryAfter
	}
	schedule := c.config.RetrySchedule
	if attempt >= len(schedule) {
		attempt = len(schedule) - 1
	}
	return schedule[attempt]
}

// retryAfterError carries a Retry-After hint alongside the classified error.
type retryAfterError struct {
	err        error
	retryAfter time.Duration
}

func (e *retryAfterError) Error() string { return e.err.Error() }
func (e *retryAfterError) Unwrap() error { return e.err }

// parseRetryAfter interprets a Retry-After header as seconds or HTTP date.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// sleepCtx waits for the duration, respecting context cancellation.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
