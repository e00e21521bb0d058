package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the verification service.
// Metrics are organized by subsystem: verifications, resolvers, registry
// requests and classifications. All collectors are registered via promauto
// with the default Prometheus registry.
type Metrics struct {
	// VerificationsStarted counts verification runs initiated.
	VerificationsStarted prometheus.Counter

	// VerificationsByStatus counts finished verifications by final status
	// (verified, partial, failed).
	VerificationsByStatus *prometheus.CounterVec

	// VerificationDuration observes end-to-end verification duration in seconds.
	VerificationDuration prometheus.Histogram

	// VerificationConfidence observes the final confidence score distribution.
	VerificationConfidence prometheus.Histogram

	// ResolverAttempts counts resolver invocations by method (doi, issn,
	// title_author, scholar).
	ResolverAttempts *prometheus.CounterVec

	// ResolverFailures counts resolver failures by method and error kind.
	ResolverFailures *prometheus.CounterVec

	// SourceRequestsTotal counts HTTP requests to registries, labeled by source.
	SourceRequestsTotal *prometheus.CounterVec

	// SourceRequestDuration observes registry request duration in seconds.
	SourceRequestDuration *prometheus.HistogramVec

	// SourceRetries counts retry attempts against registries, labeled by source.
	SourceRetries *prometheus.CounterVec

	// SourceRateLimitWaits counts deliberate rate-limit waits, labeled by source.
	SourceRateLimitWaits *prometheus.CounterVec

	// CircuitBreakerTrips counts circuit-breaker trips, labeled by source.
	CircuitBreakerTrips *prometheus.CounterVec

	// CircuitBreakerShortCircuits counts calls rejected while a breaker
	// was open, labeled by source.
	CircuitBreakerShortCircuits *prometheus.CounterVec

	// ClassificationsTotal counts journal classifications by indexing label.
	ClassificationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all service metrics under the given
// namespace. Each namespace may be registered only once per process;
// tests use unique namespaces to avoid promauto registration conflicts.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		VerificationsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_started_total",
			Help:      "Total number of paper verifications started",
		}),
		VerificationsByStatus: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_finished_total",
			Help:      "Total number of finished verifications by final status",
		}, []string{"status"}),
		VerificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verification_duration_seconds",
			Help:      "Duration of paper verifications in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),
		VerificationConfidence: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "verification_confidence",
			Help:      "Final confidence score of verifications",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		}),
		ResolverAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_attempts_total",
			Help:      "Total number of resolver invocations by method",
		}, []string{"method"}),
		ResolverFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolver_failures_total",
			Help:      "Total number of resolver failures by method and error kind",
		}, []string{"method", "kind"}),
		SourceRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Total number of HTTP requests to external registries",
		}, []string{"source"}),
		SourceRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_duration_seconds",
			Help:      "Duration of registry HTTP requests in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"source"}),
		SourceRetries: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_retries_total",
			Help:      "Total number of retry attempts against registries",
		}, []string{"source"}),
		SourceRateLimitWaits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_rate_limit_waits_total",
			Help:      "Total number of deliberate rate-limit waits",
		}, []string{"source"}),
		CircuitBreakerTrips: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_trips_total",
			Help:      "Total number of circuit breaker trips",
		}, []string{"source"}),
		CircuitBreakerShortCircuits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_short_circuits_total",
			Help:      "Total number of calls rejected while a breaker was open",
		}, []string{"source"}),
		ClassificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Total number of journal classifications by indexing label",
		}, []string{"indexing_status"}),
	}
}

// RecordVerificationStarted increments the started counter.
func (m *Metrics) RecordVerificationStarted() {
	m.VerificationsStarted.Inc()
}

// RecordVerificationFinished records a finished verification.
func (m *Metrics) RecordVerificationFinished(status string, confidence, durationSeconds float64) {
	m.VerificationsByStatus.WithLabelValues(status).Inc()
	m.VerificationConfidence.Observe(confidence)
	m.VerificationDuration.Observe(durationSeconds)
}

// RecordResolverAttempt records one resolver invocation.
func (m *Metrics) RecordResolverAttempt(method string) {
	m.ResolverAttempts.WithLabelValues(method).Inc()
}

// RecordResolverFailure records a resolver failure with its error kind.
func (m *Metrics) RecordResolverFailure(method, kind string) {
	m.ResolverFailures.WithLabelValues(method, kind).Inc()
}

// RecordSourceRequest records one registry HTTP request.
func (m *Metrics) RecordSourceRequest(source string, durationSeconds float64) {
	m.SourceRequestsTotal.WithLabelValues(source).Inc()
	m.SourceRequestDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordSourceRetry records a retry attempt against a registry.
func (m *Metrics) RecordSourceRetry(source string) {
	m.SourceRetries.WithLabelValues(source).Inc()
}

// RecordRateLimitWait records a deliberate rate-limit wait.
func (m *Metrics) RecordRateLimitWait(source string) {
	m.SourceRateLimitWaits.WithLabelValues(source).Inc()
}

// RecordCircuitBreakerTrip records a breaker trip for a source.
func (m *Metrics) RecordCircuitBreakerTrip(source string) {
	m.CircuitBreakerTrips.WithLabelValues(source).Inc()
}

// RecordCircuitBreakerShortCircuit records a rejected call on an open breaker.
func (m *Metrics) RecordCircuitBreakerShortCircuit(source string) {
	m.CircuitBreakerShortCircuits.WithLabelValues(source).Inc()
}

// RecordClassification records a journal classification outcome.
func (m *Metrics) RecordClassification(indexingStatus string) {
	m.ClassificationsTotal.WithLabelValues(indexingStatus).Inc()
}
