package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	// promauto registers with the default registry, so the namespace must
	// be unique across the test binary.
	m := NewMetrics("paperverify_metricstest")
	require.NotNil(t, m)

	m.RecordVerificationStarted()
	m.RecordVerificationStarted()
	assert.InDelta(t, 2, testutil.ToFloat64(m.VerificationsStarted), 1e-9)

	m.RecordVerificationFinished("verified", 0.9, 1.5)
	assert.InDelta(t, 1, testutil.ToFloat64(m.VerificationsByStatus.WithLabelValues("verified")), 1e-9)

	m.RecordResolverAttempt("doi")
	m.RecordResolverFailure("doi", "not_found")
	assert.InDelta(t, 1, testutil.ToFloat64(m.ResolverAttempts.WithLabelValues("doi")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ResolverFailures.WithLabelValues("doi", "not_found")), 1e-9)

	m.RecordSourceRetry("crossref")
	m.RecordRateLimitWait("crossref")
	m.RecordCircuitBreakerTrip("scholar")
	m.RecordCircuitBreakerShortCircuit("scholar")
	assert.InDelta(t, 1, testutil.ToFloat64(m.SourceRetries.WithLabelValues("crossref")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CircuitBreakerTrips.WithLabelValues("scholar")), 1e-9)

	m.RecordClassification("SCI")
	assert.InDelta(t, 1, testutil.ToFloat64(m.ClassificationsTotal.WithLabelValues("SCI")), 1e-9)
}

func TestMetricsGatherable(t *testing.T) {
	m := NewMetrics("paperverify_gathertest")
	m.RecordVerificationStarted()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "paperverify_gathertest_verifications_started_total" {
			found = mf
		}
	}
	require.NotNil(t, found, "started counter must be exposed through the default registry")
	assert.Equal(t, dto.MetricType_COUNTER, found.GetType())
}
