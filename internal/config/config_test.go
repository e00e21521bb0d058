package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "paperverify", cfg.Metrics.Namespace)

	assert.True(t, cfg.Sources.Crossref.Enabled)
	assert.Equal(t, "https://api.crossref.org/works", cfg.Sources.Crossref.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Sources.Crossref.Timeout)
	assert.Equal(t, time.Second, cfg.Sources.Crossref.MinInterval)
	assert.Equal(t, 3, cfg.Sources.Crossref.MaxRetries)

	assert.True(t, cfg.Sources.Scholar.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Sources.Scholar.MinInterval)
	assert.Equal(t, 15*time.Second, cfg.Sources.Scholar.Timeout)
	assert.Equal(t, time.Hour, cfg.Sources.Scholar.BlockCooldown)

	assert.Equal(t, "paper-verification-service/1.0", cfg.Sources.UserAgent)

	assert.True(t, cfg.Verification.EnrichCitations)
	assert.Equal(t, 100, cfg.Verification.MaxBatchSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAPERVERIFY_SERVER_HTTP_PORT", "9090")
	t.Setenv("PAPERVERIFY_LOGGING_LEVEL", "debug")
	t.Setenv("PAPERVERIFY_SOURCES_SCHOLAR_ENABLED", "false")
	t.Setenv("PAPERVERIFY_SOURCES_MAIL_TO", "ops@example.org")
	t.Setenv("PAPERVERIFY_VERIFICATION_MAX_BATCH_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Sources.Scholar.Enabled)
	assert.Equal(t, "ops@example.org", cfg.Sources.MailTo)
	assert.Equal(t, 25, cfg.Verification.MaxBatchSize)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("PAPERVERIFY_SERVER_HTTP_PORT", "70000")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid HTTP port")
	})

	t.Run("crossref cannot be disabled", func(t *testing.T) {
		t.Setenv("PAPERVERIFY_SOURCES_CROSSREF_ENABLED", "false")
		_, err := Load()
		assert.ErrorContains(t, err, "crossref source cannot be disabled")
	})
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "127.0.0.1", HTTPPort: 8080},
			Sources: SourcesConfig{
				Crossref: SourceConfig{
					Enabled:     true,
					BaseURL:     "https://api.crossref.org/works",
					Timeout:     10 * time.Second,
					MinInterval: time.Second,
					MaxRetries:  3,
				},
			},
			Verification: VerificationConfig{MaxBatchSize: 100},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("enabled source needs base url", func(t *testing.T) {
		cfg := base()
		cfg.Sources.DOAJ = SourceConfig{Enabled: true, Timeout: time.Second}
		assert.ErrorContains(t, cfg.Validate(), "base URL is required")
	})

	t.Run("enabled source needs positive timeout", func(t *testing.T) {
		cfg := base()
		cfg.Sources.Crossref.Timeout = 0
		assert.ErrorContains(t, cfg.Validate(), "timeout must be positive")
	})

	t.Run("disabled source skips checks", func(t *testing.T) {
		cfg := base()
		cfg.Sources.Scholar = SourceConfig{Enabled: false}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("batch size must be positive", func(t *testing.T) {
		cfg := base()
		cfg.Verification.MaxBatchSize = 0
		assert.ErrorContains(t, cfg.Validate(), "invalid max batch size")
	})
}
