// Package config provides configuration management for the paper
// verification service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the paper verification service.
type Config struct {
	// Server contains HTTP server settings.
	Server ServerConfig `mapstructure:"server"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
	// Metrics contains Prometheus metrics exposure settings.
	Metrics MetricsConfig `mapstructure:"metrics"`
	// Sources contains per-registry client settings.
	Sources SourcesConfig `mapstructure:"sources"`
	// Verification contains verification pipeline settings.
	Verification VerificationConfig `mapstructure:"verification"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	// Host is the address to bind the server to (default: 0.0.0.0).
	Host string `mapstructure:"host"`
	// HTTPPort is the HTTP server port (default: 8080).
	HTTPPort int `mapstructure:"http_port"`
	// ReadTimeout is the maximum duration for reading request body.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// WriteTimeout is the maximum duration for writing response.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Enabled enables metrics collection and exposure.
	Enabled bool `mapstructure:"enabled"`
	// Path is the HTTP path for metrics endpoint.
	Path string `mapstructure:"path"`
	// Namespace is the metric name prefix.
	Namespace string `mapstructure:"namespace"`
}

// SourcesConfig holds configuration for all external registries.
type SourcesConfig struct {
	// Crossref contains identifier registry settings.
	Crossref SourceConfig `mapstructure:"crossref"`
	// DOAJ contains open-access directory settings.
	DOAJ SourceConfig `mapstructure:"doaj"`
	// ISSNPortal contains serial registry settings.
	ISSNPortal SourceConfig `mapstructure:"issn_portal"`
	// Scholar contains Google Scholar settings.
	Scholar SourceConfig `mapstructure:"scholar"`
	// OpenAlex contains OpenAlex settings for citation enrichment.
	OpenAlex SourceConfig `mapstructure:"openalex"`
	// UserAgent identifies the service to every registry.
	UserAgent string `mapstructure:"user_agent"`
	// MailTo is the contact address sent to registries that ask for one.
	MailTo string `mapstructure:"mail_to"`
}

// SourceConfig holds configuration for a single registry client.
type SourceConfig struct {
	// Enabled controls whether this source is used.
	Enabled bool `mapstructure:"enabled"`
	// BaseURL is the API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Timeout is the per-request timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// MinInterval is the minimum spacing between consecutive requests.
	MinInterval time.Duration `mapstructure:"min_interval"`
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries"`
	// BlockCooldown is how long the source stays off-limits after a block
	// page is detected. Only meaningful for bot-defended sources.
	BlockCooldown time.Duration `mapstructure:"block_cooldown"`
}

// VerificationConfig holds verification pipeline settings.
type VerificationConfig struct {
	// EnrichCitations enables citation-count enrichment on verified
	// results.
	EnrichCitations bool `mapstructure:"enrich_citations"`
	// MaxBatchSize caps how many papers one batch request may carry.
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

// HTTPAddress returns the HTTP server address.
func (c *ServerConfig) HTTPAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.HTTPPort)
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("PAPERVERIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/paper-verification-service")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "paperverify")

	// Source defaults - Crossref
	v.SetDefault("sources.crossref.enabled", true)
	v.SetDefault("sources.crossref.base_url", "https://api.crossref.org/works")
	v.SetDefault("sources.crossref.timeout", "10s")
	v.SetDefault("sources.crossref.min_interval", "1s")
	v.SetDefault("sources.crossref.max_retries", 3)

	// Source defaults - DOAJ
	v.SetDefault("sources.doaj.enabled", true)
	v.SetDefault("sources.doaj.base_url", "https://doaj.org/api/search/journals")
	v.SetDefault("sources.doaj.timeout", "10s")
	v.SetDefault("sources.doaj.min_interval", "1s")
	v.SetDefault("sources.doaj.max_retries", 3)

	// Source defaults - ISSN Portal
	v.SetDefault("sources.issn_portal.enabled", true)
	v.SetDefault("sources.issn_portal.base_url", "https://portal.issn.org/api/search")
	v.SetDefault("sources.issn_portal.timeout", "10s")
	v.SetDefault("sources.issn_portal.min_interval", "1s")
	v.SetDefault("sources.issn_portal.max_retries", 3)

	// Source defaults - Google Scholar. Slower spacing and a longer
	// timeout than the API-backed sources; blocks cool down for an hour.
	v.SetDefault("sources.scholar.enabled", true)
	v.SetDefault("sources.scholar.base_url", "https://scholar.google.com/scholar")
	v.SetDefault("sources.scholar.timeout", "15s")
	v.SetDefault("sources.scholar.min_interval", "5s")
	v.SetDefault("sources.scholar.max_retries", 3)
	v.SetDefault("sources.scholar.block_cooldown", "1h")

	// Source defaults - OpenAlex
	v.SetDefault("sources.openalex.enabled", true)
	v.SetDefault("sources.openalex.base_url", "https://api.openalex.org/works")
	v.SetDefault("sources.openalex.timeout", "15s")
	v.SetDefault("sources.openalex.min_interval", "1s")
	v.SetDefault("sources.openalex.max_retries", 3)

	v.SetDefault("sources.user_agent", "paper-verification-service/1.0")
	v.SetDefault("sources.mail_to", "")

	// Verification defaults
	v.SetDefault("verification.enrich_citations", true)
	v.SetDefault("verification.max_batch_size", 100)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.Server.HTTPPort)
	}

	for name, src := range map[string]SourceConfig{
		"crossref":    c.Sources.Crossref,
		"doaj":        c.Sources.DOAJ,
		"issn_portal": c.Sources.ISSNPortal,
		"scholar":     c.Sources.Scholar,
		"openalex":    c.Sources.OpenAlex,
	} {
		if !src.Enabled {
			continue
		}
		if src.BaseURL == "" {
			return fmt.Errorf("source %s: base URL is required", name)
		}
		if src.Timeout <= 0 {
			return fmt.Errorf("source %s: timeout must be positive", name)
		}
		if src.MinInterval < 0 {
			return fmt.Errorf("source %s: min interval must not be negative", name)
		}
		if src.MaxRetries < 0 {
			return fmt.Errorf("source %s: max retries must not be negative", name)
		}
	}

	if !c.Sources.Crossref.Enabled {
		return fmt.Errorf("the crossref source cannot be disabled: both the identifier and title resolvers depend on it")
	}
	if c.Verification.MaxBatchSize <= 0 {
		return fmt.Errorf("invalid max batch size: %d", c.Verification.MaxBatchSize)
	}
	return nil
}
