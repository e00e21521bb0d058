// Package main provides the entry point for the paper verification
// service HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/scholarly/verification-service/internal/classify"
	"github.com/scholarly/verification-service/internal/config"
	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/observability"
	"github.com/scholarly/verification-service/internal/registries"
	"github.com/scholarly/verification-service/internal/registries/crossref"
	"github.com/scholarly/verification-service/internal/registries/doaj"
	"github.com/scholarly/verification-service/internal/registries/issnportal"
	"github.com/scholarly/verification-service/internal/registries/openalex"
	"github.com/scholarly/verification-service/internal/registries/scholar"
	httpserver "github.com/scholarly/verification-service/internal/server/http"
	"github.com/scholarly/verification-service/internal/verify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("paper-verification-service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}

	registry := registries.NewRegistry()
	fetcher := func(source string, src config.SourceConfig, blockSignatures []string) *registries.Client {
		client := registries.NewClient(registries.ClientConfig{
			Source:          source,
			MinInterval:     src.MinInterval,
			Timeout:         src.Timeout,
			MaxRetries:      src.MaxRetries,
			UserAgent:       cfg.Sources.UserAgent,
			BlockSignatures: blockSignatures,
			BlockCooldown:   src.BlockCooldown,
			Logger:          logger,
			Metrics:         metrics,
		})
		registry.Register(client)
		return client
	}

	// Crossref backs both the identifier and title resolvers; the rest
	// are optional.
	crossrefClient := crossref.New(
		crossref.Config{BaseURL: cfg.Sources.Crossref.BaseURL},
		fetcher(string(domain.SourceCrossref), cfg.Sources.Crossref, nil),
	)

	resolvers := []verify.Resolver{
		verify.NewDOIResolver(crossrefClient, logger),
	}
	if cfg.Sources.DOAJ.Enabled || cfg.Sources.ISSNPortal.Enabled {
		var doajClient *doaj.Client
		if cfg.Sources.DOAJ.Enabled {
			doajClient = doaj.New(
				doaj.Config{BaseURL: cfg.Sources.DOAJ.BaseURL},
				fetcher(string(domain.SourceDOAJ), cfg.Sources.DOAJ, nil),
			)
		}
		var portalClient *issnportal.Client
		if cfg.Sources.ISSNPortal.Enabled {
			portalClient = issnportal.New(
				issnportal.Config{BaseURL: cfg.Sources.ISSNPortal.BaseURL},
				fetcher(string(domain.SourceISSNPortal), cfg.Sources.ISSNPortal, nil),
			)
		}
		resolvers = append(resolvers, verify.NewISSNResolver(doajClient, portalClient, logger))
	}
	resolvers = append(resolvers, verify.NewTitleAuthorResolver(crossrefClient, logger))
	if cfg.Sources.Scholar.Enabled {
		scholarClient := scholar.New(
			scholar.Config{BaseURL: cfg.Sources.Scholar.BaseURL},
			fetcher(string(domain.SourceScholar), cfg.Sources.Scholar, scholar.BlockSignatures),
		)
		resolvers = append(resolvers, verify.NewScholarResolver(scholarClient, logger))
	}

	classifier := classify.NewClassifier(classify.DefaultRules(), logger, metrics)

	var enricher *verify.CitationEnricher
	if cfg.Verification.EnrichCitations {
		var openalexClient *openalex.Client
		if cfg.Sources.OpenAlex.Enabled {
			openalexClient = openalex.New(
				openalex.Config{BaseURL: cfg.Sources.OpenAlex.BaseURL, MailTo: cfg.Sources.MailTo},
				fetcher(string(domain.SourceOpenAlex), cfg.Sources.OpenAlex, nil),
			)
		}
		enricher = verify.NewCitationEnricher(crossrefClient, openalexClient, logger)
	}

	orchestrator := verify.NewOrchestrator(resolvers, classifier, enricher, logger, metrics)

	httpSrv := httpserver.NewServer(httpserver.Config{
		Address:         cfg.Server.HTTPAddress(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsPath:     cfg.Metrics.Path,
		MaxBatchSize:    cfg.Verification.MaxBatchSize,
	}, orchestrator, classifier, registry, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info().
		Str("http_address", cfg.Server.HTTPAddress()).
		Strs("sources", registry.Sources()).
		Msg("paper-verification-service is ready")

	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	logger.Info().Msg("shutting down paper-verification-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("paper-verification-service shutdown complete")
	return nil
}
