package verify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries/crossref"
	"github.com/scholarly/verification-service/internal/registries/openalex"
)

// CitationEnricher fills in the citation count on verified metadata,
// trying the identifier registry's is-referenced-by count first and
// OpenAlex as the fallback. Enrichment is best effort: a failed lookup
// never fails the verification it decorates.
type CitationEnricher struct {
	crossref *crossref.Client
	openalex *openalex.Client
	logger   zerolog.Logger
}

// NewCitationEnricher creates an enricher. Either client may be nil to
// disable that source.
func NewCitationEnricher(crossrefClient *crossref.Client, openalexClient *openalex.Client, logger zerolog.Logger) *CitationEnricher {
	return &CitationEnricher{
		crossref: crossrefClient,
		openalex: openalexClient,
		logger:   logger.With().Str("component", "citation_enricher").Logger(),
	}
}

// Enrich sets metadata.CitationCount when a source has a count for the
// work. Metadata that already carries a count is left alone.
func (e *CitationEnricher) Enrich(ctx context.Context, metadata *domain.Metadata) {
	if metadata.CitationCount > 0 {
		return
	}
	if metadata.DOI == "" && metadata.Title == "" {
		return
	}

	if e.crossref != nil && metadata.DOI != "" {
		count, err := e.crossref.CitationCount(ctx, metadata.DOI)
		if err == nil {
			metadata.CitationCount = count
			return
		}
		e.logger.Debug().Err(err).Str("doi", metadata.DOI).Msg("crossref citation lookup failed")
	}

	if e.openalex != nil {
		count, err := e.openalex.CitationCount(ctx, metadata.DOI, metadata.Title)
		if err == nil {
			metadata.CitationCount = count
			return
		}
		e.logger.Debug().Err(err).Str("doi", metadata.DOI).Msg("openalex citation lookup failed")
	}
}
