package verify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/match"
	"github.com/scholarly/verification-service/internal/registries/crossref"
)

// DOIResolver verifies a paper by exact DOI lookup. A hit is scored by
// title overlap between the stored record and the registry record, so a
// wrong DOI pointing at an unrelated work does not verify.
type DOIResolver struct {
	crossref *crossref.Client
	logger   zerolog.Logger
}

// NewDOIResolver creates the DOI resolver.
func NewDOIResolver(client *crossref.Client, logger zerolog.Logger) *DOIResolver {
	return &DOIResolver{crossref: client, logger: logger.With().Str("resolver", "doi").Logger()}
}

// Method implements Resolver.
func (r *DOIResolver) Method() domain.ResolutionMethod { return domain.MethodDOI }

// Resolve looks the DOI up in the registry. Papers without a DOI, or
// whose identifier field holds an ISSN, are skipped so the cascade can
// continue; the orchestrator handles the ISSN reroute.
func (r *DOIResolver) Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error) {
	if paper.DOI == "" {
		return nil, nil
	}

	doi := domain.NormalizeDOI(paper.DOI)
	if doi == "" {
		if domain.LooksLikeISSN(paper.DOI) {
			return nil, nil
		}
		return nil, domain.NewInvalidFormatError("doi", paper.DOI)
	}

	metadata, err := r.crossref.FetchByDOI(ctx, doi)
	if err != nil {
		return nil, err
	}

	confidence := match.TokenOverlap(paper.Title, metadata.Title)

	// Keep the stored title unless the registry title is near-certainly
	// the same work.
	if confidence < domain.VerifiedThreshold && paper.Title != "" {
		metadata.Title = paper.Title
	}

	r.logger.Debug().
		Str("doi", doi).
		Float64("confidence", confidence).
		Msg("doi lookup resolved")

	return &domain.Candidate{
		Source:     domain.SourceCrossref,
		Method:     domain.MethodDOI,
		Metadata:   metadata,
		Confidence: confidence,
	}, nil
}
