package verify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/match"
	"github.com/scholarly/verification-service/internal/registries/doaj"
	"github.com/scholarly/verification-service/internal/registries/issnportal"
)

// ISSNResolver verifies a paper at the journal level. The ISSN is taken
// from the record's serial field, the identifier field when it holds an
// ISSN shape, or scanned out of the journal and abstract text. The
// open-access directory is tried first because its records are richer;
// the serial portal covers everything else.
type ISSNResolver struct {
	doaj   *doaj.Client
	portal *issnportal.Client
	logger zerolog.Logger
}

// NewISSNResolver creates the ISSN resolver. Either client may be nil to
// disable that source; at least one must be set.
func NewISSNResolver(doajClient *doaj.Client, portalClient *issnportal.Client, logger zerolog.Logger) *ISSNResolver {
	return &ISSNResolver{
		doaj:   doajClient,
		portal: portalClient,
		logger: logger.With().Str("resolver", "issn").Logger(),
	}
}

// Method implements Resolver.
func (r *ISSNResolver) Method() domain.ResolutionMethod { return domain.MethodISSN }

// Resolve looks the ISSN up in DOAJ, falling back to the ISSN Portal. A
// hit is scored by journal-name overlap; journal-level verification never
// confirms the individual article, so the score feeds a partial status at
// best unless the names match closely.
func (r *ISSNResolver) Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error) {
	issn := extractISSN(paper)
	if issn == "" {
		return nil, nil
	}
	if !domain.ValidISSN(issn) {
		return nil, domain.NewInvalidFormatError("issn", issn)
	}
	issn = domain.NormalizeISSN(issn)

	metadata, source, err := r.fetch(ctx, issn)
	if err != nil {
		return nil, err
	}

	confidence := match.TokenOverlap(paper.Journal, metadata.Journal)

	r.logger.Debug().
		Str("issn", issn).
		Str("source", string(source)).
		Float64("confidence", confidence).
		Msg("issn lookup resolved")

	return &domain.Candidate{
		Source:     source,
		Method:     domain.MethodISSN,
		Metadata:   metadata,
		Confidence: confidence,
	}, nil
}

func (r *ISSNResolver) fetch(ctx context.Context, issn string) (domain.Metadata, domain.SourceType, error) {
	var doajErr error
	if r.doaj != nil {
		metadata, err := r.doaj.FetchByISSN(ctx, issn)
		if err == nil {
			return metadata, domain.SourceDOAJ, nil
		}
		doajErr = err
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn().Err(err).Str("issn", issn).Msg("doaj lookup failed, trying issn portal")
		}
	}

	if r.portal == nil {
		if doajErr != nil {
			return domain.Metadata{}, "", doajErr
		}
		return domain.Metadata{}, "", domain.NewNotFoundError(string(domain.SourceDOAJ), issn)
	}

	metadata, portalErr := r.portal.FetchByISSN(ctx, issn)
	if portalErr != nil {
		return domain.Metadata{}, "", portalErr
	}
	return metadata, domain.SourceISSNPortal, nil
}

// extractISSN finds the ISSN to verify against, in decreasing order of
// trust: the serial field, an ISSN misfiled in the identifier field, then
// checksum-valid ISSNs scanned from the journal name and abstract.
func extractISSN(paper domain.Paper) string {
	if paper.ISSN != "" {
		return paper.ISSN
	}
	if domain.LooksLikeISSN(paper.DOI) {
		return paper.DOI
	}
	if found := domain.ExtractISSNs(paper.Journal); len(found) > 0 {
		return found[0]
	}
	if found := domain.ExtractISSNs(paper.Abstract); len(found) > 0 {
		return found[0]
	}
	return ""
}
