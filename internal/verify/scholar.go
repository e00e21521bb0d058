package verify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/match"
	"github.com/scholarly/verification-service/internal/registries/scholar"
)

// scholarMinScore is the minimum title overlap for a search hit to count
// as the same work. Scholar search is broad; below this the first result
// is usually a different paper sharing a few words.
const scholarMinScore = 0.5

// ScholarResolver is the last resort in the cascade. It searches a
// bot-defended web source, so it runs only when no registry-backed
// method produced a confident match and skips itself entirely while the
// source is under a block cooldown.
type ScholarResolver struct {
	scholar *scholar.Client
	logger  zerolog.Logger
}

// NewScholarResolver creates the scholar resolver.
func NewScholarResolver(client *scholar.Client, logger zerolog.Logger) *ScholarResolver {
	return &ScholarResolver{
		scholar: client,
		logger:  logger.With().Str("resolver", "scholar").Logger(),
	}
}

// Method implements Resolver.
func (r *ScholarResolver) Method() domain.ResolutionMethod { return domain.MethodScholar }

// Resolve searches for the title and scores the first organic result.
// Low-overlap hits are reported as not found rather than adopted: a weak
// scholar match is worse than no match.
func (r *ScholarResolver) Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error) {
	if paper.Title == "" {
		return nil, nil
	}
	if r.scholar.Blocked() {
		r.logger.Debug().Msg("scholar under block cooldown, skipping")
		return nil, nil
	}

	metadata, err := r.scholar.Search(ctx, paper.Title, paper.Authors)
	if err != nil {
		return nil, err
	}

	confidence := match.TokenOverlap(paper.Title, metadata.Title)
	if confidence < scholarMinScore {
		r.logger.Debug().
			Float64("score", confidence).
			Msg("scholar hit below match threshold, discarding")
		return nil, domain.NewNotFoundError(string(domain.SourceScholar), paper.Title)
	}

	return &domain.Candidate{
		Source:     domain.SourceScholar,
		Method:     domain.MethodScholar,
		Metadata:   metadata,
		Confidence: confidence,
	}, nil
}
