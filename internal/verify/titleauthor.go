package verify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/match"
	"github.com/scholarly/verification-service/internal/registries/crossref"
)

const (
	// minSearchTitleLength is the shortest title worth a fuzzy search.
	minSearchTitleLength = 10

	// searchRows is how many candidates to fetch per search.
	searchRows = 3

	// doiFloor is the minimum score for a candidate that carries a DOI.
	// A registry hit with a DOI is a real work even when title wording
	// diverges.
	doiFloor = 0.4

	// completenessWeight halves the completeness bonus before adding it.
	completenessWeight = 0.5

	// confidenceCap bounds the combined score. Fuzzy search can never be
	// as certain as an exact identifier match.
	confidenceCap = 0.95
)

// TitleAuthorResolver verifies a paper by fuzzy bibliographic search when
// no usable identifier exists. Candidates are scored on title overlap and
// first-author containment, then boosted by how complete the returned
// record is.
type TitleAuthorResolver struct {
	crossref *crossref.Client
	logger   zerolog.Logger
}

// NewTitleAuthorResolver creates the title+author resolver.
func NewTitleAuthorResolver(client *crossref.Client, logger zerolog.Logger) *TitleAuthorResolver {
	return &TitleAuthorResolver{
		crossref: client,
		logger:   logger.With().Str("resolver", "title_author").Logger(),
	}
}

// Method implements Resolver.
func (r *TitleAuthorResolver) Method() domain.ResolutionMethod { return domain.MethodTitleAuthor }

// Resolve searches the registry and scores the best candidate. Titles
// shorter than ten characters are skipped: they match too many works to
// mean anything.
func (r *TitleAuthorResolver) Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error) {
	if len(paper.Title) < minSearchTitleLength {
		return nil, nil
	}

	results, err := r.crossref.SearchByTitleAuthor(ctx, paper.Title, paper.Authors, searchRows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, domain.NewNotFoundError(string(domain.SourceCrossref), paper.Title)
	}

	best, score := pickBest(paper, results)
	if score < doiFloor && best.DOI != "" {
		score = doiFloor
	}
	confidence := score + completeness(best)*completenessWeight
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	// Keep the stored title unless the combined score makes the registry
	// record the better source of truth.
	if confidence < domain.PartialFloor && paper.Title != "" {
		best.Title = paper.Title
	}

	r.logger.Debug().
		Str("doi", best.DOI).
		Float64("confidence", confidence).
		Int("candidates", len(results)).
		Msg("title search resolved")

	return &domain.Candidate{
		Source:     domain.SourceCrossref,
		Method:     domain.MethodTitleAuthor,
		Metadata:   best,
		Confidence: confidence,
	}, nil
}

// pickBest scores every candidate and returns the highest scorer.
func pickBest(paper domain.Paper, results []domain.Metadata) (domain.Metadata, float64) {
	best := results[0]
	bestScore := -1.0
	for _, m := range results {
		score := match.TitleAuthorScore(paper.Title, paper.Authors, m.Title, m.Authors)
		if score > bestScore {
			best = m
			bestScore = score
		}
	}
	return best, bestScore
}

// completeness scores how much of the record the registry filled in.
func completeness(m domain.Metadata) float64 {
	var bonus float64
	if m.DOI != "" {
		bonus += 0.15
	}
	if m.Journal != "" {
		bonus += 0.1
	}
	if m.Year != 0 {
		bonus += 0.1
	}
	if m.Authors != "" {
		bonus += 0.1
	}
	return bonus
}
