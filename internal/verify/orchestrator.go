package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/classify"
	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/observability"
)

// Orchestrator runs the verification cascade over a fixed resolver order
// and folds the winning candidate into a final result. The first
// candidate whose confidence clears the partial threshold short-circuits
// the cascade; otherwise the best-scoring candidate across all methods is
// kept.
type Orchestrator struct {
	resolvers  []Resolver
	classifier *classify.Classifier
	enricher   *CitationEnricher
	logger     zerolog.Logger
	metrics    *observability.Metrics
}

// NewOrchestrator creates an orchestrator. enricher and metrics may be
// nil; the classifier is required because every non-failed result carries
// an indexing status.
func NewOrchestrator(resolvers []Resolver, classifier *classify.Classifier, enricher *CitationEnricher, logger zerolog.Logger, metrics *observability.Metrics) *Orchestrator {
	return &Orchestrator{
		resolvers:  resolvers,
		classifier: classifier,
		enricher:   enricher,
		logger:     logger.With().Str("component", "orchestrator").Logger(),
		metrics:    metrics,
	}
}

// Verify runs the cascade for one paper. It never returns an error:
// lookup failures are folded into the result's Errors and the paper ends
// up failed when nothing resolved.
func (o *Orchestrator) Verify(ctx context.Context, paper domain.Paper) domain.VerificationResult {
	start := time.Now()
	if o.metrics != nil {
		o.metrics.RecordVerificationStarted()
	}
	logger := observability.WithPaperContext(o.logger, paper.ID.String(), paper.DOI)

	paper = reroute(paper, logger)

	result := domain.VerificationResult{
		PaperID: paper.ID,
		Status:  domain.StatusPending,
	}
	var best *domain.Candidate

	for _, resolver := range o.resolvers {
		method := resolver.Method()
		if o.metrics != nil {
			o.metrics.RecordResolverAttempt(string(method))
		}

		candidate, err := resolver.Resolve(ctx, paper)
		if err != nil {
			if ctx.Err() != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", method, ctx.Err()))
				break
			}
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", method, err))
			if o.metrics != nil {
				o.metrics.RecordResolverFailure(string(method), failureKind(err))
			}
			logger.Warn().Err(err).Str("method", string(method)).Msg("resolver failed")
			continue
		}
		if candidate == nil {
			continue
		}

		if candidate.Confidence >= domain.PartialThreshold {
			best = candidate
			break
		}
		if best == nil || candidate.Confidence > best.Confidence {
			best = candidate
		}
	}

	if best != nil {
		result.MethodUsed = best.Method
		result.ConfidenceScore = best.Confidence
		result.VerifiedMetadata = best.Metadata
	}

	// Classify whatever journal was resolved; when the resolvers came
	// back empty-handed, the stored fields are still worth classifying.
	journal, publisher := result.VerifiedMetadata.Journal, result.VerifiedMetadata.Publisher
	if journal == "" && publisher == "" {
		journal, publisher = paper.Journal, paper.Publisher
	}
	if journal != "" || publisher != "" {
		classification := o.classifier.Classify(journal, publisher)
		result.VerifiedMetadata.IndexingStatus = classification.IndexingStatus
	}

	result.Status, result.ConfidenceScore = domain.StatusForConfidence(result.ConfidenceScore, result.VerifiedMetadata)

	if result.Status != domain.StatusFailed {
		result.Suggestions = buildSuggestions(result.MethodUsed, paper, result.VerifiedMetadata)
		if o.enricher != nil {
			o.enricher.Enrich(ctx, &result.VerifiedMetadata)
		}
	}

	logger.Info().
		Str("status", string(result.Status)).
		Str("method", string(result.MethodUsed)).
		Float64("confidence", result.ConfidenceScore).
		Dur("elapsed", time.Since(start)).
		Msg("verification finished")
	if o.metrics != nil {
		o.metrics.RecordVerificationFinished(string(result.Status), result.ConfidenceScore, time.Since(start).Seconds())
	}
	return result
}

// VerifyBatch verifies papers sequentially in input order. Sequential on
// purpose: the registries behind the resolvers are rate limited per
// source, so parallel papers would only queue on the limiters and hit the
// bot-defended source harder.
func (o *Orchestrator) VerifyBatch(ctx context.Context, papers []domain.Paper) []domain.VerificationResult {
	results := make([]domain.VerificationResult, 0, len(papers))
	for _, paper := range papers {
		if ctx.Err() != nil {
			break
		}
		results = append(results, o.Verify(ctx, paper))
	}
	return results
}

// reroute moves an ISSN misfiled in the identifier field over to the
// serial field so the serial resolver can use it.
func reroute(paper domain.Paper, logger zerolog.Logger) domain.Paper {
	if paper.ISSN == "" && domain.LooksLikeISSN(paper.DOI) {
		paper.ISSN = paper.DOI
		logger.Info().
			Str("reroute", "doi_field_issn").
			Str("value", paper.DOI).
			Msg("identifier field holds an issn, rerouting to serial lookup")
	}
	return paper
}

// failureKind buckets resolver errors for the failure metric.
func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "invalid_format"
	case errors.Is(err, domain.ErrBlocked):
		return "blocked"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "unavailable"
	default:
		return "transport"
	}
}
