package verify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarly/verification-service/internal/classify"
	"github.com/scholarly/verification-service/internal/domain"
)

// fakeResolver returns a canned candidate or error and records the papers
// it was asked to resolve.
type fakeResolver struct {
	method    domain.ResolutionMethod
	candidate *domain.Candidate
	err       error
	seen      []domain.Paper
}

func (f *fakeResolver) Method() domain.ResolutionMethod { return f.method }

func (f *fakeResolver) Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error) {
	f.seen = append(f.seen, paper)
	return f.candidate, f.err
}

func newTestOrchestrator(resolvers ...Resolver) *Orchestrator {
	classifier := classify.NewClassifier(classify.DefaultRules(), zerolog.Nop(), nil)
	return NewOrchestrator(resolvers, classifier, nil, zerolog.Nop(), nil)
}

func candidateWith(method domain.ResolutionMethod, confidence float64, metadata domain.Metadata) *domain.Candidate {
	return &domain.Candidate{
		Source:     domain.SourceCrossref,
		Method:     method,
		Metadata:   metadata,
		Confidence: confidence,
	}
}

func testPaper() domain.Paper {
	return domain.Paper{
		ID:      uuid.New(),
		Title:   "Deep learning",
		Authors: "Y LeCun, Y Bengio, G Hinton",
	}
}

func TestVerifyShortCircuits(t *testing.T) {
	metadata := domain.Metadata{Title: "Deep learning", Journal: "Nature", DOI: "10.1038/nature14539"}
	first := &fakeResolver{
		method:    domain.MethodDOI,
		candidate: candidateWith(domain.MethodDOI, 0.95, metadata),
	}
	second := &fakeResolver{method: domain.MethodTitleAuthor}

	result := newTestOrchestrator(first, second).Verify(context.Background(), testPaper())

	assert.Equal(t, domain.StatusVerified, result.Status)
	assert.Equal(t, domain.MethodDOI, result.MethodUsed)
	assert.InDelta(t, 0.95, result.ConfidenceScore, 1e-9)
	assert.Len(t, first.seen, 1)
	assert.Empty(t, second.seen, "cascade must stop at the first confident candidate")
}

func TestVerifyKeepsBestCandidate(t *testing.T) {
	weak := &fakeResolver{
		method:    domain.MethodDOI,
		candidate: candidateWith(domain.MethodDOI, 0.2, domain.Metadata{Title: "Weak match"}),
	}
	better := &fakeResolver{
		method:    domain.MethodTitleAuthor,
		candidate: candidateWith(domain.MethodTitleAuthor, 0.45, domain.Metadata{Title: "Better match", Journal: "Nature"}),
	}

	result := newTestOrchestrator(weak, better).Verify(context.Background(), testPaper())

	assert.Equal(t, domain.StatusPartial, result.Status)
	assert.Equal(t, domain.MethodTitleAuthor, result.MethodUsed)
	// Below the partial threshold but with usable metadata: floored.
	assert.InDelta(t, domain.PartialFloor, result.ConfidenceScore, 1e-9)
	assert.Equal(t, "Better match", result.VerifiedMetadata.Title)
}

func TestVerifyFoldsResolverErrors(t *testing.T) {
	failing := &fakeResolver{
		method: domain.MethodDOI,
		err:    domain.NewNotFoundError("crossref", "10.9999/missing"),
	}
	succeeding := &fakeResolver{
		method:    domain.MethodTitleAuthor,
		candidate: candidateWith(domain.MethodTitleAuthor, 0.9, domain.Metadata{Title: "Deep learning"}),
	}

	result := newTestOrchestrator(failing, succeeding).Verify(context.Background(), testPaper())

	assert.Equal(t, domain.StatusVerified, result.Status)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "doi:")
	assert.Contains(t, result.Errors[0], "no record")
}

func TestVerifyAllResolversFail(t *testing.T) {
	result := newTestOrchestrator(
		&fakeResolver{method: domain.MethodDOI, err: domain.NewNotFoundError("crossref", "x")},
		&fakeResolver{method: domain.MethodScholar, err: domain.NewNotFoundError("scholar", "y")},
	).Verify(context.Background(), testPaper())

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Zero(t, result.ConfidenceScore)
	assert.Len(t, result.Errors, 2)
	assert.Empty(t, result.Suggestions)
	assert.True(t, result.VerifiedMetadata.IsEmpty())
}

func TestVerifySkipsInapplicableResolvers(t *testing.T) {
	skipped := &fakeResolver{method: domain.MethodDOI}
	hit := &fakeResolver{
		method:    domain.MethodISSN,
		candidate: candidateWith(domain.MethodISSN, 0.8, domain.Metadata{Journal: "Nature"}),
	}

	result := newTestOrchestrator(skipped, hit).Verify(context.Background(), testPaper())

	assert.Equal(t, domain.StatusVerified, result.Status)
	assert.Equal(t, domain.MethodISSN, result.MethodUsed)
	assert.Empty(t, result.Errors, "a skipped resolver is not an error")
}

func TestVerifyClassifiesResolvedJournal(t *testing.T) {
	hit := &fakeResolver{
		method:    domain.MethodDOI,
		candidate: candidateWith(domain.MethodDOI, 0.9, domain.Metadata{Title: "Deep learning", Journal: "Nature", Publisher: "Springer Nature"}),
	}

	result := newTestOrchestrator(hit).Verify(context.Background(), testPaper())
	assert.Equal(t, "SCI + Scopus", result.VerifiedMetadata.IndexingStatus)
}

func TestVerifyClassifiesStoredJournalWhenUnresolved(t *testing.T) {
	failing := &fakeResolver{
		method: domain.MethodDOI,
		err:    domain.NewNotFoundError("crossref", "10.9999/missing"),
	}
	paper := testPaper()
	paper.Journal = "Nature"

	result := newTestOrchestrator(failing).Verify(context.Background(), paper)

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, "SCI", result.VerifiedMetadata.IndexingStatus)
}

func TestVerifyReroutesISSNInIdentifierField(t *testing.T) {
	probe := &fakeResolver{method: domain.MethodISSN}
	paper := testPaper()
	paper.DOI = "2049-3630"

	newTestOrchestrator(probe).Verify(context.Background(), paper)

	require.Len(t, probe.seen, 1)
	assert.Equal(t, "2049-3630", probe.seen[0].ISSN)
}

func TestVerifyStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	canceling := &cancelingResolver{cancel: cancel}
	after := &fakeResolver{method: domain.MethodScholar}

	result := newTestOrchestrator(canceling, after).Verify(ctx, testPaper())

	assert.Equal(t, domain.StatusFailed, result.Status)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], context.Canceled.Error())
	assert.Empty(t, after.seen)
}

// cancelingResolver cancels its context mid-resolve, the way a timed-out
// registry call surfaces.
type cancelingResolver struct {
	cancel context.CancelFunc
}

func (c *cancelingResolver) Method() domain.ResolutionMethod { return domain.MethodDOI }

func (c *cancelingResolver) Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error) {
	c.cancel()
	return nil, ctx.Err()
}

func TestVerifyBatch(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		hit := &fakeResolver{
			method:    domain.MethodDOI,
			candidate: candidateWith(domain.MethodDOI, 0.9, domain.Metadata{Title: "Deep learning"}),
		}
		orchestrator := newTestOrchestrator(hit)

		papers := []domain.Paper{testPaper(), testPaper(), testPaper()}
		results := orchestrator.VerifyBatch(context.Background(), papers)

		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, papers[i].ID, r.PaperID)
		}
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := newTestOrchestrator(&fakeResolver{method: domain.MethodDOI}).
			VerifyBatch(ctx, []domain.Paper{testPaper(), testPaper()})
		assert.Empty(t, results)
	})
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "not_found", failureKind(domain.NewNotFoundError("crossref", "x")))
	assert.Equal(t, "invalid_format", failureKind(domain.NewInvalidFormatError("doi", "x")))
	assert.Equal(t, "blocked", failureKind(domain.ErrBlocked))
	assert.Equal(t, "rate_limited", failureKind(domain.ErrRateLimited))
	assert.Equal(t, "timeout", failureKind(domain.ErrTimeout))
	assert.Equal(t, "unavailable", failureKind(domain.ErrServiceUnavailable))
	assert.Equal(t, "transport", failureKind(assert.AnError))
}
