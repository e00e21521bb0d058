// Package classify derives a journal quality classification from verified
// metadata: which indexing databases cover the journal, its ranking
// quartile, and a coarse impact level. Classification is pure rule
// evaluation over keyword tables and makes no network calls, so it is
// deterministic for a given input.
package classify

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/observability"
)

// Classifier evaluates the rule tables against a journal record.
type Classifier struct {
	rules     Rules
	quartiles *QuartileResolver
	logger    zerolog.Logger
	metrics   *observability.Metrics
}

// NewClassifier creates a classifier. metrics may be nil.
func NewClassifier(rules Rules, logger zerolog.Logger, metrics *observability.Metrics) *Classifier {
	return &Classifier{
		rules:     rules,
		quartiles: NewQuartileResolver(),
		logger:    logger.With().Str("component", "classifier").Logger(),
		metrics:   metrics,
	}
}

// Classify derives the classification for a journal. An empty journal and
// publisher yield the Unknown classification.
func (c *Classifier) Classify(journal, publisher string) domain.Classification {
	journalLower := strings.ToLower(strings.TrimSpace(journal))
	publisherLower := strings.ToLower(strings.TrimSpace(publisher))

	membership := c.membership(journalLower, publisherLower)
	quartile, impact, confidence := c.quartileAndImpact(journalLower, membership)

	classification := domain.Classification{
		IndexingStatus: indexingLabel(membership),
		Membership:     membership,
		Quartile:       quartile,
		Impact:         impact,
		ImpactFactor:   impact.Numeric(),
		Confidence:     confidence,
	}

	c.logger.Debug().
		Str("journal", journal).
		Str("indexing_status", classification.IndexingStatus).
		Str("quartile", string(quartile)).
		Str("impact", string(impact)).
		Msg("journal classified")
	if c.metrics != nil {
		c.metrics.RecordClassification(classification.IndexingStatus)
	}
	return classification
}

// membership evaluates each database's keyword table. Scopus also matches
// on the publisher, since Scopus coverage tracks publishers more than
// individual titles.
func (c *Classifier) membership(journal, publisher string) domain.Membership {
	m := domain.Membership{}
	for db, keywords := range c.rules.Journal {
		if journal != "" && containsAny(journal, keywords) {
			m[db] = true
		}
	}
	if !m[domain.IndexScopus] && publisher != "" && containsAny(publisher, c.rules.ScopusPublishers) {
		m[domain.IndexScopus] = true
	}
	return m
}

// quartileAndImpact assigns the quartile and impact band. Quartiles only
// apply to SCI/Scopus journals; everything else gets an impact band from
// its membership combination.
func (c *Classifier) quartileAndImpact(journal string, m domain.Membership) (domain.Quartile, domain.ImpactLevel, domain.ConfidenceLevel) {
	if m.TopTier() {
		quartile, category := c.quartiles.Resolve(journal)
		if category != CategoryGeneral {
			return quartile, impactForQuartile(quartile), domain.ConfidenceHigh
		}
		// No category bucket; fall back to membership alone.
		if m.Has(domain.IndexSCI) {
			return domain.Q1, domain.ImpactHigh, domain.ConfidenceHigh
		}
		return domain.Q2, domain.ImpactMedium, domain.ConfidenceHigh
	}

	switch {
	case m.Has(domain.IndexESCI):
		return domain.QuartileNA, domain.ImpactMedium, domain.ConfidenceHigh
	case m.Has(domain.IndexDOAJ):
		return domain.QuartileNA, domain.ImpactMedium, domain.ConfidenceHigh
	case m.Has(domain.IndexEI) && m.Has(domain.IndexScholar):
		return domain.QuartileNA, domain.ImpactMedium, domain.ConfidenceHigh
	case m.Has(domain.IndexPubMed):
		return domain.QuartileNA, domain.ImpactMedium, domain.ConfidenceHigh
	case m.Has(domain.IndexUGCCARE) && m.Has(domain.IndexScholar):
		return domain.QuartileNA, domain.ImpactMedium, domain.ConfidenceHigh
	case m.Has(domain.IndexConference):
		return domain.QuartileNA, domain.ImpactLow, domain.ConfidenceHigh
	case m.Has(domain.IndexScholar) && len(m) == 1:
		return domain.QuartileNA, domain.ImpactLow, domain.ConfidenceMedium
	case m.Has(domain.IndexPreprint):
		return domain.QuartileNA, domain.ImpactNA, domain.ConfidenceHigh
	}
	return domain.QuartileNA, domain.ImpactNA, domain.ConfidenceLow
}

func impactForQuartile(q domain.Quartile) domain.ImpactLevel {
	switch q {
	case domain.Q1:
		return domain.ImpactHigh
	case domain.Q2:
		return domain.ImpactMedium
	case domain.Q3:
		return domain.ImpactLow
	default:
		return domain.ImpactNA
	}
}

// indexingLabel formats the display label from a membership set. Higher
// tiers win; a handful of common combinations get composite labels.
func indexingLabel(m domain.Membership) string {
	switch {
	case len(m) == 0:
		return "Unknown"
	case m.Has(domain.IndexSCI) && m.Has(domain.IndexScopus):
		return "SCI + Scopus"
	case m.Has(domain.IndexSCI):
		return "SCI"
	case m.Has(domain.IndexScopus) && m.Has(domain.IndexESCI):
		return "Scopus + ESCI"
	case m.Has(domain.IndexScopus):
		return "Scopus"
	case m.Has(domain.IndexESCI) && m.Has(domain.IndexDOAJ):
		return "ESCI + DOAJ"
	case m.Has(domain.IndexESCI):
		return "ESCI"
	case m.Has(domain.IndexDOAJ) && m.Has(domain.IndexPubMed):
		return "DOAJ + PubMed"
	case m.Has(domain.IndexDOAJ):
		return "DOAJ"
	case m.Has(domain.IndexEI) && m.Has(domain.IndexScholar):
		return "EI + Google Scholar"
	case m.Has(domain.IndexEI):
		return "EI"
	case m.Has(domain.IndexPubMed):
		return "PubMed"
	case m.Has(domain.IndexUGCCARE) && m.Has(domain.IndexScholar):
		return "UGC CARE + Google Scholar"
	case m.Has(domain.IndexUGCCARE):
		return "UGC CARE"
	case m.Has(domain.IndexConference):
		return "Conference Proceedings"
	case m.Has(domain.IndexPreprint):
		return "Preprint"
	case m.Has(domain.IndexScholar):
		return "Google Scholar"
	}

	parts := make([]string, 0, len(m))
	for _, db := range m.Databases() {
		parts = append(parts, string(db))
	}
	return strings.Join(parts, " + ")
}
