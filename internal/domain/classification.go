package domain

// IndexingDatabase is one bibliographic registry used as a quality signal.
type IndexingDatabase string

// Known indexing databases, from top-tier citation indexes down to
// generic discovery services.
const (
	IndexSCI        IndexingDatabase = "SCI"
	IndexScopus     IndexingDatabase = "Scopus"
	IndexESCI       IndexingDatabase = "ESCI"
	IndexDOAJ       IndexingDatabase = "DOAJ"
	IndexEI         IndexingDatabase = "EI"
	IndexPubMed     IndexingDatabase = "PubMed"
	IndexUGCCARE    IndexingDatabase = "UGC CARE"
	IndexScholar    IndexingDatabase = "Google Scholar"
	IndexConference IndexingDatabase = "Conference"
	IndexPreprint   IndexingDatabase = "Preprint"
)

// Membership is the set of indexing databases a journal matched.
type Membership map[IndexingDatabase]bool

// Has reports whether the database is in the membership set.
func (m Membership) Has(db IndexingDatabase) bool {
	return m[db]
}

// TopTier reports whether the journal is SCI or Scopus indexed. Quartiles
// are assigned only to top-tier journals.
func (m Membership) TopTier() bool {
	return m[IndexSCI] || m[IndexScopus]
}

// Databases returns the membership as a slice in a fixed display order.
func (m Membership) Databases() []IndexingDatabase {
	order := []IndexingDatabase{
		IndexSCI, IndexScopus, IndexESCI, IndexDOAJ, IndexEI,
		IndexPubMed, IndexUGCCARE, IndexScholar, IndexConference, IndexPreprint,
	}
	var out []IndexingDatabase
	for _, db := range order {
		if m[db] {
			out = append(out, db)
		}
	}
	return out
}

// Quartile is a journal's ranking quartile within its subject category.
type Quartile string

// Quartile values. QuartileNA applies to journals outside SCI/Scopus.
const (
	Q1         Quartile = "Q1"
	Q2         Quartile = "Q2"
	Q3         Quartile = "Q3"
	Q4         Quartile = "Q4"
	QuartileNA Quartile = "N/A"
)

// ImpactLevel is a coarse impact-factor band.
type ImpactLevel string

// Impact levels.
const (
	ImpactHigh   ImpactLevel = "High"
	ImpactMedium ImpactLevel = "Medium"
	ImpactLow    ImpactLevel = "Low"
	ImpactNA     ImpactLevel = "N/A"
)

// Numeric returns the sort proxy for an impact level, for callers that
// rank papers numerically.
func (l ImpactLevel) Numeric() float64 {
	switch l {
	case ImpactHigh:
		return 15.0
	case ImpactMedium:
		return 4.0
	case ImpactLow:
		return 1.5
	default:
		return 0.5
	}
}

// ConfidenceLevel expresses how trustworthy a classification is.
type ConfidenceLevel string

// Classification confidence levels.
const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// Classification is the quality classification derived for a journal.
type Classification struct {
	// IndexingStatus is the display label derived from Membership by the
	// precedence table (e.g. "SCI + Scopus", "Conference Proceedings").
	IndexingStatus string `json:"indexing_status"`

	// Membership is the full set of matched databases, preserved for
	// downstream use regardless of which label won display priority.
	Membership Membership `json:"-"`

	Quartile     Quartile        `json:"quartile"`
	Impact       ImpactLevel     `json:"impact"`
	ImpactFactor float64         `json:"impact_factor"`
	Confidence   ConfidenceLevel `json:"confidence"`
}
