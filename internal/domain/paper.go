// Package domain defines the core types for paper metadata verification:
// the input Paper record, resolver candidates, verification results and
// journal classifications, plus the shared error taxonomy.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Paper is the read-only input record supplied by the storage collaborator.
// Only ID is guaranteed; every other field may be empty.
type Paper struct {
	ID        uuid.UUID
	Title     string
	Authors   string // free-text author list, comma separated
	Year      int
	DOI       string
	ISSN      string
	Journal   string
	Publisher string
	Abstract  string
}

// SourceType identifies which external registry produced a candidate.
type SourceType string

// Known source types.
const (
	SourceCrossref   SourceType = "crossref"
	SourceDOAJ       SourceType = "doaj"
	SourceISSNPortal SourceType = "issn_portal"
	SourceScholar    SourceType = "scholar"
	SourceOpenAlex   SourceType = "openalex"
)

// ResolutionMethod tags which resolver in the cascade produced a candidate.
type ResolutionMethod string

// Resolver methods in cascade preference order.
const (
	MethodDOI         ResolutionMethod = "doi"
	MethodISSN        ResolutionMethod = "issn"
	MethodTitleAuthor ResolutionMethod = "title_author"
	MethodScholar     ResolutionMethod = "scholar"
)

// Metadata is the sparse record of resolved bibliographic fields.
// Empty strings and zero values mean "not resolved"; the merge policy
// never writes a resolved empty value over an original field.
type Metadata struct {
	DOI            string   `json:"doi,omitempty"`
	Title          string   `json:"title,omitempty"`
	Authors        string   `json:"authors,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	Publisher      string   `json:"publisher,omitempty"`
	ISSN           string   `json:"issn,omitempty"`
	Year           int      `json:"year,omitempty"`
	Abstract       string   `json:"abstract,omitempty"`
	URL            string   `json:"url,omitempty"`
	Type           string   `json:"type,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	Subjects       []string `json:"subjects,omitempty"`
	OpenAccess     bool     `json:"open_access,omitempty"`
	License        string   `json:"license,omitempty"`
	APCCharges     string   `json:"apc_charges,omitempty"`
	CitationCount  int      `json:"citation_count,omitempty"`
	IndexingStatus string   `json:"indexing_status,omitempty"`
}

// IsEmpty reports whether no bibliographic field was resolved.
// IndexingStatus is derived, not resolved, and does not count.
func (m Metadata) IsEmpty() bool {
	return m.DOI == "" &&
		m.Title == "" &&
		m.Authors == "" &&
		m.Journal == "" &&
		m.Publisher == "" &&
		m.ISSN == "" &&
		m.Year == 0 &&
		m.Abstract == "" &&
		m.URL == "" &&
		m.Type == "" &&
		len(m.Subjects) == 0
}

// Candidate is a normalized metadata record returned by one resolver,
// before the orchestrator's confidence scoring and merge policy.
type Candidate struct {
	Source     SourceType
	Method     ResolutionMethod
	Metadata   Metadata
	Confidence float64 // raw confidence in [0,1]
}

var doiPattern = regexp.MustCompile(`^10\.\d{4,}/\S+$`)

// NormalizeDOI strips protocol/host prefixes and trailing punctuation from
// a DOI value. Returns "" when the remainder does not conform to the
// 10.NNNN/suffix shape.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return ""
	}
	for _, prefix := range []string{
		"https://doi.org/", "http://doi.org/",
		"https://dx.doi.org/", "http://dx.doi.org/",
		"doi.org/", "dx.doi.org/", "doi:",
	} {
		if strings.HasPrefix(strings.ToLower(doi), prefix) {
			doi = doi[len(prefix):]
			break
		}
	}
	doi = strings.TrimRight(doi, ".,;")
	if !doiPattern.MatchString(doi) {
		return ""
	}
	return doi
}

// ValidDOI reports whether the value, after normalization, is a
// well-formed DOI.
func ValidDOI(doi string) bool {
	return NormalizeDOI(doi) != ""
}
