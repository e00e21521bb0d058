package verify

import (
	"fmt"

	"github.com/scholarly/verification-service/internal/domain"
)

// buildSuggestions compares the stored record with the verified metadata
// and produces human-readable correction hints. Journal-level methods get
// journal-centric hints; article-level methods compare field by field.
func buildSuggestions(method domain.ResolutionMethod, paper domain.Paper, verified domain.Metadata) []string {
	if method == domain.MethodISSN {
		return issnSuggestions(paper, verified)
	}
	return articleSuggestions(paper, verified)
}

func articleSuggestions(paper domain.Paper, verified domain.Metadata) []string {
	var suggestions []string
	if verified.Title != "" && verified.Title != paper.Title {
		suggestions = append(suggestions, fmt.Sprintf("Consider updating title: %q", verified.Title))
	}
	if verified.Authors != "" && verified.Authors != paper.Authors {
		suggestions = append(suggestions, fmt.Sprintf("Consider updating authors: %q", verified.Authors))
	}
	if verified.DOI != "" && paper.DOI == "" {
		suggestions = append(suggestions, fmt.Sprintf("Add DOI: %s", verified.DOI))
	}
	if verified.Journal != "" && verified.Journal != paper.Journal {
		suggestions = append(suggestions, fmt.Sprintf("Consider updating journal: %q", verified.Journal))
	}
	if verified.Year != 0 && verified.Year != paper.Year {
		suggestions = append(suggestions, fmt.Sprintf("Consider updating year: %d", verified.Year))
	}
	return suggestions
}

func issnSuggestions(paper domain.Paper, verified domain.Metadata) []string {
	var suggestions []string
	if verified.Journal != "" && verified.Journal != paper.Journal {
		suggestions = append(suggestions, fmt.Sprintf("Journal verified: %q", verified.Journal))
	}
	if verified.Publisher != "" {
		suggestions = append(suggestions, fmt.Sprintf("Publisher: %s", verified.Publisher))
	}
	if verified.OpenAccess {
		suggestions = append(suggestions, "This is an open access journal")
	}
	if verified.License != "" {
		suggestions = append(suggestions, fmt.Sprintf("License: %s", verified.License))
	}
	if verified.APCCharges != "" {
		suggestions = append(suggestions, fmt.Sprintf("APC charges: %s", verified.APCCharges))
	}
	return suggestions
}
