// Package doaj queries the Directory of Open Access Journals search API.
// A DOAJ hit both resolves journal-level metadata for an ISSN and proves
// open-access directory membership for the classifier.
package doaj

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries"
)

// DefaultBaseURL is the default DOAJ journal search endpoint.
const DefaultBaseURL = "https://doaj.org/api/search/journals"

// Config holds configuration for the DOAJ client.
type Config struct {
	BaseURL string
}

// Client resolves journal records by ISSN against DOAJ.
type Client struct {
	config  Config
	fetcher *registries.Client
}

// New creates a DOAJ client over the given fetcher.
func New(cfg Config, fetcher *registries.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{config: cfg, fetcher: fetcher}
}

// FetchByISSN looks up a journal by its normalized ISSN. A journal found
// here is open access by definition of the directory. Returns
// domain.ErrNotFound when the directory has no record for the ISSN.
func (c *Client) FetchByISSN(ctx context.Context, issn string) (domain.Metadata, error) {
	body, err := c.fetcher.Get(ctx, c.config.BaseURL+"/"+url.PathEscape("issn:"+issn), nil)
	if err != nil {
		return domain.Metadata{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Metadata{}, fmt.Errorf("doaj: decoding response: %w", err)
	}
	if len(resp.Results) == 0 {
		return domain.Metadata{}, domain.NewNotFoundError(string(domain.SourceDOAJ), issn)
	}

	metadata := journalToMetadata(&resp.Results[0].BibJSON)
	metadata.ISSN = issn
	return metadata, nil
}

func journalToMetadata(bib *bibJSON) domain.Metadata {
	metadata := domain.Metadata{
		Journal:    bib.Title,
		Publisher:  bib.Publisher.Name,
		OpenAccess: true,
	}
	if metadata.ISSN == "" {
		if bib.EISSN != "" {
			metadata.ISSN = domain.NormalizeISSN(bib.EISSN)
		} else if bib.PISSN != "" {
			metadata.ISSN = domain.NormalizeISSN(bib.PISSN)
		}
	}
	for _, s := range bib.Subject {
		if s.Term != "" {
			metadata.Subjects = append(metadata.Subjects, s.Term)
		}
	}
	if len(bib.License) > 0 {
		metadata.License = bib.License[0].Type
	}
	metadata.APCCharges = formatAPC(bib.APC)
	return metadata
}

// formatAPC renders the article processing charge as a display string,
// "None" when the journal charges nothing.
func formatAPC(a apc) string {
	if !a.HasAPC {
		return "None"
	}
	parts := make([]string, 0, len(a.Max))
	for _, p := range a.Max {
		parts = append(parts, strconv.Itoa(p.Price)+" "+p.Currency)
	}
	if len(parts) == 0 {
		return "Yes"
	}
	return strings.Join(parts, ", ")
}
