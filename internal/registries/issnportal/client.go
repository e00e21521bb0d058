// Package issnportal queries the ISSN Portal search API, the registry of
// record for all registered serials. It is the fallback behind DOAJ in the
// serial resolver, covering journals that are not open access.
package issnportal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries"
)

// DefaultBaseURL is the default ISSN Portal search endpoint.
const DefaultBaseURL = "https://portal.issn.org/api/search"

// Config holds configuration for the ISSN Portal client.
type Config struct {
	BaseURL string
}

// Client resolves serial records by ISSN against the ISSN Portal.
type Client struct {
	config  Config
	fetcher *registries.Client
}

// New creates an ISSN Portal client over the given fetcher.
func New(cfg Config, fetcher *registries.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{config: cfg, fetcher: fetcher}
}

type searchResponse struct {
	Records []record `json:"records"`
}

type record struct {
	Title     string          `json:"title"`
	Publisher []publisherName `json:"publisher"`
	Country   []string        `json:"country"`
	URL       []string        `json:"url"`
	Format    []string        `json:"format"`
}

// publisherName tolerates both the object form {"name": ...} and a bare
// string, which the portal mixes across records.
type publisherName struct {
	Name string
}

func (p *publisherName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Name = obj.Name
	return nil
}

// FetchByISSN looks up a serial by its normalized ISSN. Returns
// domain.ErrNotFound when the portal has no record.
func (c *Client) FetchByISSN(ctx context.Context, issn string) (domain.Metadata, error) {
	query := url.Values{}
	query.Set("search", issn)
	query.Set("searchType", "issn")

	body, err := c.fetcher.Get(ctx, c.config.BaseURL, query)
	if err != nil {
		return domain.Metadata{}, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Metadata{}, fmt.Errorf("issnportal: decoding response: %w", err)
	}
	if len(resp.Records) == 0 {
		return domain.Metadata{}, domain.NewNotFoundError(string(domain.SourceISSNPortal), issn)
	}

	rec := resp.Records[0]
	metadata := domain.Metadata{
		ISSN:    issn,
		Journal: strings.TrimSpace(rec.Title),
	}
	if len(rec.Publisher) > 0 {
		metadata.Publisher = rec.Publisher[0].Name
	}
	if len(rec.URL) > 0 {
		metadata.URL = rec.URL[0]
	}
	metadata.Subjects = append(metadata.Subjects, rec.Format...)
	return metadata, nil
}
