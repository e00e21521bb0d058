// Package openalex queries the OpenAlex works API for citation counts.
// It is the enrichment fallback when Crossref has no count for a paper.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries"
)

// DefaultBaseURL is the default OpenAlex works endpoint.
const DefaultBaseURL = "https://api.openalex.org/works"

// Config holds configuration for the OpenAlex client.
type Config struct {
	BaseURL string
	// MailTo identifies the caller to OpenAlex's polite pool.
	MailTo string
}

// Client fetches citation counts from OpenAlex.
type Client struct {
	config  Config
	fetcher *registries.Client
}

// New creates an OpenAlex client over the given fetcher.
func New(cfg Config, fetcher *registries.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{config: cfg, fetcher: fetcher}
}

type listResponse struct {
	Results []work `json:"results"`
}

type work struct {
	ID           string `json:"id"`
	DOI          string `json:"doi"`
	CitedByCount int    `json:"cited_by_count"`
}

// CitationCount looks up a work by DOI, falling back to an exact title
// filter, and returns its cited_by_count. Returns domain.ErrNotFound
// when neither filter matches a work.
func (c *Client) CitationCount(ctx context.Context, doi, title string) (int, error) {
	var filter string
	switch {
	case doi != "":
		filter = "doi:" + doi
	case title != "":
		clean := strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(title))
		filter = `title:"` + clean + `"`
	default:
		return 0, domain.NewInvalidFormatError("query", "")
	}

	query := url.Values{}
	query.Set("filter", filter)
	if c.config.MailTo != "" {
		query.Set("mailto", c.config.MailTo)
	}

	body, err := c.fetcher.Get(ctx, c.config.BaseURL, query)
	if err != nil {
		return 0, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("openalex: decoding response: %w", err)
	}
	if len(resp.Results) == 0 {
		return 0, domain.NewNotFoundError(string(domain.SourceOpenAlex), filter)
	}
	return resp.Results[0].CitedByCount, nil
}
