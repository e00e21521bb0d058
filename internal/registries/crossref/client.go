package crossref

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

const (
	// DefaultBaseURL is the default Crossref works API base URL.
	DefaultBaseURL = "https://api.crossref.org/works"

	// maxAuthors caps how many authors are joined into the authors field.
	maxAuthors = 20
)

// Config holds configuration for the Crossref client.
type Config struct {
	// BaseURL is the works API base URL. Defaults to DefaultBaseURL.
	BaseURL string
}

// Client queries the Crossref works API through a shared rate-limited
// fetcher. It backs both the DOI resolver (exact lookup) and the
// title+author resolver (fuzzy search).
type Client struct {
	config  Config
	fetcher *registries.Client
}

// New creates a Crossref client over the given fetcher.
func New(cfg Config, fetcher *registries.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{config: cfg, fetcher: fetcher}
}

// FetchByDOI performs an exact-match lookup for a normalized DOI.
// A registry miss returns domain.ErrNotFound; the DOI must already be
// normalized and validated by the caller.
func (c *Client) FetchByDOI(ctx context.Context, doi string) (domain.Metadata, error) {
	body, err := c.fetcher.Get(ctx, c.config.BaseURL+"/"+url.PathEscape(doi), nil)
	if err != nil {
		return domain.Metadata{}, err
	}

	var resp workResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.Metadata{}, fmt.Errorf("crossref: decoding response: %w", err)
	}

	metadata := workToMetadata(&resp.Message)
	metadata.DOI = doi
	return metadata, nil
}

// SearchByTitleAuthor searches works by title phrase, optionally narrowed
// by the first author's surname. Returns up to rows candidates in the
// registry's relevance order; ranking is the caller's concern.
func (c *Client) SearchByTitleAuthor(ctx context.Context, title, author string, rows int) ([]domain.Metadata, error) {
	query := url.Values{}
	query.Set("query.title", title)
	query.Set("rows", strconv.Itoa(rows))
	if surname := firstAuthorSurname(author); surname != "" {
		query.Set("query.author", surname)
	}

	body, err := c.fetcher.Get(ctx, c.config.BaseURL, query)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("crossref: decoding response: %w", err)
	}

	candidates := make([]domain.Metadata, 0, len(resp.Message.Items))
	for i := range resp.Message.Items {
		work := &resp.Message.Items[i]
		if work.DOI == "" {
			continue
		}
		candidates = append(candidates, workToMetadata(work))
	}
	return candidates, nil
}

// CitationCount returns the is-referenced-by-count for a DOI.
func (c *Client) CitationCount(ctx context.Context, doi string) (int, error) {
	body, err := c.fetcher.Get(ctx, c.config.BaseURL+"/"+url.PathEscape(doi), nil)
	if err != nil {
		return 0, err
	}

	var resp workResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("crossref: decoding response: %w", err)
	}
	return resp.Message.ReferencedBy, nil
}

// workToMetadata converts a Crossref work into the normalized sparse
// metadata record.
func workToMetadata(work *Work) domain.Metadata {
	metadata := domain.Metadata{
		DOI:       strings.ToLower(strings.TrimSpace(work.DOI)),
		Publisher: work.Publisher,
		Abstract:  cleanAbstract(work.Abstract),
		URL:       work.URL,
		Type:      work.Type,
		Volume:    work.Volume,
		Issue:     work.Issue,
		Pages:     work.Page,
		Subjects:  work.Subject,
	}
	if len(work.Title) > 0 {
		metadata.Title = work.Title[0]
	}
	if len(work.ContainerTitle) > 0 {
		metadata.Journal = work.ContainerTitle[0]
	}
	if len(work.ISSN) > 0 {
		metadata.ISSN = domain.NormalizeISSN(work.ISSN[0])
	}
	metadata.Authors = joinAuthors(work.Author)
	metadata.Year = extractYear(work)
	return metadata
}

// joinAuthors formats the author list as "Given Family" entries joined by
// commas, capped at maxAuthors.
func joinAuthors(authors []Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if len(names) == maxAuthors {
			break
		}
		switch {
		case a.Family != "" && a.Given != "":
			names = append(names, a.Given+" "+a.Family)
		case a.Family != "":
			names = append(names, a.Family)
		}
	}
	return strings.Join(names, ", ")
}

// extractYear picks the first non-zero year, preferring the print date
// over the online date over the deposit date over the issued date.
func extractYear(work *Work) int {
	for _, d := range []*DateParts{work.PublishedPrint, work.PublishedOnline, work.Created, work.Issued} {
		if year := d.Year(); year > 0 {
			return year
		}
	}
	return 0
}

// cleanAbstract strips the JATS XML tags Crossref wraps abstracts in.
func cleanAbstract(abstract string) string {
	if abstract == "" {
		return ""
	}
	var sb strings.Builder
	inTag := false
	for _, r := range abstract {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// firstAuthorSurname extracts the last word of the first comma-separated
// author entry, the most selective token for a query.author filter.
func firstAuthorSurname(authors string) string {
	first := strings.TrimSpace(strings.SplitN(authors, ",", 2)[0])
	if first == "" {
		return ""
	}
	fields := strings.Fields(first)
	return fields[len(fields)-1]
}
