// Package scholar searches Google Scholar as the last-resort resolver.
// The source serves HTML, defends itself with captchas, and blocks IPs
// that query too fast, so the client leans on the fetcher's block
// signature detection and keeps its request rate low.
package scholar

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries"
)

const (
	// DefaultBaseURL is the Google Scholar search endpoint.
	DefaultBaseURL = "https://scholar.google.com/scholar"

	// DefaultMinInterval is the request spacing for this source. Slower
	// than the API-backed registries to avoid tripping its defenses.
	DefaultMinInterval = 5 * time.Second

	// DefaultTimeout is the per-request timeout. HTML pages are slower
	// to serve than the JSON APIs.
	DefaultTimeout = 15 * time.Second

	// minTitleLength is the shortest title worth searching for. Anything
	// shorter matches too many unrelated results.
	minTitleLength = 5
)

// BlockSignatures are the response fragments that identify a captcha or
// IP-block page. The fetcher trips its circuit breaker on any of these.
var BlockSignatures = []string{
	"captcha",
	"sorry, but your computer or network",
	"our systems have detected unusual traffic",
	"unusual traffic from your computer network",
	"please show you're not a robot",
	"ip address may be compromised",
}

// Config holds configuration for the Scholar client.
type Config struct {
	BaseURL string
}

// Client searches Google Scholar and parses the first organic result out
// of the HTML response.
type Client struct {
	config  Config
	fetcher *registries.Client
}

// New creates a Scholar client over the given fetcher. The fetcher should
// be built with BlockSignatures so blocked responses open the breaker.
func New(cfg Config, fetcher *registries.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{config: cfg, fetcher: fetcher}
}

// Blocked reports whether the source is currently under a block cooldown.
func (c *Client) Blocked() bool {
	return c.fetcher.CircuitState().Blocked
}

var (
	resultPattern   = regexp.MustCompile(`(?s)<div class="gs_ri">(.*?)</div>\s*</div>`)
	titlePattern    = regexp.MustCompile(`<h3[^>]*><a[^>]*>(.*?)</a>`)
	infoPattern     = regexp.MustCompile(`<div class="gs_a">(.*?)</div>`)
	snippetPattern  = regexp.MustCompile(`<div class="gs_rs">(.*?)</div>`)
	citationPattern = regexp.MustCompile(`Cited by (\d+)`)
	yearPattern     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	tagPattern      = regexp.MustCompile(`<[^>]+>`)
	entityPattern   = regexp.MustCompile(`&[a-z]+;|&#\d+;`)
)

// Search queries Scholar for a title, narrowed by the first author when
// one is given, and parses the first result. Returns domain.ErrNotFound
// when the results page has no organic hits; returns domain.ErrBlocked
// (wrapped) without a round trip while the source is under cooldown.
func (c *Client) Search(ctx context.Context, title, authors string) (domain.Metadata, error) {
	if len(strings.TrimSpace(title)) < minTitleLength {
		return domain.Metadata{}, domain.NewInvalidFormatError("title", title)
	}

	q := title
	if first := strings.TrimSpace(strings.SplitN(authors, ",", 2)[0]); first != "" {
		q += " " + first
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("hl", "en")
	query.Set("as_sdt", "0,5")

	body, err := c.fetcher.Get(ctx, c.config.BaseURL, query)
	if err != nil {
		return domain.Metadata{}, err
	}
	return parseFirstResult(string(body))
}

// parseFirstResult extracts the first gs_ri result block from a Scholar
// results page.
func parseFirstResult(html string) (domain.Metadata, error) {
	match := resultPattern.FindStringSubmatch(html)
	if match == nil {
		return domain.Metadata{}, domain.NewNotFoundError(string(domain.SourceScholar), "search")
	}
	result := match[1]

	var metadata domain.Metadata
	if m := titlePattern.FindStringSubmatch(result); m != nil {
		metadata.Title = cleanText(m[1])
	}
	if m := infoPattern.FindStringSubmatch(result); m != nil {
		parseByline(cleanText(m[1]), &metadata)
	}
	if m := snippetPattern.FindStringSubmatch(result); m != nil {
		metadata.Abstract = cleanText(m[1])
	}
	if m := citationPattern.FindStringSubmatch(result); m != nil {
		metadata.CitationCount, _ = strconv.Atoi(m[1])
	}
	if metadata.IsEmpty() {
		return domain.Metadata{}, domain.NewNotFoundError(string(domain.SourceScholar), "search")
	}
	return metadata, nil
}

// parseByline splits the gs_a line, which Scholar renders as
// "authors - venue, year - publisher".
func parseByline(line string, metadata *domain.Metadata) {
	parts := strings.Split(line, " - ")
	if len(parts) >= 1 {
		metadata.Authors = strings.TrimSpace(parts[0])
	}
	if len(parts) >= 2 {
		venue := parts[1]
		if m := yearPattern.FindString(venue); m != "" {
			metadata.Year, _ = strconv.Atoi(m)
		}
		metadata.Journal = strings.TrimSpace(strings.SplitN(venue, ",", 2)[0])
	}
	if len(parts) >= 3 {
		metadata.Publisher = strings.TrimSpace(parts[2])
	}
}

func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = entityPattern.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
