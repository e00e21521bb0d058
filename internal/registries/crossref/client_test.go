package crossref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries"
)

func newTestFetcher() *registries.Client {
	return registries.NewClient(registries.ClientConfig{
		Source:      "crossref",
		MinInterval: time.Millisecond,
		Logger:      zerolog.Nop(),
	})
}

const workJSON = `{
	"status": "ok",
	"message": {
		"DOI": "10.1038/nature14539",
		"title": ["Deep learning"],
		"author": [
			{"given": "Yann", "family": "LeCun"},
			{"given": "Yoshua", "family": "Bengio"},
			{"family": "Hinton"}
		],
		"container-title": ["Nature"],
		"publisher": "Springer Nature",
		"ISSN": ["0028-0836"],
		"abstract": "<jats:p>Deep learning allows  models</jats:p>",
		"URL": "https://doi.org/10.1038/nature14539",
		"type": "journal-article",
		"volume": "521",
		"issue": "7553",
		"page": "436-444",
		"is-referenced-by-count": 42813,
		"published-online": {"date-parts": [[2015, 5, 27]]},
		"created": {"date-parts": [[2015, 5, 26]]}
	}
}`

func TestFetchByDOI(t *testing.T) {
	t.Run("maps work fields", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/works/10.1038%2Fnature14539", r.URL.EscapedPath())
			w.Write([]byte(workJSON))
		}))
		defer srv.Close()

		client := New(Config{BaseURL: srv.URL + "/works"}, newTestFetcher())
		metadata, err := client.FetchByDOI(context.Background(), "10.1038/nature14539")
		require.NoError(t, err)

		assert.Equal(t, "10.1038/nature14539", metadata.DOI)
		assert.Equal(t, "Deep learning", metadata.Title)
		assert.Equal(t, "Yann LeCun, Yoshua Bengio, Hinton", metadata.Authors)
		assert.Equal(t, "Nature", metadata.Journal)
		assert.Equal(t, "Springer Nature", metadata.Publisher)
		assert.Equal(t, "0028-0836", metadata.ISSN)
		assert.Equal(t, 2015, metadata.Year)
		assert.Equal(t, "Deep learning allows models", metadata.Abstract)
		assert.Equal(t, "journal-article", metadata.Type)
		assert.Equal(t, "521", metadata.Volume)
		assert.Equal(t, "7553", metadata.Issue)
		assert.Equal(t, "436-444", metadata.Pages)
	})

	t.Run("not found propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := New(Config{BaseURL: srv.URL + "/works"}, newTestFetcher())
		_, err := client.FetchByDOI(context.Background(), "10.9999/missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := New(Config{BaseURL: srv.URL + "/works"}, newTestFetcher())
		_, err := client.FetchByDOI(context.Background(), "10.1038/nature14539")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding response")
	})
}

func TestSearchByTitleAuthor(t *testing.T) {
	t.Run("builds query and skips items without DOI", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "Deep learning", q.Get("query.title"))
			assert.Equal(t, "LeCun", q.Get("query.author"))
			assert.Equal(t, "3", q.Get("rows"))
			w.Write([]byte(`{
				"status": "ok",
				"message": {
					"total-results": 2,
					"items": [
						{"DOI": "10.1038/nature14539", "title": ["Deep learning"]},
						{"title": ["No DOI entry"]}
					]
				}
			}`))
		}))
		defer srv.Close()

		client := New(Config{BaseURL: srv.URL}, newTestFetcher())
		results, err := client.SearchByTitleAuthor(context.Background(), "Deep learning", "Yann LeCun, Yoshua Bengio", 3)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "10.1038/nature14539", results[0].DOI)
	})

	t.Run("no author filter when authors empty", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, r.URL.Query().Has("query.author"))
			w.Write([]byte(`{"status":"ok","message":{"total-results":0,"items":[]}}`))
		}))
		defer srv.Close()

		client := New(Config{BaseURL: srv.URL}, newTestFetcher())
		results, err := client.SearchByTitleAuthor(context.Background(), "Deep learning", "", 3)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestCitationCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(workJSON))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL + "/works"}, newTestFetcher())
	count, err := client.CitationCount(context.Background(), "10.1038/nature14539")
	require.NoError(t, err)
	assert.Equal(t, 42813, count)
}

func TestExtractYear(t *testing.T) {
	printed := &DateParts{DateParts: [][]int{{2014, 1, 1}}}
	online := &DateParts{DateParts: [][]int{{2013, 12, 1}}}

	assert.Equal(t, 2014, extractYear(&Work{PublishedPrint: printed, PublishedOnline: online}))
	assert.Equal(t, 2013, extractYear(&Work{PublishedOnline: online}))
	assert.Equal(t, 0, extractYear(&Work{}))
	assert.Equal(t, 0, extractYear(&Work{Issued: &DateParts{}}))
}

func TestJoinAuthors(t *testing.T) {
	authors := make([]Author, 25)
	for i := range authors {
		authors[i] = Author{Given: "A", Family: "B"}
	}
	joined := joinAuthors(authors)
	assert.Equal(t, maxAuthors, strings.Count(joined, ", ")+1)

	assert.Equal(t, "Hinton", joinAuthors([]Author{{Family: "Hinton"}, {Given: "Orphan"}}))
	assert.Empty(t, joinAuthors(nil))
}
