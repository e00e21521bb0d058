package verify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/scholarly/verification-service/internal/domain"
	"github.com/scholarly/verification-service/internal/registries/openalex"
)

func TestCitationEnricher(t *testing.T) {
	t.Run("crossref count wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok","message":{"DOI":"10.1038/nature14539","is-referenced-by-count":42813}}`))
		}))
		defer srv.Close()

		enricher := NewCitationEnricher(crossrefFor(srv.URL), nil, zerolog.Nop())
		metadata := domain.Metadata{DOI: "10.1038/nature14539", Title: "Deep learning"}
		enricher.Enrich(context.Background(), &metadata)
		assert.Equal(t, 42813, metadata.CitationCount)
	})

	t.Run("openalex fallback when crossref fails", func(t *testing.T) {
		crossrefSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer crossrefSrv.Close()
		openalexSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[{"cited_by_count":65000}]}`))
		}))
		defer openalexSrv.Close()

		enricher := NewCitationEnricher(
			crossrefFor(crossrefSrv.URL),
			openalex.New(openalex.Config{BaseURL: openalexSrv.URL}, fetcherFor("openalex")),
			zerolog.Nop(),
		)
		metadata := domain.Metadata{DOI: "10.1038/nature14539"}
		enricher.Enrich(context.Background(), &metadata)
		assert.Equal(t, 65000, metadata.CitationCount)
	})

	t.Run("existing count untouched", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		enricher := NewCitationEnricher(crossrefFor(srv.URL), nil, zerolog.Nop())
		metadata := domain.Metadata{DOI: "10.1038/nature14539", CitationCount: 7}
		enricher.Enrich(context.Background(), &metadata)
		assert.Equal(t, 7, metadata.CitationCount)
		assert.Zero(t, calls.Load())
	})

	t.Run("nothing to look up", func(t *testing.T) {
		enricher := NewCitationEnricher(nil, nil, zerolog.Nop())
		metadata := domain.Metadata{Journal: "Nature"}
		enricher.Enrich(context.Background(), &metadata)
		assert.Zero(t, metadata.CitationCount)
	})

	t.Run("all lookups failing leaves count unset", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		enricher := NewCitationEnricher(crossrefFor(srv.URL), nil, zerolog.Nop())
		metadata := domain.Metadata{DOI: "10.9999/missing"}
		enricher.Enrich(context.Background(), &metadata)
		assert.Zero(t, metadata.CitationCount)
	})
}
