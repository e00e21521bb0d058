package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/scholarly/verification-service/internal/domain"
)

// maxRequestBodySize limits request bodies; batch requests carry many
// records but abstracts are capped per paper, so 4 MB is generous.
const maxRequestBodySize = 4 << 20

// paperRequest is one paper record in a verification request.
type paperRequest struct {
	ID        string `json:"id" validate:"omitempty,uuid"`
	Title     string `json:"title" validate:"max=2000"`
	Authors   string `json:"authors" validate:"max=4000"`
	Year      int    `json:"year" validate:"omitempty,gte=1500,lte=2100"`
	DOI       string `json:"doi" validate:"max=500"`
	ISSN      string `json:"issn" validate:"max=50"`
	Journal   string `json:"journal" validate:"max=1000"`
	Publisher string `json:"publisher" validate:"max=1000"`
	Abstract  string `json:"abstract" validate:"max=20000"`
}

// batchVerifyRequest is the JSON request body for batch verification.
type batchVerifyRequest struct {
	Papers []paperRequest `json:"papers" validate:"required,min=1,dive"`
}

// classifyRequest is the JSON request body for journal classification.
type classifyRequest struct {
	Journal   string `json:"journal" validate:"required_without=Publisher,max=1000"`
	Publisher string `json:"publisher" validate:"max=1000"`
}

// sourceStateResponse describes one registry's availability.
type sourceStateResponse struct {
	Source       string     `json:"source"`
	Blocked      bool       `json:"blocked"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// verifyPaper handles POST /papers/verify.
func (s *Server) verifyPaper(w http.ResponseWriter, r *http.Request) {
	var req paperRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	paper, err := req.toPaper()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.orchestrator.Verify(r.Context(), paper)
	writeJSON(w, http.StatusOK, result)
}

// verifyPaperBatch handles POST /papers/verify/batch.
func (s *Server) verifyPaperBatch(w http.ResponseWriter, r *http.Request) {
	var req batchVerifyRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if len(req.Papers) > s.maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch may carry at most %d papers", s.maxBatchSize))
		return
	}

	papers := make([]domain.Paper, 0, len(req.Papers))
	for i, pr := range req.Papers {
		paper, err := pr.toPaper()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("papers[%d]: %v", i, err))
			return
		}
		papers = append(papers, paper)
	}

	results := s.orchestrator.VerifyBatch(r.Context(), papers)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}

// classifyJournal handles POST /journals/classify.
func (s *Server) classifyJournal(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	classification := s.classifier.Classify(req.Journal, req.Publisher)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"journal":        req.Journal,
		"classification": classification,
		"databases":      classification.Membership.Databases(),
	})
}

// listSources handles GET /sources. It reports each registered source and
// whether its circuit breaker currently blocks calls.
func (s *Server) listSources(w http.ResponseWriter, _ *http.Request) {
	states := s.registry.States()
	sources := make([]sourceStateResponse, 0, len(states))
	for _, name := range s.registry.Sources() {
		state := states[name]
		resp := sourceStateResponse{Source: name, Blocked: state.Blocked}
		if state.Blocked {
			until := state.BlockedUntil
			resp.BlockedUntil = &until
		}
		sources = append(sources, resp)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sources": sources,
	})
}

// decodeAndValidate reads, unmarshals and validates a JSON request body,
// writing the error response itself. Returns false when the request was
// rejected.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid field %s", verrs[0].Field()))
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return false
	}
	return true
}

// toPaper converts the request record to the domain type. A missing ID
// gets a fresh UUID so results remain addressable.
func (p paperRequest) toPaper() (domain.Paper, error) {
	id := uuid.New()
	if p.ID != "" {
		parsed, err := uuid.Parse(p.ID)
		if err != nil {
			return domain.Paper{}, fmt.Errorf("id must be a valid UUID")
		}
		id = parsed
	}
	return domain.Paper{
		ID:        id,
		Title:     p.Title,
		Authors:   p.Authors,
		Year:      p.Year,
		DOI:       p.DOI,
		ISSN:      p.ISSN,
		Journal:   p.Journal,
		Publisher: p.Publisher,
		Abstract:  p.Abstract,
	}, nil
}
