// Package verify runs the verification cascade: each resolver tries to
// confirm a paper against an external registry, the orchestrator adopts
// the first candidate that clears the confidence threshold, and the
// outcome is folded into a verification result with a status, merged
// metadata and improvement suggestions.
package verify

import (
	"context"

	"github.com/scholarly/verification-service/internal/domain"
)

// Resolver is one verification method in the cascade. Resolve returns a
// nil candidate with a nil error when the paper lacks the input the
// method needs; errors report lookups that were attempted and failed.
type Resolver interface {
	Method() domain.ResolutionMethod
	Resolve(ctx context.Context, paper domain.Paper) (*domain.Candidate, error)
}
