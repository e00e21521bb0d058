package domain

import "github.com/google/uuid"

// VerificationStatus is the final outcome of a verification run.
type VerificationStatus string

// Verification statuses.
const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusPartial  VerificationStatus = "partial"
	StatusFailed   VerificationStatus = "failed"
)

// Confidence thresholds mapping a candidate's score to a status.
const (
	// VerifiedThreshold is the minimum confidence for StatusVerified.
	VerifiedThreshold = 0.8

	// PartialThreshold is the minimum confidence for StatusPartial, and
	// the short-circuit threshold for adopting a resolver's candidate.
	PartialThreshold = 0.6

	// PartialFloor is the confidence assigned when a resolver produced
	// usable metadata but the similarity score alone fell below the
	// partial threshold.
	PartialFloor = 0.5
)

// VerificationResult is the immutable outcome of verifying one paper.
// The caller decides whether and how to merge VerifiedMetadata back into
// the stored record; Suggestions and Errors are advisory text only.
type VerificationResult struct {
	PaperID          uuid.UUID          `json:"paper_id"`
	Status           VerificationStatus `json:"status"`
	MethodUsed       ResolutionMethod   `json:"method_used,omitempty"`
	ConfidenceScore  float64            `json:"confidence_score"`
	VerifiedMetadata Metadata           `json:"verified_metadata"`
	Errors           []string           `json:"errors,omitempty"`
	Suggestions      []string           `json:"suggestions,omitempty"`
}

// StatusForConfidence maps a confidence score and the resolved metadata to
// a final status:
//
//	>= 0.8                      verified
//	>= 0.6                      partial
//	< 0.6 with usable metadata  partial, confidence floored to 0.5
//	otherwise                   failed
//
// It returns the possibly-floored confidence alongside the status.
func StatusForConfidence(confidence float64, metadata Metadata) (VerificationStatus, float64) {
	switch {
	case confidence >= VerifiedThreshold:
		return StatusVerified, confidence
	case confidence >= PartialThreshold:
		return StatusPartial, confidence
	case !metadata.IsEmpty():
		if confidence < PartialFloor {
			confidence = PartialFloor
		}
		return StatusPartial, confidence
	default:
		return StatusFailed, confidence
	}
}
