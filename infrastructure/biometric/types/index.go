package types

import "context"

type MatchOutcome string

const (
	Matched   MatchOutcome = "matched"
	NoMatch   MatchOutcome = "no_match"
	Ambiguous MatchOutcome = "ambiguous"
)

// MatchResult is the full decision for one probe. Callers branch on Outcome;
// IdentityID and Distance are only meaningful when Outcome is Matched
// (Distance is also set for Ambiguous so the caller can report how close the
// contenders were).
type MatchResult struct {
	Outcome    MatchOutcome `json:"outcome"`
	IdentityID string       `json:"identityID,omitempty"`
	Distance   float64      `json:"distance"`
}

// EnrolledDescriptor pairs a stored vector with the identity that owns it.
// A slice of these is the read-only snapshot one resolution runs against.
type EnrolledDescriptor struct {
	IdentityID string
	Vector     []float64
}

// DescriptorExtractor turns a captured image into a descriptor vector. The
// embedding model itself lives outside this service; the primary path is the
// browser extracting descriptors client side, with a remote sidecar as the
// fallback for image-only requests.
type DescriptorExtractor interface {
	ExtractDescriptor(ctx context.Context, imageB64 string) ([]float64, error)
}
