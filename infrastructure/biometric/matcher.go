package biometric

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"faceclock.io/infrastructure/biometric/types"
)

// DescriptorLength is the fixed vector length L produced by the embedding
// model. Every stored and probed descriptor must have exactly this length.
const DescriptorLength = 128

// DefaultMatchThreshold mirrors the tolerance of the dlib face_recognition
// pipeline the embedding model derives from.
const DefaultMatchThreshold = 0.6

// distanceEpsilon bounds float noise when deciding whether two candidate
// distances share the minimum.
const distanceEpsilon = 1e-9

var ErrInvalidDescriptorLength = errors.New("descriptor vector has the wrong length")

// MatchThreshold returns the acceptance threshold T. It is a fixed
// configuration constant, never derived from the enrolled population.
func MatchThreshold() float64 {
	raw := os.Getenv("FACE_MATCH_THRESHOLD")
	if raw == "" {
		return DefaultMatchThreshold
	}
	threshold, err := strconv.ParseFloat(raw, 64)
	if err != nil || threshold <= 0 {
		return DefaultMatchThreshold
	}
	return threshold
}

// ValidateDescriptor rejects any vector whose length is not L.
func ValidateDescriptor(vector []float64) error {
	if len(vector) != DescriptorLength {
		return fmt.Errorf("%w: got %d, want %d", ErrInvalidDescriptorLength, len(vector), DescriptorLength)
	}
	return nil
}

// EuclideanDistance is the reference metric over the descriptor space.
func EuclideanDistance(a []float64, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Resolve scans every enrolled descriptor and decides the probe's identity.
// Candidates are descriptors within threshold; among them the minimum
// distance wins. A minimum shared by descriptors of different identities is
// an Ambiguous outcome rather than an arbitrary pick - the matcher prefers a
// false reject over a false accept. NoMatch and Ambiguous are expected
// outcomes, not errors; the only error is a malformed probe.
func Resolve(probe []float64, enrolled []types.EnrolledDescriptor, threshold float64) (*types.MatchResult, error) {
	if err := ValidateDescriptor(probe); err != nil {
		return nil, err
	}

	best := math.Inf(1)
	owners := []string{}
	for _, candidate := range enrolled {
		if len(candidate.Vector) != DescriptorLength {
			continue
		}
		distance := EuclideanDistance(probe, candidate.Vector)
		if distance > threshold {
			continue
		}
		switch {
		case distance < best-distanceEpsilon:
			best = distance
			owners = owners[:0]
			owners = append(owners, candidate.IdentityID)
		case math.Abs(distance-best) <= distanceEpsilon:
			if !containsString(owners, candidate.IdentityID) {
				owners = append(owners, candidate.IdentityID)
			}
		}
	}

	if len(owners) == 0 {
		return &types.MatchResult{Outcome: types.NoMatch}, nil
	}
	if len(owners) > 1 {
		return &types.MatchResult{Outcome: types.Ambiguous, Distance: best}, nil
	}
	return &types.MatchResult{
		Outcome:    types.Matched,
		IdentityID: owners[0],
		Distance:   best,
	}, nil
}

func containsString(arr []string, target string) bool {
	for _, v := range arr {
		if v == target {
			return true
		}
	}
	return false
}
