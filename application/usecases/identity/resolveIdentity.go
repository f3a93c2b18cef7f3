package identity_usecases

import (
	"context"
	"os"
	"strconv"
	"time"

	"faceclock.io/entities"
	"faceclock.io/infrastructure/biometric"
	"faceclock.io/infrastructure/biometric/types"
)

// VerifyTimeout bounds one whole verification, extraction and session
// issuance included. The caller creates the deadline context so every stage
// runs under the same clock.
func VerifyTimeout() time.Duration {
	raw := os.Getenv("VERIFY_TIMEOUT_SECS")
	if raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 10 * time.Second
}

// Resolve matches a probe descriptor against a snapshot of every enrolled
// descriptor and loads the matched identity's profile. The snapshot is one
// cursor read, so enrollments landing mid-scan are either wholly in or
// wholly out.
func (d *Directory) Resolve(ctx context.Context, probe []float64) (*types.MatchResult, *entities.Identity, error) {
	enrolled, err := d.Store.ActiveDescriptors(ctx)
	if err != nil {
		return nil, nil, err
	}

	result, err := biometric.Resolve(probe, enrolled, biometric.MatchThreshold())
	if err != nil {
		return nil, nil, err
	}
	if result.Outcome != types.Matched {
		return result, nil, nil
	}

	identity, err := d.Store.FindByID(ctx, result.IdentityID)
	if err != nil {
		return nil, nil, err
	}
	return result, identity, nil
}
