package attendance_usecases

import (
	"os"
	"time"

	"faceclock.io/infrastructure/logger"
)

const dayKeyLayout = "2006-01-02"

// ReferenceLocation is the single timezone every day boundary is computed
// in, regardless of where a client checks in from. Falls back to UTC when
// ATTENDANCE_TIMEZONE is unset or unknown.
func ReferenceLocation() *time.Location {
	name := os.Getenv("ATTENDANCE_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warning("unknown ATTENDANCE_TIMEZONE. falling back to UTC", logger.LoggerOptions{
			Key:  "timezone",
			Data: name,
		})
		return time.UTC
	}
	return loc
}

// DayKey renders the calendar date an instant falls on in the reference
// timezone. Two instants share a ledger row exactly when their keys match.
func DayKey(at time.Time) string {
	return at.In(ReferenceLocation()).Format(dayKeyLayout)
}
