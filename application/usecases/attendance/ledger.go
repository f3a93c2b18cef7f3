package attendance_usecases

import (
	"context"
	"errors"
	"time"

	"faceclock.io/application/constants"
	"faceclock.io/entities"
	"faceclock.io/infrastructure/logger"
)

var (
	ErrAlreadyCheckedIn  = errors.New("a check-in has already been recorded for today")
	ErrNotCheckedInYet   = errors.New("no check-in has been recorded for today")
	ErrAlreadyCheckedOut = errors.New("today has already been checked out")

	// ErrDuplicateRecord is the store-level signal that a row for the same
	// identity and day already exists. Stores map their own duplicate
	// conditions onto it.
	ErrDuplicateRecord = errors.New("attendance record already exists for this identity and date")
)

// LedgerStore is the persistence contract for attendance rows. Both writes
// must be atomic on the store side: InsertCheckIn relies on a uniqueness
// guarantee over (identityID, date), and CompleteCheckOut must only apply
// when no check-out has been written yet, returning nil when the guard does
// not match.
type LedgerStore interface {
	InsertCheckIn(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error)
	CompleteCheckOut(ctx context.Context, identityID string, date string, at time.Time) (*entities.AttendanceRecord, error)
	FindByIdentityAndDate(ctx context.Context, identityID string, date string) (*entities.AttendanceRecord, error)
	ListHistory(ctx context.Context, identityID string, limit int64) ([]entities.AttendanceRecord, error)
}

// Ledger drives the per-day attendance state machine. Each (identity, day)
// pair moves NotCheckedIn -> CheckedIn -> CheckedOut and never backwards;
// concurrency is settled by the store's atomic operations rather than by
// locks held here.
type Ledger struct {
	Store LedgerStore
	Clock func() time.Time
}

func (l *Ledger) now() time.Time {
	if l.Clock != nil {
		return l.Clock()
	}
	return time.Now()
}

// CheckIn opens today's row for an identity. When several requests race on
// the same day, the store's uniqueness guarantee lets exactly one insert
// through; the rest surface as ErrAlreadyCheckedIn and the first check-in
// time stands.
func (l *Ledger) CheckIn(ctx context.Context, identityID string, origin *entities.CheckInOrigin) (*entities.AttendanceRecord, error) {
	at := l.now()
	record := entities.AttendanceRecord{
		IdentityID: identityID,
		Date:       DayKey(at),
		CheckIn:    &at,
		Origin:     origin,
	}
	created, err := l.Store.InsertCheckIn(ctx, record)
	if err != nil {
		if errors.Is(err, ErrDuplicateRecord) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return created, nil
}

// CheckOut closes today's row. The store applies the update only while the
// row is still open, so a racing pair of check-outs resolves to one winner
// and one ErrAlreadyCheckedOut.
func (l *Ledger) CheckOut(ctx context.Context, identityID string) (*entities.AttendanceRecord, error) {
	at := l.now()
	date := DayKey(at)

	// a failed conditional update means either no row or a closed row. the
	// follow-up read tells the two apart. the loop covers the narrow window
	// where a check-in lands between the update and the read.
	for attempt := 0; attempt < 2; attempt++ {
		updated, err := l.Store.CompleteCheckOut(ctx, identityID, date, at)
		if err != nil {
			return nil, err
		}
		if updated != nil {
			return updated, nil
		}

		existing, err := l.Store.FindByIdentityAndDate(ctx, identityID, date)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotCheckedInYet
		}
		if existing.CheckOut != nil {
			return nil, ErrAlreadyCheckedOut
		}
	}
	logger.Error("attendance record kept changing while recording check-out", logger.LoggerOptions{
		Key:  "identityID",
		Data: identityID,
	}, logger.LoggerOptions{
		Key:  "date",
		Data: date,
	})
	return nil, errors.New("could not record check-out. try again")
}

// Today returns today's row for an identity, or nil when no check-in has
// happened yet.
func (l *Ledger) Today(ctx context.Context, identityID string) (*entities.AttendanceRecord, error) {
	return l.Store.FindByIdentityAndDate(ctx, identityID, DayKey(l.now()))
}

// History lists past rows newest day first, at most one per day. The limit
// is clamped to the service maximum and defaulted when the caller passes
// nothing useful.
func (l *Ledger) History(ctx context.Context, identityID string, limit int64) ([]entities.AttendanceRecord, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_HISTORY_LIMIT
	}
	if limit > constants.MAX_HISTORY_LIMIT {
		limit = constants.MAX_HISTORY_LIMIT
	}
	return l.Store.ListHistory(ctx, identityID, limit)
}
