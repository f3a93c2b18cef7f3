package attendance_usecases

import (
	"context"
	"sync"
	"time"

	"faceclock.io/application/repository"
	"faceclock.io/entities"
	mongorepo "faceclock.io/infrastructure/database/repository/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoLedgerStore backs the ledger with the AttendanceRecords collection.
// The unique compound index on (identityID, date) supplies the insert
// uniqueness, and check-out rides on a guarded find-and-update.
type mongoLedgerStore struct{}

func (mongoLedgerStore) InsertCheckIn(ctx context.Context, record entities.AttendanceRecord) (*entities.AttendanceRecord, error) {
	created, err := repository.AttendanceRepo().CreateOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateRecord
		}
		return nil, err
	}
	return created, nil
}

func (mongoLedgerStore) CompleteCheckOut(ctx context.Context, identityID string, date string, at time.Time) (*entities.AttendanceRecord, error) {
	return repository.AttendanceRepo().FindOneAndUpdatePartial(ctx, map[string]any{
		"identityID": identityID,
		"date":       date,
		"checkOut":   nil,
	}, map[string]any{
		"checkOut": at,
	})
}

func (mongoLedgerStore) FindByIdentityAndDate(ctx context.Context, identityID string, date string) (*entities.AttendanceRecord, error) {
	return repository.AttendanceRepo().FindOneByFilter(ctx, map[string]any{
		"identityID": identityID,
		"date":       date,
	})
}

func (mongoLedgerStore) ListHistory(ctx context.Context, identityID string, limit int64) ([]entities.AttendanceRecord, error) {
	var sort interface{} = map[string]any{"date": -1}
	records, err := repository.AttendanceRepo().FindMany(ctx, map[string]any{
		"identityID": identityID,
	}, mongorepo.FindOptions{
		Sort:  &sort,
		Limit: &limit,
	})
	if err != nil {
		return nil, err
	}
	return *records, nil
}

var defaultLedgerOnce = sync.Once{}

var defaultLedger Ledger

// DefaultLedger is the production ledger wired to mongo storage.
func DefaultLedger() *Ledger {
	defaultLedgerOnce.Do(func() {
		defaultLedger = Ledger{Store: mongoLedgerStore{}}
	})
	return &defaultLedger
}
