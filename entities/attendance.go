package entities

import (
	"time"

	"faceclock.io/application/utils"
)

// CheckInOrigin is audit metadata resolved from the client IP at check-in.
type CheckInOrigin struct {
	IPAddress   string  `bson:"ipAddress" json:"ipAddress"`
	City        string  `bson:"city" json:"city"`
	CountryCode string  `bson:"countryCode" json:"countryCode"`
	Latitude    float64 `bson:"latitude" json:"latitude"`
	Longitude   float64 `bson:"longitude" json:"longitude"`
}

// AttendanceRecord is the single row for one identity on one working day.
// Date is rendered as YYYY-MM-DD in the reference timezone so every client
// shares the same day boundary. Records are append-only; check-in and
// check-out are each written at most once.
type AttendanceRecord struct {
	IdentityID string         `bson:"identityID" json:"identityID"`
	Date       string         `bson:"date" json:"date"`
	CheckIn    *time.Time     `bson:"checkIn" json:"checkIn"`
	CheckOut   *time.Time     `bson:"checkOut" json:"checkOut"`
	Origin     *CheckInOrigin `bson:"origin" json:"origin,omitempty"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model AttendanceRecord) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}

// Duration returns the worked time for a completed day, truncated to the
// second. It is zero until both timestamps are present.
func (model *AttendanceRecord) Duration() time.Duration {
	if model.CheckIn == nil || model.CheckOut == nil {
		return 0
	}
	return model.CheckOut.Sub(*model.CheckIn).Truncate(time.Second)
}
