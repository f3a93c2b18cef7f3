package dto

import (
	"time"

	"faceclock.io/entities"
)

const (
	AttendanceStatusNotCheckedIn = "not_checked_in"
	AttendanceStatusCheckedIn    = "checked_in"
	AttendanceStatusCheckedOut   = "checked_out"
)

// AttendanceRecordDTO is the wire shape for one ledger day. DurationSecs is
// only meaningful once the day is checked out.
type AttendanceRecordDTO struct {
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	CheckIn      *time.Time `json:"checkIn,omitempty"`
	CheckOut     *time.Time `json:"checkOut,omitempty"`
	DurationSecs int64      `json:"durationSecs"`
}

// AttendanceRecordFromEntity renders a stored row. A nil record means the
// identity has not checked in on the day in question.
func AttendanceRecordFromEntity(record *entities.AttendanceRecord) AttendanceRecordDTO {
	if record == nil {
		return AttendanceRecordDTO{Status: AttendanceStatusNotCheckedIn}
	}
	status := AttendanceStatusCheckedIn
	if record.CheckOut != nil {
		status = AttendanceStatusCheckedOut
	}
	return AttendanceRecordDTO{
		Date:         record.Date,
		Status:       status,
		CheckIn:      record.CheckIn,
		CheckOut:     record.CheckOut,
		DurationSecs: int64(record.Duration() / time.Second),
	}
}

type AttendanceHistoryDTO struct {
	Records []AttendanceRecordDTO `json:"records"`
}
