// internal/domain/models/attendance.go
package models

import "time"

// Attendance event kinds.
const (
	KindCheckIn  = "check-in"
	KindCheckOut = "check-out"
)

// AttendanceRecord is a single check-in/check-out event.
//
// Timestamp is the authoritative ordering key. TimeOfDay is the wall-clock
// HH:MM string the back-office UI displays; when the source document lacks
// it, the normalizer derives it from Timestamp. For streak purposes at most
// one record per calendar day contributes (duplicates still count toward
// visit totals).
type AttendanceRecord struct {
	ID           string    `json:"id"`
	MemberID     string    `json:"member_id"`
	MembershipID string    `json:"membership_id,omitempty"`
	GymID        string    `json:"gym_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	TimeOfDay    string    `json:"time_of_day"`
	Kind         string    `json:"kind"` // check-in | check-out
	CheckOutTime string    `json:"check_out_time,omitempty"`
	Duration     int       `json:"duration_minutes,omitempty"`
	Source       string    `json:"source,omitempty"`
}

// Open reports whether this record is a check-in without a matching
// check-out, i.e. the member is still inside.
func (r AttendanceRecord) Open() bool {
	return r.Kind == KindCheckIn && r.CheckOutTime == ""
}
