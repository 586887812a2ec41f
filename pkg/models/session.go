package models

import "time"

// LegislativeSession is one sitting of the chamber.
// Stored in legislative_session table.
type LegislativeSession struct {
	ID            int64      `json:"id"`
	SessionNumber int        `json:"session_number"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	SessionType   string     `json:"session_type"`
	SessionStatus string     `json:"session_status"`
}

// SessionAttendances for GET /sessions/{id}/attendances.
type SessionAttendances struct {
	Session     LegislativeSession     `json:"session"`
	Attendances []AttendanceWithMember `json:"attendances"`
}
