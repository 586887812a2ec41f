package models

// AttendancePresent is the normalized attendance type counted as present.
const AttendancePresent = "asiste"

// Attendance is one (session, member) attendance record.
// Stored in attendance table.
type Attendance struct {
	ID                int64   `json:"id"`
	SessionID         int64   `json:"session_id"`
	MemberID          int64   `json:"parliament_member_id"`
	AttendanceType    string  `json:"attendance_type"`
	Justification     *string `json:"justification"`
	ReducesAttendance *bool   `json:"reduces_attendance"`
	ReducesQuorum     *bool   `json:"reduces_quorum"`
}

// AttendanceSummary aggregates a member's attendance rows.
type AttendanceSummary struct {
	TotalSessions        int     `json:"total_sessions"`
	Attendance           int     `json:"attendance"`
	Absence              int     `json:"absence"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// MemberAttendance for GET /parliament/{id}/attendances.
type MemberAttendance struct {
	Member Member            `json:"member"`
	Resume AttendanceSummary `json:"resume"`
	Detail []Attendance      `json:"detail"`
}

// AttendanceWithMember is an attendance row enriched with its member.
// Member is nil when the referenced member row does not exist.
type AttendanceWithMember struct {
	Attendance
	Member *Member `json:"member"`
}
