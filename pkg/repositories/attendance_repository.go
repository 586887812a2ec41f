package repositories

import (
	"context"

	"github.com/votabien/votabien-engine/pkg/models"
)

// AttendanceRepository provides data access for attendance rows.
type AttendanceRepository interface {
	ListByMember(ctx context.Context, memberID int64) ([]models.Attendance, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.Attendance, error)
}

type attendanceRepository struct{}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{}
}

var _ AttendanceRepository = (*attendanceRepository)(nil)

const attendanceColumns = `
	a.id, a.session_id, a.parliament_member_id, a.attendance_type,
	a.justification, a.reduces_attendance, a.reduces_quorum`

func (r *attendanceRepository) ListByMember(ctx context.Context, memberID int64) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.parliament_member_id = $1
		ORDER BY a.id ASC`
	return collect(ctx, "list member attendances", query, scanAttendance, memberID)
}

func (r *attendanceRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		WHERE a.session_id = $1
		ORDER BY a.id ASC`
	return collect(ctx, "list session attendances", query, scanAttendance, sessionID)
}

func scanAttendance(row rowScanner) (models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(
		&a.ID, &a.SessionID, &a.MemberID, &a.AttendanceType,
		&a.Justification, &a.ReducesAttendance, &a.ReducesQuorum,
	)
	return a, err
}
