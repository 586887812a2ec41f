package services

import (
	"math"
	"strings"

	"github.com/votabien/votabien-engine/pkg/models"
)

// SummarizeAttendance counts present rows (type "asiste", any case or
// surrounding whitespace) against all rows. The percentage is rounded to two
// decimals and is 0 when there are no rows.
func SummarizeAttendance(rows []models.Attendance) models.AttendanceSummary {
	summary := models.AttendanceSummary{TotalSessions: len(rows)}
	for _, r := range rows {
		if strings.ToLower(strings.TrimSpace(r.AttendanceType)) == models.AttendancePresent {
			summary.Attendance++
		}
	}
	summary.Absence = max(summary.TotalSessions-summary.Attendance, 0)
	if summary.TotalSessions > 0 {
		pct := float64(summary.Attendance) / float64(summary.TotalSessions) * 100
		summary.AttendancePercentage = math.Round(pct*100) / 100
	}
	return summary
}
