// Package export renders the persistence read projections as plain-text
// reports: one header line, one line per record, and a distinct sentinel
// line when a query matched nothing.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"gorm.io/datatypes"
)

const (
	usersHeader      = "user_id\tfull_name\tfingerprint_id\tclient_id"
	attendanceHeader = "attendance_id\tuser_id\tfull_name\tdate\ttime\tevent_name\tevent_location"

	noUsers             = "No enrolled users."
	noAttendance        = "No attendance records."
	noAttendanceByDate  = "No attendance records for that date."
	noAttendanceByEvent = "No attendance records for that event."
)

var dateFormat = regexp.MustCompile(`^\d{4}-((1[0-2])|(0?[1-9]))-\d{1,2}$`)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// ParseDate validates and parses a report date query. Single-digit months
// and days are accepted, matching what the terminals historically sent.
func ParseDate(s string) (time.Time, error) {
	if !dateFormat.MatchString(s) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.ParseInLocation("2006-1-2", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Users renders the all-users report.
func Users(users []domain.User) string {
	lines := []string{usersHeader}
	if len(users) == 0 {
		lines = append(lines, noUsers)
		return join(lines)
	}
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%d\t%s",
			u.ID, u.FullName, u.FingerprintID, u.ClientID))
	}
	return join(lines)
}

// Attendance renders the full attendance report.
func Attendance(entries []domain.AttendanceEntry) string {
	return attendance(entries, noAttendance)
}

// AttendanceByDate renders the per-date attendance report.
func AttendanceByDate(entries []domain.AttendanceEntry) string {
	return attendance(entries, noAttendanceByDate)
}

// AttendanceByEvent renders the per-event attendance report.
func AttendanceByEvent(entries []domain.AttendanceEntry) string {
	return attendance(entries, noAttendanceByEvent)
}

func attendance(entries []domain.AttendanceEntry, sentinel string) string {
	lines := []string{attendanceHeader}
	if len(entries) == 0 {
		lines = append(lines, sentinel)
		return join(lines)
	}
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%s\t%s\t%s\t%s\t%s",
			e.ID, e.UserID, e.FullName,
			formatDate(e.DateAttended), formatTime(e.TimeAttended),
			e.EventName, e.EventLocation))
	}
	return join(lines)
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}

func formatTime(t datatypes.Time) string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func join(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
