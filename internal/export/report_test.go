package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "full date", input: "2024-03-15"},
		{name: "single digit month and day", input: "2024-3-5"},
		{name: "month thirteen", input: "2024-13-05", wantErr: true},
		{name: "missing day", input: "2024-03", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := export.ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, export.ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2024, got.Year())
		})
	}
}

func TestUsersReport(t *testing.T) {
	t.Run("empty report is header plus sentinel", func(t *testing.T) {
		lines := reportLines(export.Users(nil))
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "full_name")
		assert.Equal(t, "No enrolled users.", lines[1])
	})

	t.Run("one line per user", func(t *testing.T) {
		users := []domain.User{
			{ID: 1, FullName: "Ann Lee", FingerprintID: 42, ClientID: "terminal_a"},
			{ID: 2, FullName: "Bob Q Smith", FingerprintID: 7, ClientID: "terminal_b"},
		}
		lines := reportLines(export.Users(users))
		require.Len(t, lines, 3)
		assert.Equal(t, "1\tAnn Lee\t42\tterminal_a", lines[1])
		assert.Equal(t, "2\tBob Q Smith\t7\tterminal_b", lines[2])
	})
}

func TestAttendanceReports(t *testing.T) {
	entry := domain.AttendanceEntry{
		ID:            3,
		UserID:        1,
		FullName:      "Ann Lee",
		DateAttended:  datatypes.Date(time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)),
		TimeAttended:  datatypes.NewTime(9, 30, 5, 0),
		EventName:     "Orientation",
		EventLocation: "Hall B",
	}

	t.Run("row formatting", func(t *testing.T) {
		lines := reportLines(export.Attendance([]domain.AttendanceEntry{entry}))
		require.Len(t, lines, 2)
		assert.Equal(t, "3\t1\tAnn Lee\t2024-03-15\t09:30:05\tOrientation\tHall B", lines[1])
	})

	t.Run("each query kind has its own sentinel", func(t *testing.T) {
		all := reportLines(export.Attendance(nil))
		byDate := reportLines(export.AttendanceByDate(nil))
		byEvent := reportLines(export.AttendanceByEvent(nil))

		require.Len(t, all, 2)
		require.Len(t, byDate, 2)
		require.Len(t, byEvent, 2)
		assert.NotEqual(t, all[1], byDate[1])
		assert.NotEqual(t, byDate[1], byEvent[1])
		assert.NotEqual(t, all[1], byEvent[1])
	})
}

func reportLines(report string) []string {
	trimmed := strings.TrimSuffix(report, "\n")
	return strings.Split(trimmed, "\n")
}
