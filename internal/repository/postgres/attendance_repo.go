package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Record(ctx context.Context, scan domain.AttendanceScan) (string, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("Info").
		Where("fingerprint_id = ? AND client_id = ?", scan.FingerprintID, scan.ClientID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	date := datatypes.Date(scan.At)

	// Early rejection for the common case. The unique index on
	// (user_id, date_attended) stays authoritative: a concurrent scan that
	// slips past this check loses on the insert below.
	var count int64
	err = r.db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Where("user_id = ? AND date_attended = ?", user.ID, date).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if count > 0 {
		return "", domain.ErrDuplicateAttendance
	}

	record := domain.AttendanceRecord{
		UserID:        user.ID,
		DateAttended:  date,
		TimeAttended:  timeOfDay(scan.At),
		EventName:     scan.EventName,
		EventLocation: scan.EventLocation,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.ErrDuplicateAttendance
		}
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return user.Info.FirstName, nil
}

func (r *attendanceRepository) ByDate(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error) {
	return r.entries(ctx, "attendance.date_attended = ?", datatypes.Date(date))
}

func (r *attendanceRepository) ByEvent(ctx context.Context, name string) ([]domain.AttendanceEntry, error) {
	return r.entries(ctx, "attendance.event_name = ?", name)
}

func (r *attendanceRepository) All(ctx context.Context) ([]domain.AttendanceEntry, error) {
	return r.entries(ctx, "")
}

func (r *attendanceRepository) entries(ctx context.Context, cond string, args ...any) ([]domain.AttendanceEntry, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.AttendanceRecord{}).
		Select("attendance.attendance_id AS id, attendance.user_id, users.full_name, " +
			"attendance.date_attended, attendance.time_attended, " +
			"attendance.event_name, attendance.event_location").
		Joins("JOIN users ON users.user_id = attendance.user_id").
		Order("attendance.attendance_id ASC")
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var entries []domain.AttendanceEntry
	if err := query.Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return entries, nil
}

func timeOfDay(t time.Time) datatypes.Time {
	return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
}
