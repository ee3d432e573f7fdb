package testutil

import (
	"context"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
)

// FakeUserRepo is a function-backed repository.UserRepository for tests
// that exercise the protocol or HTTP layers without a database.
type FakeUserRepo struct {
	EnrollFunc    func(ctx context.Context, req domain.EnrollmentRequest) (uint, error)
	DeleteFunc    func(ctx context.Context, id uint) error
	ExistsFunc    func(ctx context.Context, fingerprintID int, clientID string) (bool, error)
	ResolveIDFunc func(ctx context.Context, fingerprintID int, clientID string) (uint, error)
	AllFunc       func(ctx context.Context) ([]domain.User, error)
}

func (f *FakeUserRepo) Enroll(ctx context.Context, req domain.EnrollmentRequest) (uint, error) {
	if f.EnrollFunc == nil {
		return 1, nil
	}
	return f.EnrollFunc(ctx, req)
}

func (f *FakeUserRepo) Delete(ctx context.Context, id uint) error {
	if f.DeleteFunc == nil {
		return nil
	}
	return f.DeleteFunc(ctx, id)
}

func (f *FakeUserRepo) Exists(ctx context.Context, fingerprintID int, clientID string) (bool, error) {
	if f.ExistsFunc == nil {
		return false, nil
	}
	return f.ExistsFunc(ctx, fingerprintID, clientID)
}

func (f *FakeUserRepo) ResolveID(ctx context.Context, fingerprintID int, clientID string) (uint, error) {
	if f.ResolveIDFunc == nil {
		return 0, domain.ErrUserNotFound
	}
	return f.ResolveIDFunc(ctx, fingerprintID, clientID)
}

func (f *FakeUserRepo) All(ctx context.Context) ([]domain.User, error) {
	if f.AllFunc == nil {
		return nil, nil
	}
	return f.AllFunc(ctx)
}

// FakeAttendanceRepo is the attendance counterpart of FakeUserRepo.
type FakeAttendanceRepo struct {
	RecordFunc  func(ctx context.Context, scan domain.AttendanceScan) (string, error)
	ByDateFunc  func(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error)
	ByEventFunc func(ctx context.Context, name string) ([]domain.AttendanceEntry, error)
	AllFunc     func(ctx context.Context) ([]domain.AttendanceEntry, error)
}

func (f *FakeAttendanceRepo) Record(ctx context.Context, scan domain.AttendanceScan) (string, error) {
	if f.RecordFunc == nil {
		return "", domain.ErrUserNotFound
	}
	return f.RecordFunc(ctx, scan)
}

func (f *FakeAttendanceRepo) ByDate(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error) {
	if f.ByDateFunc == nil {
		return nil, nil
	}
	return f.ByDateFunc(ctx, date)
}

func (f *FakeAttendanceRepo) ByEvent(ctx context.Context, name string) ([]domain.AttendanceEntry, error) {
	if f.ByEventFunc == nil {
		return nil, nil
	}
	return f.ByEventFunc(ctx, name)
}

func (f *FakeAttendanceRepo) All(ctx context.Context) ([]domain.AttendanceEntry, error) {
	if f.AllFunc == nil {
		return nil, nil
	}
	return f.AllFunc(ctx)
}

// FakeRepos bundles the two fakes as a ready-made Repositories value.
func FakeRepos(users *FakeUserRepo, attendance *FakeAttendanceRepo) *repository.Repositories {
	if users == nil {
		users = &FakeUserRepo{}
	}
	if attendance == nil {
		attendance = &FakeAttendanceRepo{}
	}
	return &repository.Repositories{Users: users, Attendance: attendance}
}
