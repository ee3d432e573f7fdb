package repository

import (
	"context"
	"time"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/domain"
)

// UserRepository owns the users and user_info tables.
type UserRepository interface {
	// Enroll inserts the User and its UserInfo atomically and returns the
	// new server-assigned id. Returns domain.ErrDuplicateKey when the
	// (fingerprint id, client id) pair is already enrolled.
	Enroll(ctx context.Context, req domain.EnrollmentRequest) (uint, error)
	// Delete removes a user and, through the cascade, its info and
	// attendance rows. Deleting an absent id is a successful no-op.
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, fingerprintID int, clientID string) (bool, error)
	ResolveID(ctx context.Context, fingerprintID int, clientID string) (uint, error)
	// All returns every user with info preloaded, ordered by user id.
	All(ctx context.Context) ([]domain.User, error)
}

// AttendanceRepository owns the attendance table.
type AttendanceRepository interface {
	// Record resolves the scanned user and inserts one attendance row,
	// returning the user's first name for the terminal acknowledgment.
	// Returns domain.ErrUserNotFound for an unknown fingerprint and
	// domain.ErrDuplicateAttendance when the user was already marked
	// present on the scan's calendar date.
	Record(ctx context.Context, scan domain.AttendanceScan) (string, error)
	// ByDate, ByEvent and All return projections joined with the owning
	// user's full name, ordered by attendance id.
	ByDate(ctx context.Context, date time.Time) ([]domain.AttendanceEntry, error)
	ByEvent(ctx context.Context, name string) ([]domain.AttendanceEntry, error)
	All(ctx context.Context) ([]domain.AttendanceEntry, error)
}

type Repositories struct {
	Users      UserRepository
	Attendance AttendanceRepository
}
