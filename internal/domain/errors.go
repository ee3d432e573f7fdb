package domain

import "errors"

// Persistence errors
var (
	ErrDuplicateKey        = errors.New("fingerprint id already enrolled for this client")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this date")
	ErrUserNotFound        = errors.New("user not found")
	ErrPersistence         = errors.New("persistence failure")
)
