package domain

import "time"

// EnrollmentRequest carries the parsed enrollFinger fields into the
// persistence layer. It lives only for the duration of one operation.
type EnrollmentRequest struct {
	FirstName     string
	MiddleName    string
	LastName      string
	Age           int
	Gender        string
	PhoneNumber   string
	Address       string
	FingerprintID int
	ClientID      string
}

// FullName is the display form stored on the users row.
func (r EnrollmentRequest) FullName() string {
	return JoinName(r.FirstName, r.MiddleName, r.LastName)
}

// AttendanceScan carries one scanFinger event. At is the scan instant on
// the server clock; its calendar date is what the duplicate-attendance
// invariant is keyed on.
type AttendanceScan struct {
	FingerprintID int
	ClientID      string
	EventName     string
	EventLocation string
	At            time.Time
}
