package server

import "time"

// Severity classifies a console line the way the operator display renders
// them.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityServer  Severity = "SERVER"
	SeverityClient  Severity = "CLIENT"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// SessionInfo is the point-in-time view of one live session handed to the
// display collaborator.
type SessionInfo struct {
	Name        string    `json:"name"`
	ClientID    string    `json:"clientId"`
	RemoteAddr  string    `json:"remoteAddr"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// Display is the external console collaborator. Implementations must not
// block the caller; sessions and the listener call into it from their own
// goroutines.
type Display interface {
	LogLine(text string, sev Severity)
	SessionListChanged(sessions []SessionInfo)
	// CurrentEvent supplies the event name and location stamped onto
	// attendance records by scanFinger.
	CurrentEvent() (name, location string)
}
