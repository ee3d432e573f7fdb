// Package console is the default display collaborator: it renders
// session log lines through slog and keeps the mutable pieces the
// operator controls, the current event and the live session list.
package console

import (
	"log/slog"
	"sync"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/server"
)

type Console struct {
	logger *slog.Logger

	mu            sync.RWMutex
	eventName     string
	eventLocation string
	sessions      []server.SessionInfo
}

func New(logger *slog.Logger) *Console {
	return &Console{logger: logger.With("component", "console")}
}

func (c *Console) LogLine(text string, sev server.Severity) {
	switch sev {
	case server.SeverityWarning:
		c.logger.Warn(text, "type", string(sev))
	case server.SeverityError:
		c.logger.Error(text, "type", string(sev))
	default:
		c.logger.Info(text, "type", string(sev))
	}
}

func (c *Console) SessionListChanged(sessions []server.SessionInfo) {
	c.mu.Lock()
	c.sessions = sessions
	c.mu.Unlock()
	c.logger.Debug("session list changed", "count", len(sessions))
}

func (c *Console) CurrentEvent() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eventName, c.eventLocation
}

// SetEvent updates the event stamped onto new attendance records.
func (c *Console) SetEvent(name, location string) {
	c.mu.Lock()
	c.eventName = name
	c.eventLocation = location
	c.mu.Unlock()
	c.logger.Info("current event changed", "event", name, "location", location)
}

// Sessions returns the last session list the registry reported.
func (c *Console) Sessions() []server.SessionInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]server.SessionInfo, len(c.sessions))
	copy(out, c.sessions)
	return out
}
