package server

import "sync"

// Registry is the shared set of live sessions. It is the only structure
// mutated from multiple goroutines; every access goes through the mutex.
type Registry struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	display  Display
}

func NewRegistry(display Display) *Registry {
	return &Registry{
		sessions: make(map[*Session]struct{}),
		display:  display,
	}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	r.mu.Unlock()
	r.notify()
}

// Remove deregisters a session. Removing an absent session is a no-op.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	delete(r.sessions, s)
	r.mu.Unlock()
	r.notify()
}

// Snapshot returns a copy of the current session list, safe to hand to
// the display without racing concurrent mutation.
func (r *Registry) Snapshot() []SessionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	infos := make([]SessionInfo, 0, len(r.sessions))
	for s := range r.sessions {
		infos = append(infos, s.Info())
	}
	return infos
}

// BroadcastDisconnect signals every live session to terminate. It does
// not wait for them; the Listener owns the wait.
func (r *Registry) BroadcastDisconnect() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Disconnect()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) notify() {
	r.display.SessionListChanged(r.Snapshot())
}
