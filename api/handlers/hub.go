package handlers

import (
	"context"
	"sync"
	"time"
)

// Session tracks one running trial for the hub
type Session struct {
	ID        string
	CaseTitle string
	StartedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession creates a session handle; finish must be closed by the owner
// when the controller goroutine returns.
func NewSession(id, caseTitle string, cancel context.CancelFunc) *Session {
	return &Session{
		ID:        id,
		CaseTitle: caseTitle,
		StartedAt: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// Finish marks the session's controller as returned
func (s *Session) Finish() {
	close(s.done)
}

// Cancel aborts the session's controller
func (s *Session) Cancel() {
	s.cancel()
}

// Done reports whether the session's controller has returned
func (s *Session) Done() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Hub stores the running trial sessions (sessionID -> *Session)
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHub creates an empty session hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

// Register adds a session to the hub
func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.ID] = s
}

// Unregister removes a session from the hub
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Sessions returns a snapshot of the registered sessions
func (h *Hub) Sessions() []*Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// Len returns the number of registered sessions
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Reap removes finished sessions and cancels-and-removes sessions that have
// been running longer than maxAge. Returns how many sessions were dropped.
func (h *Hub) Reap(maxAge time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	reaped := 0
	cutoff := time.Now().Add(-maxAge)
	for id, s := range h.sessions {
		switch {
		case s.Done():
			delete(h.sessions, id)
			reaped++
		case s.StartedAt.Before(cutoff):
			s.Cancel()
			delete(h.sessions, id)
			reaped++
		}
	}
	return reaped
}
