package chat

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/hydrosense/hydrosense/internal/domain/entity"
)

// Default session manager configuration.
const (
	defaultSessionTTL = 30 * time.Minute
)

// Session carries the last-known query context for one conversation. Fields
// follow last-write-wins: each successfully extracted entity set overwrites
// the fields it provides and leaves the rest untouched.
type Session struct {
	State    string
	District string
	Year     string
	Month    string

	lastSeen time.Time
}

// Update records the entities extracted from the latest input.
func (s *Session) Update(ents entity.Entities) {
	if ents.State != "" {
		s.State = ents.State
	}
	if ents.District != "" {
		s.District = ents.District
	}
	if ents.Year != "" {
		s.Year = ents.Year
	}
	if ents.Month != "" {
		s.Month = ents.Month
	}
}

// SessionManager owns session lifecycles. Sessions are created on first use
// and dropped once idle past the TTL; expired ids come back as fresh
// sessions, which matches the "cleared on session end" contract.
type SessionManager struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	ttl      time.Duration
	sessions map[string]*Session
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// WithClock substitutes the wall clock, used by tests to drive expiry.
func WithClock(clock clockwork.Clock) SessionOption {
	return func(m *SessionManager) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// WithTTL sets the idle lifetime of a session.
func WithTTL(ttl time.Duration) SessionOption {
	return func(m *SessionManager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewSessionManager creates a SessionManager with default configuration.
func NewSessionManager(opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		clock:    clockwork.NewRealClock(),
		ttl:      defaultSessionTTL,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the session for id, creating it when absent or expired. The
// returned session is touched so repeated use keeps it alive.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	s, ok := m.sessions[id]
	if !ok || now.Sub(s.lastSeen) > m.ttl {
		s = &Session{}
		m.sessions[id] = s
	}
	s.lastSeen = now
	return s
}

// Prune drops every session idle past the TTL and reports how many remain.
func (m *SessionManager) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
		}
	}
	return len(m.sessions)
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
