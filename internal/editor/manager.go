package editor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultSessionTTL is how long an untouched session lives.
const DefaultSessionTTL = 2 * time.Hour

// ManagerConfig configures a Manager.
type ManagerConfig struct {
	// TTL expires sessions not looked up for this long. Zero means DefaultSessionTTL.
	TTL time.Duration
	// SweepInterval is how often expired sessions are dropped. Zero means TTL/4.
	SweepInterval time.Duration
	Session       SessionOptions
}

// Manager is the in-memory registry of live sessions.
type Manager struct {
	cfg ManagerConfig
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty registry.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultSessionTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = cfg.TTL / 4
	}
	return &Manager{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session over an empty resume.
func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString(), m.cfg.Session)

	m.mu.Lock()
	m.sessions[s.ID()] = s
	count := len(m.sessions)
	m.mu.Unlock()

	log.Info().Str("session", s.ID()).Int("live", count).Msg("session created")
	return s
}

// Get returns the session with id and marks it as seen.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, &SessionNotFoundError{ID: id}
	}
	s.touch()
	return s, nil
}

// Delete closes and forgets the session with id.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return &SessionNotFoundError{ID: id}
	}
	s.Close()
	log.Info().Str("session", id).Msg("session deleted")
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many went.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.cfg.TTL)

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) && s.Activity().IsIdle() {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
		log.Debug().Str("session", s.ID()).Msg("session expired")
	}
	return len(expired)
}

// Run sweeps on a ticker until ctx is done, then closes every session.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Info().Int("expired", n).Int("live", m.Len()).Msg("swept idle sessions")
			}
		case <-ctx.Done():
			m.Close()
			return nil
		}
	}
}

// Close ends every live session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
