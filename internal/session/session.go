// Package session holds the in-memory store of active game sessions. The
// manager is the single source of truth for which game, if any, a user is in
// the middle of; it owns the map and is safe for concurrent use. Sessions do
// not survive a process restart.
package session

import "sync"

// Session is one user's in-progress game state. Each game package provides
// its own concrete state type; GameKey ties the state back to the game that
// knows how to advance it.
type Session interface {
	// GameKey returns the registry key of the game this session belongs to.
	GameKey() string
}

// Manager maps user IDs to their active session. At most one session exists
// per user; starting a new game replaces the old session.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]Session),
	}
}

// Get returns the user's active session, if any.
func (m *Manager) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Put stores the user's session, replacing any existing one.
func (m *Manager) Put(userID int64, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// Delete removes the user's session. Deleting an absent session is a no-op.
func (m *Manager) Delete(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
