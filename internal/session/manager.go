// internal/session/manager.go
package session

import "sync"

// Action identifies which guided dialogue a session is walking through.
type Action string

const (
	ActionAdd      Action = "add"
	ActionRestock  Action = "restock"
	ActionSell     Action = "sell"
	ActionTransfer Action = "transfer"
	ActionDelete   Action = "delete"
	ActionSearch   Action = "search"
)

// Session is the transient per-user dialogue state: which action is in
// progress, which prompt the user is on, and the answers collected so far.
// Values stay strings until the final integer coercion on completion.
type Session struct {
	Action Action
	Step   int
	Data   map[string]string
}

// New creates a session positioned at the first step of an action.
func New(action Action) *Session {
	return &Session{Action: action, Step: 1, Data: make(map[string]string)}
}

// Manager owns the process-wide session map, keyed by user id. At most one
// session exists per user. Do serializes all processing for a single user so
// two concurrent messages from the same user cannot race on session state;
// different users proceed fully in parallel.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	locks    map[string]*sync.Mutex
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Do runs fn while holding the per-user lock.
func (m *Manager) Do(userID string, fn func()) {
	m.mu.Lock()
	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()
	fn()
}

// Get returns the user's active session, if any.
func (m *Manager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Put installs or replaces the user's session.
func (m *Manager) Put(userID string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// Clear destroys the user's session. Clearing a user with no session is a
// no-op.
func (m *Manager) Clear(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
