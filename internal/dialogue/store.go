package dialogue

import "sync"

// StateStore persists per-user conversation state between turns.
type StateStore interface {
	// Get returns the user's state and whether one was stored.
	Get(userID string) (State, bool)

	// Put stores the user's state, replacing any previous one.
	Put(userID string, state State)
}

// MemoryStore is an in-process StateStore. State does not survive a restart;
// users land back on the spot list, which the engine handles as a fresh start.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

// NewMemoryStore creates an empty in-memory state store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Get(userID string) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[userID]
	return s, ok
}

func (m *MemoryStore) Put(userID string, state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[userID] = state
}
