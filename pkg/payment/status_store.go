package payment

import (
	"sync"
)

// State is the last locally observed state of a transaction reference.
type State struct {
	Status        Status `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// StatusStore mirrors gateway-reported transaction state in memory, keyed by
// reference. It is a cache of the provider's answers, not a source of truth,
// and is never persisted. Entries accumulate for the life of the process.
//
// The store is an owned component injected into the gateway client at
// construction so tests can use isolated instances.
type StatusStore struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewStatusStore() *StatusStore {
	return &StatusStore{
		states: make(map[string]State),
	}
}

func (s *StatusStore) Set(reference string, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[reference] = state
}

func (s *StatusStore) Get(reference string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[reference]
	return state, ok
}

func (s *StatusStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
