package engine

import (
	"fmt"
	"sync"
)

// Sessions is a registry of sessions keyed by id, shared by the transports.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	options  []Option
}

// NewSessions returns a registry that creates every session with options.
func NewSessions(options ...Option) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		options:  options,
	}
}

func (r *Sessions) Create() *Session {
	s := NewSession(r.options...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return s
}

func (r *Sessions) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	return s, nil
}

// GetOrCreate returns the session with id, creating it under that id if it
// does not exist yet.
func (r *Sessions) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := NewSession(r.options...)
	s.ID = id
	r.sessions[id] = s
	return s
}

func (r *Sessions) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSession, id)
	}
	delete(r.sessions, id)
	return nil
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
