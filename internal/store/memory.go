package store

import (
	"context"
	"sort"
	"sync"

	"github.com/printdesk/printdesk/internal/domain"
)

// MemorySessionStore implements chat.SessionStore with an in-process map.
// Sessions are copied on both Get and Put so callers never share state
// with the store.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

// Get returns a session by ID, or nil when it does not exist.
func (s *MemorySessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := sess
	cp.Messages = append([]domain.ChatMessage(nil), sess.Messages...)
	return &cp, nil
}

// Put saves a session.
func (s *MemorySessionStore) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	cp.Messages = append([]domain.ChatMessage(nil), sess.Messages...)
	s.sessions[sess.ID] = cp
	return nil
}

// Delete removes a session.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns all session IDs, most recently updated first.
func (s *MemorySessionStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.sessions[ids[i]].UpdatedAt.After(s.sessions[ids[j]].UpdatedAt)
	})
	return ids, nil
}
