// Package session keeps the logged-in owner's profile server-side and
// hands the browser only a signed cookie referencing it.
package session

import (
	"context"
	"errors"
	"sync"

	"gym-frontend/internal/backend"
)

// ErrNotFound is returned when no session exists for the given ID,
// either because it was never created or because the owner logged out.
var ErrNotFound = errors.New("session not found")

// Store persists owner sessions keyed by session ID. Sessions have no
// expiry; they live until Clear is called.
type Store interface {
	Save(ctx context.Context, id string, owner *backend.Owner) error
	Load(ctx context.Context, id string) (*backend.Owner, error)
	Clear(ctx context.Context, id string) error
}

// MemoryStore is the in-process fallback used when Redis is not
// reachable at startup. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*backend.Owner
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*backend.Owner)}
}

func (m *MemoryStore) Save(_ context.Context, id string, owner *backend.Owner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *owner
	m.sessions[id] = &cp
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*backend.Owner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owner, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *owner
	return &cp, nil
}

func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
