package store

import (
	"context"
	"sync"

	"github.com/spigell/orienta/internal/session"
)

// Memory keeps encoded sessions in a map. Sessions are copied in and out.
type Memory struct {
	mu       sync.Mutex
	sessions map[string][]byte
	active   map[string]string
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string][]byte), active: make(map[string]string)}
}

func (m *Memory) Create(_ context.Context, s *session.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return session.ErrConflict
	}
	if s.State == session.StateInProgress {
		if _, busy := m.active[s.OwnerID]; busy {
			return session.ErrConflict
		}
		m.active[s.OwnerID] = s.ID
	}
	m.sessions[s.ID] = data

	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	data, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return nil, session.ErrNotFound
	}
	return decode(data)
}

func (m *Memory) FindActive(ctx context.Context, ownerID string) (*session.Session, error) {
	m.mu.Lock()
	id, ok := m.active[ownerID]
	m.mu.Unlock()

	if !ok {
		return nil, session.ErrNotFound
	}
	return m.Get(ctx, id)
}

func (m *Memory) Update(_ context.Context, id string, fn func(*session.Session) error) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}

	s, out, err := apply(data, id, fn)
	if err != nil {
		return nil, err
	}

	m.sessions[id] = out
	if s.State != session.StateInProgress && m.active[s.OwnerID] == id {
		delete(m.active, s.OwnerID)
	}

	return s, nil
}
