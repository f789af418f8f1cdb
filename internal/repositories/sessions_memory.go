package repositories

import (
	"context"
	"sync"
	"time"

	"temperature-dashboard/internal/models"
)

type memorySession struct {
	state     models.DashboardState
	expiresAt time.Time
}

// MemorySessionRepository is a concurrency-safe in-process session store.
// Every write extends the session by ttl.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemorySessionRepository) Create(_ context.Context, id string, state models.DashboardState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[id] = &memorySession{state: state, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemorySessionRepository) Get(_ context.Context, id string) (models.DashboardState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok || m.expired(session) {
		return models.DashboardState{}, ErrSessionNotFound
	}
	return session.state, nil
}

func (m *MemorySessionRepository) Update(_ context.Context, id string, fn UpdateFunc) (models.DashboardState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok || m.expired(session) {
		return models.DashboardState{}, ErrSessionNotFound
	}

	next, err := fn(session.state)
	if err != nil {
		return models.DashboardState{}, err
	}

	session.state = next
	session.expiresAt = m.now().Add(m.ttl)
	return next, nil
}

func (m *MemorySessionRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionRepository) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if m.expired(session) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemorySessionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

func (m *MemorySessionRepository) expired(session *memorySession) bool {
	return m.ttl > 0 && !m.now().Before(session.expiresAt)
}
