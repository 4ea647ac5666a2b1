package conversation

import (
	"context"
	"sync"
	"time"
)

// Repository persists conversation contexts. Get returns (nil, nil) for an
// unknown or expired user.
type Repository interface {
	Get(ctx context.Context, userID string) (*Context, error)
	Put(ctx context.Context, c *Context) error
	Delete(ctx context.Context, userID string) error
}

// MemoryRepository keeps contexts in process. A zero ttl never expires.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Context
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Context), ttl: ttl, now: time.Now}
}

func (m *MemoryRepository) Get(ctx context.Context, userID string) (*Context, error) {
	m.mu.RLock()
	c, ok := m.store[userID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && m.now().Sub(c.UpdatedAt) > m.ttl {
		_ = m.Delete(ctx, userID)
		return nil, nil
	}
	cp := *c
	cp.History = append([]Turn(nil), c.History...)
	return &cp, nil
}

func (m *MemoryRepository) Put(ctx context.Context, c *Context) error {
	cp := *c
	cp.History = append([]Turn(nil), c.History...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[c.UserID] = &cp
	return nil
}

func (m *MemoryRepository) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, userID)
	return nil
}
