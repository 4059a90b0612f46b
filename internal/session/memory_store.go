package session

import (
	"context"
	"sync"
	"time"

	"session-service/internal/clock"
	"session-service/internal/logger"
)

// MemoryStore keeps sessions in a mutex-guarded map. It optionally
// owns a background sweeper that removes records whose inactivity
// exceeds a fixed threshold.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	clk  *clock.Clock
	stop chan struct{}
	done chan struct{}
}

func NewMemoryStore(clk *clock.Clock) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		clk:      clk,
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.SessionID]; exists {
		return ErrDuplicateID
	}
	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) FindAll(_ context.Context, status Status) ([]Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if status != StatusAny && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.SessionID] = s
	return nil
}

func (m *MemoryStore) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := int64(len(m.sessions))
	m.sessions = make(map[string]Session)
	return count, nil
}

// StartSweeper launches the periodic inactivity sweep. Records idle
// longer than maxInactivity are removed on every tick, independent
// of request handling.
func (m *MemoryStore) StartSweeper(interval, maxInactivity time.Duration) {
	if m.stop != nil {
		return
	}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.sweep(maxInactivity)
			case <-m.stop:
				return
			}
		}
	}()
}

// Close stops the sweeper, if one is running.
func (m *MemoryStore) Close() error {
	if m.stop == nil {
		return nil
	}
	close(m.stop)
	<-m.done
	m.stop = nil
	return nil
}

func (m *MemoryStore) sweep(maxInactivity time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		idle, ok := m.clk.Since(s.LastAccessed)
		if !ok {
			// Unparseable timestamp, leave the record alone.
			continue
		}
		if idle > maxInactivity {
			delete(m.sessions, id)
			logger.Info("session expired by sweeper", map[string]any{
				"sessionId": id,
				"idle":      idle.String(),
			})
		}
	}
}
