package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Preetham2702/ClauseBot/internal/llm"
)

// Manager maps stable session identifiers to live sessions. For a given
// identifier it always resolves the same session instance while that
// session is kept alive; idle sessions are evicted after a TTL.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	backend llm.Backend
	cfg     PromptConfig
	timeout time.Duration
	ttl     time.Duration
	log     *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(backend llm.Backend, cfg PromptConfig, timeout, ttl time.Duration, log *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{
		sessions: make(map[string]*Session),
		backend:  backend,
		cfg:      cfg,
		timeout:  timeout,
		ttl:      ttl,
		log:      log,
	}
}

// Get returns the session for id, creating it on first use.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := NewSession(id, m.backend, m.cfg, m.timeout, m.log)
	m.sessions[id] = s
	m.log.Info("session created", "session_id", id)
	return s
}

// Lookup returns the session for id without creating one.
func (m *Manager) Lookup(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Cleanup evicts sessions idle longer than the TTL.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) > m.ttl {
			delete(m.sessions, id)
			m.log.Info("session evicted", "session_id", id)
		}
	}
}

// Start launches the periodic eviction sweep.
func (m *Manager) Start(ctx context.Context) {
	sweepCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				m.Cleanup()
			}
		}
	}()
}

// Stop halts the eviction sweep.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}
