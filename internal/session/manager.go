// Package session keeps per-visitor carousel components alive between
// requests and tears them down when the visitor goes idle.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claes/quizweb/internal/carousel"
)

// Factory builds an unmounted carousel for a game key observing signal.
type Factory func(gameKey string, signal carousel.Signal) *carousel.Component

// Session is one visitor's set of mounted carousels.
type Session struct {
	ID string

	mu       sync.Mutex
	lastSeen time.Time
	scroll   *carousel.Feed
	views    map[string]*carousel.Component
	dead     bool
}

// Scroll returns the visitor's scroll signal.
func (s *Session) Scroll() *carousel.Feed { return s.scroll }

func (s *Session) teardown() {
	s.mu.Lock()
	views := s.views
	s.views = map[string]*carousel.Component{}
	s.dead = true
	s.mu.Unlock()
	for _, v := range views {
		v.Teardown()
	}
}

// Manager owns all sessions.
type Manager struct {
	factory Factory
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// NewManager returns a manager that expires sessions idle for longer than ttl.
func NewManager(factory Factory, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		factory:  factory,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session for id, or a new one when id is unknown,
// expired or empty. The session's idle timer is reset.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if s, ok := m.sessions[id]; ok {
		s.mu.Lock()
		s.lastSeen = now
		s.mu.Unlock()
		return s
	}
	s := &Session{
		ID:       uuid.NewString(),
		lastSeen: now,
		scroll:   carousel.NewFeed(),
		views:    make(map[string]*carousel.Component),
	}
	if m.closed {
		s.dead = true
	} else {
		m.sessions[s.ID] = s
	}
	return s
}

// Carousel returns the session's component for gameKey, creating and
// mounting it on first use. The fetch runs detached from ctx so it
// survives the request that started it. A swept or closed session
// yields a torn-down component.
func (m *Manager) Carousel(ctx context.Context, s *Session, gameKey string) *carousel.Component {
	s.mu.Lock()
	if s.dead {
		s.mu.Unlock()
		c := m.factory(gameKey, s.scroll)
		c.Teardown()
		return c
	}
	c, ok := s.views[gameKey]
	if !ok {
		c = m.factory(gameKey, s.scroll)
		s.views[gameKey] = c
	}
	s.mu.Unlock()
	if !ok {
		c.Mount(context.WithoutCancel(ctx))
	}
	return c
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep tears down sessions idle for longer than the ttl and returns how
// many were removed.
func (m *Manager) Sweep() int {
	now := m.now()
	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > m.ttl {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.teardown()
	}
	if len(expired) > 0 {
		m.logger.Debug("expired sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps every interval until ctx ends, then closes the manager.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			m.Close()
			return nil
		case <-t.C:
			m.Sweep()
		}
	}
}

// Close tears down every session. Sessions handed out afterwards are not tracked.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.closed = true
	m.mu.Unlock()
	for _, s := range all {
		s.teardown()
	}
}
