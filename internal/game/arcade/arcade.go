// Package arcade runs single-player games inside short-lived sessions. Each
// session owns a points tracker that the games report to.
package arcade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"believestore/backend/internal/game/memory"
	"believestore/backend/internal/game/snake"
	"believestore/backend/internal/points"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("arcade session not found")
	ErrForbidden       = errors.New("arcade session belongs to another player")
	ErrNoGame          = errors.New("game not started in this session")
)

const (
	// SessionTTL is how long a session may go unused before it is closed.
	SessionTTL    = 30 * time.Minute
	sweepInterval = time.Minute
)

type Manager struct {
	ctx    context.Context
	store  *points.MemoryStore
	remote points.Remote
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	newSnake  func(onPoints func(int)) *snake.Game
	newMemory func(onPoints func(int)) *memory.Game

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager and starts the idle-session janitor.
// Snake loops and the janitor stop when ctx is cancelled.
func NewManager(ctx context.Context, remote points.Remote, logger *slog.Logger) *Manager {
	m := &Manager{
		ctx:       ctx,
		store:     points.NewMemoryStore(),
		remote:    remote,
		logger:    logger,
		ttl:       SessionTTL,
		now:       time.Now,
		newSnake:  func(onPoints func(int)) *snake.Game { return snake.New(nil, onPoints) },
		newMemory: func(onPoints func(int)) *memory.Game { return memory.New(nil, nil, onPoints) },
		sessions:  make(map[uuid.UUID]*Session),
	}
	go m.janitor(sweepInterval)
	return m
}

// Create opens a session. A non-nil owner logs the tracker in so points are
// mirrored to the score store.
func (m *Manager) Create(ctx context.Context, owner *points.Identity) (*Session, error) {
	id := uuid.New()
	now := m.now()
	s := &Session{
		ID:        id,
		CreatedAt: now.UTC(),
		manager:   m,
		tracker:   points.NewTracker(id.String(), m.store, m.remote, m.logger.With("session_id", id)),
	}
	s.touch(now)
	if owner != nil {
		if err := s.tracker.Login(ctx, *owner); err != nil {
			return nil, fmt.Errorf("load score for %s: %w", owner.UserID, err)
		}
		ownerID := owner.UserID
		s.owner = &ownerID
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("arcade session created", "session_id", id, "authenticated", owner != nil)
	return s, nil
}

// Get returns the session if caller may use it and marks it used. Anonymous
// sessions are open to anyone holding the id; owned sessions only to their owner.
func (m *Manager) Get(id uuid.UUID, caller *uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.owner != nil && (caller == nil || *caller != *s.owner) {
		return nil, ErrForbidden
	}
	s.touch(m.now())
	return s, nil
}

// Close stops the session's games and waits for pending score syncs.
func (m *Manager) Close(id uuid.UUID, caller *uuid.UUID) error {
	s, err := m.Get(id, caller)
	if err != nil {
		return err
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	m.end(s)
	m.logger.Info("arcade session closed", "session_id", id, "total", s.tracker.Total())
	return nil
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		m.end(s)
	}
}

func (m *Manager) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if n := m.sweep(); n > 0 {
				m.logger.Info("expired idle arcade sessions", "count", n, "remaining", m.Len())
			}
		}
	}
}

// sweep closes every session unused for longer than the TTL and returns how
// many it closed.
func (m *Manager) sweep() int {
	cutoff := m.now().Add(-m.ttl)

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.lastUsed().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		m.end(s)
		m.logger.Debug("arcade session expired", "session_id", s.ID, "total", s.tracker.Total())
	}
	return len(expired)
}

// end stops a session that is already out of the map. Late game awards stay
// local once the player is detached.
func (m *Manager) end(s *Session) {
	s.stopGames()
	s.tracker.Logout()
	s.tracker.Wait()
	m.store.Delete(s.ID.String())
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time

	manager *Manager
	tracker *points.Tracker
	owner   *uuid.UUID
	used    atomic.Int64

	mu        sync.Mutex
	snake     *snake.Game
	stopSnake context.CancelFunc
	memory    *memory.Game
}

func (s *Session) Total() int { return s.tracker.Total() }

func (s *Session) Authenticated() bool { return s.owner != nil }

func (s *Session) touch(t time.Time) { s.used.Store(t.UnixNano()) }

func (s *Session) lastUsed() time.Time { return time.Unix(0, s.used.Load()) }

func (s *Session) award(points int) {
	if _, err := s.tracker.AddPoints(points); err != nil {
		s.manager.logger.Error("failed to add points", "session_id", s.ID, "error", err)
	}
}

// StartSnake replaces any running snake game with a fresh one.
func (s *Session) StartSnake() snake.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopSnake != nil {
		s.stopSnake()
	}
	game := s.manager.newSnake(s.award)
	ctx, cancel := context.WithCancel(s.manager.ctx)
	s.snake, s.stopSnake = game, cancel
	go game.Run(ctx)
	return game.State()
}

func (s *Session) SnakeState() (snake.State, error) {
	s.mu.Lock()
	game := s.snake
	s.mu.Unlock()
	if game == nil {
		return snake.State{}, ErrNoGame
	}
	return game.State(), nil
}

// TurnSnake reports whether the direction change was accepted.
func (s *Session) TurnSnake(d snake.Direction) (bool, error) {
	s.mu.Lock()
	game := s.snake
	s.mu.Unlock()
	if game == nil {
		return false, ErrNoGame
	}
	return game.Turn(d), nil
}

// StartMemory deals a new deck, discarding any game in progress.
func (s *Session) StartMemory() memory.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memory != nil {
		s.memory.Stop()
	}
	s.memory = s.manager.newMemory(s.award)
	return s.memory.State()
}

func (s *Session) MemoryState() (memory.State, error) {
	s.mu.Lock()
	game := s.memory
	s.mu.Unlock()
	if game == nil {
		return memory.State{}, ErrNoGame
	}
	return game.State(), nil
}

func (s *Session) FlipMemory(card int) (memory.State, error) {
	s.mu.Lock()
	game := s.memory
	s.mu.Unlock()
	if game == nil {
		return memory.State{}, ErrNoGame
	}
	if err := game.Flip(card); err != nil {
		return memory.State{}, err
	}
	return game.State(), nil
}

func (s *Session) stopGames() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopSnake != nil {
		s.stopSnake()
		s.stopSnake = nil
	}
	if s.memory != nil {
		s.memory.Stop()
	}
}
