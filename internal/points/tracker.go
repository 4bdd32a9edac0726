// Package points keeps a session's running point total and mirrors it to the
// score store once a player is logged in.
package points

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidDelta = errors.New("points delta must be positive")

// remoteTimeout bounds a single background upsert.
const remoteTimeout = 10 * time.Second

// LocalStore persists the running total for one session.
type LocalStore interface {
	Load(key string) (int, bool)
	Save(key string, total int)
}

// Remote is the authoritative score store.
type Remote interface {
	LoadTotal(ctx context.Context, userID uuid.UUID) (int, error)
	SaveTotal(ctx context.Context, userID uuid.UUID, playerName string, total int) error
}

// Identity is the logged-in player a tracker reports for.
type Identity struct {
	UserID uuid.UUID
	Name   string
}

type Tracker struct {
	key    string
	local  LocalStore
	remote Remote
	logger *slog.Logger

	mu       sync.Mutex
	total    int
	identity *Identity

	pending sync.WaitGroup
}

// NewTracker restores the total saved under key.
func NewTracker(key string, local LocalStore, remote Remote, logger *slog.Logger) *Tracker {
	t := &Tracker{key: key, local: local, remote: remote, logger: logger}
	if total, ok := local.Load(key); ok {
		t.total = total
	}
	return t
}

// Total returns the current running total.
func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Identity returns the attached player, if any.
func (t *Tracker) Identity() (Identity, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.identity == nil {
		return Identity{}, false
	}
	return *t.identity, true
}

// Login attaches the player and replaces the local total with the stored one.
func (t *Tracker) Login(ctx context.Context, id Identity) error {
	total, err := t.remote.LoadTotal(ctx, id.UserID)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.identity = &id
	t.total = total
	t.local.Save(t.key, total)
	return nil
}

// Logout detaches the player. The local total is kept.
func (t *Tracker) Logout() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.identity = nil
}

// AddPoints increments the running total, saves it locally and, when a player
// is attached, upserts the new total in the background. Every call issues its
// own upsert.
func (t *Tracker) AddPoints(delta int) (int, error) {
	if delta <= 0 {
		return 0, ErrInvalidDelta
	}

	t.mu.Lock()
	t.total += delta
	total := t.total
	t.local.Save(t.key, total)
	var id *Identity
	if t.identity != nil {
		copied := *t.identity
		id = &copied
	}
	t.mu.Unlock()

	if id != nil {
		t.pending.Add(1)
		go t.push(*id, total)
	}
	return total, nil
}

func (t *Tracker) push(id Identity, total int) {
	defer t.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	if err := t.remote.SaveTotal(ctx, id.UserID, id.Name, total); err != nil {
		t.logger.Error("failed to sync points", "user_id", id.UserID, "total", total, "error", err)
	}
}

// Wait blocks until every background upsert has returned.
func (t *Tracker) Wait() {
	t.pending.Wait()
}

// MemoryStore is a LocalStore kept in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	totals map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{totals: make(map[string]int)}
}

func (s *MemoryStore) Load(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total, ok := s.totals[key]
	return total, ok
}

func (s *MemoryStore) Save(key string, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[key] = total
}

// Delete forgets the total saved under key.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.totals, key)
}
