package arcade

import (
	"context"
	"sync"
	"testing"
	"time"

	"believestore/backend/internal/game/memory"
	"believestore/backend/internal/game/snake"
	"believestore/backend/internal/points"
	"believestore/backend/internal/testutil"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
)

type recordingRemote struct {
	mu     sync.Mutex
	totals map[uuid.UUID]int
}

func (r *recordingRemote) LoadTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totals[userID], nil
}

func (r *recordingRemote) SaveTotal(ctx context.Context, userID uuid.UUID, playerName string, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if total > r.totals[userID] {
		r.totals[userID] = total
	}
	return nil
}

func newTestManager(t *testing.T) (*Manager, *recordingRemote) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	remote := &recordingRemote{totals: make(map[uuid.UUID]int)}
	m := NewManager(ctx, remote, testutil.Logger())
	m.newMemory = func(onPoints func(int)) *memory.Game {
		noShuffle := func(n int, swap func(i, j int)) {}
		hold := func(d time.Duration, f func()) func() { return func() {} }
		return memory.New(noShuffle, hold, onPoints)
	}
	return m, remote
}

func TestAnonymousSession(t *testing.T) {
	m, _ := newTestManager(t)

	s, err := m.Create(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, false, s.Authenticated())

	got, err := m.Get(s.ID, nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, s, got)

	other := uuid.New()
	_, err = m.Get(s.ID, &other)
	assert.Equal(t, nil, err)

	_, err = m.Get(uuid.New(), nil)
	assert.Equal(t, ErrSessionNotFound, err)
}

func TestOwnedSessionRejectsOthers(t *testing.T) {
	m, remote := newTestManager(t)
	user := uuid.New()
	remote.totals[user] = 300

	s, err := m.Create(context.Background(), &points.Identity{UserID: user, Name: "Ace"})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 300, s.Total())

	_, err = m.Get(s.ID, nil)
	assert.Equal(t, ErrForbidden, err)

	stranger := uuid.New()
	_, err = m.Get(s.ID, &stranger)
	assert.Equal(t, ErrForbidden, err)

	_, err = m.Get(s.ID, &user)
	assert.Equal(t, nil, err)
}

func TestMemoryCompletionReportsToTracker(t *testing.T) {
	m, remote := newTestManager(t)
	user := uuid.New()

	s, err := m.Create(context.Background(), &points.Identity{UserID: user, Name: "Ace"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.FlipMemory(0)
	assert.Equal(t, ErrNoGame, err)

	s.StartMemory()
	for i := 0; i < len(memory.Symbols); i++ {
		if _, err := s.FlipMemory(i); err != nil {
			t.Fatal(err)
		}
		if _, err := s.FlipMemory(i + len(memory.Symbols)); err != nil {
			t.Fatal(err)
		}
	}

	state, err := s.MemoryState()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, true, state.Completed)
	assert.Equal(t, memory.CompletionBonus, s.Total())

	if err := m.Close(s.ID, &user); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, memory.CompletionBonus, remote.totals[user])

	_, err = m.Get(s.ID, &user)
	assert.Equal(t, ErrSessionNotFound, err)
}

func TestSnakeLifecycle(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := m.Create(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.SnakeState()
	assert.Equal(t, ErrNoGame, err)
	_, err = s.TurnSnake(snake.Up)
	assert.Equal(t, ErrNoGame, err)

	state := s.StartSnake()
	assert.Equal(t, snake.StatusRunning, state.Status)
	assert.Equal(t, 1, len(state.Snake))

	ok, err := s.TurnSnake(snake.Left)
	assert.Equal(t, nil, err)
	assert.Equal(t, false, ok)

	if err := m.Close(s.ID, nil); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(time.Second)
	for {
		st := s.snake.State().Status
		if st != snake.StatusRunning {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("snake still running after session close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestIdleSessionsExpire(t *testing.T) {
	m, remote := newTestManager(t)
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	m.now = clock.Now
	user := uuid.New()

	idle, err := m.Create(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	active, err := m.Create(context.Background(), &points.Identity{UserID: user, Name: "Ace"})
	if err != nil {
		t.Fatal(err)
	}
	active.StartMemory()
	if _, err := active.FlipMemory(0); err != nil {
		t.Fatal(err)
	}

	clock.Advance(SessionTTL - time.Minute)
	if _, err := m.Get(active.ID, &user); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, m.sweep())
	assert.Equal(t, 2, m.Len())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, m.sweep())
	assert.Equal(t, 1, m.Len())

	_, err = m.Get(idle.ID, nil)
	assert.Equal(t, ErrSessionNotFound, err)
	_, ok := m.store.Load(idle.ID.String())
	assert.Equal(t, false, ok)

	if _, err := m.Get(active.ID, &user); err != nil {
		t.Fatal(err)
	}

	clock.Advance(SessionTTL + time.Second)
	assert.Equal(t, 1, m.sweep())
	_, err = m.Get(active.ID, &user)
	assert.Equal(t, ErrSessionNotFound, err)
	_, ok = m.store.Load(active.ID.String())
	assert.Equal(t, false, ok)
	_, ok = active.tracker.Identity()
	assert.Equal(t, false, ok)
	assert.Equal(t, 0, remote.totals[user])
}
