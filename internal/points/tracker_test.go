package points

import (
	"context"
	"errors"
	"sync"
	"testing"

	"believestore/backend/internal/testutil"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
)

type fakeRemote struct {
	mu      sync.Mutex
	stored  map[uuid.UUID]int
	saves   []int
	failErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{stored: make(map[uuid.UUID]int)}
}

func (r *fakeRemote) LoadTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stored[userID], nil
}

func (r *fakeRemote) SaveTotal(ctx context.Context, userID uuid.UUID, playerName string, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, total)
	if r.failErr != nil {
		return r.failErr
	}
	if total > r.stored[userID] {
		r.stored[userID] = total
	}
	return nil
}

func TestAddPointsSumsSequentialDeltas(t *testing.T) {
	tracker := NewTracker("s1", NewMemoryStore(), newFakeRemote(), testutil.Logger())

	for _, d := range []int{10, 10, 50, 3} {
		if _, err := tracker.AddPoints(d); err != nil {
			t.Fatal(err)
		}
	}
	assert.Equal(t, 73, tracker.Total())
}

func TestAddPointsRejectsNonPositive(t *testing.T) {
	tracker := NewTracker("s1", NewMemoryStore(), newFakeRemote(), testutil.Logger())

	_, err := tracker.AddPoints(0)
	assert.T(t, errors.Is(err, ErrInvalidDelta))
	_, err = tracker.AddPoints(-5)
	assert.T(t, errors.Is(err, ErrInvalidDelta))
	assert.Equal(t, 0, tracker.Total())
}

func TestLocalTotalSurvivesNewTracker(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker("s1", store, newFakeRemote(), testutil.Logger())
	if _, err := tracker.AddPoints(25); err != nil {
		t.Fatal(err)
	}

	restored := NewTracker("s1", store, newFakeRemote(), testutil.Logger())
	assert.Equal(t, 25, restored.Total())
}

func TestAnonymousTrackerNeverCallsRemote(t *testing.T) {
	remote := newFakeRemote()
	tracker := NewTracker("s1", NewMemoryStore(), remote, testutil.Logger())

	if _, err := tracker.AddPoints(10); err != nil {
		t.Fatal(err)
	}
	tracker.Wait()
	assert.Equal(t, 0, len(remote.saves))
}

func TestLoginTakesRemoteTotal(t *testing.T) {
	remote := newFakeRemote()
	user := uuid.New()
	remote.stored[user] = 500

	tracker := NewTracker("s1", NewMemoryStore(), remote, testutil.Logger())
	if _, err := tracker.AddPoints(10); err != nil {
		t.Fatal(err)
	}

	if err := tracker.Login(context.Background(), Identity{UserID: user, Name: "Ace"}); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 500, tracker.Total())

	total, err := tracker.AddPoints(10)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 510, total)

	tracker.Wait()
	assert.Equal(t, []int{510}, remote.saves)
	assert.Equal(t, 510, remote.stored[user])
}

func TestEachIncrementIssuesItsOwnUpsert(t *testing.T) {
	remote := newFakeRemote()
	tracker := NewTracker("s1", NewMemoryStore(), remote, testutil.Logger())
	if err := tracker.Login(context.Background(), Identity{UserID: uuid.New(), Name: "Ace"}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if _, err := tracker.AddPoints(10); err != nil {
			t.Fatal(err)
		}
	}
	tracker.Wait()

	assert.Equal(t, 5, len(remote.saves))
	assert.Equal(t, 50, tracker.Total())
}

func TestRemoteFailureIsSwallowed(t *testing.T) {
	remote := newFakeRemote()
	remote.failErr = errors.New("connection refused")
	tracker := NewTracker("s1", NewMemoryStore(), remote, testutil.Logger())
	if err := tracker.Login(context.Background(), Identity{UserID: uuid.New(), Name: "Ace"}); err != nil {
		t.Fatal(err)
	}

	total, err := tracker.AddPoints(10)
	assert.Equal(t, nil, err)
	assert.Equal(t, 10, total)
	tracker.Wait()
	assert.Equal(t, 10, tracker.Total())
}

func TestLogoutStopsSync(t *testing.T) {
	remote := newFakeRemote()
	tracker := NewTracker("s1", NewMemoryStore(), remote, testutil.Logger())
	if err := tracker.Login(context.Background(), Identity{UserID: uuid.New(), Name: "Ace"}); err != nil {
		t.Fatal(err)
	}
	tracker.Logout()

	if _, err := tracker.AddPoints(10); err != nil {
		t.Fatal(err)
	}
	tracker.Wait()
	assert.Equal(t, 0, len(remote.saves))
	_, ok := tracker.Identity()
	assert.Equal(t, false, ok)
}
