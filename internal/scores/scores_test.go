package scores

import (
	"context"
	"errors"
	"testing"
	"time"

	"believestore/backend/internal/testutil"

	"github.com/bmizerany/assert"
	"github.com/google/uuid"
)

func newTestService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s := NewService(testutil.SetupTestDB(t))
	s.now = func() time.Time { return now }
	return s
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday", time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC), time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, 10, 21, 23, 59, 0, 0, time.UTC), time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2026, 10, 25, 12, 0, 0, 0, time.UTC), time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{"month boundary", time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC), time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekRange(tt.in)
			assert.Equal(t, tt.want, start)
			assert.Equal(t, tt.want.AddDate(0, 0, 6), end)
		})
	}
}

func TestSyncTotal(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC))
	user := uuid.New()

	total, err := s.LoadTotal(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, total)

	_, err = s.Get(ctx, user)
	assert.T(t, errors.Is(err, ErrScoreNotFound))

	score, err := s.SyncTotal(ctx, user, "Ace", 30)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 30, score.TotalPoints)

	score, err = s.SyncTotal(ctx, user, "Ace", 45)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 45, score.TotalPoints)

	_, err = s.SyncTotal(ctx, user, "Ace", -1)
	assert.Equal(t, ErrNegativeTotal, err)
}

func TestAwardAccumulates(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC))
	user := uuid.New()

	if err := s.Award(s.db, Award{UserID: user, PlayerName: "Ace", Points: 100, Won: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.Award(s.db, Award{UserID: user, PlayerName: "Ace", Points: 50}); err != nil {
		t.Fatal(err)
	}

	score, err := s.Get(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 150, score.TotalPoints)
	assert.Equal(t, 2, score.GamesPlayed)
	assert.Equal(t, 1, score.GamesWon)

	weekly, err := s.Weekly(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(weekly))
	assert.Equal(t, 150, weekly[0].TotalPoints)
	assert.Equal(t, 2, weekly[0].GamesPlayed)
}

func TestLeaderboardOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC))

	points := []int{40, 90, 10}
	for i, p := range points {
		_, err := s.SyncTotal(ctx, uuid.New(), []string{"a", "b", "c"}[i], p)
		if err != nil {
			t.Fatal(err)
		}
	}

	page, total, err := s.Leaderboard(ctx, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(3), total)
	assert.Equal(t, 2, len(page))
	assert.Equal(t, 90, page[0].TotalPoints)
	assert.Equal(t, 40, page[1].TotalPoints)

	page, _, err = s.Leaderboard(ctx, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(page))
	assert.Equal(t, 10, page[0].TotalPoints)
}

func TestResetWeeklyOnlyClearsCurrentWeek(t *testing.T) {
	ctx := context.Background()
	lastWeek := time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)
	thisWeek := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)

	s := newTestService(t, lastWeek)
	user := uuid.New()
	if err := s.Award(s.db, Award{UserID: user, PlayerName: "Ace", Points: 20}); err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return thisWeek }
	if err := s.Award(s.db, Award{UserID: user, PlayerName: "Ace", Points: 30}); err != nil {
		t.Fatal(err)
	}

	removed, err := s.ResetWeekly(ctx)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(1), removed)

	weekly, err := s.Weekly(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, len(weekly))

	s.now = func() time.Time { return lastWeek }
	weekly, err = s.Weekly(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(weekly))
	assert.Equal(t, 20, weekly[0].TotalPoints)

	score, err := s.Get(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 50, score.TotalPoints)
}
