// Package scores persists cumulative and weekly player points.
package scores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"believestore/backend/internal/database"
	"believestore/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrScoreNotFound = errors.New("score not found")
	ErrNegativeTotal = errors.New("total points must not be negative")
)

// Award is one player's outcome of a finished game.
type Award struct {
	UserID     uuid.UUID
	PlayerName string
	Points     int
	Won        bool
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Get returns the user's cumulative record.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*models.UserScore, error) {
	var score models.UserScore
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load score: %w", err)
	}
	return &score, nil
}

// LoadTotal returns the stored total, or 0 for a user without a record.
func (s *Service) LoadTotal(ctx context.Context, userID uuid.UUID) (int, error) {
	score, err := s.Get(ctx, userID)
	if errors.Is(err, ErrScoreNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return score.TotalPoints, nil
}

// SaveTotal upserts an absolute cumulative total reported by a client session.
func (s *Service) SaveTotal(ctx context.Context, userID uuid.UUID, playerName string, total int) error {
	_, err := s.SyncTotal(ctx, userID, playerName, total)
	return err
}

// SyncTotal upserts the cumulative total and returns the stored record.
func (s *Service) SyncTotal(ctx context.Context, userID uuid.UUID, playerName string, total int) (*models.UserScore, error) {
	if total < 0 {
		return nil, ErrNegativeTotal
	}

	score := models.UserScore{
		UserID:      userID,
		PlayerName:  playerName,
		TotalPoints: total,
		LastUpdated: s.now().UTC(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"player_name", "total_points", "last_updated"}),
	}).Create(&score).Error
	if err != nil {
		return nil, fmt.Errorf("upsert score: %w", err)
	}
	return s.Get(ctx, userID)
}

// Award increments a player's cumulative and weekly records. It runs on tx so
// callers can make it part of a larger transaction.
func (s *Service) Award(tx *gorm.DB, a Award) error {
	now := s.now().UTC()
	won := 0
	if a.Won {
		won = 1
	}

	total := models.UserScore{
		UserID:      a.UserID,
		PlayerName:  a.PlayerName,
		TotalPoints: a.Points,
		GamesPlayed: 1,
		GamesWon:    won,
		LastUpdated: now,
	}
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"player_name":  a.PlayerName,
			"total_points": gorm.Expr("user_scores.total_points + ?", a.Points),
			"games_played": gorm.Expr("user_scores.games_played + 1"),
			"games_won":    gorm.Expr("user_scores.games_won + ?", won),
			"last_updated": now,
		}),
	}).Create(&total).Error
	if err != nil {
		return fmt.Errorf("award total score: %w", err)
	}

	start, end := WeekRange(now)
	weekly := models.WeeklyScore{
		UserID:      a.UserID,
		PlayerName:  a.PlayerName,
		TotalPoints: a.Points,
		GamesPlayed: 1,
		GamesWon:    won,
		WeekStart:   start,
		WeekEnd:     end,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "week_start"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"player_name":  a.PlayerName,
			"total_points": gorm.Expr("weekly_scores.total_points + ?", a.Points),
			"games_played": gorm.Expr("weekly_scores.games_played + 1"),
			"games_won":    gorm.Expr("weekly_scores.games_won + ?", won),
			"updated_at":   now,
		}),
	}).Create(&weekly).Error
	if err != nil {
		return fmt.Errorf("award weekly score: %w", err)
	}
	return nil
}

// Leaderboard returns one page of the all-time ranking.
func (s *Service) Leaderboard(ctx context.Context, page, limit int) ([]models.UserScore, int64, error) {
	query := s.db.WithContext(ctx).Order("total_points DESC").Order("last_updated ASC")
	return database.Paginate[models.UserScore](query, page, limit)
}

// Weekly returns the top entries of the current week.
func (s *Service) Weekly(ctx context.Context, limit int) ([]models.WeeklyScore, error) {
	start, _ := WeekRange(s.now())
	var rows []models.WeeklyScore
	err := s.db.WithContext(ctx).
		Where("week_start = ?", start).
		Order("total_points DESC").
		Order("updated_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load weekly ranking: %w", err)
	}
	return rows, nil
}

// ResetWeekly clears the current week's ranking and reports how many rows were removed.
func (s *Service) ResetWeekly(ctx context.Context) (int64, error) {
	start, _ := WeekRange(s.now())
	result := s.db.WithContext(ctx).Where("week_start = ?", start).Delete(&models.WeeklyScore{})
	if result.Error != nil {
		return 0, fmt.Errorf("reset weekly ranking: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// WeekRange returns Monday 00:00 UTC of t's week and the following Sunday 00:00 UTC.
func WeekRange(t time.Time) (start, end time.Time) {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	start = time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 6)
}
