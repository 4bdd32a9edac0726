package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserScore is the cumulative points record of an authenticated user.
type UserScore struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	PlayerName  string    `gorm:"size:255;not null"`
	TotalPoints int       `gorm:"not null;default:0;index"`
	GamesPlayed int       `gorm:"not null;default:0"`
	GamesWon    int       `gorm:"not null;default:0"`
	LastUpdated time.Time `gorm:"not null"`
}

func (s *UserScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// WeeklyScore accumulates the points earned within one Monday-to-Sunday week.
type WeeklyScore struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_weekly_user_week"`
	PlayerName  string    `gorm:"size:255;not null"`
	TotalPoints int       `gorm:"not null;default:0"`
	GamesPlayed int       `gorm:"not null;default:0"`
	GamesWon    int       `gorm:"not null;default:0"`
	WeekStart   time.Time `gorm:"not null;uniqueIndex:idx_weekly_user_week"`
	WeekEnd     time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s *WeeklyScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
