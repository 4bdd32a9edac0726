package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameType identifies which multiplayer mini-game a room hosts.
type GameType string

const (
	GameTypeQuiz   GameType = "quiz"
	GameTypeRacing GameType = "racing"
)

// Valid reports whether t is a known multiplayer game.
func (t GameType) Valid() bool {
	return t == GameTypeQuiz || t == GameTypeRacing
}

// RoomStatus is the persisted part of the room lifecycle.
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"
	RoomStatusPlaying  RoomStatus = "playing"
	RoomStatusFinished RoomStatus = "finished"
)

// DefaultMaxPlayers is used when a room is created without an explicit cap.
const DefaultMaxPlayers = 4

// GameRoom is a multiplayer room created by its host.
type GameRoom struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoomCode   string     `gorm:"size:16;uniqueIndex;not null"`
	GameType   GameType   `gorm:"size:20;not null"`
	MaxPlayers int        `gorm:"not null;default:4"`
	Status     RoomStatus `gorm:"size:20;not null;default:'waiting';index"`
	HostID     uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
	WinnerID   *uuid.UUID `gorm:"type:uuid"`

	Participants []GameParticipant `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
}

func (r *GameRoom) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// GameParticipant is a player's seat in a room. Score holds quiz points or
// racing progress depending on the room's game type.
type GameParticipant struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_room_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_room_user"`
	PlayerName string    `gorm:"size:255;not null"`
	Score      int       `gorm:"not null;default:0"`
	JoinedAt   time.Time `gorm:"not null"`
	FinishTime *int64    // milliseconds since the room started, racing only
	Position   *int
}

func (p *GameParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.JoinedAt.IsZero() {
		p.JoinedAt = time.Now().UTC()
	}
	return nil
}
