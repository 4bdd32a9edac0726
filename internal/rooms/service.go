// Package rooms manages multiplayer rooms: membership, the waiting roster,
// game start, in-game score writes and the end-of-game settlement.
package rooms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"believestore/backend/internal/hub"
	"believestore/backend/internal/models"
	"believestore/backend/internal/queue"
	"believestore/backend/internal/scores"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MinPlayers      = 2
	MaxPlayersLimit = 8
	maxCodeAttempts = 5
)

// StartedEvent is pushed to subscribers when a room starts.
type StartedEvent struct {
	RoomCode  string          `json:"room_code"`
	GameType  models.GameType `json:"game_type"`
	StartedAt time.Time       `json:"started_at"`
}

// Player is the authenticated caller acting on a room.
type Player struct {
	UserID uuid.UUID
	Name   string
}

type Service struct {
	db     *gorm.DB
	scores *scores.Service
	hub    *hub.Hub
	events queue.Publisher
	codes  CodeGenerator
	logger *slog.Logger
	now    func() time.Time

	quiz     *quizRuntimes
	watchers *watchers
}

// NewService wires the room service. Background loops (quiz timers and roster
// watchers) stop when ctx is cancelled.
func NewService(ctx context.Context, db *gorm.DB, scoreSvc *scores.Service, h *hub.Hub, events queue.Publisher, logger *slog.Logger) *Service {
	s := &Service{
		db:     db,
		scores: scoreSvc,
		hub:    h,
		events: events,
		codes:  RandomCodes{},
		logger: logger,
		now:    time.Now,
	}
	s.quiz = newQuizRuntimes(ctx, s)
	s.watchers = newWatchers(ctx, s)
	return s
}

// Create opens a waiting room with the host as its first participant.
func (s *Service) Create(ctx context.Context, host Player, gameType models.GameType, maxPlayers int) (*models.GameRoom, error) {
	if !gameType.Valid() {
		return nil, ErrInvalidGameType
	}
	if maxPlayers == 0 {
		maxPlayers = models.DefaultMaxPlayers
	}
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayersLimit {
		return nil, ErrInvalidMaxPlayers
	}

	var room models.GameRoom
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, err := s.uniqueCode(tx)
		if err != nil {
			return err
		}

		room = models.GameRoom{
			RoomCode:   code,
			GameType:   gameType,
			MaxPlayers: maxPlayers,
			Status:     models.RoomStatusWaiting,
			HostID:     host.UserID,
		}
		if err := tx.Create(&room).Error; err != nil {
			return fmt.Errorf("create room: %w", err)
		}

		participant := models.GameParticipant{
			RoomID:     room.ID,
			UserID:     host.UserID,
			PlayerName: host.Name,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return fmt.Errorf("add host: %w", err)
		}
		room.Participants = []models.GameParticipant{participant}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("room created", "room_id", room.ID, "code", room.RoomCode, "game_type", room.GameType)
	s.watchers.watch(room.ID)
	return &room, nil
}

func (s *Service) uniqueCode(tx *gorm.DB) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := s.codes.Generate()
		if err != nil {
			return "", fmt.Errorf("generate room code: %w", err)
		}
		var n int64
		if err := tx.Model(&models.GameRoom{}).Where("room_code = ?", code).Count(&n).Error; err != nil {
			return "", fmt.Errorf("check room code: %w", err)
		}
		if n == 0 {
			return code, nil
		}
	}
	return "", ErrCodeExhausted
}

// Join adds the player to the waiting room with the given code. The room row
// stays locked until the participant is written, so a concurrent Start or Join
// sees the new roster.
func (s *Service) Join(ctx context.Context, code string, player Player) (*models.GameRoom, error) {
	var room models.GameRoom
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockRoom(tx).Where("room_code = ? AND status = ?", normalizeCode(code), models.RoomStatusWaiting).First(&room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("find room: %w", err)
		}

		var participants []models.GameParticipant
		if err := tx.Where("room_id = ?", room.ID).Find(&participants).Error; err != nil {
			return fmt.Errorf("load participants: %w", err)
		}
		for _, p := range participants {
			if p.UserID == player.UserID {
				return ErrAlreadyJoined
			}
		}
		if len(participants) >= room.MaxPlayers {
			return ErrRoomFull
		}

		participant := models.GameParticipant{
			RoomID:     room.ID,
			UserID:     player.UserID,
			PlayerName: player.Name,
		}
		if err := tx.Create(&participant).Error; err != nil {
			return fmt.Errorf("join room: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player joined room", "room_id", room.ID, "user_id", player.UserID)
	s.watchers.watch(room.ID)
	return s.Get(ctx, room.RoomCode)
}

// lockRoom selects room rows FOR UPDATE. SQLite has no row locks and its
// dialect drops the clause.
func lockRoom(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// Get returns the room and its participants in join order.
func (s *Service) Get(ctx context.Context, code string) (*models.GameRoom, error) {
	var room models.GameRoom
	err := s.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC").Order("id ASC")
		}).
		Where("room_code = ?", normalizeCode(code)).
		First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load room: %w", err)
	}
	return &room, nil
}

// Participants returns the roster of the room in join order.
func (s *Service) Participants(ctx context.Context, code string) ([]models.GameParticipant, error) {
	room, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return room.Participants, nil
}

func (s *Service) participants(ctx context.Context, roomID uuid.UUID) ([]models.GameParticipant, error) {
	var participants []models.GameParticipant
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("joined_at ASC").Order("id ASC").
		Find(&participants).Error
	return participants, err
}

// Start moves a waiting room to playing. Any participant may start it once
// at least MinPlayers have joined.
func (s *Service) Start(ctx context.Context, code string, userID uuid.UUID) (*models.GameRoom, error) {
	room, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomStatusWaiting {
		return nil, ErrRoomNotWaiting
	}
	if !isParticipant(room.Participants, userID) {
		return nil, ErrNotParticipant
	}
	if len(room.Participants) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	now := s.now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.GameRoom
		if err := lockRoom(tx).Select("id", "status").First(&locked, "id = ?", room.ID).Error; err != nil {
			return fmt.Errorf("lock room: %w", err)
		}
		if locked.Status != models.RoomStatusWaiting {
			return ErrRoomNotWaiting
		}

		var n int64
		if err := tx.Model(&models.GameParticipant{}).Where("room_id = ?", room.ID).Count(&n).Error; err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if n < MinPlayers {
			return ErrNotEnoughPlayers
		}

		result := tx.Model(&models.GameRoom{}).
			Where("id = ? AND status = ?", room.ID, models.RoomStatusWaiting).
			Updates(map[string]interface{}{"status": models.RoomStatusPlaying, "started_at": now})
		if result.Error != nil {
			return fmt.Errorf("start room: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrRoomNotWaiting
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	room, err = s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	s.logger.Info("room started", "room_id", room.ID, "players", len(room.Participants))

	if room.GameType == models.GameTypeQuiz {
		s.quiz.start(room)
	}
	s.hub.Broadcast(room.ID, hub.Event{Type: hub.EventStarted, Payload: StartedEvent{
		RoomCode:  room.RoomCode,
		GameType:  room.GameType,
		StartedAt: now,
	}})
	return room, nil
}

// UpdateScore writes a participant's current score while the room is playing.
func (s *Service) UpdateScore(ctx context.Context, roomID, userID uuid.UUID, score int) error {
	result := s.db.WithContext(ctx).Model(&models.GameParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Where("EXISTS (SELECT 1 FROM game_rooms WHERE game_rooms.id = ? AND game_rooms.status = ?)", roomID, models.RoomStatusPlaying).
		Update("score", score)
	if result.Error != nil {
		return fmt.Errorf("update score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotPlaying
	}
	return nil
}

func isParticipant(participants []models.GameParticipant, userID uuid.UUID) bool {
	for _, p := range participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
