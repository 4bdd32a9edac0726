package rooms

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"believestore/backend/internal/game/racing"
	"believestore/backend/internal/hub"
	"believestore/backend/internal/models"
	"believestore/backend/internal/queue"
	"believestore/backend/internal/scores"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizWinBonus is awarded to the winner of a quiz room instead of their score.
const QuizWinBonus = 100

// Standing is one participant's final placement.
type Standing struct {
	UserID     uuid.UUID `json:"user_id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	Position   int       `json:"position"`
	FinishTime *int64    `json:"finish_time,omitempty"`
	Points     int       `json:"points"`
	Winner     bool      `json:"winner"`
}

// Result is the settled outcome of a room.
type Result struct {
	RoomID    uuid.UUID       `json:"room_id"`
	RoomCode  string          `json:"room_code"`
	GameType  models.GameType `json:"game_type"`
	WinnerID  uuid.UUID       `json:"winner_id"`
	Standings []Standing      `json:"standings"`
}

// Rank orders participants by score descending, then finish time ascending
// with unset times last, then by their order in the input.
func Rank(participants []models.GameParticipant) []models.GameParticipant {
	ranked := append([]models.GameParticipant(nil), participants...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		switch {
		case a.FinishTime != nil && b.FinishTime != nil:
			return *a.FinishTime < *b.FinishTime
		case a.FinishTime != nil:
			return true
		default:
			return false
		}
	})
	return ranked
}

// Reward returns the points a participant earns for a 1-based position.
func Reward(gameType models.GameType, position, score int) int {
	switch gameType {
	case models.GameTypeRacing:
		return racing.Reward(position)
	default:
		if position == 1 {
			return QuizWinBonus
		}
		return score
	}
}

// Finish settles a playing room: it ranks participants, flips the room to
// finished with the winner, stores positions and awards every participant.
// All of it happens in one transaction guarded by a conditional status update,
// so concurrent callers settle the room exactly once; the others get
// ErrRoomNotPlaying.
func (s *Service) Finish(ctx context.Context, roomID uuid.UUID) (*Result, error) {
	var result *Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.GameRoom
		err := lockRoom(tx).First(&room, "id = ?", roomID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return fmt.Errorf("load room: %w", err)
		}
		if room.Status != models.RoomStatusPlaying {
			return ErrRoomNotPlaying
		}

		var participants []models.GameParticipant
		err = tx.Where("room_id = ?", roomID).Order("joined_at ASC").Order("id ASC").Find(&participants).Error
		if err != nil {
			return fmt.Errorf("load participants: %w", err)
		}
		if len(participants) == 0 {
			return ErrNotEnoughPlayers
		}

		ranked := Rank(participants)
		winner := ranked[0].UserID
		now := s.now().UTC()

		update := tx.Model(&models.GameRoom{}).
			Where("id = ? AND status = ?", roomID, models.RoomStatusPlaying).
			Updates(map[string]interface{}{
				"status":      models.RoomStatusFinished,
				"finished_at": now,
				"winner_id":   winner,
			})
		if update.Error != nil {
			return fmt.Errorf("finish room: %w", update.Error)
		}
		if update.RowsAffected == 0 {
			return ErrRoomNotPlaying
		}

		result = &Result{RoomID: room.ID, RoomCode: room.RoomCode, GameType: room.GameType, WinnerID: winner}
		for i, p := range ranked {
			position := i + 1
			if err := tx.Model(&models.GameParticipant{}).Where("id = ?", p.ID).Update("position", position).Error; err != nil {
				return fmt.Errorf("store position: %w", err)
			}

			standing := Standing{
				UserID:     p.UserID,
				PlayerName: p.PlayerName,
				Score:      p.Score,
				Position:   position,
				FinishTime: p.FinishTime,
				Points:     Reward(room.GameType, position, p.Score),
				Winner:     position == 1,
			}
			err := s.scores.Award(tx, scores.Award{
				UserID:     p.UserID,
				PlayerName: p.PlayerName,
				Points:     standing.Points,
				Won:        standing.Winner,
			})
			if err != nil {
				return err
			}
			result.Standings = append(result.Standings, standing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("room finished", "room_id", roomID, "winner_id", result.WinnerID)
	// A quiz room finishes from its own loop, whose ctx quiz.stop cancels.
	ctx = context.WithoutCancel(ctx)
	s.quiz.stop(roomID)
	s.hub.Broadcast(roomID, hub.Event{Type: hub.EventFinished, Payload: result})
	if err := s.events.Publish(ctx, queue.RoomFinished, result); err != nil {
		s.logger.Error("failed to publish room result", "room_id", roomID, "error", err)
	}
	return result, nil
}

// Results returns the standings of a finished room.
func (s *Service) Results(ctx context.Context, code string) (*Result, error) {
	room, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != models.RoomStatusFinished {
		return nil, ErrRoomNotPlaying
	}

	participants := append([]models.GameParticipant(nil), room.Participants...)
	sort.SliceStable(participants, func(i, j int) bool {
		return positionOf(participants[i]) < positionOf(participants[j])
	})

	result := &Result{RoomID: room.ID, RoomCode: room.RoomCode, GameType: room.GameType}
	if room.WinnerID != nil {
		result.WinnerID = *room.WinnerID
	}
	for _, p := range participants {
		position := positionOf(p)
		result.Standings = append(result.Standings, Standing{
			UserID:     p.UserID,
			PlayerName: p.PlayerName,
			Score:      p.Score,
			Position:   position,
			FinishTime: p.FinishTime,
			Points:     Reward(room.GameType, position, p.Score),
			Winner:     room.WinnerID != nil && *room.WinnerID == p.UserID,
		})
	}
	return result, nil
}

func positionOf(p models.GameParticipant) int {
	if p.Position == nil {
		return 1 << 30
	}
	return *p.Position
}
