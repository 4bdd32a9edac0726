package rooms

import (
	"context"
	"errors"
	"fmt"

	"believestore/backend/internal/game/racing"
	"believestore/backend/internal/hub"
	"believestore/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RaceProgress is a racer's state after a press.
type RaceProgress struct {
	UserID   uuid.UUID `json:"user_id"`
	Progress int       `json:"progress"`
	Finished bool      `json:"finished"`
	Result   *Result   `json:"result,omitempty"`
}

// Press advances the caller's car. The press that crosses the finish line
// records the finish time and settles the room.
func (s *Service) Press(ctx context.Context, code string, userID uuid.UUID) (*RaceProgress, error) {
	room, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.GameType != models.GameTypeRacing {
		return nil, ErrWrongGameType
	}
	if room.Status != models.RoomStatusPlaying || room.StartedAt == nil {
		return nil, ErrRoomNotPlaying
	}
	if !isParticipant(room.Participants, userID) {
		return nil, ErrNotParticipant
	}
	now := s.now().UTC()
	if !racing.Started(*room.StartedAt, now) {
		return nil, ErrRaceNotStarted
	}

	var (
		progress *RaceProgress
		crossed  bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.GameRoom
		if err := lockRoom(tx).Select("id", "status").First(&locked, "id = ?", room.ID).Error; err != nil {
			return fmt.Errorf("lock room: %w", err)
		}
		if locked.Status != models.RoomStatusPlaying {
			return ErrRoomNotPlaying
		}

		var participant models.GameParticipant
		if err := tx.Where("room_id = ? AND user_id = ?", room.ID, userID).First(&participant).Error; err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		progress = &RaceProgress{UserID: userID, Progress: participant.Score, Finished: participant.FinishTime != nil}
		if progress.Finished {
			return nil
		}

		next, done := racing.Press(participant.Score)
		updates := map[string]interface{}{"score": next}
		if done {
			updates["finish_time"] = now.Sub(*room.StartedAt).Milliseconds()
		}
		if err := tx.Model(&participant).Updates(updates).Error; err != nil {
			return fmt.Errorf("press: %w", err)
		}
		progress.Progress = next
		progress.Finished = done
		crossed = done
		return nil
	})
	if err != nil {
		return nil, err
	}
	if progress.Finished && !crossed {
		return progress, nil
	}

	s.hub.Broadcast(room.ID, hub.Event{Type: hub.EventProgress, Payload: progress})
	if !crossed {
		return progress, nil
	}

	res, err := s.Finish(ctx, room.ID)
	if errors.Is(err, ErrRoomNotPlaying) {
		return progress, nil
	}
	if err != nil {
		return nil, err
	}
	progress.Result = res
	return progress, nil
}
