package rooms

import (
	"context"
	"strings"
	"sync"
	"time"

	"believestore/backend/internal/hub"
	"believestore/backend/internal/models"

	"github.com/google/uuid"
)

// RosterInterval is how often a waiting room's roster is re-read.
const RosterInterval = 2 * time.Second

// RosterEntry is one player in a roster event.
type RosterEntry struct {
	UserID     uuid.UUID `json:"user_id"`
	PlayerName string    `json:"player_name"`
	JoinedAt   time.Time `json:"joined_at"`
}

// watchers poll the participant table of waiting rooms and push roster
// changes to hub subscribers. A watcher exits once its room leaves waiting.
type watchers struct {
	ctx      context.Context
	svc      *Service
	interval time.Duration

	mu     sync.Mutex
	active map[uuid.UUID]bool
}

func newWatchers(ctx context.Context, svc *Service) *watchers {
	return &watchers{ctx: ctx, svc: svc, interval: RosterInterval, active: make(map[uuid.UUID]bool)}
}

func (w *watchers) watch(roomID uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active[roomID] {
		return
	}
	w.active[roomID] = true
	go w.loop(roomID)
}

func (w *watchers) watching(roomID uuid.UUID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active[roomID]
}

func (w *watchers) loop(roomID uuid.UUID) {
	defer func() {
		w.mu.Lock()
		delete(w.active, roomID)
		w.mu.Unlock()
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := ""
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			var keep bool
			last, keep = w.poll(roomID, last)
			if !keep {
				return
			}
		}
	}
}

// poll reads the room once. It returns the roster signature and whether the
// room is still waiting.
func (w *watchers) poll(roomID uuid.UUID, last string) (string, bool) {
	var room models.GameRoom
	if err := w.svc.db.WithContext(w.ctx).Select("id", "status").First(&room, "id = ?", roomID).Error; err != nil {
		w.svc.logger.Warn("roster watcher stopped", "room_id", roomID, "error", err)
		return last, false
	}
	if room.Status != models.RoomStatusWaiting {
		return last, false
	}
	// Nobody to push to; the next subscriber gets the roster on connect.
	if w.svc.hub.Subscribers(roomID) == 0 {
		return "", true
	}

	participants, err := w.svc.participants(w.ctx, roomID)
	if err != nil {
		w.svc.logger.Warn("failed to read roster", "room_id", roomID, "error", err)
		return last, true
	}

	ids := make([]string, len(participants))
	roster := make([]RosterEntry, len(participants))
	for i, p := range participants {
		ids[i] = p.UserID.String()
		roster[i] = RosterEntry{UserID: p.UserID, PlayerName: p.PlayerName, JoinedAt: p.JoinedAt}
	}
	signature := strings.Join(ids, ",")
	if signature != last {
		w.svc.hub.Broadcast(roomID, hub.Event{Type: hub.EventRoster, Payload: roster})
	}
	return signature, true
}
