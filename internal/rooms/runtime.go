package rooms

import (
	"context"
	"errors"
	"sync"
	"time"

	"believestore/backend/internal/game/quiz"
	"believestore/backend/internal/hub"
	"believestore/backend/internal/models"

	"github.com/google/uuid"
)

// QuizTick is how often quiz countdowns advance.
const QuizTick = time.Second

// quizRuntimes drives the quiz rooms that are currently playing. Runs live in
// memory only; a restart abandons them.
type quizRuntimes struct {
	ctx      context.Context
	svc      *Service
	interval time.Duration

	mu    sync.Mutex
	rooms map[uuid.UUID]*quizRoom
}

type quizRoom struct {
	id     uuid.UUID
	mu     sync.Mutex
	runs   map[uuid.UUID]*quiz.Run
	cancel context.CancelFunc
}

// PlayerProgress is broadcast to the room after every advance.
type PlayerProgress struct {
	UserID    uuid.UUID `json:"user_id"`
	Question  int       `json:"question"`
	Score     int       `json:"score"`
	Completed bool      `json:"completed"`
}

func newQuizRuntimes(ctx context.Context, svc *Service) *quizRuntimes {
	return &quizRuntimes{
		ctx:      ctx,
		svc:      svc,
		interval: QuizTick,
		rooms:    make(map[uuid.UUID]*quizRoom),
	}
}

func (q *quizRuntimes) start(room *models.GameRoom) {
	ctx, cancel := context.WithCancel(q.ctx)
	qr := &quizRoom{id: room.ID, runs: make(map[uuid.UUID]*quiz.Run), cancel: cancel}
	for _, p := range room.Participants {
		qr.runs[p.UserID] = quiz.NewRun(quiz.DefaultQuestions)
	}

	q.mu.Lock()
	if old, ok := q.rooms[room.ID]; ok {
		old.cancel()
	}
	q.rooms[room.ID] = qr
	q.mu.Unlock()

	go q.loop(ctx, room.ID)
}

func (q *quizRuntimes) loop(ctx context.Context, roomID uuid.UUID) {
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if q.step(ctx, roomID) {
				return
			}
		}
	}
}

// step advances every run in the room by one tick. When all runs are done it
// settles the room and reports true.
func (q *quizRuntimes) step(ctx context.Context, roomID uuid.UUID) bool {
	qr := q.get(roomID)
	if qr == nil {
		return true
	}

	qr.mu.Lock()
	advanced := false
	done := true
	for _, run := range qr.runs {
		if run.Tick() {
			advanced = true
		}
		if !run.Done() {
			done = false
		}
	}
	progress := qr.progress()
	qr.mu.Unlock()

	if advanced {
		q.svc.hub.Broadcast(roomID, hub.Event{Type: hub.EventQuiz, Payload: progress})
	}
	if !done {
		return false
	}

	_, err := q.svc.Finish(ctx, roomID)
	if err != nil && !errors.Is(err, ErrRoomNotPlaying) {
		q.svc.logger.Error("failed to finish quiz room", "room_id", roomID, "error", err)
	}
	q.stop(roomID)
	return true
}

func (q *quizRuntimes) get(roomID uuid.UUID) *quizRoom {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.rooms[roomID]
}

func (q *quizRuntimes) stop(roomID uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if qr, ok := q.rooms[roomID]; ok {
		qr.cancel()
		delete(q.rooms, roomID)
	}
}

func (qr *quizRoom) progress() []PlayerProgress {
	out := make([]PlayerProgress, 0, len(qr.runs))
	for userID, run := range qr.runs {
		st := run.State()
		out = append(out, PlayerProgress{UserID: userID, Question: st.Index, Score: st.Score, Completed: st.Completed})
	}
	return out
}

func (s *Service) quizRun(ctx context.Context, code string, userID uuid.UUID) (*quizRoom, *quiz.Run, error) {
	room, err := s.Get(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	if room.GameType != models.GameTypeQuiz {
		return nil, nil, ErrWrongGameType
	}
	if room.Status != models.RoomStatusPlaying {
		return nil, nil, ErrRoomNotPlaying
	}
	qr := s.quiz.get(room.ID)
	if qr == nil {
		return nil, nil, ErrQuizNotRunning
	}
	qr.mu.Lock()
	run, ok := qr.runs[userID]
	qr.mu.Unlock()
	if !ok {
		return nil, nil, ErrNotParticipant
	}
	return qr, run, nil
}

// QuizState returns the caller's current question and countdown.
func (s *Service) QuizState(ctx context.Context, code string, userID uuid.UUID) (quiz.State, error) {
	qr, run, err := s.quizRun(ctx, code, userID)
	if err != nil {
		return quiz.State{}, err
	}
	qr.mu.Lock()
	defer qr.mu.Unlock()
	return run.State(), nil
}

// Answer records the caller's answer and persists their new score.
func (s *Service) Answer(ctx context.Context, code string, userID uuid.UUID, option int) (quiz.State, int, error) {
	qr, run, err := s.quizRun(ctx, code, userID)
	if err != nil {
		return quiz.State{}, 0, err
	}

	qr.mu.Lock()
	points, err := run.Answer(option)
	state, score := run.State(), run.Score()
	qr.mu.Unlock()
	if err != nil {
		return quiz.State{}, 0, err
	}

	if points > 0 {
		if err := s.UpdateScore(ctx, qr.id, userID, score); err != nil {
			return quiz.State{}, 0, err
		}
	}
	return state, points, nil
}
