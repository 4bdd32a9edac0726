package handler

import (
	"io"
	"net/http"
	"time"

	"believestore/backend/internal/game/quiz"
	"believestore/backend/internal/game/racing"
	"believestore/backend/internal/hub"
	"believestore/backend/internal/models"
	"believestore/backend/internal/rooms"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

type CreateRoomInput struct {
	GameType   models.GameType `json:"game_type" binding:"required" example:"quiz"`
	MaxPlayers int             `json:"max_players" example:"4"`
}

type AnswerInput struct {
	Option *int `json:"option" binding:"required,min=0" example:"2"`
}

type ParticipantResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	PlayerName string    `json:"player_name" example:"Nami"`
	Score      int       `json:"score"`
	JoinedAt   time.Time `json:"joined_at"`
	FinishTime *int64    `json:"finish_time,omitempty"`
	Position   *int      `json:"position,omitempty"`
}

type RoomResponse struct {
	ID           uuid.UUID             `json:"id"`
	RoomCode     string                `json:"room_code" example:"K7Q2ZD"`
	GameType     models.GameType       `json:"game_type" example:"racing"`
	Status       models.RoomStatus     `json:"status" example:"waiting"`
	MaxPlayers   int                   `json:"max_players" example:"4"`
	HostID       uuid.UUID             `json:"host_id"`
	CreatedAt    time.Time             `json:"created_at"`
	StartedAt    *time.Time            `json:"started_at,omitempty"`
	FinishedAt   *time.Time            `json:"finished_at,omitempty"`
	WinnerID     *uuid.UUID            `json:"winner_id,omitempty"`
	CountdownMs  *int64                `json:"countdown_ms,omitempty"`
	Participants []ParticipantResponse `json:"participants"`
	MinPlayers   int                   `json:"min_players" example:"2"`
	CanStart     bool                  `json:"can_start"`
}

type AnswerResponse struct {
	Points int        `json:"points" example:"7"`
	State  quiz.State `json:"state"`
}

func newParticipantResponses(participants []models.GameParticipant) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, ParticipantResponse{
			UserID:     p.UserID,
			PlayerName: p.PlayerName,
			Score:      p.Score,
			JoinedAt:   p.JoinedAt,
			FinishTime: p.FinishTime,
			Position:   p.Position,
		})
	}
	return out
}

func newRoomResponse(room models.GameRoom, now time.Time) RoomResponse {
	resp := RoomResponse{
		ID:           room.ID,
		RoomCode:     room.RoomCode,
		GameType:     room.GameType,
		Status:       room.Status,
		MaxPlayers:   room.MaxPlayers,
		HostID:       room.HostID,
		CreatedAt:    room.CreatedAt,
		StartedAt:    room.StartedAt,
		FinishedAt:   room.FinishedAt,
		WinnerID:     room.WinnerID,
		Participants: newParticipantResponses(room.Participants),
		MinPlayers:   rooms.MinPlayers,
		CanStart:     room.Status == models.RoomStatusWaiting && len(room.Participants) >= rooms.MinPlayers,
	}
	if room.GameType == models.GameTypeRacing && room.Status == models.RoomStatusPlaying && room.StartedAt != nil {
		left := racing.CountdownLeft(*room.StartedAt, now).Milliseconds()
		resp.CountdownMs = &left
	}
	return resp
}

// endregion

func (h *Handler) player(c *gin.Context) rooms.Player {
	id := identity(c)
	return rooms.Player{UserID: id.UserID, Name: id.Name}
}

// CreateRoom godoc
// @Summary      Create a room
// @Description  Creates a quiz or racing room with a fresh 6-character code. The creator joins as host.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateRoomInput true "Room settings"
// @Success      201  {object}  RoomResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.Rooms.Create(c.Request.Context(), h.player(c), input.GameType, input.MaxPlayers)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRoomResponse(*room, time.Now()))
}

// JoinRoom godoc
// @Summary      Join a room
// @Description  Joins a waiting room by code.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  RoomResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Room not found or no longer waiting"
// @Failure      409  {object}  ErrorResponse "Room full or already joined"
// @Router       /rooms/{code}/join [post]
func (h *Handler) JoinRoom(c *gin.Context) {
	room, err := h.Rooms.Join(c.Request.Context(), c.Param("code"), h.player(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(*room, time.Now()))
}

// GetRoom godoc
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  RoomResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /rooms/{code} [get]
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.Rooms.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(*room, time.Now()))
}

// GetParticipants godoc
// @Summary      Room roster
// @Description  Lists participants in join order. Clients poll this every 2 seconds while waiting.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {array}   ParticipantResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /rooms/{code}/participants [get]
func (h *Handler) GetParticipants(c *gin.Context) {
	participants, err := h.Rooms.Participants(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newParticipantResponses(participants))
}

// StreamRoomEvents godoc
// @Summary      Room event stream
// @Description  Server-sent events for a room: roster, started, progress, quiz and finished.
// @Tags         rooms
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  hub.Event
// @Failure      404  {object}  ErrorResponse
// @Router       /rooms/{code}/events [get]
func (h *Handler) StreamRoomEvents(c *gin.Context) {
	room, err := h.Rooms.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	client := hub.NewClient()
	h.Hub.Subscribe(room.ID, client)
	defer h.Hub.Unsubscribe(room.ID, client)

	userID := identity(c).UserID
	h.Logger.Info("SSE connection established", "user_id", userID, "room_id", room.ID)
	defer h.Logger.Info("SSE connection closed", "user_id", userID, "room_id", room.ID)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent(hub.EventRoster, newParticipantResponses(room.Participants))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		}
	})
}

// StartRoom godoc
// @Summary      Start a room
// @Description  Moves a waiting room with at least two players to playing.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  RoomResponse
// @Failure      403  {object}  ErrorResponse "Caller is not in the room"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Not enough players or already started"
// @Router       /rooms/{code}/start [post]
func (h *Handler) StartRoom(c *gin.Context) {
	room, err := h.Rooms.Start(c.Request.Context(), c.Param("code"), identity(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(*room, time.Now()))
}

// GetQuiz godoc
// @Summary      Current quiz question
// @Description  Returns the caller's current question and the seconds left to answer it.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  quiz.State
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /rooms/{code}/quiz [get]
func (h *Handler) GetQuiz(c *gin.Context) {
	state, err := h.Rooms.QuizState(c.Request.Context(), c.Param("code"), identity(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AnswerQuiz godoc
// @Summary      Answer the current question
// @Description  A correct answer is worth the seconds left, at least 1 point.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code  path string      true "Room code"
// @Param        input body AnswerInput true "Chosen option"
// @Success      200  {object}  AnswerResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already answered"
// @Router       /rooms/{code}/quiz/answer [post]
func (h *Handler) AnswerQuiz(c *gin.Context) {
	var input AnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, points, err := h.Rooms.Answer(c.Request.Context(), c.Param("code"), identity(c).UserID, *input.Option)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AnswerResponse{Points: points, State: state})
}

// PressRace godoc
// @Summary      Race press
// @Description  Advances the caller's car by 2. Reaching 100 records the finish time and settles the room.
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  rooms.RaceProgress
// @Failure      403  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Countdown running or race over"
// @Router       /rooms/{code}/race/press [post]
func (h *Handler) PressRace(c *gin.Context) {
	progress, err := h.Rooms.Press(c.Request.Context(), c.Param("code"), identity(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetResults godoc
// @Summary      Final standings
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Room code"
// @Success      200  {object}  rooms.Result
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Room not finished"
// @Router       /rooms/{code}/results [get]
func (h *Handler) GetResults(c *gin.Context) {
	result, err := h.Rooms.Results(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
