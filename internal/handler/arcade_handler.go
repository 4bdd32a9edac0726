package handler

import (
	"net/http"
	"time"

	"believestore/backend/internal/auth"
	"believestore/backend/internal/game/arcade"
	"believestore/backend/internal/game/memory"
	"believestore/backend/internal/game/snake"
	"believestore/backend/internal/points"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

type ArcadeSessionResponse struct {
	ID            uuid.UUID `json:"id"`
	TotalPoints   int       `json:"total_points" example:"40"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
}

type TurnInput struct {
	Direction string `json:"direction" binding:"required" example:"up"`
}

type TurnResponse struct {
	Accepted bool        `json:"accepted"`
	State    snake.State `json:"state"`
}

type FlipInput struct {
	Card *int `json:"card" binding:"required,min=0" example:"3"`
}

type SnakeResponse struct {
	TotalPoints int         `json:"total_points"`
	State       snake.State `json:"state"`
}

type MemoryResponse struct {
	TotalPoints int          `json:"total_points"`
	State       memory.State `json:"state"`
}

func newArcadeSessionResponse(s *arcade.Session) ArcadeSessionResponse {
	return ArcadeSessionResponse{
		ID:            s.ID,
		TotalPoints:   s.Total(),
		Authenticated: s.Authenticated(),
		CreatedAt:     s.CreatedAt,
	}
}

// endregion

// caller returns the optional authenticated user id.
func caller(c *gin.Context) *uuid.UUID {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		return nil
	}
	return &id.UserID
}

// session resolves the :id path parameter, writing the error response on failure.
func (h *Handler) session(c *gin.Context) (*arcade.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return nil, false
	}
	s, err := h.Arcade.Get(id, caller(c))
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return s, true
}

// CreateArcadeSession godoc
// @Summary      Start an arcade session
// @Description  Creates a single-player session. Signed-in players start from their stored total and every award is synced back.
// @Tags         arcade
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  ArcadeSessionResponse
// @Router       /arcade/sessions [post]
func (h *Handler) CreateArcadeSession(c *gin.Context) {
	var owner *points.Identity
	if id, ok := auth.CurrentIdentity(c); ok {
		owner = &points.Identity{UserID: id.UserID, Name: id.Name}
	}

	s, err := h.Arcade.Create(c.Request.Context(), owner)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newArcadeSessionResponse(s))
}

// GetArcadeSession godoc
// @Summary      Get an arcade session
// @Tags         arcade
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  ArcadeSessionResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /arcade/sessions/{id} [get]
func (h *Handler) GetArcadeSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newArcadeSessionResponse(s))
}

// CloseArcadeSession godoc
// @Summary      End an arcade session
// @Description  Stops running games and flushes pending score syncs.
// @Tags         arcade
// @Param        id path string true "Session ID"
// @Success      204
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /arcade/sessions/{id} [delete]
func (h *Handler) CloseArcadeSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}
	if err := h.Arcade.Close(id, caller(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StartSnake godoc
// @Summary      Start a snake game
// @Description  Starts a new snake run on a 20x20 board. Each food is worth 10 points.
// @Tags         arcade
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      201  {object}  SnakeResponse
// @Router       /arcade/sessions/{id}/snake [post]
func (h *Handler) StartSnake(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state := s.StartSnake()
	c.JSON(http.StatusCreated, SnakeResponse{TotalPoints: s.Total(), State: state})
}

// GetSnake godoc
// @Summary      Snake state
// @Tags         arcade
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  SnakeResponse
// @Failure      404  {object}  ErrorResponse "No snake game started"
// @Router       /arcade/sessions/{id}/snake [get]
func (h *Handler) GetSnake(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state, err := s.SnakeState()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SnakeResponse{TotalPoints: s.Total(), State: state})
}

// TurnSnake godoc
// @Summary      Turn the snake
// @Description  Reversing onto the current axis is ignored and reported as not accepted.
// @Tags         arcade
// @Accept       json
// @Produce      json
// @Param        id    path string    true "Session ID"
// @Param        input body TurnInput true "up, down, left or right"
// @Success      200  {object}  TurnResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /arcade/sessions/{id}/snake/turn [post]
func (h *Handler) TurnSnake(c *gin.Context) {
	var input TurnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dir, err := snake.ParseDirection(input.Direction)
	if err != nil {
		h.respondError(c, err)
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}
	accepted, err := s.TurnSnake(dir)
	if err != nil {
		h.respondError(c, err)
		return
	}
	state, err := s.SnakeState()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TurnResponse{Accepted: accepted, State: state})
}

// StartMemory godoc
// @Summary      Start a memory game
// @Description  Deals 16 face-down cards. Completing the board is worth 50 points.
// @Tags         arcade
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      201  {object}  MemoryResponse
// @Router       /arcade/sessions/{id}/memory [post]
func (h *Handler) StartMemory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state := s.StartMemory()
	c.JSON(http.StatusCreated, MemoryResponse{TotalPoints: s.Total(), State: state})
}

// GetMemory godoc
// @Summary      Memory state
// @Tags         arcade
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200  {object}  MemoryResponse
// @Failure      404  {object}  ErrorResponse "No memory game started"
// @Router       /arcade/sessions/{id}/memory [get]
func (h *Handler) GetMemory(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	state, err := s.MemoryState()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MemoryResponse{TotalPoints: s.Total(), State: state})
}

// FlipMemory godoc
// @Summary      Flip a card
// @Tags         arcade
// @Accept       json
// @Produce      json
// @Param        id    path string    true "Session ID"
// @Param        input body FlipInput true "Card index"
// @Success      200  {object}  MemoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Card unavailable or pair pending"
// @Router       /arcade/sessions/{id}/memory/flip [post]
func (h *Handler) FlipMemory(c *gin.Context) {
	var input FlipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, ok := h.session(c)
	if !ok {
		return
	}
	state, err := s.FlipMemory(*input.Card)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MemoryResponse{TotalPoints: s.Total(), State: state})
}
