package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"believestore/backend/internal/auth"
	"believestore/backend/internal/checkout"
	"believestore/backend/internal/game/arcade"
	"believestore/backend/internal/game/memory"
	"believestore/backend/internal/game/quiz"
	"believestore/backend/internal/game/snake"
	"believestore/backend/internal/hub"
	"believestore/backend/internal/payment"
	"believestore/backend/internal/points"
	"believestore/backend/internal/rooms"
	"believestore/backend/internal/scores"
	"believestore/backend/internal/shipping"

	"github.com/gin-gonic/gin"
)

// Handler serves the HTTP API on top of the domain services.
type Handler struct {
	Scores   *scores.Service
	Rooms    *rooms.Service
	Arcade   *arcade.Manager
	Checkout *checkout.Service
	Hub      *hub.Hub
	Logger   *slog.Logger
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Ping godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "pong"}"
// @Router       /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, rooms.ErrInvalidGameType),
		errors.Is(err, rooms.ErrInvalidMaxPlayers),
		errors.Is(err, shipping.ErrInvalidPostalCode),
		errors.Is(err, points.ErrInvalidDelta),
		errors.Is(err, scores.ErrNegativeTotal),
		errors.Is(err, checkout.ErrInvalidProduct),
		errors.Is(err, checkout.ErrInvalidPrice),
		errors.Is(err, checkout.ErrIncompleteAddress),
		errors.Is(err, snake.ErrUnknownDirection),
		errors.Is(err, quiz.ErrInvalidOption),
		errors.Is(err, memory.ErrInvalidCard):
		return http.StatusBadRequest
	case errors.Is(err, arcade.ErrForbidden),
		errors.Is(err, rooms.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, rooms.ErrRoomNotFound),
		errors.Is(err, scores.ErrScoreNotFound),
		errors.Is(err, arcade.ErrSessionNotFound),
		errors.Is(err, arcade.ErrNoGame),
		errors.Is(err, checkout.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, rooms.ErrRoomFull),
		errors.Is(err, rooms.ErrAlreadyJoined),
		errors.Is(err, rooms.ErrNotEnoughPlayers),
		errors.Is(err, rooms.ErrRoomNotWaiting),
		errors.Is(err, rooms.ErrRoomNotPlaying),
		errors.Is(err, rooms.ErrWrongGameType),
		errors.Is(err, rooms.ErrRaceNotStarted),
		errors.Is(err, rooms.ErrQuizNotRunning),
		errors.Is(err, quiz.ErrRunFinished),
		errors.Is(err, quiz.ErrAlreadyAnswered),
		errors.Is(err, memory.ErrGameCompleted),
		errors.Is(err, memory.ErrCardUnavailable),
		errors.Is(err, memory.ErrPairPending):
		return http.StatusConflict
	case errors.Is(err, payment.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Internal errors are logged and hidden.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		h.Logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	if status == http.StatusBadGateway {
		_ = c.Error(err)
		h.Logger.Warn("payment provider failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Payment provider unavailable"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// identity returns the caller set by AuthMiddleware. Routes behind it always have one.
func identity(c *gin.Context) auth.Identity {
	id, _ := auth.CurrentIdentity(c)
	return id
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}
