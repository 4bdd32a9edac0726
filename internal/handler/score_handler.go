package handler

import (
	"errors"
	"net/http"
	"time"

	"believestore/backend/internal/models"
	"believestore/backend/internal/scores"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// SyncScoreInput carries the client's cumulative total.
type SyncScoreInput struct {
	TotalPoints *int `json:"total_points" binding:"required,min=0" example:"120"`
}

type ScoreResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	PlayerName  string    `json:"player_name" example:"Nami"`
	TotalPoints int       `json:"total_points" example:"120"`
	GamesPlayed int       `json:"games_played"`
	GamesWon    int       `json:"games_won"`
	LastUpdated time.Time `json:"last_updated"`
}

type RankedScoreResponse struct {
	Rank int `json:"rank" example:"1"`
	ScoreResponse
}

type WeeklyScoreResponse struct {
	Rank        int       `json:"rank" example:"1"`
	UserID      uuid.UUID `json:"user_id"`
	PlayerName  string    `json:"player_name"`
	TotalPoints int       `json:"total_points"`
	GamesPlayed int       `json:"games_played"`
	GamesWon    int       `json:"games_won"`
	WeekStart   time.Time `json:"week_start"`
	WeekEnd     time.Time `json:"week_end"`
}

// PaginatedLeaderboardResponse documents the all-time leaderboard page.
type PaginatedLeaderboardResponse struct {
	Data []RankedScoreResponse `json:"data"`
	Meta PaginationMeta        `json:"meta"`
}

func newScoreResponse(s models.UserScore) ScoreResponse {
	return ScoreResponse{
		UserID:      s.UserID,
		PlayerName:  s.PlayerName,
		TotalPoints: s.TotalPoints,
		GamesPlayed: s.GamesPlayed,
		GamesWon:    s.GamesWon,
		LastUpdated: s.LastUpdated,
	}
}

func newWeeklyScoreResponse(rank int, s models.WeeklyScore) WeeklyScoreResponse {
	return WeeklyScoreResponse{
		Rank:        rank,
		UserID:      s.UserID,
		PlayerName:  s.PlayerName,
		TotalPoints: s.TotalPoints,
		GamesPlayed: s.GamesPlayed,
		GamesWon:    s.GamesWon,
		WeekStart:   s.WeekStart,
		WeekEnd:     s.WeekEnd,
	}
}

// endregion

// GetMyScore godoc
// @Summary      Get my score
// @Description  Returns the caller's cumulative record. Users without a record get a zero total.
// @Tags         scores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ScoreResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /scores/me [get]
func (h *Handler) GetMyScore(c *gin.Context) {
	id := identity(c)

	score, err := h.Scores.Get(c.Request.Context(), id.UserID)
	if errors.Is(err, scores.ErrScoreNotFound) {
		c.JSON(http.StatusOK, ScoreResponse{UserID: id.UserID, PlayerName: id.Name})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newScoreResponse(*score))
}

// SyncMyScore godoc
// @Summary      Sync my score
// @Description  Stores the caller's absolute cumulative total.
// @Tags         scores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SyncScoreInput true "Cumulative total"
// @Success      200  {object}  ScoreResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /scores/me [put]
func (h *Handler) SyncMyScore(c *gin.Context) {
	var input SyncScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := identity(c)
	score, err := h.Scores.SyncTotal(c.Request.Context(), id.UserID, id.Name, *input.TotalPoints)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newScoreResponse(*score))
}

// GetLeaderboard godoc
// @Summary      All-time leaderboard
// @Description  Gets a paginated ranking by total points. Ties go to whoever reached the total first.
// @Tags         leaderboard
// @Produce      json
// @Param        page    query int false "Page number" default(1)
// @Param        limit   query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedLeaderboardResponse
// @Router       /leaderboard [get]
func (h *Handler) GetLeaderboard(c *gin.Context) {
	page, limit := pageParams(queryInt(c, "page", 1), queryInt(c, "limit", defaultPageSize))

	rows, total, err := h.Scores.Leaderboard(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	offset := (page - 1) * limit
	data := make([]RankedScoreResponse, 0, len(rows))
	for i, row := range rows {
		data = append(data, RankedScoreResponse{Rank: offset + i + 1, ScoreResponse: newScoreResponse(row)})
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(data, total, page, limit))
}

// GetWeeklyLeaderboard godoc
// @Summary      Weekly leaderboard
// @Description  Gets the ranking of the current Monday-to-Sunday week.
// @Tags         leaderboard
// @Produce      json
// @Param        limit   query int false "Number of entries" default(10)
// @Success      200  {array}  WeeklyScoreResponse
// @Router       /leaderboard/weekly [get]
func (h *Handler) GetWeeklyLeaderboard(c *gin.Context) {
	_, limit := pageParams(1, queryInt(c, "limit", defaultPageSize))

	rows, err := h.Scores.Weekly(c.Request.Context(), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]WeeklyScoreResponse, 0, len(rows))
	for i, row := range rows {
		response = append(response, newWeeklyScoreResponse(i+1, row))
	}
	c.JSON(http.StatusOK, response)
}

// ResetWeeklyLeaderboard godoc
// @Summary      Reset weekly leaderboard (Admin)
// @Description  Deletes every entry of the current week.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int64 "{"deleted": 12}"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /admin/leaderboard/weekly/reset [post]
func (h *Handler) ResetWeeklyLeaderboard(c *gin.Context) {
	deleted, err := h.Scores.ResetWeekly(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.Logger.Info("weekly leaderboard reset", "deleted", deleted, "by", identity(c).UserID)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
