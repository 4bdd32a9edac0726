package router

import (
	"log/slog"
	"time"

	"believestore/backend/internal/auth"
	"believestore/backend/internal/config"
	"believestore/backend/internal/handler"
	"believestore/backend/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the gin engine with every API route mounted under /api/v1.
func NewRouter(h *handler.Handler, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.Middleware(logger), cors.New(corsConfig(cfg)))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", h.Ping)

	requireAuth := auth.AuthMiddleware(cfg.JWTSecret)
	optionalAuth := auth.OptionalAuthMiddleware(cfg.JWTSecret)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ping", h.Ping)

		// Score routes (protected)
		scoreRoutes := apiV1.Group("/scores")
		scoreRoutes.Use(requireAuth)
		{
			scoreRoutes.GET("/me", h.GetMyScore)
			scoreRoutes.PUT("/me", h.SyncMyScore)
		}

		// Public leaderboards
		apiV1.GET("/leaderboard", h.GetLeaderboard)
		apiV1.GET("/leaderboard/weekly", h.GetWeeklyLeaderboard)

		// Multiplayer rooms (protected)
		roomRoutes := apiV1.Group("/rooms")
		roomRoutes.Use(requireAuth)
		{
			roomRoutes.POST("", h.CreateRoom)
			roomRoutes.GET("/:code", h.GetRoom)
			roomRoutes.POST("/:code/join", h.JoinRoom)
			roomRoutes.GET("/:code/participants", h.GetParticipants)
			roomRoutes.GET("/:code/events", h.StreamRoomEvents)
			roomRoutes.POST("/:code/start", h.StartRoom)
			roomRoutes.GET("/:code/quiz", h.GetQuiz)
			roomRoutes.POST("/:code/quiz/answer", h.AnswerQuiz)
			roomRoutes.POST("/:code/race/press", h.PressRace)
			roomRoutes.GET("/:code/results", h.GetResults)
		}

		// Single-player arcade; guests play without syncing
		arcadeRoutes := apiV1.Group("/arcade/sessions")
		arcadeRoutes.Use(optionalAuth)
		{
			arcadeRoutes.POST("", h.CreateArcadeSession)
			arcadeRoutes.GET("/:id", h.GetArcadeSession)
			arcadeRoutes.DELETE("/:id", h.CloseArcadeSession)
			arcadeRoutes.POST("/:id/snake", h.StartSnake)
			arcadeRoutes.GET("/:id/snake", h.GetSnake)
			arcadeRoutes.POST("/:id/snake/turn", h.TurnSnake)
			arcadeRoutes.POST("/:id/memory", h.StartMemory)
			arcadeRoutes.GET("/:id/memory", h.GetMemory)
			arcadeRoutes.POST("/:id/memory/flip", h.FlipMemory)
		}

		// Store
		apiV1.GET("/products", h.GetProducts)
		apiV1.GET("/shipping/quote", h.QuoteShipping)
		apiV1.POST("/checkout", requireAuth, h.CreateCheckout)
		apiV1.GET("/orders/:session_id", requireAuth, h.GetOrder)

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(requireAuth, auth.AdminMiddleware())
		{
			adminRoutes.POST("/leaderboard/weekly/reset", h.ResetWeeklyLeaderboard)
		}
	}

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Cache-Control"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
