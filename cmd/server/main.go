package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"believestore/backend/internal/checkout"
	"believestore/backend/internal/config"
	"believestore/backend/internal/database"
	"believestore/backend/internal/game/arcade"
	"believestore/backend/internal/handler"
	"believestore/backend/internal/hub"
	"believestore/backend/internal/logging"
	"believestore/backend/internal/payment"
	"believestore/backend/internal/queue"
	"believestore/backend/internal/rooms"
	"believestore/backend/internal/router"
	"believestore/backend/internal/scores"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "believestore/backend/docs" // registers the swagger document served at /swagger
)

const shutdownTimeout = 10 * time.Second

// @title           BelieveStore API
// @version         1.0
// @description     Mini-games, leaderboards and checkout for the BelieveStore storefront.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.LoadConfig(); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.AppConfig
	logger := logging.New(os.Stderr, cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	logger.Info("database connection successful")

	events, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer events.Close()

	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY is not set, store endpoints will fail")
	}
	provider := payment.NewStripeProvider(cfg.StripeSecretKey, logger.With("component", "stripe"))

	scoreSvc := scores.NewService(db)
	roomHub := hub.NewHub(logger.With("component", "hub"))
	arcadeMgr := arcade.NewManager(ctx, scoreSvc, logger.With("component", "arcade"))
	defer arcadeMgr.Shutdown()

	h := &handler.Handler{
		Scores:   scoreSvc,
		Rooms:    rooms.NewService(ctx, db, scoreSvc, roomHub, events, logger.With("component", "rooms")),
		Arcade:   arcadeMgr,
		Checkout: checkout.NewService(db, provider, events, cfg.SiteURL, logger.With("component", "checkout")),
		Hub:      roomHub,
		Logger:   logger,
	}

	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(h, cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is running", "addr", srv.Addr, "swagger", "http://localhost:"+cfg.Port+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (queue.Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Warn("AMQP_URL is not set, domain events are discarded")
		return queue.Nop{}, nil
	}
	pub, err := queue.Dial(cfg.AMQPURL, queue.DefaultExchange, logger.With("component", "amqp"))
	if err != nil {
		return nil, err
	}
	return pub, nil
}
