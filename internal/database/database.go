package database

import (
	"fmt"
	"log/slog"
	"time"

	"believestore/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres connection and runs migrations.
func Connect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	return Open(postgres.Open(dsn), log)
}

// Open connects through any gorm dialector and migrates the schema.
func Open(dialector gorm.Dialector, log *slog.Logger) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: customLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database migrated successfully")
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.UserScore{},
		&models.WeeklyScore{},
		&models.GameRoom{},
		&models.GameParticipant{},
		&models.Order{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
