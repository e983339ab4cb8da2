package pkg

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/config"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the tables owned by the engine
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.QuizAttempt{},
		&models.StepProgress{},
		&models.QuestionErrorReport{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
