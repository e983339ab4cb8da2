package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"gorm.io/gorm"
)

// AttemptRepository interface for quiz attempt operations
type AttemptRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error)

	// History, oldest first unless filters say otherwise
	ListByStepAndStudent(ctx context.Context, tx *gorm.DB, stepID, studentID string, filters AttemptFilters) ([]*models.QuizAttempt, error)
	CountByStepAndStudent(ctx context.Context, tx *gorm.DB, stepID, studentID string) (int64, error)

	// Manual grading
	Grade(ctx context.Context, tx *gorm.DB, id uint, percentage int, passed bool, feedback *string, gradedBy string) error

	// Statistics
	GetStats(ctx context.Context, tx *gorm.DB, stepID, studentID string) (*AttemptStats, error)
}

// StepProgressRepository records lesson step completion.
type StepProgressRepository interface {
	// MarkVisited upserts the progress row of a student on a step.
	MarkVisited(ctx context.Context, tx *gorm.DB, progress *models.StepProgress) error
	Get(ctx context.Context, tx *gorm.DB, stepID, studentID string) (*models.StepProgress, error)
}

// QuestionErrorRepository stores student reports about faulty questions.
type QuestionErrorRepository interface {
	Create(ctx context.Context, tx *gorm.DB, report *models.QuestionErrorReport) error
	ListByQuestion(ctx context.Context, tx *gorm.DB, questionID string, limit, offset int) ([]*models.QuestionErrorReport, error)
}
