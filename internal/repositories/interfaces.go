package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type AttemptFilters struct {
	IsGraded  *bool      `json:"is_graded"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortOrder string     `json:"sort_order"` // "asc" (default, oldest first), "desc"
}

// ===== SHARED STATISTICS STRUCTS =====

type AttemptStats struct {
	TotalAttempts  int     `json:"total_attempts"`
	GradedAttempts int     `json:"graded_attempts"`
	BestPercentage int     `json:"best_percentage"`
	AveragePercent float64 `json:"average_percentage"`
	PassRate       float64 `json:"pass_rate"`
}

// Repository groups every store the engine writes to.
type Repository interface {
	Attempt() AttemptRepository
	StepProgress() StepProgressRepository
	QuestionError() QuestionErrorRepository

	// WithTransaction runs fn inside one database transaction.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// IsNotFoundError reports whether err means the row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
