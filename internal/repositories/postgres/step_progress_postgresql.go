package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StepProgressPostgreSQL struct {
	db *gorm.DB
}

func NewStepProgressPostgreSQL(db *gorm.DB) repositories.StepProgressRepository {
	return &StepProgressPostgreSQL{db: db}
}

func (s StepProgressPostgreSQL) MarkVisited(ctx context.Context, tx *gorm.DB, progress *models.StepProgress) error {
	progress.Visited = true
	return getDB(s.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "step_id"}, {Name: "student_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"visited":            true,
				"visited_at":         progress.VisitedAt,
				"time_spent_minutes": gorm.Expr("step_progress.time_spent_minutes + ?", progress.TimeSpentMinutes),
			}),
		}).
		Create(progress).Error
}

func (s StepProgressPostgreSQL) Get(ctx context.Context, tx *gorm.DB, stepID, studentID string) (*models.StepProgress, error) {
	var progress models.StepProgress
	if err := getDB(s.db, tx).WithContext(ctx).
		Where("step_id = ? AND student_id = ?", stepID, studentID).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}
