package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
)

type QuestionErrorPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewQuestionErrorPostgreSQL(db *gorm.DB) repositories.QuestionErrorRepository {
	return &QuestionErrorPostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (q QuestionErrorPostgreSQL) Create(ctx context.Context, tx *gorm.DB, report *models.QuestionErrorReport) error {
	return getDB(q.db, tx).WithContext(ctx).Create(report).Error
}

func (q QuestionErrorPostgreSQL) ListByQuestion(ctx context.Context, tx *gorm.DB, questionID string, limit, offset int) ([]*models.QuestionErrorReport, error) {
	var reports []*models.QuestionErrorReport

	query := getDB(q.db, tx).WithContext(ctx).
		Model(&models.QuestionErrorReport{}).
		Where("question_id = ?", questionID)
	query = q.helpers.ApplyPaginationAndSort(query, "created_at", "desc", limit, offset)

	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
