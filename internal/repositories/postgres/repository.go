package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	db            *gorm.DB
	attempt       repositories.AttemptRepository
	stepProgress  repositories.StepProgressRepository
	questionError repositories.QuestionErrorRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		db:            db,
		attempt:       NewAttemptPostgreSQL(db),
		stepProgress:  NewStepProgressPostgreSQL(db),
		questionError: NewQuestionErrorPostgreSQL(db),
	}
}

func (r *Repository) Attempt() repositories.AttemptRepository             { return r.attempt }
func (r *Repository) StepProgress() repositories.StepProgressRepository   { return r.stepProgress }
func (r *Repository) QuestionError() repositories.QuestionErrorRepository { return r.questionError }

func (r *Repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
