package postgres

import (
	"context"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a AttemptPostgreSQL) Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	return getDB(a.db, tx).WithContext(ctx).Create(attempt).Error
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := getDB(a.db, tx).WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) ListByStepAndStudent(ctx context.Context, tx *gorm.DB, stepID, studentID string, filters repositories.AttemptFilters) ([]*models.QuizAttempt, error) {
	var attempts []*models.QuizAttempt

	query := getDB(a.db, tx).WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("step_id = ? AND student_id = ?", stepID, studentID)
	query = a.applyFiltersAttempt(query, filters)
	query = a.helpers.ApplyPaginationAndSort(query, "completed_at", filters.SortOrder, filters.Limit, filters.Offset)

	// ties on completed_at keep insertion order
	if err := query.Order("id ASC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (a AttemptPostgreSQL) CountByStepAndStudent(ctx context.Context, tx *gorm.DB, stepID, studentID string) (int64, error) {
	var count int64
	err := getDB(a.db, tx).WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("step_id = ? AND student_id = ?", stepID, studentID).
		Count(&count).Error
	return count, err
}

func (a AttemptPostgreSQL) Grade(ctx context.Context, tx *gorm.DB, id uint, percentage int, passed bool, feedback *string, gradedBy string) error {
	result := getDB(a.db, tx).WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"percentage": percentage,
			"passed":     passed,
			"is_graded":  true,
			"feedback":   feedback,
			"graded_by":  gradedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a AttemptPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, stepID, studentID string) (*repositories.AttemptStats, error) {
	var row struct {
		Total   int64
		Graded  int64
		Best    int
		Average float64
		Passed  int64
	}

	err := getDB(a.db, tx).WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("step_id = ? AND student_id = ?", stepID, studentID).
		Select("COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN is_graded = true THEN 1 ELSE 0 END), 0) AS graded, " +
			"COALESCE(MAX(percentage), 0) AS best, " +
			"COALESCE(AVG(percentage), 0) AS average, " +
			"COALESCE(SUM(CASE WHEN passed = true THEN 1 ELSE 0 END), 0) AS passed").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	passRate := float64(0)
	if row.Total > 0 {
		passRate = float64(row.Passed) / float64(row.Total)
	}

	return &repositories.AttemptStats{
		TotalAttempts:  int(row.Total),
		GradedAttempts: int(row.Graded),
		BestPercentage: row.Best,
		AveragePercent: row.Average,
		PassRate:       passRate,
	}, nil
}

func (a AttemptPostgreSQL) applyFiltersAttempt(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.IsGraded != nil {
		query = query.Where("is_graded = ?", *filters.IsGraded)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}
	return query
}
