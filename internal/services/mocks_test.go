package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	args := m.Called(ctx, tx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error) {
	args := m.Called(ctx, tx, id)
	attempt, _ := args.Get(0).(*models.QuizAttempt)
	return attempt, args.Error(1)
}

func (m *MockAttemptRepository) ListByStepAndStudent(ctx context.Context, tx *gorm.DB, stepID, studentID string, filters repositories.AttemptFilters) ([]*models.QuizAttempt, error) {
	args := m.Called(ctx, tx, stepID, studentID, filters)
	attempts, _ := args.Get(0).([]*models.QuizAttempt)
	return attempts, args.Error(1)
}

func (m *MockAttemptRepository) CountByStepAndStudent(ctx context.Context, tx *gorm.DB, stepID, studentID string) (int64, error) {
	args := m.Called(ctx, tx, stepID, studentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) Grade(ctx context.Context, tx *gorm.DB, id uint, percentage int, passed bool, feedback *string, gradedBy string) error {
	args := m.Called(ctx, tx, id, percentage, passed, feedback, gradedBy)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetStats(ctx context.Context, tx *gorm.DB, stepID, studentID string) (*repositories.AttemptStats, error) {
	args := m.Called(ctx, tx, stepID, studentID)
	stats, _ := args.Get(0).(*repositories.AttemptStats)
	return stats, args.Error(1)
}

// MockStepProgressRepository is a mock implementation of StepProgressRepository
type MockStepProgressRepository struct {
	mock.Mock
}

func (m *MockStepProgressRepository) MarkVisited(ctx context.Context, tx *gorm.DB, progress *models.StepProgress) error {
	args := m.Called(ctx, tx, progress)
	return args.Error(0)
}

func (m *MockStepProgressRepository) Get(ctx context.Context, tx *gorm.DB, stepID, studentID string) (*models.StepProgress, error) {
	args := m.Called(ctx, tx, stepID, studentID)
	progress, _ := args.Get(0).(*models.StepProgress)
	return progress, args.Error(1)
}

// MockQuestionErrorRepository is a mock implementation of QuestionErrorRepository
type MockQuestionErrorRepository struct {
	mock.Mock
}

func (m *MockQuestionErrorRepository) Create(ctx context.Context, tx *gorm.DB, report *models.QuestionErrorReport) error {
	args := m.Called(ctx, tx, report)
	return args.Error(0)
}

func (m *MockQuestionErrorRepository) ListByQuestion(ctx context.Context, tx *gorm.DB, questionID string, limit, offset int) ([]*models.QuestionErrorReport, error) {
	args := m.Called(ctx, tx, questionID, limit, offset)
	reports, _ := args.Get(0).([]*models.QuestionErrorReport)
	return reports, args.Error(1)
}

// MockRepository is a mock implementation of the main Repository interface
type MockRepository struct {
	attemptRepo       *MockAttemptRepository
	stepProgressRepo  *MockStepProgressRepository
	questionErrorRepo *MockQuestionErrorRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		attemptRepo:       &MockAttemptRepository{},
		stepProgressRepo:  &MockStepProgressRepository{},
		questionErrorRepo: &MockQuestionErrorRepository{},
	}
}

func (m *MockRepository) Attempt() repositories.AttemptRepository             { return m.attemptRepo }
func (m *MockRepository) StepProgress() repositories.StepProgressRepository   { return m.stepProgressRepo }
func (m *MockRepository) QuestionError() repositories.QuestionErrorRepository { return m.questionErrorRepo }

// WithTransaction runs fn without a database; mocks receive a nil tx.
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stringPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
