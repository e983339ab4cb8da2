package handlers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/audio"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// ===== MOCK SERVICES =====

type MockQuizPlayerService struct {
	mock.Mock
}

func (m *MockQuizPlayerService) view(args mock.Arguments) (*services.SessionView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SessionView), args.Error(1)
}

func (m *MockQuizPlayerService) Open(ctx context.Context, req *services.OpenSessionRequest, studentID string) (*services.SessionView, error) {
	return m.view(m.Called(ctx, req, studentID))
}

func (m *MockQuizPlayerService) Get(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, studentID))
}

func (m *MockQuizPlayerService) Close(ctx context.Context, sessionID, studentID string) error {
	args := m.Called(ctx, sessionID, studentID)
	return args.Error(0)
}

func (m *MockQuizPlayerService) Act(ctx context.Context, sessionID, studentID string, action quiz.Action) (*services.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, studentID, action))
}

func (m *MockQuizPlayerService) Start(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionStart)
}

func (m *MockQuizPlayerService) Check(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionCheck)
}

func (m *MockQuizPlayerService) Next(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionNext)
}

func (m *MockQuizPlayerService) Finish(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionFinish)
}

func (m *MockQuizPlayerService) Review(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionReview)
}

func (m *MockQuizPlayerService) Reset(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionReset)
}

func (m *MockQuizPlayerService) Continue(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.Act(ctx, sessionID, studentID, quiz.ActionContinue)
}

func (m *MockQuizPlayerService) Answer(ctx context.Context, sessionID, studentID string, req *services.AnswerRequest) (*services.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, studentID, req))
}

func (m *MockQuizPlayerService) Reveal(ctx context.Context, sessionID, studentID string) (*services.SessionView, error) {
	return m.view(m.Called(ctx, sessionID, studentID))
}

func (m *MockQuizPlayerService) Audio(ctx context.Context, sessionID, studentID, questionID string, cmd audio.Command) (*services.AudioResponse, error) {
	args := m.Called(ctx, sessionID, studentID, questionID, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AudioResponse), args.Error(1)
}

func (m *MockQuizPlayerService) EvictIdle(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

func (m *MockQuizPlayerService) Run(ctx context.Context, interval time.Duration) {
	m.Called(ctx, interval)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Fetch(ctx context.Context, stepID, studentID string) []*models.QuizAttempt {
	args := m.Called(ctx, stepID, studentID)
	return args.Get(0).([]*models.QuizAttempt)
}

func (m *MockHistoryService) Summary(ctx context.Context, stepID, studentID string) (*services.HistorySummary, error) {
	args := m.Called(ctx, stepID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.HistorySummary), args.Error(1)
}

func (m *MockHistoryService) Invalidate(ctx context.Context, stepID, studentID string) {
	m.Called(ctx, stepID, studentID)
}

func (m *MockHistoryService) Grade(ctx context.Context, attemptID uint, graderID string, req *services.GradeAttemptRequest) (*models.QuizAttempt, error) {
	args := m.Called(ctx, attemptID, graderID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportAttempts(ctx context.Context, stepID, studentID string) ([]byte, error) {
	args := m.Called(ctx, stepID, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockErrorReportService struct {
	mock.Mock
}

func (m *MockErrorReportService) Report(ctx context.Context, req *services.QuestionErrorReportRequest, studentID string) (*services.ErrorReportResult, error) {
	args := m.Called(ctx, req, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ErrorReportResult), args.Error(1)
}

func (m *MockErrorReportService) ListByQuestion(ctx context.Context, questionID string, limit, offset int) ([]*models.QuestionErrorReport, error) {
	args := m.Called(ctx, questionID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuestionErrorReport), args.Error(1)
}

// ===== TEST HELPERS =====

type testServices struct {
	player  *MockQuizPlayerService
	history *MockHistoryService
	export  *MockExportService
	reports *MockErrorReportService
}

func newTestRouter() (*gin.Engine, *testServices) {
	return newTestRouterWith()
}

func newTestRouterWith(middleware ...gin.HandlerFunc) (*gin.Engine, *testServices) {
	gin.SetMode(gin.TestMode)

	svc := &testServices{
		player:  new(MockQuizPlayerService),
		history: new(MockHistoryService),
		export:  new(MockExportService),
		reports: new(MockErrorReportService),
	}
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := gin.New()
	router.Use(middleware...)
	NewHandlerManager(svc.player, svc.history, svc.export, svc.reports, logger).SetupRoutes(router)
	return router, svc
}
