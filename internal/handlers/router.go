package handlers

import (
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/services"
	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	sessionHandler     *QuizSessionHandler
	historyHandler     *HistoryHandler
	errorReportHandler *ErrorReportHandler
}

func NewHandlerManager(
	playerService services.QuizPlayerService,
	historyService services.HistoryService,
	exportService services.ExportService,
	reportService services.ErrorReportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessionHandler:     NewQuizSessionHandler(playerService, logger),
		historyHandler:     NewHistoryHandler(historyService, exportService, logger),
		errorReportHandler: NewErrorReportHandler(reportService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(StudentMiddleware())
	{
		// Quiz session routes
		sessions := v1.Group("/quiz-sessions")
		{
			sessions.POST("", hm.sessionHandler.OpenSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.DELETE("/:id", hm.sessionHandler.CloseSession)

			// Navigation
			sessions.POST("/:id/start", hm.sessionHandler.Action(quiz.ActionStart))
			sessions.POST("/:id/check", hm.sessionHandler.Action(quiz.ActionCheck))
			sessions.POST("/:id/next", hm.sessionHandler.Action(quiz.ActionNext))
			sessions.POST("/:id/finish", hm.sessionHandler.Action(quiz.ActionFinish))
			sessions.POST("/:id/review", hm.sessionHandler.Action(quiz.ActionReview))
			sessions.POST("/:id/reset", hm.sessionHandler.Action(quiz.ActionReset))
			sessions.POST("/:id/continue", hm.sessionHandler.Action(quiz.ActionContinue))

			// Input
			sessions.POST("/:id/answers", hm.sessionHandler.SubmitAnswer)
			sessions.POST("/:id/reveal", hm.sessionHandler.RevealAnswers)
			sessions.POST("/:id/questions/:question_id/audio", hm.sessionHandler.AudioCommand)
		}

		// History routes
		steps := v1.Group("/steps")
		{
			steps.GET("/:step_id/attempts", hm.historyHandler.GetAttempts)
			steps.GET("/:step_id/attempts/export", hm.historyHandler.ExportAttempts)
		}

		// Question error reports
		questionErrors := v1.Group("/question-errors")
		{
			questionErrors.POST("", hm.errorReportHandler.ReportError)
			questionErrors.GET("", hm.errorReportHandler.ListReports)
		}
	}

	// Grading routes act for an instructor, not a student
	grading := router.Group("/api/v1/attempts")
	grading.Use(GraderMiddleware())
	{
		grading.PUT("/:attempt_id/grade", hm.historyHandler.GradeAttempt)
	}
}
