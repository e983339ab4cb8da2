package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
)

const maxReportPageSize = 100

type errorReportService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
}

func NewErrorReportService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
) ErrorReportService {
	return &errorReportService{
		repo:      repo,
		publisher: publisher,
		validator: validator,
		logger:    logger,
	}
}

// Report stores and announces a student's report. Only invalid input is an
// error; storage and publishing failures are logged and reflected in the
// result.
func (s *errorReportService) Report(ctx context.Context, req *QuestionErrorReportRequest, studentID string) (*ErrorReportResult, error) {
	if req == nil {
		return nil, ErrBadRequest
	}
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.logger.Info("Reporting question error",
		"question_id", req.QuestionID,
		"step_id", req.StepID,
		"student_id", studentID)

	report := &models.QuestionErrorReport{
		QuestionID:      req.QuestionID,
		StepID:          req.StepID,
		StudentID:       studentID,
		Message:         req.Message,
		SuggestedAnswer: req.SuggestedAnswer,
	}

	result := &ErrorReportResult{}
	if err := s.repo.QuestionError().Create(ctx, nil, report); err != nil {
		s.logger.Error("Failed to store question error report",
			"question_id", req.QuestionID,
			"error", err)
	} else {
		id := report.ID
		result.ReportID = &id
		result.Stored = true
	}

	if s.publisher != nil {
		event := events.NewQuizEvent(events.EventQuestionErrorReported, events.QuestionErrorReportedEvent{
			ReportID:   report.ID,
			QuestionID: report.QuestionID,
			StepID:     report.StepID,
			StudentID:  report.StudentID,
			Message:    report.Message,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish question error report",
				"question_id", req.QuestionID,
				"error", err)
		} else {
			result.Published = true
		}
	}

	return result, nil
}

func (s *errorReportService) ListByQuestion(ctx context.Context, questionID string, limit, offset int) ([]*models.QuestionErrorReport, error) {
	if questionID == "" {
		return nil, ErrBadRequest
	}
	if limit <= 0 || limit > maxReportPageSize {
		limit = maxReportPageSize
	}
	if offset < 0 {
		offset = 0
	}

	reports, err := s.repo.QuestionError().ListByQuestion(ctx, nil, questionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list question error reports: %w", err)
	}
	return reports, nil
}
