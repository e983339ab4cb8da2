package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/cache"
	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
	"gorm.io/gorm"
)

type historyService struct {
	repo      repositories.Repository
	cache     cache.CacheService
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *slog.Logger
	ttl       time.Duration
}

// NewHistoryService builds the attempt history reader. cache may be nil, in
// which case every read goes to the repository.
func NewHistoryService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *validator.Validator,
	logger *slog.Logger,
	ttl time.Duration,
) HistoryService {
	return &historyService{
		repo:      repo,
		cache:     cacheService,
		publisher: publisher,
		validator: validator,
		logger:    logger,
		ttl:       ttl,
	}
}

// ===== READS =====

// Fetch returns the attempts of a student on a step, oldest first. It never
// fails: a broken cache falls through to the repository and a broken
// repository yields an empty history.
func (s *historyService) Fetch(ctx context.Context, stepID, studentID string) []*models.QuizAttempt {
	key := cache.HistoryKey(stepID, studentID)

	if s.cache != nil {
		var cached []*models.QuizAttempt
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Failed to read attempt history cache", "key", key, "error", err)
		}
	}

	attempts, err := s.repo.Attempt().ListByStepAndStudent(ctx, nil, stepID, studentID, repositories.AttemptFilters{SortOrder: "asc"})
	if err != nil {
		s.logger.Error("Failed to load attempt history",
			"step_id", stepID,
			"student_id", studentID,
			"error", err)
		return []*models.QuizAttempt{}
	}
	if attempts == nil {
		attempts = []*models.QuizAttempt{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, attempts, s.ttl); err != nil {
			s.logger.Warn("Failed to cache attempt history", "key", key, "error", err)
		}
	}
	return attempts
}

func (s *historyService) Summary(ctx context.Context, stepID, studentID string) (*HistorySummary, error) {
	if stepID == "" || studentID == "" {
		return nil, ErrBadRequest
	}

	attempts := s.Fetch(ctx, stepID, studentID)
	summary := &HistorySummary{
		StepID:    stepID,
		StudentID: studentID,
		Attempts:  attempts,
		Trend:     quiz.BuildTrend(attempts),
	}

	stats, err := s.repo.Attempt().GetStats(ctx, nil, stepID, studentID)
	if err != nil {
		s.logger.Warn("Failed to compute attempt stats",
			"step_id", stepID,
			"student_id", studentID,
			"error", err)
	} else {
		summary.Stats = stats
	}

	return summary, nil
}

// Invalidate drops the cached history so the next read sees new attempts.
func (s *historyService) Invalidate(ctx context.Context, stepID, studentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.HistoryKey(stepID, studentID)); err != nil {
		s.logger.Warn("Failed to invalidate attempt history",
			"step_id", stepID,
			"student_id", studentID,
			"error", err)
	}
}

// ===== MANUAL GRADING =====

// Grade records the authoritative score of an attempt. Grading an attempt
// again replaces the previous grade. Students cannot grade their own attempts.
func (s *historyService) Grade(ctx context.Context, attemptID uint, graderID string, req *GradeAttemptRequest) (*models.QuizAttempt, error) {
	s.logger.Info("Grading attempt", "attempt_id", attemptID, "grader_id", graderID)

	if graderID == "" {
		return nil, ErrForbidden
	}
	if req == nil {
		return nil, ErrBadRequest
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	passed := quiz.Passed(req.Percentage)

	var attempt *models.QuizAttempt
	err := s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.Attempt().GetByID(ctx, tx, attemptID)
		if err != nil {
			return err
		}
		if existing.StudentID == graderID {
			return fmt.Errorf("%w: cannot grade own attempt", ErrForbidden)
		}
		if err := s.repo.Attempt().Grade(ctx, tx, attemptID, req.Percentage, passed, req.Feedback, graderID); err != nil {
			return err
		}

		existing.Percentage = req.Percentage
		existing.Passed = passed
		existing.IsGraded = true
		existing.Feedback = req.Feedback
		existing.GradedBy = &graderID
		attempt = existing
		return nil
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		if errors.Is(err, ErrForbidden) {
			s.logger.Warn("Grading refused", "attempt_id", attemptID, "grader_id", graderID)
			return nil, err
		}
		return nil, fmt.Errorf("failed to grade attempt: %w", err)
	}

	s.Invalidate(ctx, attempt.StepID, attempt.StudentID)

	if s.publisher != nil {
		event := events.NewQuizEvent(events.EventAttemptGraded, events.AttemptGradedEvent{
			AttemptID:  attempt.ID,
			StepID:     attempt.StepID,
			StudentID:  attempt.StudentID,
			Percentage: attempt.Percentage,
			Passed:     attempt.Passed,
			Feedback:   attempt.Feedback,
			GradedBy:   graderID,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish attempt graded event",
				"attempt_id", attempt.ID,
				"error", err)
		}
	}

	s.logger.Info("Attempt graded",
		"attempt_id", attempt.ID,
		"percentage", attempt.Percentage,
		"passed", attempt.Passed)

	return attempt, nil
}
