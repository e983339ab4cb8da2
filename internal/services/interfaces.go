package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/audio"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/SAP-F-2025/quiz-engine/internal/repositories"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
)

// ===== SERVICE INTERFACES =====

// QuizPlayerService hosts quiz sessions and applies the effects their
// transitions request.
type QuizPlayerService interface {
	Open(ctx context.Context, req *OpenSessionRequest, studentID string) (*SessionView, error)
	Get(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Close(ctx context.Context, sessionID, studentID string) error

	// Navigation
	Act(ctx context.Context, sessionID, studentID string, action quiz.Action) (*SessionView, error)
	Start(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Check(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Next(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Finish(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Review(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Reset(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Continue(ctx context.Context, sessionID, studentID string) (*SessionView, error)

	// Input
	Answer(ctx context.Context, sessionID, studentID string, req *AnswerRequest) (*SessionView, error)
	Reveal(ctx context.Context, sessionID, studentID string) (*SessionView, error)
	Audio(ctx context.Context, sessionID, studentID, questionID string, cmd audio.Command) (*AudioResponse, error)

	// Housekeeping
	EvictIdle(ctx context.Context) int
	Run(ctx context.Context, interval time.Duration)
}

// HistoryService reads and maintains a student's attempt history on a step.
type HistoryService interface {
	Fetch(ctx context.Context, stepID, studentID string) []*models.QuizAttempt
	Summary(ctx context.Context, stepID, studentID string) (*HistorySummary, error)
	Invalidate(ctx context.Context, stepID, studentID string)
	Grade(ctx context.Context, attemptID uint, graderID string, req *GradeAttemptRequest) (*models.QuizAttempt, error)
}

// ExportService renders attempt history as spreadsheets.
type ExportService interface {
	ExportAttempts(ctx context.Context, stepID, studentID string) ([]byte, error)
}

// ErrorReportService accepts student reports about faulty questions.
type ErrorReportService interface {
	Report(ctx context.Context, req *QuestionErrorReportRequest, studentID string) (*ErrorReportResult, error)
	ListByQuestion(ctx context.Context, questionID string, limit, offset int) ([]*models.QuestionErrorReport, error)
}

// Navigator hands control back to the host after a completed quiz.
type Navigator interface {
	GoToNextStep(ctx context.Context, stepID, studentID string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, stepID, studentID string) error

func (f NavigatorFunc) GoToNextStep(ctx context.Context, stepID, studentID string) error {
	return f(ctx, stepID, studentID)
}

// ===== REQUESTS =====

type OpenSessionRequest struct {
	Quiz models.Quiz `json:"quiz" validate:"required"`
}

// Answer kinds accepted by AnswerRequest
const (
	AnswerKindChoice    = "choice"
	AnswerKindToggle    = "toggle"
	AnswerKindSelection = "selection"
	AnswerKindText      = "text"
	AnswerKindGap       = "gap"
	AnswerKindMatch     = "match"
	AnswerKindUnmatch   = "unmatch"
)

type AnswerRequest struct {
	QuestionID string  `json:"question_id" validate:"required"`
	Kind       string  `json:"kind" validate:"required,oneof=choice toggle selection text gap match unmatch"`
	Option     *int    `json:"option" validate:"omitempty,gte=0"`
	Selection  []int   `json:"selection" validate:"omitempty,dive,gte=0"`
	Text       *string `json:"text"`
	Gap        *int    `json:"gap" validate:"omitempty,gte=0"`
	Left       *int    `json:"left" validate:"omitempty,gte=0"`
	Right      *int    `json:"right" validate:"omitempty,gte=0"`
}

type GradeAttemptRequest struct {
	Percentage int     `json:"percentage" validate:"gte=0,lte=100"`
	Feedback   *string `json:"feedback" validate:"omitempty,max=5000"`
}

type QuestionErrorReportRequest struct {
	QuestionID      string  `json:"question_id" validate:"required,max=255"`
	StepID          string  `json:"step_id" validate:"required,max=255"`
	Message         string  `json:"message" validate:"required,max=2000"`
	SuggestedAnswer *string `json:"suggested_answer" validate:"omitempty,max=2000"`
}

// ===== RESPONSES =====

// SessionView is the host-facing state of a session. Correct answers and
// explanations only appear once the questions have been checked.
type SessionView struct {
	ID          string             `json:"id"`
	StepID      string             `json:"step_id"`
	Title       string             `json:"title"`
	DisplayMode models.DisplayMode `json:"display_mode"`
	Phase       quiz.Phase         `json:"phase"`
	Current     int                `json:"current"`
	Attempt     int                `json:"attempt"`
	Reviewing   bool               `json:"reviewing"`
	TotalItems  int                `json:"total_items"`

	Questions []QuestionView `json:"questions"`

	CanCheck  bool `json:"can_check"`
	CanFinish bool `json:"can_finish"`
	CanRetake bool `json:"can_retake"`
	IsLast    bool `json:"is_last"`

	Result  *quiz.QuestionResult  `json:"result,omitempty"`
	Results []quiz.QuestionResult `json:"results,omitempty"`
	Outcome *quiz.Outcome         `json:"outcome,omitempty"`
	History *HistoryView          `json:"history,omitempty"`

	AttemptID     *uint               `json:"attempt_id,omitempty"`
	AttemptSaved  bool                `json:"attempt_saved"`
	NextStepReady bool                `json:"next_step_ready"`
	Warnings      []validator.Warning `json:"warnings,omitempty"`
}

type QuestionView struct {
	ID            string              `json:"id"`
	Type          models.QuestionType `json:"question_type"`
	QuestionText  string              `json:"question_text"`
	Options       []models.Option     `json:"options,omitempty"`
	DisplayNumber int                 `json:"display_number"`
	DisplayLabel  string              `json:"display_label"`
	Items         int                 `json:"items"`
	Complete      bool                `json:"complete"`

	Answer     *models.AnswerSnapshot `json:"answer,omitempty"`
	Segments   []quiz.Segment         `json:"segments,omitempty"`
	LeftItems  []string               `json:"left_items,omitempty"`
	RightItems []MatchingItem         `json:"right_items,omitempty"`

	MediaURL *string         `json:"media_url,omitempty"`
	ImageURL *string         `json:"image_url,omitempty"`
	AudioURL *string         `json:"audio_url,omitempty"`
	Audio    *audio.Snapshot `json:"audio,omitempty"`

	Explanation *string `json:"explanation,omitempty"`
}

// MatchingItem is one right-column entry in display order. Index is its
// canonical position, which is what match answers refer to.
type MatchingItem struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type HistoryView struct {
	Loaded bool       `json:"loaded"`
	Trend  quiz.Trend `json:"trend"`
}

type HistorySummary struct {
	StepID    string                     `json:"step_id"`
	StudentID string                     `json:"student_id"`
	Attempts  []*models.QuizAttempt      `json:"attempts"`
	Trend     quiz.Trend                 `json:"trend"`
	Stats     *repositories.AttemptStats `json:"stats,omitempty"`
}

type AudioResponse struct {
	QuestionID string         `json:"question_id"`
	Accepted   bool           `json:"accepted"`
	State      audio.Snapshot `json:"state"`
}

type ErrorReportResult struct {
	ReportID  *uint `json:"report_id,omitempty"`
	Stored    bool  `json:"stored"`
	Published bool  `json:"published"`
}
