package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of events the quiz engine emits
type EventType string

const (
	EventAttemptSubmitted      EventType = "attempt.submitted"
	EventAttemptGraded         EventType = "attempt.graded"
	EventStepVisited           EventType = "step.visited"
	EventQuestionErrorReported EventType = "question.error_reported"
	EventManualGradingRequired EventType = "grading.manual_required"
)

const (
	EventSource  = "quiz-engine"
	EventVersion = "1.0"
)

// QuizEvent is the envelope of every published event
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewQuizEvent wraps data in an envelope with a fresh id.
func NewQuizEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    EventSource,
		Version:   EventVersion,
		Data:      data,
	}
}

// Event payloads

type AttemptSubmittedEvent struct {
	AttemptID     uint      `json:"attempt_id"`
	StepID        string    `json:"step_id"`
	StudentID     string    `json:"student_id"`
	Score         int       `json:"score"`
	Total         int       `json:"total"`
	Percentage    int       `json:"percentage"`
	Passed        bool      `json:"passed"`
	PendingReview bool      `json:"pending_review"`
	CompletedAt   time.Time `json:"completed_at"`
}

type AttemptGradedEvent struct {
	AttemptID  uint    `json:"attempt_id"`
	StepID     string  `json:"step_id"`
	StudentID  string  `json:"student_id"`
	Percentage int     `json:"percentage"`
	Passed     bool    `json:"passed"`
	Feedback   *string `json:"feedback,omitempty"`
	GradedBy   string  `json:"graded_by"`
}

type StepVisitedEvent struct {
	StepID           string    `json:"step_id"`
	StudentID        string    `json:"student_id"`
	TimeSpentMinutes int       `json:"time_spent_minutes"`
	VisitedAt        time.Time `json:"visited_at"`
}

type QuestionErrorReportedEvent struct {
	ReportID   uint   `json:"report_id"`
	QuestionID string `json:"question_id"`
	StepID     string `json:"step_id"`
	StudentID  string `json:"student_id"`
	Message    string `json:"message"`
}

type ManualGradingRequiredEvent struct {
	AttemptID   uint     `json:"attempt_id"`
	StepID      string   `json:"step_id"`
	StudentID   string   `json:"student_id"`
	QuestionIDs []string `json:"question_ids"`
}
