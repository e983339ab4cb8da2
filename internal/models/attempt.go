package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuizAttempt is one submitted completion of a quiz step.
type QuizAttempt struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	StepID         string  `json:"step_id" gorm:"not null;size:255;index:idx_attempt_step_student"`
	StudentID      string  `json:"student_id" gorm:"not null;size:255;index:idx_attempt_step_student"`
	Score          int     `json:"score" gorm:"not null"`           // correct items
	TotalQuestions int     `json:"total_questions" gorm:"not null"` // scoreable items
	Percentage     int     `json:"percentage" gorm:"not null"`
	Passed         bool    `json:"passed" gorm:"default:false"`
	IsGraded       bool    `json:"is_graded" gorm:"default:false"`
	Feedback       *string `json:"feedback" gorm:"type:text"`
	GradedBy       *string `json:"graded_by,omitempty" gorm:"size:255"`

	// Answers as submitted ([]AnswerSnapshot)
	Answers datatypes.JSON `json:"answers,omitempty" gorm:"type:jsonb"`

	CompletedAt time.Time `json:"completed_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// StepProgress records that a student finished a lesson step.
type StepProgress struct {
	StepID           string    `json:"step_id" gorm:"primaryKey;size:255"`
	StudentID        string    `json:"student_id" gorm:"primaryKey;size:255"`
	Visited          bool      `json:"visited" gorm:"default:false"`
	TimeSpentMinutes int       `json:"time_spent_minutes"`
	VisitedAt        time.Time `json:"visited_at"`
}

func (StepProgress) TableName() string {
	return "step_progress"
}

// QuestionErrorReport is a student's report of a mistake in a question.
type QuestionErrorReport struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	QuestionID      string    `json:"question_id" gorm:"not null;size:255;index"`
	StepID          string    `json:"step_id" gorm:"not null;size:255;index"`
	StudentID       string    `json:"student_id" gorm:"size:255"`
	Message         string    `json:"message" gorm:"type:text;not null"`
	SuggestedAnswer *string   `json:"suggested_answer" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
}

func (QuestionErrorReport) TableName() string {
	return "question_error_reports"
}
