package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/quiz-engine/internal/errors"
	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")

	// Session specific errors
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrQuizInvalid     = errors.New("quiz content is invalid")
	ErrNoAudio         = errors.New("question has no audio")

	// Attempt specific errors
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrAttemptInFlight = errors.New("attempt submission already in progress")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, quiz.ErrUnknownQuestion)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrQuizInvalid) ||
		errors.Is(err, ErrNoAudio) ||
		errors.Is(err, quiz.ErrWrongAnswerKind) ||
		errors.Is(err, quiz.ErrGapOutOfRange) ||
		errors.Is(err, quiz.ErrOptionOutOfRange) ||
		errors.Is(err, quiz.ErrNoQuestions) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre)
}

// IsConflict checks if error represents an action the current quiz state
// does not allow
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrAttemptInFlight) ||
		errors.Is(err, quiz.ErrIncomplete) ||
		errors.Is(err, quiz.ErrInvalidTransition) ||
		errors.Is(err, quiz.ErrAnswersLocked) ||
		errors.Is(err, quiz.ErrRetakeNotAllowed) ||
		errors.Is(err, quiz.ErrRevealDisabled)
}

// IsForbidden checks if error represents an operation the caller may not perform
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
