package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/quiz"
	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		notFound   bool
		conflict   bool
		validation bool
	}{
		{"session not found", ErrSessionNotFound, true, false, false},
		{"wrapped attempt not found", fmt.Errorf("grade: %w", ErrAttemptNotFound), true, false, false},
		{"unknown question", quiz.ErrUnknownQuestion, true, false, false},
		{"incomplete", quiz.ErrIncomplete, false, true, false},
		{"locked", quiz.ErrAnswersLocked, false, true, false},
		{"retake", quiz.ErrRetakeNotAllowed, false, true, false},
		{"reveal disabled", quiz.ErrRevealDisabled, false, true, false},
		{"wrong kind", quiz.ErrWrongAnswerKind, false, false, true},
		{"invalid quiz", fmt.Errorf("%w: %w", ErrQuizInvalid, errors.New("bad")), false, false, true},
		{"field errors", ValidationErrors{*NewValidationError("option", "required", nil)}, false, false, true},
		{"other", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.conflict, IsConflict(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
		})
	}
}

func TestBusinessRuleError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewBusinessRuleError("single_submit", "already submitted", nil))
	assert.True(t, IsBusinessRule(err))
	assert.Contains(t, err.Error(), "single_submit")
}

func TestIsForbidden(t *testing.T) {
	assert.True(t, IsForbidden(fmt.Errorf("%w: cannot grade own attempt", ErrForbidden)))
	assert.False(t, IsForbidden(ErrConflict))
}
