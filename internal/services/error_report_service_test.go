package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/SAP-F-2025/quiz-engine/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestErrorReportService_Report(t *testing.T) {
	validRequest := func() *QuestionErrorReportRequest {
		return &QuestionErrorReportRequest{
			QuestionID:      "q1",
			StepID:          "step-1",
			Message:         "  Option B is also correct  ",
			SuggestedAnswer: stringPtr("B"),
		}
	}

	tests := []struct {
		name          string
		request       *QuestionErrorReportRequest
		setupMocks    func(*MockQuestionErrorRepository, *events.MockEventPublisher)
		expectError   bool
		wantStored    bool
		wantPublished bool
	}{
		{
			name:    "stored and published",
			request: validRequest(),
			setupMocks: func(repo *MockQuestionErrorRepository, _ *events.MockEventPublisher) {
				repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(r *models.QuestionErrorReport) bool {
					return r.Message == "Option B is also correct" && r.StudentID == "alice"
				})).Run(func(args mock.Arguments) {
					args.Get(2).(*models.QuestionErrorReport).ID = 11
				}).Return(nil)
			},
			wantStored:    true,
			wantPublished: true,
		},
		{
			name:    "storage failure is swallowed",
			request: validRequest(),
			setupMocks: func(repo *MockQuestionErrorRepository, _ *events.MockEventPublisher) {
				repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))
			},
			wantPublished: true,
		},
		{
			name:    "publish failure is swallowed",
			request: validRequest(),
			setupMocks: func(repo *MockQuestionErrorRepository, publisher *events.MockEventPublisher) {
				repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				publisher.Err = errors.New("broker down")
			},
			wantStored: true,
		},
		{
			name:        "blank message",
			request:     &QuestionErrorReportRequest{QuestionID: "q1", StepID: "step-1", Message: "   "},
			setupMocks:  func(*MockQuestionErrorRepository, *events.MockEventPublisher) {},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			publisher := events.NewMockEventPublisher(testLogger())
			tt.setupMocks(repo.questionErrorRepo, publisher)

			service := NewErrorReportService(repo, publisher, validator.New(nil), testLogger())
			result, err := service.Report(context.Background(), tt.request, "alice")

			if tt.expectError {
				assert.True(t, IsValidation(err))
				assert.Nil(t, result)
				repo.questionErrorRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStored, result.Stored)
			assert.Equal(t, tt.wantPublished, result.Published)
			if tt.wantStored {
				require.NotNil(t, result.ReportID)
			}
			repo.questionErrorRepo.AssertExpectations(t)
		})
	}
}

func TestErrorReportService_ListByQuestion(t *testing.T) {
	repo := newMockRepository()
	repo.questionErrorRepo.On("ListByQuestion", mock.Anything, mock.Anything, "q1", maxReportPageSize, 0).
		Return([]*models.QuestionErrorReport{{ID: 1, QuestionID: "q1"}}, nil)

	service := NewErrorReportService(repo, nil, validator.New(nil), testLogger())

	reports, err := service.ListByQuestion(context.Background(), "q1", 500, -3)
	require.NoError(t, err)
	assert.Len(t, reports, 1)

	_, err = service.ListByQuestion(context.Background(), "", 10, 0)
	assert.ErrorIs(t, err, ErrBadRequest)
}
