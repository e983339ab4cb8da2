package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewQuizEvent(t *testing.T) {
	event := NewQuizEvent(EventStepVisited, StepVisitedEvent{StepID: "s1", StudentID: "u1", TimeSpentMinutes: 3})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, EventStepVisited, event.Type)
	assert.Equal(t, EventSource, event.Source)
	assert.Equal(t, EventVersion, event.Version)
	assert.WithinDuration(t, time.Now(), event.Timestamp, time.Minute)

	other := NewQuizEvent(EventStepVisited, nil)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestNewMessage_RoundTripsEnvelope(t *testing.T) {
	event := NewQuizEvent(EventQuestionErrorReported, QuestionErrorReportedEvent{QuestionID: "q1", Message: "typo"})

	msg, err := NewMessage(event)
	require.NoError(t, err)
	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, string(EventQuestionErrorReported), msg.Metadata.Get("event_type"))
	assert.Equal(t, EventSource, msg.Metadata.Get("source"))

	decoded, err := DecodeMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.Type, decoded.Type)

	data, ok := decoded.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "q1", data["question_id"])
}

func TestGoChannelEventPublisher(t *testing.T) {
	publisher, pubSub := NewGoChannelEventPublisher("quiz-events", testLogger())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "quiz-events")
	require.NoError(t, err)

	event := NewQuizEvent(EventAttemptSubmitted, AttemptSubmittedEvent{StepID: "s1", Score: 3, Total: 3, Percentage: 100})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		decoded, err := DecodeMessage(msg)
		require.NoError(t, err)
		assert.Equal(t, EventAttemptSubmitted, decoded.Type)
	case <-ctx.Done():
		t.Fatal("event was not delivered")
	}
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())

	require.NoError(t, mock.Publish(context.Background(), NewQuizEvent(EventStepVisited, nil)))
	assert.Len(t, mock.GetPublishedEvents(), 1)

	mock.Err = errors.New("broker down")
	assert.Error(t, mock.Publish(context.Background(), NewQuizEvent(EventStepVisited, nil)))
	assert.Len(t, mock.GetPublishedEvents(), 1)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}

func TestMockEventPublisher_Retention(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	mock.Retention = 3

	var last *QuizEvent
	for i := 0; i < 5; i++ {
		last = NewQuizEvent(EventStepVisited, nil)
		require.NoError(t, mock.Publish(context.Background(), last))
	}

	published := mock.GetPublishedEvents()
	require.Len(t, published, 3)
	assert.Equal(t, last.ID, published[2].ID)
}
