package config

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENVIRONMENT", "ALLOW_ANSWER_REVEAL", "AUDIO_MAX_PLAYS", "GAP_OPEN", "GAP_CLOSE", "HISTORY_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err, "a missing .env file is not an error")

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Engine.AllowAnswerReveal)
	assert.Equal(t, 2, cfg.Engine.AudioMaxPlays)
	assert.Equal(t, "[[", cfg.Engine.GapOpen)
	assert.Equal(t, "]]", cfg.Engine.GapClose)
	assert.Equal(t, 5*time.Minute, cfg.Engine.HistoryCacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ALLOW_ANSWER_REVEAL", "true")
	t.Setenv("AUDIO_MAX_PLAYS", "3")
	t.Setenv("GAP_OPEN", "{{")
	t.Setenv("GAP_CLOSE", "}}")
	t.Setenv("HISTORY_CACHE_TTL", "30s")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Engine.AllowAnswerReveal)
	assert.Equal(t, 3, cfg.Engine.AudioMaxPlays)
	assert.Equal(t, "{{", cfg.Engine.GapOpen)
	assert.Equal(t, "}}", cfg.Engine.GapClose)
	assert.Equal(t, 30*time.Second, cfg.Engine.HistoryCacheTTL)
	assert.True(t, cfg.IsProduction())
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	disabled := EventConfig{Enabled: false, Publisher: "kafka"}
	p, err := disabled.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.WatermillEventPublisher{}, p)
	assert.NoError(t, p.Close())

	memory := EventConfig{Enabled: true, Publisher: "memory", QuizTopic: "quiz-events"}
	p, err = memory.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.WatermillEventPublisher{}, p)
	assert.NoError(t, p.Close())

	unknown := EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
	p, err = unknown.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.WatermillEventPublisher{}, p)
	assert.NoError(t, p.Close())

	explicit := EventConfig{Enabled: true, Publisher: "mock"}
	p, err = explicit.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, p)

	fallback := unknown.FallbackPublisher(logger)
	require.NoError(t, fallback.Publish(context.Background(), events.NewQuizEvent(events.EventStepVisited, nil)))
	assert.NoError(t, fallback.Close())

	brokers := EventConfig{KafkaBrokers: "a:9092, b:9092,,"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, brokers.GetKafkaBrokers())
}
