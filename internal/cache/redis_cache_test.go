package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/utils"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedScore struct {
	Percentage int    `json:"percentage"`
	Label      string `json:"label"`
}

func newTestCache(t *testing.T) (CacheService, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, utils.NewDevelopmentLogger()), srv
}

func TestRedisCache_SetGet(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", cachedScore{Percentage: 80, Label: "good"}, time.Minute))

	var got cachedScore
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, cachedScore{Percentage: 80, Label: "good"}, got)

	srv.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	c, srv := newTestCache(t)
	require.NoError(t, srv.Set("bad", "{not json"))

	var got cachedScore
	assert.ErrorIs(t, c.Get(context.Background(), "bad", &got), ErrCacheMiss)
	assert.False(t, srv.Exists("bad"))
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, HistoryKey("step-1", "alice"), []int{1}, 0))
	require.NoError(t, c.Set(ctx, HistoryKey("step-1", "bob"), []int{2}, 0))
	require.NoError(t, c.Set(ctx, HistoryKey("step-2", "alice"), []int{3}, 0))

	require.NoError(t, c.DeletePattern(ctx, StepHistoryPattern("step-1")))

	assert.False(t, srv.Exists(HistoryKey("step-1", "alice")))
	assert.False(t, srv.Exists(HistoryKey("step-1", "bob")))
	assert.True(t, srv.Exists(HistoryKey("step-2", "alice")))

	require.NoError(t, c.Delete(ctx, HistoryKey("step-2", "alice")))
	assert.False(t, srv.Exists(HistoryKey("step-2", "alice")))
}
