package audio

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(seconds float64) {
	c.now = c.now.Add(time.Duration(seconds * float64(time.Second)))
}

func strictGate(maxPlays int, clock *fakeClock) *Gate {
	g := NewGate(models.AudioStrict, maxPlays)
	g.SetClock(clock.Now)
	return g
}

func TestGate_StrictMode(t *testing.T) {
	clock := newFakeClock()
	g := strictGate(2, clock)
	g.SetDuration(30)

	assert.Equal(t, 2, g.PlaysRemaining())
	assert.False(t, g.ShouldConfirmExit())

	assert.True(t, g.Play())
	assert.Equal(t, 1, g.PlayCount())
	assert.Equal(t, StatePlaying, g.State())
	assert.True(t, g.ShouldConfirmExit())

	assert.False(t, g.Pause(), "pause refused")
	assert.False(t, g.Seek(10), "seek refused")
	assert.True(t, g.IsPlaying())

	clock.Advance(12)
	assert.True(t, g.Progress(12))
	assert.Equal(t, float64(12), g.CurrentTime())

	clock.Advance(18)
	assert.True(t, g.Progress(30))
	assert.Equal(t, StateIdle, g.State())
	assert.Equal(t, float64(0), g.CurrentTime())

	assert.True(t, g.Play())
	assert.Equal(t, 2, g.PlayCount())
	g.End()

	assert.Equal(t, 0, g.PlaysRemaining())
	assert.False(t, g.CanPlay())
	assert.False(t, g.Play(), "third play refused")
	assert.False(t, g.Restart(), "restart refused at the cap")
	assert.Equal(t, 2, g.PlayCount())
}

func TestGate_StrictRestartCountsAsPlay(t *testing.T) {
	clock := newFakeClock()
	g := strictGate(3, clock)

	assert.True(t, g.Play())
	clock.Advance(5)
	assert.True(t, g.Progress(5))
	assert.True(t, g.Restart())
	assert.Equal(t, 2, g.PlayCount())
	assert.Equal(t, float64(0), g.CurrentTime())
	assert.True(t, g.IsPlaying())
}

func TestGate_StrictProgressCannotSkipAhead(t *testing.T) {
	clock := newFakeClock()
	g := strictGate(2, clock)
	g.SetDuration(60)

	assert.True(t, g.Play())
	clock.Advance(3)
	assert.True(t, g.Progress(3))

	clock.Advance(1)
	assert.False(t, g.Progress(40), "jump refused")
	assert.Equal(t, float64(3), g.CurrentTime())
	assert.False(t, g.Progress(60), "jump to the end refused")
	assert.True(t, g.IsPlaying())

	assert.True(t, g.Progress(4.5), "within the slack")
	assert.Equal(t, 4.5, g.CurrentTime())

	clock.Advance(10)
	assert.True(t, g.Progress(14), "catches up after a late report")

	assert.True(t, g.Progress(2), "backwards reports are harmless")
	assert.Equal(t, float64(14), g.CurrentTime())
}

func TestGate_FlexibleProgressIsUnchecked(t *testing.T) {
	g := NewGate(models.AudioFlexible, 0)
	g.SetDuration(60)

	assert.True(t, g.Play())
	assert.True(t, g.Progress(45))
	assert.Equal(t, float64(45), g.CurrentTime())
	assert.False(t, NewGate(models.AudioFlexible, 0).Progress(1), "not playing")
}

func TestGate_FlexibleMode(t *testing.T) {
	g := NewGate(models.AudioFlexible, 0)
	g.SetDuration(60)

	assert.Equal(t, -1, g.PlaysRemaining())
	assert.True(t, g.Play())
	assert.True(t, g.Pause())
	assert.True(t, g.Seek(90))
	assert.Equal(t, float64(60), g.CurrentTime(), "seek clamps to duration")
	assert.True(t, g.Seek(-5))
	assert.Equal(t, float64(0), g.CurrentTime())

	for i := 0; i < 5; i++ {
		assert.True(t, g.Play())
		g.End()
	}
	assert.Equal(t, 0, g.PlayCount())
	assert.False(t, g.ShouldConfirmExit())
}

func TestNewGate_Defaults(t *testing.T) {
	g := NewGate(models.AudioMode("loud"), -1)
	assert.Equal(t, models.AudioFlexible, g.Mode())
	assert.Equal(t, DefaultMaxPlays, g.MaxPlays())

	q := models.Question{Type: models.MediaQuestion, AudioMode: models.AudioStrict, MaxPlays: 1}
	g = ForQuestion(q)
	assert.True(t, g.Strict())
	assert.Equal(t, 1, g.MaxPlays())
}

func TestGate_Apply(t *testing.T) {
	clock := newFakeClock()
	g := strictGate(1, clock)

	tests := []struct {
		name     string
		elapsed  float64
		cmd      Command
		accepted bool
	}{
		{"duration", 0, Command{Type: CommandDuration, Position: 20}, true},
		{"toggle plays", 0, Command{Type: CommandToggle}, true},
		{"toggle cannot pause", 0, Command{Type: CommandToggle}, false},
		{"seek refused", 0, Command{Type: CommandSeek, Position: 3}, false},
		{"progress", 4, Command{Type: CommandProgress, Position: 4}, true},
		{"progress skipping ahead", 1, Command{Type: CommandProgress, Position: 15}, false},
		{"end", 0, Command{Type: CommandEnd}, true},
		{"play refused after the cap", 0, Command{Type: CommandPlay}, false},
	}

	for _, tt := range tests {
		clock.Advance(tt.elapsed)
		accepted, err := g.Apply(tt.cmd)
		assert.NoError(t, err, tt.name)
		assert.Equal(t, tt.accepted, accepted, tt.name)
	}

	_, err := g.Apply(Command{Type: CommandType("rewind")})
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestGate_Snapshot(t *testing.T) {
	g := NewGate(models.AudioStrict, 2)
	g.Play()

	snap := g.Snapshot()
	assert.Equal(t, Snapshot{
		Mode:           models.AudioStrict,
		State:          StatePlaying,
		IsPlaying:      true,
		PlayCount:      1,
		MaxPlays:       2,
		PlaysRemaining: 1,
		CanPlay:        false,
		ConfirmExit:    true,
	}, snap)
}
