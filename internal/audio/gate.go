package audio

import (
	"time"

	"github.com/SAP-F-2025/quiz-engine/internal/models"
)

// DefaultMaxPlays is the replay cap of strict mode when none is configured.
const DefaultMaxPlays = 2

// progressSlack is how far a strict progress report may run ahead of the
// wall-clock time since the last accepted report.
const progressSlack = 2 * time.Second

type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
)

// Gate enforces exam-mode playback rules for one audio question. In strict
// mode every play from position zero uses up one of MaxPlays, and pausing or
// seeking is refused. Flexible mode allows everything.
//
// A Gate is owned by a single quiz view and is not safe for concurrent use.
type Gate struct {
	mode        models.AudioMode
	maxPlays    int
	playCount   int
	playing     bool
	currentTime float64
	duration    float64

	now        func() time.Time
	reportedAt time.Time
}

// NewGate builds a gate. An unknown mode behaves as flexible; maxPlays <= 0
// falls back to DefaultMaxPlays.
func NewGate(mode models.AudioMode, maxPlays int) *Gate {
	if mode != models.AudioStrict {
		mode = models.AudioFlexible
	}
	if maxPlays <= 0 {
		maxPlays = DefaultMaxPlays
	}
	return &Gate{mode: mode, maxPlays: maxPlays, now: time.Now}
}

// SetClock replaces the clock strict progress reports are checked against.
func (g *Gate) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// ForQuestion builds the gate configured on a question.
func ForQuestion(q models.Question) *Gate {
	return NewGate(q.AudioMode, q.MaxPlays)
}

func (g *Gate) Strict() bool           { return g.mode == models.AudioStrict }
func (g *Gate) IsPlaying() bool        { return g.playing }
func (g *Gate) PlayCount() int         { return g.playCount }
func (g *Gate) CurrentTime() float64   { return g.currentTime }
func (g *Gate) MaxPlays() int          { return g.maxPlays }
func (g *Gate) Mode() models.AudioMode { return g.mode }

// State reports idle or playing.
func (g *Gate) State() State {
	if g.playing {
		return StatePlaying
	}
	return StateIdle
}

// PlaysRemaining is the number of strict plays left; -1 in flexible mode.
func (g *Gate) PlaysRemaining() int {
	if !g.Strict() {
		return -1
	}
	if left := g.maxPlays - g.playCount; left > 0 {
		return left
	}
	return 0
}

// CanPlay reports whether Play would be accepted.
func (g *Gate) CanPlay() bool {
	if g.playing {
		return false
	}
	if !g.Strict() {
		return true
	}
	return g.currentTime > 0 || g.playCount < g.maxPlays
}

// SetDuration records the media length once the host knows it.
func (g *Gate) SetDuration(seconds float64) {
	if seconds > 0 {
		g.duration = seconds
	}
}

// Play starts playback. Starting from position zero in strict mode uses up a
// play and is refused once the cap is reached.
func (g *Gate) Play() bool {
	if !g.CanPlay() {
		return false
	}
	if g.Strict() && g.currentTime == 0 {
		g.playCount++
	}
	g.playing = true
	g.reportedAt = g.now()
	return true
}

// Pause stops playback; refused in strict mode.
func (g *Gate) Pause() bool {
	if g.Strict() || !g.playing {
		return false
	}
	g.playing = false
	return true
}

// TogglePlay plays when idle and pauses when playing.
func (g *Gate) TogglePlay() bool {
	if g.playing {
		return g.Pause()
	}
	return g.Play()
}

// Seek moves the playback position; refused in strict mode. Scrubbing goes
// through Seek as well.
func (g *Gate) Seek(seconds float64) bool {
	if g.Strict() {
		return false
	}
	g.currentTime = g.clamp(seconds)
	return true
}

// Restart plays again from the beginning. In strict mode this is a new play.
func (g *Gate) Restart() bool {
	if g.Strict() && g.playCount >= g.maxPlays {
		return false
	}
	g.playing = false
	g.currentTime = 0
	return g.Play()
}

// Progress records the playback position reported by the player. Reaching
// the end returns the gate to idle. In strict mode a report further ahead
// than the time elapsed since the last accepted one is refused, so progress
// cannot be used to skip forward.
func (g *Gate) Progress(seconds float64) bool {
	if !g.playing {
		return false
	}
	if g.Strict() && seconds > g.currentTime {
		now := g.now()
		allowed := now.Sub(g.reportedAt) + progressSlack
		if seconds-g.currentTime > allowed.Seconds() {
			return false
		}
		g.reportedAt = now
	}
	if g.duration > 0 && seconds >= g.duration {
		g.End()
		return true
	}
	if seconds > g.currentTime {
		g.currentTime = seconds
	}
	return true
}

// End marks playback as finished and rewinds to the start.
func (g *Gate) End() {
	g.playing = false
	g.currentTime = 0
}

// ShouldConfirmExit reports whether leaving the page should ask the student
// for confirmation: strict mode with playback already started. Advisory only.
func (g *Gate) ShouldConfirmExit() bool {
	return g.Strict() && (g.playCount > 0 || g.playing)
}

func (g *Gate) clamp(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	if g.duration > 0 && seconds > g.duration {
		return g.duration
	}
	return seconds
}

// Snapshot is the gate state as exposed to hosts.
type Snapshot struct {
	Mode           models.AudioMode `json:"mode"`
	State          State            `json:"state"`
	IsPlaying      bool             `json:"is_playing"`
	PlayCount      int              `json:"play_count"`
	MaxPlays       int              `json:"max_plays"`
	PlaysRemaining int              `json:"plays_remaining"`
	CurrentTime    float64          `json:"current_time"`
	CanPlay        bool             `json:"can_play"`
	ConfirmExit    bool             `json:"confirm_exit"`
}

func (g *Gate) Snapshot() Snapshot {
	return Snapshot{
		Mode:           g.mode,
		State:          g.State(),
		IsPlaying:      g.playing,
		PlayCount:      g.playCount,
		MaxPlays:       g.maxPlays,
		PlaysRemaining: g.PlaysRemaining(),
		CurrentTime:    g.currentTime,
		CanPlay:        g.CanPlay(),
		ConfirmExit:    g.ShouldConfirmExit(),
	}
}
