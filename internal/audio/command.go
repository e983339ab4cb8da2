package audio

import "errors"

var ErrUnknownCommand = errors.New("unknown audio command")

type CommandType string

const (
	CommandPlay     CommandType = "play"
	CommandPause    CommandType = "pause"
	CommandToggle   CommandType = "toggle"
	CommandSeek     CommandType = "seek"
	CommandRestart  CommandType = "restart"
	CommandProgress CommandType = "progress"
	CommandEnd      CommandType = "end"
	CommandDuration CommandType = "duration"
)

// Command is a player event forwarded by a host.
type Command struct {
	Type     CommandType `json:"type" validate:"required,oneof=play pause toggle seek restart progress end duration"`
	Position float64     `json:"position" validate:"min=0"`
}

// Apply dispatches a command. The boolean reports whether the gate accepted
// it; refusals are not errors.
func (g *Gate) Apply(cmd Command) (bool, error) {
	switch cmd.Type {
	case CommandPlay:
		return g.Play(), nil
	case CommandPause:
		return g.Pause(), nil
	case CommandToggle:
		return g.TogglePlay(), nil
	case CommandSeek:
		return g.Seek(cmd.Position), nil
	case CommandRestart:
		return g.Restart(), nil
	case CommandProgress:
		return g.Progress(cmd.Position), nil
	case CommandEnd:
		g.End()
		return true, nil
	case CommandDuration:
		g.SetDuration(cmd.Position)
		return true, nil
	default:
		return false, ErrUnknownCommand
	}
}
