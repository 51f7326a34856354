package domain

import "context"

// CommandType classifies what the user typed into the idle prompt.
type CommandType int

const (
	CommandUnknown  CommandType = iota
	CommandVoice                // open voice mode, optional topic payload
	CommandNewChat              // clear the message log
	CommandHistory              // toggle the history drawer
	CommandCaptions             // toggle captions
	CommandHelp
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	switch c {
	case CommandVoice:
		return "voice"
	case CommandNewChat:
		return "new"
	case CommandHistory:
		return "history"
	case CommandCaptions:
		return "captions"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed prompt entry.
type Command struct {
	Type    CommandType
	Payload string
}

// CommandParser turns typed input into a command.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}
