package app

import (
	"strings"

	"github.com/dkeye/roomrelay/internal/domain"
)

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdChat
	CmdJoin
	CmdColor
)

const (
	joinPrefix  = "/join "
	colorPrefix = "/color "
)

// Command is one parsed inbound text frame.
type Command struct {
	Kind     CommandKind
	Room     domain.RoomName
	Password *string
	Color    string
	Text     string
}

// ParseCommand classifies a frame. Only "/join " and "/color " (with the
// trailing space) are commands; anything else non-empty is chat.
func ParseCommand(text string) Command {
	switch {
	case text == "":
		return Command{Kind: CmdNone}
	case strings.HasPrefix(text, joinPrefix):
		cmd := Command{Kind: CmdJoin}
		args := strings.Fields(text[len(joinPrefix):])
		if len(args) > 0 {
			cmd.Room = domain.RoomName(args[0])
		}
		if len(args) > 1 {
			pw := args[1]
			cmd.Password = &pw
		}
		return cmd
	case strings.HasPrefix(text, colorPrefix):
		cmd := Command{Kind: CmdColor}
		if args := strings.Fields(text[len(colorPrefix):]); len(args) > 0 {
			cmd.Color = args[0]
		}
		return cmd
	default:
		return Command{Kind: CmdChat, Text: text}
	}
}
