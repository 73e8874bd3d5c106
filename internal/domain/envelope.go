package domain

import "fmt"

type MsgType string

const (
	MsgInfo  MsgType = "info"
	MsgError MsgType = "error"
	MsgChat  MsgType = "chat"
)

const (
	ServerSender = "server"
	InfoColor    = "0000ff"
	ErrorColor   = "FF0000"
)

// Envelope is the unit written to a client, one JSON object per text frame.
// ClientCount is a snapshot taken when the envelope is built.
type Envelope struct {
	Type        MsgType  `json:"msg_type"`
	Sender      string   `json:"sender"`
	Color       string   `json:"color"`
	Content     string   `json:"content"`
	Room        RoomName `json:"room"`
	ClientCount int      `json:"client_count"`
}

func Info(room RoomName, count int, format string, args ...any) Envelope {
	return Envelope{
		Type:        MsgInfo,
		Sender:      ServerSender,
		Color:       InfoColor,
		Content:     fmt.Sprintf(format, args...),
		Room:        room,
		ClientCount: count,
	}
}

func Error(room RoomName, format string, args ...any) Envelope {
	return Envelope{
		Type:    MsgError,
		Sender:  ServerSender,
		Color:   ErrorColor,
		Content: fmt.Sprintf(format, args...),
		Room:    room,
	}
}

func Chat(from Member, room RoomName, count int, content string) Envelope {
	return Envelope{
		Type:        MsgChat,
		Sender:      from.Nickname,
		Color:       from.Color,
		Content:     content,
		Room:        room,
		ClientCount: count,
	}
}

// Notice texts shared by the registry and sessions.
const (
	NicknamePrompt = "Enter your nickname:"
	ColorPrompt    = "Enter your hex color (e.g., #RRGGBB):"
	LeftNotice     = "%s has left the room..."
	JoinedNotice   = "%s has joined the room..."
	JoinedRoom     = "Joined room %s"
	WrongPassword  = "Failed to join room: Incorrect password"
	JoinUsage      = "Usage: /join <room> [password]"
	ColorSet       = "Your color has been set to #%s"
	ColorNotInRoom = "Failed to change color. Are you in a room?"
	ColorMissing   = "Please provide a hex color (e.g., #RRGGBB)"
	RateLimited    = "Rate limit exceeded, message discarded"
)
