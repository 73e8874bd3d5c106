//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package app

import (
	"time"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

// Transport is the part of *websocket.Conn a session and its pump use.
// Owned by the session; the pump closes it on exit.
type Transport interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// RoomRegistry is what a session is allowed to do with the room registry.
type RoomRegistry interface {
	JoinRoom(name domain.RoomName, client core.ClientHandle, password *string) error
	Broadcast(name domain.RoomName, sender domain.ClientID, content string) core.PublishResult
	SetColor(id domain.ClientID, color string) bool
}
