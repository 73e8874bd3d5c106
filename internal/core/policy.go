package core

import (
	"fmt"

	"github.com/dkeye/roomrelay/internal/domain"
)

type BackpressureAction int

const (
	// DropFrame discards the envelope for that member only.
	DropFrame BackpressureAction = iota
	// KickMember removes the member from the room and closes its outbox.
	KickMember
)

// Policy decides what happens to a member whose outbound queue is full.
type Policy interface {
	OnBackPressure(room domain.RoomName, member ClientHandle) BackpressureAction
}

type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.RoomName, ClientHandle) BackpressureAction {
	return DropFrame
}

type KickPolicy struct{}

func (KickPolicy) OnBackPressure(domain.RoomName, ClientHandle) BackpressureAction {
	return KickMember
}

// PolicyByName maps the overflow_policy config value to a Policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return DropPolicy{}, nil
	case "kick":
		return KickPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown overflow policy %q", name)
	}
}
