package core

import (
	"slices"
	"time"

	"github.com/dkeye/roomrelay/internal/domain"
)

// room is only touched under Registry.mu.
type room struct {
	name     domain.RoomName
	members  []ClientHandle
	password *string
	// emptySince is zero while the room has members.
	emptySince time.Time
}

func newRoom(name domain.RoomName, first ClientHandle, password *string) *room {
	var pw *string
	if password != nil {
		p := *password
		pw = &p
	}
	return &room{name: name, members: []ClientHandle{first}, password: pw}
}

// accepts reports whether password matches exactly; unset only matches unset.
func (r *room) accepts(password *string) bool {
	if r.password == nil || password == nil {
		return r.password == nil && password == nil
	}
	return *r.password == *password
}

func (r *room) indexOf(id domain.ClientID) int {
	for i, m := range r.members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (r *room) remove(id domain.ClientID, now time.Time) (ClientHandle, bool) {
	i := r.indexOf(id)
	if i < 0 {
		return ClientHandle{}, false
	}
	m := r.members[i]
	r.members = slices.Delete(r.members, i, i+1)
	r.markIfEmpty(now)
	return m, true
}

func (r *room) markIfEmpty(now time.Time) {
	if len(r.members) == 0 && r.emptySince.IsZero() {
		r.emptySince = now
	}
}
