package core

import "github.com/dkeye/roomrelay/internal/domain"

// ClientHandle binds a client's identity and meta to its delivery target.
// This is what a room stores and fans out to.
type ClientHandle struct {
	ID domain.ClientID
	domain.Member
	Outbox Outbox
}

func NewClientHandle(id domain.ClientID, meta domain.Member, outbox Outbox) ClientHandle {
	return ClientHandle{ID: id, Member: meta, Outbox: outbox}
}
