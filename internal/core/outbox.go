package core

import "github.com/dkeye/roomrelay/internal/domain"

// Outbox abstracts a client's outbound queue, the delivery target the
// registry fans out to. Owned by the session; the session must Close() it.
//
// TrySend never blocks. It returns domain.ErrOutboxClosed once the target will
// never accept data again and domain.ErrBackpressure while its queue is full.
type Outbox interface {
	TrySend(domain.Envelope) error
	Close()
}
