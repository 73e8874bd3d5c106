package domain

import "errors"

var (
	// ErrIncorrectPassword is the AuthError returned when joining an existing
	// room with a password that differs from the one it was created with.
	ErrIncorrectPassword = errors.New("incorrect password")
	// ErrOutboxClosed means the delivery target will never accept data again.
	ErrOutboxClosed = errors.New("outbox closed")
	// ErrBackpressure means the delivery target's queue is full right now.
	ErrBackpressure = errors.New("backpressure")
)
