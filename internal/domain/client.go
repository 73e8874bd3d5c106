// Package domain contains entities without logic, just meta-data
package domain

import "github.com/google/uuid"

// ClientID identifies one connected client for the lifetime of its connection.
// Nicknames are not unique, so this is the only identity key.
type ClientID string

// NewClientID is assigned when a session completes its handshake.
func NewClientID() ClientID {
	return ClientID(uuid.NewString())
}
