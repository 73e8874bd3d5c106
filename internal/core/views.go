package core

import "github.com/dkeye/roomrelay/internal/domain"

// PublishResult reports delivery stats/backpressure of one fan-out.
type PublishResult struct {
	SentTo  int
	Dropped int
	Pruned  []domain.ClientID
}

// MemberDTO is a read-only view for APIs (no transport fields).
type MemberDTO struct {
	ID       domain.ClientID `json:"id"`
	Nickname string          `json:"nickname"`
	Color    string          `json:"color"`
}

type RoomInfo struct {
	Name        domain.RoomName `json:"name"`
	MemberCount int             `json:"client_count"`
	HasPassword bool            `json:"has_password"`
}
