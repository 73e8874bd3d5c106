package domain

// Member represents user's participation meta for a room.
// No transport or lifecycle logic here.
type Member struct {
	Nickname string
	Color    string
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(nickname, color string) Member {
	return Member{Nickname: nickname, Color: color}
}
