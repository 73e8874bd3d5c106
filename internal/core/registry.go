package core

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dkeye/roomrelay/internal/domain"
)

// Registry owns every room and its membership. A single mutex guards the
// whole map, so no operation ever observes a half-done join, leave or
// fan-out. Delivery is a non-blocking enqueue, which keeps the critical
// section short.
type Registry struct {
	mu       sync.Mutex
	rooms    map[domain.RoomName]*room
	memberOf map[domain.ClientID]domain.RoomName

	policy      Policy
	defaultRoom domain.RoomName
	now         func() time.Time
}

// NewRegistry returns an empty registry. defaultRoom is never expired by the
// janitor. A nil policy drops envelopes for members whose queue is full.
func NewRegistry(defaultRoom domain.RoomName, policy Policy) *Registry {
	if policy == nil {
		policy = DropPolicy{}
	}
	return &Registry{
		rooms:       make(map[domain.RoomName]*room),
		memberOf:    make(map[domain.ClientID]domain.RoomName),
		policy:      policy,
		defaultRoom: defaultRoom,
		now:         time.Now,
	}
}

// JoinRoom moves client into the named room, creating it with password if it
// does not exist. Joining an existing room with a different password returns
// domain.ErrIncorrectPassword and leaves the client where it was.
func (r *Registry) JoinRoom(name domain.RoomName, client ClientHandle, password *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, exists := r.rooms[name]
	if exists && !target.accepts(password) {
		log.Info().Str("module", "core.registry").Str("client", string(client.ID)).Str("room", string(name)).Msg("join rejected: incorrect password")
		return domain.ErrIncorrectPassword
	}

	r.leaveLocked(client.ID)

	if !exists {
		r.rooms[name] = newRoom(name, client, password)
		r.memberOf[client.ID] = name
		log.Info().Str("module", "core.registry").Str("client", string(client.ID)).Str("room", string(name)).Bool("password", password != nil).Msg("room created")
		return nil
	}

	notice := domain.Info(name, len(target.members)+1, domain.JoinedNotice, client.Nickname)
	r.deliverLocked(target, notice)

	target.members = append(target.members, client)
	target.emptySince = time.Time{}
	r.memberOf[client.ID] = name
	log.Info().Str("module", "core.registry").Str("client", string(client.ID)).Str("room", string(name)).Int("members", len(target.members)).Msg("member joined")
	return nil
}

// leaveLocked removes id from its current room and tells the members left
// behind.
func (r *Registry) leaveLocked(id domain.ClientID) {
	name, ok := r.memberOf[id]
	if !ok {
		return
	}
	delete(r.memberOf, id)

	rm, ok := r.rooms[name]
	if !ok {
		return
	}
	left, removed := rm.remove(id, r.now())
	if !removed {
		return
	}
	log.Info().Str("module", "core.registry").Str("client", string(id)).Str("room", string(name)).Int("members", len(rm.members)).Msg("member left")

	if len(rm.members) > 0 {
		r.deliverLocked(rm, domain.Info(name, len(rm.members), domain.LeftNotice, left.Nickname))
	}
}

// Broadcast fans a chat message out to every member of the room, sender
// included. A missing room or a sender that is no longer a member is a no-op.
func (r *Registry) Broadcast(name domain.RoomName, sender domain.ClientID, content string) PublishResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[name]
	if !ok {
		return PublishResult{}
	}
	i := rm.indexOf(sender)
	if i < 0 {
		log.Debug().Str("module", "core.registry").Str("client", string(sender)).Str("room", string(name)).Msg("broadcast from non-member ignored")
		return PublishResult{}
	}

	msg := domain.Chat(rm.members[i].Member, name, len(rm.members), content)
	res := r.deliverLocked(rm, msg)
	log.Debug().Str("module", "core.registry").Str("from", string(sender)).Int("sent_to", res.SentTo).Int("dropped", res.Dropped).Int("pruned", len(res.Pruned)).Msg("broadcast result")
	return res
}

// deliverLocked hands env to every member of rm. Members whose outbox is
// closed are pruned; members whose queue is full are handled by the policy.
func (r *Registry) deliverLocked(rm *room, env domain.Envelope) PublishResult {
	res := PublishResult{}
	kept := rm.members[:0]
	for _, m := range rm.members {
		err := m.Outbox.TrySend(env)
		if err == nil {
			res.SentTo++
			kept = append(kept, m)
			continue
		}
		if errors.Is(err, domain.ErrBackpressure) {
			if r.policy.OnBackPressure(rm.name, m) == DropFrame {
				res.Dropped++
				kept = append(kept, m)
				continue
			}
			log.Warn().Str("module", "core.registry").Str("client", string(m.ID)).Str("room", string(rm.name)).Msg("kicked slow member")
			m.Outbox.Close()
		} else {
			log.Info().Str("module", "core.registry").Str("client", string(m.ID)).Str("room", string(rm.name)).Err(err).Msg("pruned unreachable member")
		}
		delete(r.memberOf, m.ID)
		res.Pruned = append(res.Pruned, m.ID)
	}
	clear(rm.members[len(kept):])
	rm.members = kept
	rm.markIfEmpty(r.now())
	return res
}

// SetColor updates the color of id wherever it is a member. It reports false
// when the client is in no room.
func (r *Registry) SetColor(id domain.ClientID, color string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.memberOf[id]
	if !ok {
		return false
	}
	rm, ok := r.rooms[name]
	if !ok {
		return false
	}
	i := rm.indexOf(id)
	if i < 0 {
		return false
	}
	rm.members[i].Color = color
	log.Info().Str("module", "core.registry").Str("client", string(id)).Str("color", color).Msg("updated color")
	return true
}

// RoomOf returns the room id is currently a member of.
func (r *Registry) RoomOf(id domain.ClientID) (domain.RoomName, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.memberOf[id]
	return name, ok
}

func (r *Registry) Rooms() []RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := lo.MapToSlice(r.rooms, func(name domain.RoomName, rm *room) RoomInfo {
		return RoomInfo{Name: name, MemberCount: len(rm.members), HasPassword: rm.password != nil}
	})
	slices.SortFunc(out, func(a, b RoomInfo) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Members lists a room's members in join order.
func (r *Registry) Members(name domain.RoomName) ([]MemberDTO, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[name]
	if !ok {
		return nil, false
	}
	return lo.Map(rm.members, func(m ClientHandle, _ int) MemberDTO {
		return MemberDTO{ID: m.ID, Nickname: m.Nickname, Color: m.Color}
	}), true
}
