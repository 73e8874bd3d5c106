package core

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/roomrelay/internal/domain"
)

// ExpireIdle deletes rooms that have had no members for at least ttl and
// returns their names. The default room is always kept.
func (r *Registry) ExpireIdle(ttl time.Duration, now time.Time) []domain.RoomName {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []domain.RoomName
	for name, rm := range r.rooms {
		if name == r.defaultRoom || len(rm.members) > 0 || rm.emptySince.IsZero() {
			continue
		}
		if now.Sub(rm.emptySince) >= ttl {
			delete(r.rooms, name)
			expired = append(expired, name)
			log.Info().Str("module", "core.janitor").Str("room", string(name)).Dur("idle", now.Sub(rm.emptySince)).Msg("expired idle room")
		}
	}
	return expired
}

// RunJanitor expires idle rooms every interval until ctx is done. A ttl of
// zero disables expiry and returns immediately.
func (r *Registry) RunJanitor(ctx context.Context, interval, ttl time.Duration) error {
	if ttl <= 0 {
		log.Info().Str("module", "core.janitor").Msg("room expiry disabled")
		return nil
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "core.janitor").Msg("janitor stopped")
			return nil
		case now := <-ticker.C:
			r.ExpireIdle(ttl, now)
		}
	}
}
