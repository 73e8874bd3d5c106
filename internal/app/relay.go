package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

// Relay runs one Session per accepted connection and tracks their transports
// so Shutdown can close them.
type Relay struct {
	rooms   RoomRegistry
	limiter *RateLimiter
	cfg     SessionConfig

	mu      sync.Mutex
	conns   map[Transport]string
	closing bool
	wg      conc.WaitGroup
}

func NewRelay(rooms RoomRegistry, limiter *RateLimiter, cfg SessionConfig) *Relay {
	return &Relay{
		rooms:   rooms,
		limiter: limiter,
		cfg:     cfg,
		conns:   make(map[Transport]string),
	}
}

// Serve starts a session for conn and returns immediately. ctx should outlive
// the HTTP request that produced conn. Once Shutdown has begun, conn is
// closed instead.
func (r *Relay) Serve(ctx context.Context, connID string, conn Transport) {
	r.mu.Lock()
	if r.closing {
		r.mu.Unlock()
		log.Info().Str("module", "app.relay").Str("conn", connID).Msg("refused connection during shutdown")
		_ = conn.Close()
		return
	}
	r.conns[conn] = connID
	active := len(r.conns)
	r.wg.Go(func() {
		defer r.untrack(conn)
		NewSession(connID, conn, r.rooms, r.limiter, r.cfg).Run(ctx)
	})
	r.mu.Unlock()
	log.Debug().Str("module", "app.relay").Str("conn", connID).Int("active", active).Msg("session started")
}

func (r *Relay) untrack(conn Transport) {
	r.mu.Lock()
	connID := r.conns[conn]
	delete(r.conns, conn)
	active := len(r.conns)
	r.mu.Unlock()
	log.Debug().Str("module", "app.relay").Str("conn", connID).Int("active", active).Msg("session ended")
}

// Active reports the number of running sessions.
func (r *Relay) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Shutdown closes every tracked transport and waits for the sessions to
// finish, or for ctx to expire.
func (r *Relay) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closing = true
	for conn := range r.conns {
		_ = conn.Close()
	}
	n := len(r.conns)
	r.mu.Unlock()
	log.Info().Str("module", "app.relay").Int("sessions", n).Msg("shutting down sessions")

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
