package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/roomrelay/internal/domain"
)

type PumpConfig struct {
	QueueSize  int
	WriteWait  time.Duration
	PingPeriod time.Duration
}

// Pump is the single writer of a transport. Producers enqueue with TrySend
// and never block; Run drains the queue onto the wire.
type Pump struct {
	conn Transport
	cfg  PumpConfig
	send chan domain.Envelope

	mu     sync.RWMutex
	closed bool
}

func NewPump(conn Transport, cfg PumpConfig) *Pump {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	return &Pump{
		conn: conn,
		cfg:  cfg,
		send: make(chan domain.Envelope, cfg.QueueSize),
	}
}

// TrySend enqueues env without blocking.
func (p *Pump) TrySend(env domain.Envelope) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return domain.ErrOutboxClosed
	}
	select {
	case p.send <- env:
		return nil
	default:
		return domain.ErrBackpressure
	}
}

// Close stops accepting envelopes. Whatever is already queued is still
// written by Run, followed by a close frame. Safe to call more than once.
func (p *Pump) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.send)
}

// Run writes until the queue is closed and drained, a write fails, or ctx
// is done. The transport is always closed on return.
func (p *Pump) Run(ctx context.Context) {
	defer func() { _ = p.conn.Close() }()

	var ping <-chan time.Time
	if p.cfg.PingPeriod > 0 {
		ticker := time.NewTicker(p.cfg.PingPeriod)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			p.Close()
			p.writeClose()
			return
		case env, ok := <-p.send:
			if !ok {
				p.writeClose()
				return
			}
			if err := p.write(env); err != nil {
				log.Debug().Str("module", "app.pump").Err(err).Msg("write failed")
				p.Close()
				return
			}
		case <-ping:
			if err := p.writeFrame(websocket.PingMessage, nil); err != nil {
				log.Debug().Str("module", "app.pump").Err(err).Msg("ping failed")
				p.Close()
				return
			}
		}
	}
}

func (p *Pump) write(env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		log.Error().Str("module", "app.pump").Err(err).Msg("marshal envelope")
		return nil
	}
	return p.writeFrame(websocket.TextMessage, data)
}

func (p *Pump) writeFrame(messageType int, data []byte) error {
	if p.cfg.WriteWait > 0 {
		if err := p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteWait)); err != nil {
			return err
		}
	}
	return p.conn.WriteMessage(messageType, data)
}

func (p *Pump) writeClose() {
	_ = p.writeFrame(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
