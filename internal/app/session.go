package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"

	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

type State int

const (
	Connecting State = iota
	AwaitingNickname
	AwaitingColor
	Active
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case AwaitingNickname:
		return "awaiting_nickname"
	case AwaitingColor:
		return "awaiting_color"
	case Active:
		return "active"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

type SessionConfig struct {
	DefaultRoom domain.RoomName
	Pump        PumpConfig
	// ReadTimeout is the silence allowed once Active; pongs extend it.
	// Zero leaves the transport's deadline alone.
	ReadTimeout time.Duration
}

// PongWait is how long a connection may stay silent. Pings go out every
// pingPeriod, so it has to be a bit longer than that.
func PongWait(pingPeriod time.Duration) time.Duration {
	return pingPeriod * 10 / 9
}

// Session drives one connection: the nickname and color handshake, then the
// command loop. It keeps its own copy of the member so that a /join after a
// /color carries the new color.
type Session struct {
	conn    Transport
	rooms   RoomRegistry
	limiter *RateLimiter
	cfg     SessionConfig
	log     zerolog.Logger

	state  State
	id     domain.ClientID
	member domain.Member
	room   domain.RoomName
	outbox *Pump
}

func NewSession(connID string, conn Transport, rooms RoomRegistry, limiter *RateLimiter, cfg SessionConfig) *Session {
	return &Session{
		conn:    conn,
		rooms:   rooms,
		limiter: limiter,
		cfg:     cfg,
		log:     log.With().Str("module", "app.session").Str("conn", connID).Logger(),
		state:   Connecting,
	}
}

// State is only meaningful once Run has returned or from Run's goroutine.
func (s *Session) State() State { return s.state }

// Run blocks until the peer goes away or ctx is done.
func (s *Session) Run(ctx context.Context) {
	defer s.transition(Closed)

	if !s.handshake() {
		_ = s.conn.Close()
		return
	}
	s.activate()

	var wg conc.WaitGroup
	wg.Go(func() { s.outbox.Run(ctx) })

	s.readLoop()

	s.outbox.Close()
	wg.Wait()
	s.limiter.Forget(s.id)
}

func (s *Session) transition(next State) {
	s.log.Debug().Stringer("from", s.state).Stringer("to", next).Msg("state change")
	s.state = next
}

func (s *Session) handshake() bool {
	s.transition(AwaitingNickname)
	if err := s.writeDirect(domain.Info(domain.NoRoom, 0, domain.NicknamePrompt)); err != nil {
		s.log.Debug().Err(err).Msg("nickname prompt failed")
		return false
	}
	nickname, ok := s.readText()
	if !ok {
		return false
	}

	s.transition(AwaitingColor)
	if err := s.writeDirect(domain.Info(domain.NoRoom, 0, domain.ColorPrompt)); err != nil {
		s.log.Debug().Err(err).Msg("color prompt failed")
		return false
	}
	color, ok := s.readText()
	if !ok {
		return false
	}

	s.member = domain.NewMember(nickname, color)
	return true
}

// writeDirect is used before the pump exists; nothing else writes then.
func (s *Session) writeDirect(env domain.Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if wait := s.cfg.Pump.WriteWait; wait > 0 {
		if err := s.conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
			return err
		}
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *Session) readText() (string, bool) {
	mt, data, err := s.conn.ReadMessage()
	if err != nil {
		s.logReadEnd(err)
		return "", false
	}
	if mt != websocket.TextMessage {
		s.log.Info().Int("type", mt).Stringer("state", s.state).Msg("non-text frame during handshake")
		return "", false
	}
	return string(data), true
}

func (s *Session) activate() {
	s.id = domain.NewClientID()
	s.outbox = NewPump(s.conn, s.cfg.Pump)
	s.log = s.log.With().Str("client", string(s.id)).Logger()

	if s.cfg.ReadTimeout > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout)); err != nil {
			s.log.Warn().Err(err).Msg("refresh read deadline")
		}
	}

	if err := s.rooms.JoinRoom(s.cfg.DefaultRoom, s.handle(), nil); err != nil {
		s.log.Warn().Err(err).Str("room", string(s.cfg.DefaultRoom)).Msg("default room refused client")
	} else {
		s.room = s.cfg.DefaultRoom
	}
	s.transition(Active)
	s.log.Info().Str("nickname", s.member.Nickname).Str("room", string(s.room)).Msg("client active")
}

func (s *Session) handle() core.ClientHandle {
	return core.NewClientHandle(s.id, s.member, s.outbox)
}

func (s *Session) readLoop() {
	for {
		mt, data, err := s.conn.ReadMessage()
		if err != nil {
			s.logReadEnd(err)
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		s.dispatch(ParseCommand(string(data)))
	}
}

func (s *Session) dispatch(cmd Command) {
	switch cmd.Kind {
	case CmdJoin:
		s.handleJoin(cmd)
	case CmdColor:
		s.handleColor(cmd)
	case CmdChat:
		s.handleChat(cmd.Text)
	}
}

func (s *Session) handleJoin(cmd Command) {
	if cmd.Room == domain.NoRoom {
		s.notify(domain.Error(s.room, domain.JoinUsage))
		return
	}
	if err := s.rooms.JoinRoom(cmd.Room, s.handle(), cmd.Password); err != nil {
		if errors.Is(err, domain.ErrIncorrectPassword) {
			s.notify(domain.Error(s.room, domain.WrongPassword))
		} else {
			s.notify(domain.Error(s.room, "Failed to join room: %v", err))
		}
		return
	}
	s.room = cmd.Room
	s.notify(domain.Info(s.room, 0, domain.JoinedRoom, s.room))
}

func (s *Session) handleColor(cmd Command) {
	if cmd.Color == "" {
		s.notify(domain.Error(s.room, domain.ColorMissing))
		return
	}
	if !s.rooms.SetColor(s.id, cmd.Color) {
		s.notify(domain.Error(s.room, domain.ColorNotInRoom))
		return
	}
	s.member.Color = cmd.Color
	env := domain.Info(s.room, 0, domain.ColorSet, cmd.Color)
	env.Color = cmd.Color
	s.notify(env)
}

func (s *Session) handleChat(text string) {
	if !s.limiter.Allow(s.id) {
		s.notify(domain.Error(s.room, domain.RateLimited))
		return
	}
	s.rooms.Broadcast(s.room, s.id, text)
}

func (s *Session) notify(env domain.Envelope) {
	if err := s.outbox.TrySend(env); err != nil {
		s.log.Debug().Err(err).Str("type", string(env.Type)).Msg("notice not queued")
	}
}

func (s *Session) logReadEnd(err error) {
	if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
		s.log.Warn().Err(err).Msg("read error")
		return
	}
	s.log.Debug().Err(err).Msg("peer gone")
}
