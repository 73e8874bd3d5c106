package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type wsHandler struct {
	ctx       context.Context
	relay     ConnectionServer
	upgrader  websocket.Upgrader
	readLimit int64
	pongWait  time.Duration
}

func newWSHandler(ctx context.Context, relay ConnectionServer, origins []string, readLimit int64, pongWait time.Duration) *wsHandler {
	policy := newOriginPolicy(origins)
	return &wsHandler{
		ctx:   ctx,
		relay: relay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     policy.check,
		},
		readLimit: readLimit,
		pongWait:  pongWait,
	}
}

// serve upgrades the request and hands the connection to the relay. The
// first read deadline bounds the handshake; the session renews it when the
// client goes Active and pings start.
func (h *wsHandler) serve(c *gin.Context) {
	connID := c.GetString(clientTokenKey)

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Str("module", "adapters.http").Str("conn", connID).Err(err).Msg("ws upgrade")
		return
	}

	if h.readLimit > 0 {
		ws.SetReadLimit(h.readLimit)
	}
	if h.pongWait > 0 {
		_ = ws.SetReadDeadline(time.Now().Add(h.pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(h.pongWait))
		})
	}

	log.Info().Str("module", "adapters.http").Str("conn", connID).Str("remote", c.ClientIP()).Msg("ws connected")
	h.relay.Serve(h.ctx, connID, ws)
}
