package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/config"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

const sessionName = "roomrelay"

// RoomDirectory is the read side of the registry exposed over REST.
type RoomDirectory interface {
	Rooms() []core.RoomInfo
	Members(name domain.RoomName) ([]core.MemberDTO, bool)
}

// ConnectionServer takes ownership of an upgraded connection.
type ConnectionServer interface {
	Serve(ctx context.Context, connID string, conn app.Transport)
}

// SetupRouter wires REST and the WebSocket endpoint. ctx bounds every
// connection accepted through /ws.
func SetupRouter(ctx context.Context, cfg *config.Config, rooms RoomDirectory, relay ConnectionServer) *gin.Engine {
	gin.SetMode(cfg.Mode)

	r := gin.New()
	if cfg.Mode == gin.DebugMode {
		r.Use(requestLogger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(ClientTokenMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.Rooms()})
	})

	api.GET("/rooms/:name/members", func(c *gin.Context) {
		name := domain.RoomName(c.Param("name"))
		members, ok := rooms.Members(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"room": name, "members": members})
	})

	ws := newWSHandler(ctx, relay, cfg.AllowedOrigins, cfg.ReadLimit, app.PongWait(cfg.PingPeriod))
	r.GET("/ws", ws.serve)

	log.Info().Str("module", "adapters.http").Str("mode", cfg.Mode).Strs("origins", cfg.AllowedOrigins).Msg("router setup")
	return r
}
