package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomrelay/internal/app"
	"github.com/dkeye/roomrelay/internal/config"
	"github.com/dkeye/roomrelay/internal/core"
	"github.com/dkeye/roomrelay/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:           "test",
		DefaultRoom:    "general",
		ReadLimit:      32768,
		PingPeriod:     10 * time.Second,
		WriteWait:      time.Second,
		QueueSize:      64,
		AllowedOrigins: []string{"*"},
		Secret:         "test-secret",
	}
}

type stack struct {
	reg    *core.Registry
	relay  *app.Relay
	server *httptest.Server
}

func newStack(t *testing.T, cfg *config.Config) *stack {
	t.Helper()
	reg := core.NewRegistry(domain.RoomName(cfg.DefaultRoom), nil)
	relay := app.NewRelay(reg, nil, app.SessionConfig{
		DefaultRoom: domain.RoomName(cfg.DefaultRoom),
		Pump: app.PumpConfig{
			QueueSize:  cfg.QueueSize,
			WriteWait:  cfg.WriteWait,
			PingPeriod: cfg.PingPeriod,
		},
		ReadTimeout: app.PongWait(cfg.PingPeriod),
	})
	srv := httptest.NewServer(SetupRouter(t.Context(), cfg, reg, relay))
	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = relay.Shutdown(ctx)
	})
	return &stack{reg: reg, relay: relay, server: srv}
}

func (s *stack) wsURL() string {
	return "ws" + strings.TrimPrefix(s.server.URL, "http") + "/ws"
}

func (s *stack) getJSON(t *testing.T, path string, out any) int {
	t.Helper()
	resp, err := http.Get(s.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func readEnvelope(t *testing.T, ws *websocket.Conn) domain.Envelope {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var env domain.Envelope
	require.NoError(t, ws.ReadJSON(&env))
	return env
}

// login dials, answers both prompts and waits until the client is listed in
// the default room.
func login(t *testing.T, s *stack, nickname, color string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(s.wsURL(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	assert.Equal(t, domain.NicknamePrompt, readEnvelope(t, ws).Content)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(nickname)))
	assert.Equal(t, domain.ColorPrompt, readEnvelope(t, ws).Content)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(color)))

	require.Eventually(t, func() bool {
		members, _ := s.reg.Members("general")
		return lo.ContainsBy(members, func(m core.MemberDTO) bool { return m.Nickname == nickname })
	}, 2*time.Second, 10*time.Millisecond)
	return ws
}

func TestHealthz(t *testing.T) {
	s := newStack(t, testConfig())

	resp, err := http.Get(s.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.True(t, lo.ContainsBy(resp.Cookies(), func(c *http.Cookie) bool { return c.Name == sessionName }),
		"client token cookie is issued")
}

func TestMembersOfMissingRoom(t *testing.T) {
	s := newStack(t, testConfig())

	var body map[string]string
	assert.Equal(t, http.StatusNotFound, s.getJSON(t, "/api/rooms/nowhere/members", &body))
	assert.Equal(t, "room not found", body["error"])
}

func TestChatOverWebSocket(t *testing.T) {
	s := newStack(t, testConfig())

	alice := login(t, s, "alice", "ff0000")
	bob := login(t, s, "bob", "00ff00")

	joined := readEnvelope(t, alice)
	assert.Equal(t, domain.Info("general", 2, domain.JoinedNotice, "bob"), joined)

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("hello")))
	want := domain.Envelope{
		Type:        domain.MsgChat,
		Sender:      "alice",
		Color:       "ff0000",
		Content:     "hello",
		Room:        "general",
		ClientCount: 2,
	}
	assert.Equal(t, want, readEnvelope(t, alice))
	assert.Equal(t, want, readEnvelope(t, bob))

	require.NoError(t, bob.WriteMessage(websocket.TextMessage, []byte("/join den key")))
	assert.Equal(t, "Joined room den", readEnvelope(t, bob).Content)
	assert.Equal(t, domain.Info("general", 1, domain.LeftNotice, "bob"), readEnvelope(t, alice))

	var rooms struct {
		Rooms []core.RoomInfo `json:"rooms"`
	}
	assert.Equal(t, http.StatusOK, s.getJSON(t, "/api/rooms", &rooms))
	assert.Equal(t, []core.RoomInfo{
		{Name: "den", MemberCount: 1, HasPassword: true},
		{Name: "general", MemberCount: 1},
	}, rooms.Rooms)

	var members struct {
		Room    domain.RoomName  `json:"room"`
		Members []core.MemberDTO `json:"members"`
	}
	assert.Equal(t, http.StatusOK, s.getJSON(t, "/api/rooms/den/members", &members))
	require.Len(t, members.Members, 1)
	assert.Equal(t, "bob", members.Members[0].Nickname)
	assert.Equal(t, "00ff00", members.Members[0].Color)
}

func TestOriginAllowList(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigins = []string{"https://Chat.Example.com", "not a url"}
	s := newStack(t, cfg)

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(s.wsURL(), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"https://chat.example.com"}}
	ws, _, err := websocket.DefaultDialer.Dial(s.wsURL(), header)
	require.NoError(t, err)
	defer ws.Close()
	assert.Equal(t, domain.NicknamePrompt, readEnvelope(t, ws).Content)
}

func TestNormalizeOrigin(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://Example.COM", "https://example.com", true},
		{"http://localhost:3000", "http://localhost:3000", true},
		{"example.com", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeOrigin(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSlowHandshakeKeepsClientConnected(t *testing.T) {
	cfg := testConfig()
	cfg.PingPeriod = 180 * time.Millisecond
	s := newStack(t, cfg)

	ws, _, err := websocket.DefaultDialer.Dial(s.wsURL(), nil)
	require.NoError(t, err)
	defer ws.Close()

	assert.Equal(t, domain.NicknamePrompt, readEnvelope(t, ws).Content)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("alice")))
	assert.Equal(t, domain.ColorPrompt, readEnvelope(t, ws).Content)
	time.Sleep(120 * time.Millisecond)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("ff0000")))

	// Keep reading so pings get answered.
	envs := make(chan domain.Envelope, 8)
	readErr := make(chan error, 1)
	go func() {
		for {
			var env domain.Envelope
			if err := ws.ReadJSON(&env); err != nil {
				readErr <- err
				return
			}
			envs <- env
		}
	}()

	select {
	case err := <-readErr:
		t.Fatalf("connection dropped after a slow handshake: %v", err)
	case <-time.After(800 * time.Millisecond):
	}

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("still here")))
	select {
	case env := <-envs:
		assert.Equal(t, domain.MsgChat, env.Type)
		assert.Equal(t, "still here", env.Content)
	case err := <-readErr:
		t.Fatalf("read failed: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no echo of own chat")
	}
}
