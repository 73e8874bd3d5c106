package app

import (
	"encoding/json"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/roomrelay/internal/domain"
)

type frame struct {
	messageType int
	data        []byte
}

// fakeConn is an in-memory Transport. Frames pushed with sendText are read
// by the session; closing the inbound side reads as EOF.
type fakeConn struct {
	in   chan frame
	done chan struct{}
	once sync.Once

	mu       sync.Mutex
	out      []frame
	closed   bool
	writeErr error
	readBy   []time.Time
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:   make(chan frame, 32),
		done: make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case f, ok := <-c.in:
		if !ok {
			return 0, nil, io.EOF
		}
		return f.messageType, f.data, nil
	case <-c.done:
		return 0, nil, net.ErrClosed
	}
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return net.ErrClosed
	}
	if c.writeErr != nil {
		return c.writeErr
	}
	c.out = append(c.out, frame{messageType: messageType, data: data})
	return nil
}

func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (c *fakeConn) SetReadDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readBy = append(c.readBy, t)
	return nil
}

func (c *fakeConn) readDeadlines() []time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Time(nil), c.readBy...)
}

func (c *fakeConn) Close() error {
	c.once.Do(func() { close(c.done) })
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) sendText(s string) {
	c.in <- frame{messageType: websocket.TextMessage, data: []byte(s)}
}

func (c *fakeConn) sendBinary(b []byte) {
	c.in <- frame{messageType: websocket.BinaryMessage, data: b}
}

// hangUp makes the next read return EOF.
func (c *fakeConn) hangUp() { close(c.in) }

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *fakeConn) frames() []frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]frame(nil), c.out...)
}

func (c *fakeConn) envelopes(t *testing.T) []domain.Envelope {
	t.Helper()
	var out []domain.Envelope
	for _, f := range c.frames() {
		if f.messageType != websocket.TextMessage {
			continue
		}
		var env domain.Envelope
		require.NoError(t, json.Unmarshal(f.data, &env))
		out = append(out, env)
	}
	return out
}

func (c *fakeConn) contents(t *testing.T, typ domain.MsgType) []string {
	t.Helper()
	return lo.FilterMap(c.envelopes(t), func(e domain.Envelope, _ int) (string, bool) {
		return e.Content, e.Type == typ
	})
}

// waitContent blocks until an envelope of typ with content shows up.
func (c *fakeConn) waitContent(t *testing.T, typ domain.MsgType, content string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return lo.Contains(c.contents(t, typ), content)
	}, time.Second, 5*time.Millisecond, "no %s envelope %q", typ, content)
}
