package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
)

var (
	ErrSendQueueFull = errors.New("send queue full")
	ErrConnClosed    = errors.New("connection closed")
)

// wsConn queues outbound frames for a single writer goroutine so the game
// loop never blocks on a slow client.
type wsConn struct {
	ws    *websocket.Conn
	queue chan []byte
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

func newConn(ws *websocket.Conn, queueSize int) *wsConn {
	return &wsConn{
		ws:    ws,
		queue: make(chan []byte, max(queueSize, 1)),
		done:  make(chan struct{}),
	}
}

// Send enqueues frame without blocking.
func (c *wsConn) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.queue <- frame:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close stops accepting frames. Frames already queued are still written.
func (c *wsConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	return nil
}

func (c *wsConn) writeLoop(ctx context.Context, timeout time.Duration) {
	defer close(c.done)
	for frame := range c.queue {
		wctx, cancel := context.WithTimeout(ctx, timeout)
		err := c.ws.Write(wctx, websocket.MessageBinary, frame)
		cancel()
		if err != nil {
			_ = c.Close()
			_ = c.ws.CloseNow()
			return
		}
	}
	if ctx.Err() != nil {
		_ = c.ws.CloseNow()
		return
	}
	_ = c.ws.Close(websocket.StatusNormalClosure, "")
}
