// Package network is a headless game client: it joins a server over
// websockets, keeps the latest world snapshot and sends player intents.
package network

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/coder/websocket"

	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/protocol"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateJoinedGame
	StateGameOver
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateJoinedGame:
		return "joined"
	case StateGameOver:
		return "game over"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("ClientState(%d)", int(s))
}

var (
	ErrJoinRejected = errors.New("join rejected")
	ErrNotConnected = errors.New("not connected")
)

// Snapshots carry the full world; the default websocket limit is too small.
const readLimit = 1 << 22

// Client manages a websocket connection to the game server.
// All shared fields are protected by mu; the read loop runs on its own goroutine.
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	playerID   uint64
	serverName string
	tickRate   int
	bootstrap  messages.WorldState
	finalScore int
	conn       *websocket.Conn
	done       chan struct{}

	snapshotCh chan messages.WorldSnapshot // size-1 buffered; latest wins
	gameOverCh chan messages.GameOver

	logger *slog.Logger
}

func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan messages.WorldSnapshot, 1),
		gameOverCh: make(chan messages.GameOver, 1),
		logger:     logger.With("component", "client"),
	}
}

// Connect dials url, sends a JoinRequest and waits for the answer. On
// success a background goroutine keeps reading until the connection ends.
func (c *Client) Connect(ctx context.Context, url, name string) error {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return c.fail(fmt.Errorf("dial %s: %w", url, err))
	}
	conn.SetReadLimit(readLimit)

	if err := write(ctx, conn, messages.JoinRequest{Name: name}); err != nil {
		_ = conn.CloseNow()
		return c.fail(fmt.Errorf("send join request: %w", err))
	}

	accepted, err := awaitJoin(ctx, conn)
	if err != nil {
		_ = conn.CloseNow()
		return c.fail(err)
	}

	c.mu.Lock()
	c.conn = conn
	c.done = make(chan struct{})
	c.playerID = accepted.PlayerID
	c.serverName = accepted.ServerName
	c.tickRate = accepted.TickRate
	c.bootstrap = accepted.World
	c.state = StateJoinedGame
	done := c.done
	c.mu.Unlock()

	c.logger.Info("join accepted", "player", accepted.PlayerID, "server", accepted.ServerName, "tick_rate", accepted.TickRate)
	go c.readLoop(conn, done)
	return nil
}

func awaitJoin(ctx context.Context, conn *websocket.Conn) (messages.JoinAccepted, error) {
	for {
		msg, err := read(ctx, conn)
		if err != nil {
			return messages.JoinAccepted{}, fmt.Errorf("await join: %w", err)
		}
		switch m := msg.(type) {
		case messages.JoinAccepted:
			return m, nil
		case messages.JoinRejected:
			return messages.JoinAccepted{}, fmt.Errorf("%w: %s", ErrJoinRejected, m.Reason)
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	ctx := context.Background()
	for {
		msg, err := read(ctx, conn)
		if err != nil {
			c.logger.Debug("disconnected", "err", err)
			c.mu.Lock()
			if c.state == StateJoinedGame || c.state == StateConnecting {
				c.state = StateDisconnected
			}
			if c.conn == conn {
				c.conn = nil
			}
			c.mu.Unlock()
			return
		}

		switch m := msg.(type) {
		case messages.WorldSnapshot:
			select { // keep only the newest snapshot
			case <-c.snapshotCh:
			default:
			}
			c.snapshotCh <- m
		case messages.GameOver:
			c.logger.Info("game over", "score", m.FinalScore)
			c.mu.Lock()
			c.state = StateGameOver
			c.finalScore = m.FinalScore
			c.mu.Unlock()
			select {
			case c.gameOverCh <- m:
			default:
			}
		}
	}
}

// Disconnect closes the connection and waits for the read loop to finish.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn := c.conn
	done := c.done
	c.conn = nil
	if c.state != StateError && c.state != StateGameOver {
		c.state = StateDisconnected
	}
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close(websocket.StatusNormalClosure, "")
	if done != nil {
		<-done
	}
	if err != nil && websocket.CloseStatus(err) == -1 {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) PlayerID() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// Bootstrap returns the world state received with the join acceptance.
func (c *Client) Bootstrap() messages.WorldState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bootstrap
}

func (c *Client) FinalScore() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.finalScore
}

// Done is closed when the read loop ends. It is nil before Connect succeeds.
func (c *Client) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.done
}

// GameOver delivers the server's game over notice once.
func (c *Client) GameOver() <-chan messages.GameOver {
	return c.gameOverCh
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *messages.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendInput(ctx context.Context, in messages.PlayerInput) error {
	return c.SendMessage(ctx, in)
}

func (c *Client) ActivatePowerup(ctx context.Context, slot int) error {
	return c.SendMessage(ctx, messages.ActivatePowerup{Slot: slot})
}

func (c *Client) SendMessage(ctx context.Context, msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}
	return write(ctx, conn, msg)
}

func (c *Client) fail(err error) error {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
	return err
}

func write(ctx context.Context, conn *websocket.Conn, msg any) error {
	frame, err := protocol.Encode(msg)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return conn.Write(ctx, websocket.MessageBinary, frame)
}

// read returns the next decodable message, skipping anything malformed.
func read(ctx context.Context, conn *websocket.Conn) (any, error) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ != websocket.MessageBinary {
			continue
		}
		if msg, err := protocol.Decode(data); err == nil {
			return msg, nil
		}
	}
}
