// Package transport exposes the game server over websockets. Each
// connection runs a read loop that turns frames into server commands and a
// writer goroutine that drains its send queue.
package transport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/server/core"
	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/protocol"
)

// Submitter stages commands for the game loop.
type Submitter interface {
	Submit(ctx context.Context, cmd any) error
}

// Timeouts for work that outlives the connection context.
const (
	joinReplyTimeout = 5 * time.Second
	leaveTimeout     = time.Second
)

type Handler struct {
	srv    Submitter
	cfg    config.ServerConfig
	logger *slog.Logger
}

func NewHandler(srv Submitter, cfg config.ServerConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		srv:    srv,
		cfg:    cfg,
		logger: logger.With("component", "transport"),
	}
}

// Routes returns the HTTP routes of the game server.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /ws", h)
	mux.HandleFunc("GET /health", Health())
	return mux
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.logger.Debug("websocket accept failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	if h.cfg.ReadLimit > 0 {
		ws.SetReadLimit(h.cfg.ReadLimit)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn := newConn(ws, h.cfg.SendQueue)
	go conn.writeLoop(ctx, h.writeTimeout())

	defer func() {
		_ = conn.Close()
		<-conn.done
	}()

	id, err := h.join(ctx, ws, conn)
	if err != nil {
		h.logger.Debug("session ended before join", "remote", r.RemoteAddr, "err", err)
		return
	}
	log := h.logger.With("player", id)
	log.Debug("session started", "remote", r.RemoteAddr)

	err = h.readLoop(ctx, ws, id)
	log.Debug("session ended", "err", err)

	leaveCtx, leaveCancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer leaveCancel()
	if err := h.srv.Submit(leaveCtx, core.Leave{PlayerID: id}); err != nil {
		log.Warn("leave not delivered", "err", err)
	}
}

func (h *Handler) writeTimeout() time.Duration {
	if h.cfg.WriteTimeout > 0 {
		return h.cfg.WriteTimeout
	}
	return 5 * time.Second
}

// join waits for a JoinRequest, ignoring anything else, and returns the
// assigned player id. A rejected join has already been told why through conn.
func (h *Handler) join(ctx context.Context, ws *websocket.Conn, conn *wsConn) (uint64, error) {
	for {
		msg, err := h.read(ctx, ws)
		if err != nil {
			return 0, err
		}
		req, ok := msg.(messages.JoinRequest)
		if !ok {
			continue
		}

		reply := make(chan core.JoinResult, 1)
		if err := h.srv.Submit(ctx, core.Join{Name: req.Name, Conn: conn, Reply: reply}); err != nil {
			return 0, err
		}
		select {
		case res := <-reply:
			return res.PlayerID, res.Err
		case <-ctx.Done():
			go h.abandonJoin(reply)
			return 0, ctx.Err()
		}
	}
}

// abandonJoin removes a player whose join completed after its connection
// went away.
func (h *Handler) abandonJoin(reply <-chan core.JoinResult) {
	select {
	case res := <-reply:
		if res.Err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
		defer cancel()
		_ = h.srv.Submit(ctx, core.Leave{PlayerID: res.PlayerID})
	case <-time.After(joinReplyTimeout):
	}
}

func (h *Handler) readLoop(ctx context.Context, ws *websocket.Conn, id uint64) error {
	for {
		msg, err := h.read(ctx, ws)
		if err != nil {
			return err
		}

		var cmd any
		switch m := msg.(type) {
		case messages.PlayerInput:
			cmd = core.Input{PlayerID: id, Input: m}
		case messages.ActivatePowerup:
			cmd = core.Activate{PlayerID: id, Slot: m.Slot}
		default:
			continue
		}
		if err := h.srv.Submit(ctx, cmd); err != nil {
			return err
		}
	}
}

// read returns the next decodable message. Text frames and malformed
// payloads are skipped; only connection errors are returned.
func (h *Handler) read(ctx context.Context, ws *websocket.Conn) (any, error) {
	for {
		typ, data, err := ws.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ != websocket.MessageBinary {
			continue
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			if !errors.Is(err, protocol.ErrUnknownMessage) {
				h.logger.Debug("dropping malformed message", "err", err)
			}
			continue
		}
		return msg, nil
	}
}
