package core

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/protocol"
)

// Conn is the outbound half of a client connection. Send must not block;
// an error means the client can no longer keep up and is dropped.
type Conn interface {
	Send(frame []byte) error
	Close() error
}

// Commands accepted by Submit. Connection goroutines only ever stage
// commands; the loop goroutine applies them at the start of the next tick.
type (
	Join struct {
		Name string
		Conn Conn
		// Reply receives exactly one JoinResult. It should be buffered.
		Reply chan<- JoinResult
	}
	Input struct {
		PlayerID uint64
		Input    messages.PlayerInput
	}
	Activate struct {
		PlayerID uint64
		Slot     int
	}
	Leave struct {
		PlayerID uint64
	}
)

type JoinResult struct {
	PlayerID uint64
	Err      error
}

// Server owns the simulation and the connected clients. Only the loop
// goroutine touches either.
type Server struct {
	cfg    config.Config
	sim    *Simulation
	loop   *GameLoop
	inbox  chan any
	logger *slog.Logger
	clock  func() time.Time
	rng    *rand.Rand

	clients     map[uint64]Conn
	playerCount atomic.Int64
}

type Option func(*Server)

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) { s.clock = clock }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithRand sets the random source used for spawns.
func WithRand(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

func NewServer(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg,
		inbox:   make(chan any, max(cfg.Server.InboxSize, 1)),
		logger:  slog.Default(),
		clock:   time.Now,
		clients: make(map[uint64]Conn),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sim = NewSimulation(cfg, s.rng, s.logger)
	s.logger = s.logger.With("component", "server")
	s.loop = NewGameLoop(s, cfg.Server.TickRate, s.logger)
	return s
}

// Run drives the game loop until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer s.closeClients()
	return s.loop.Run(ctx)
}

// Submit stages a command for the next tick.
func (s *Server) Submit(ctx context.Context, cmd any) error {
	select {
	case s.inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PlayerCount is safe to call from any goroutine. It reflects the state at
// the end of the last tick.
func (s *Server) PlayerCount() int {
	return int(s.playerCount.Load())
}

// ProcessCommands applies the commands staged before the call and returns
// how many it handled. Commands arriving meanwhile wait for the next tick.
func (s *Server) ProcessCommands(now time.Time) int {
	n := len(s.inbox)
	for i := range n {
		select {
		case cmd := <-s.inbox:
			s.handle(cmd, now)
		default:
			return i
		}
	}
	return n
}

func (s *Server) handle(cmd any, now time.Time) {
	switch c := cmd.(type) {
	case Join:
		s.handleJoin(c, now)
	case Input:
		s.sim.SetInput(c.PlayerID, c.Input)
	case Activate:
		s.sim.ActivatePowerup(c.PlayerID, c.Slot, now)
	case Leave:
		delete(s.clients, c.PlayerID)
		s.sim.RemovePlayer(c.PlayerID)
	default:
		s.logger.Warn("unknown command", "type", fmt.Sprintf("%T", cmd))
	}
}

func (s *Server) handleJoin(cmd Join, now time.Time) {
	reply := func(r JoinResult) {
		if cmd.Reply == nil {
			return
		}
		select {
		case cmd.Reply <- r:
		default:
		}
	}

	id, err := s.sim.AddPlayer(cmd.Name, now)
	if err != nil {
		s.logger.Info("join rejected", "name", cmd.Name, "err", err)
		s.send(cmd.Conn, messages.JoinRejected{Reason: messages.RejectGameFull})
		reply(JoinResult{Err: err})
		return
	}

	accepted := messages.JoinAccepted{
		PlayerID:   id,
		ServerName: s.cfg.Server.Name,
		TickRate:   s.cfg.Server.TickRate,
		World:      s.sim.Bootstrap(),
	}
	if err := s.send(cmd.Conn, accepted); err != nil {
		s.sim.RemovePlayer(id)
		reply(JoinResult{Err: err})
		return
	}
	s.clients[id] = cmd.Conn
	s.playerCount.Store(int64(s.sim.PlayerCount()))
	reply(JoinResult{PlayerID: id})
}

func (s *Server) send(conn Conn, msg any) error {
	frame, err := protocol.Encode(msg)
	if err != nil {
		s.logger.Error("encode failed", "err", err)
		return err
	}
	if err := conn.Send(frame); err != nil {
		return fmt.Errorf("send %T: %w", msg, err)
	}
	return nil
}

// Tick runs one full server tick: staged commands, one simulation step,
// game-over notices and the snapshot broadcast.
func (s *Server) Tick(now time.Time) {
	s.ProcessCommands(now)

	result := s.sim.Step(now)
	for _, n := range result.GameOvers {
		conn, ok := s.clients[n.PlayerID]
		if !ok {
			continue
		}
		if err := s.send(conn, messages.GameOver{FinalScore: n.FinalScore}); err != nil {
			s.logger.Debug("game over not delivered", "player", n.PlayerID, "err", err)
		}
	}

	s.broadcast(s.sim.Snapshot(now))
	s.playerCount.Store(int64(s.sim.PlayerCount()))
}

func (s *Server) broadcast(snap messages.WorldSnapshot) {
	if len(s.clients) == 0 {
		return
	}
	frame, err := protocol.Encode(snap)
	if err != nil {
		s.logger.Error("snapshot encode failed", "tick", snap.Tick, "err", err)
		return
	}
	for id, conn := range s.clients {
		if err := conn.Send(frame); err != nil {
			s.logger.Info("dropping client", "player", id, "err", err)
			s.drop(id)
		}
	}
}

func (s *Server) drop(id uint64) {
	if conn, ok := s.clients[id]; ok {
		_ = conn.Close()
		delete(s.clients, id)
	}
	s.sim.RemovePlayer(id)
}

func (s *Server) closeClients() {
	for id, conn := range s.clients {
		_ = conn.Close()
		delete(s.clients, id)
	}
}

func (s *Server) now() time.Time {
	return s.clock()
}
