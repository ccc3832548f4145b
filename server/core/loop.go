package core

import (
	"context"
	"log/slog"
	"time"
)

type GameLoop struct {
	server   *Server
	tickRate int
	logger   *slog.Logger
}

func NewGameLoop(server *Server, tickRate int, logger *slog.Logger) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		logger:   logger,
	}
}

// Interval is the fixed tick period.
func (g *GameLoop) Interval() time.Duration {
	return time.Second / time.Duration(g.tickRate)
}

// Run ticks at the fixed rate until ctx is done. Missed ticks are dropped,
// never replayed.
func (g *GameLoop) Run(ctx context.Context) error {
	interval := g.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	g.logger.Info("game loop started", "tick_rate", g.tickRate)

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("game loop stopped")
			return nil
		case <-ticker.C:
			start := time.Now()
			g.server.Tick(g.server.now())
			if elapsed := time.Since(start); elapsed > interval {
				g.logger.Warn("tick overran", "elapsed", elapsed, "budget", interval)
			}
		}
	}
}
