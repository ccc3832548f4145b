package core

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/shared/netconfig"
)

var t0 = time.Unix(1700000000, 0)

// tickAt returns the time of the n-th tick after t0 at 60 Hz.
func tickAt(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Second / 60)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// emptyConfig is the default configuration with no static objects, enemies
// or collectibles so scenarios control every entity.
func emptyConfig() config.Config {
	cfg := config.Default()
	cfg.World.InitialChunks = 0
	cfg.World.ExpandRadius = -1
	cfg.Enemy.Count = 0
	cfg.Collectible.FuelTanks = 0
	cfg.Collectible.Powerups = 0
	return cfg
}

func newTestSim(t *testing.T, cfg config.Config) *Simulation {
	t.Helper()
	return NewSimulation(cfg, rand.New(rand.NewPCG(1, 2)), discardLogger())
}

func addPlayer(t *testing.T, s *Simulation, name string, x, y, rot float64) *donburi.Entry {
	t.Helper()
	id, err := s.AddPlayer(name, t0)
	require.NoError(t, err)
	entry, ok := s.player(id)
	require.True(t, ok)
	place(entry, x, y, rot)
	components.Player.Get(entry).Chunk = s.gen.ChunkOf(x, y)
	return entry
}

func addEnemy(s *Simulation, x, y, rot float64) *donburi.Entry {
	entry := s.reg.NewEnemy()
	s.initEnemy(entry)
	place(entry, x, y, rot)
	return entry
}

func addCollectible(s *Simulation, kind netconfig.CollectibleKind, powerup netconfig.PowerupKind, x, y float64) *donburi.Entry {
	entry := s.spawnCollectible(kind)
	if kind == netconfig.CollectiblePowerup {
		components.Collectible.Get(entry).Powerup = powerup
	}
	place(entry, x, y, 0)
	return entry
}

func place(entry *donburi.Entry, x, y, rot float64) {
	t := components.Transform.Get(entry)
	t.X, t.Y, t.Rotation = x, y, rot
}

func pos(entry *donburi.Entry) (float64, float64) {
	t := components.Transform.Get(entry)
	return t.X, t.Y
}
