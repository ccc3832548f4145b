package core

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/netconfig"
)

func TestNewSimulation_InitialWorld(t *testing.T) {
	cfg := config.Default()
	cfg.World.InitialChunks = 2
	s := newTestSim(t, cfg)

	assert.Len(t, s.materialized, 16)
	assert.Equal(t, cfg.Enemy.Count, s.reg.EnemyCount())
	assert.Equal(t, cfg.Collectible.FuelTanks+cfg.Collectible.Powerups, s.reg.CollectibleCount())
	assert.Zero(t, s.reg.PlayerCount())
	assert.Zero(t, s.reg.ProjectileCount())

	for _, e := range s.reg.Enemies() {
		tr := components.Transform.Get(e)
		assert.GreaterOrEqual(t, tr.X, cfg.Enemy.SpawnMin)
		assert.Less(t, tr.X, cfg.Enemy.SpawnMin+cfg.Enemy.SpawnRange)
		assert.Contains(t, cfg.Enemy.Variants, components.Enemy.Get(e).Variant)
		assert.Equal(t, cfg.Enemy.MaxHealth, components.Health.Get(e).Current)
	}
}

func TestAddPlayer(t *testing.T) {
	s := newTestSim(t, emptyConfig())

	id, err := s.AddPlayer("  Ace  ", t0)
	require.NoError(t, err)
	require.NotZero(t, id)

	entry, ok := s.player(id)
	require.True(t, ok)
	assert.Equal(t, "Ace", components.Player.Get(entry).Name)
	assert.Equal(t, 100, components.Health.Get(entry).Current)
	assert.Equal(t, 100.0, components.Fuel.Get(entry).Current)
	assert.Equal(t, 3, components.Lives.Get(entry).Remaining)

	x, y := pos(entry)
	assert.True(t, x >= 0 && x < 1000 && y >= 0 && y < 1000)
}

func TestAddPlayer_NameSanitized(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "Player"},
		{"blank", "   ", "Player"},
		{"trimmed", " Max ", "Max"},
		{"truncated", "abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrstuvwx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.in))
		})
	}
}

func TestAddPlayer_Full(t *testing.T) {
	cfg := emptyConfig()
	cfg.Server.MaxPlayers = 2
	s := newTestSim(t, cfg)

	for range 2 {
		_, err := s.AddPlayer("p", t0)
		require.NoError(t, err)
	}
	_, err := s.AddPlayer("late", t0)
	require.ErrorIs(t, err, ErrServerFull)
	assert.Equal(t, 2, s.PlayerCount())
}

func TestSetInput_UnknownPlayer(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	assert.False(t, s.SetInput(99, messages.PlayerInput{Up: true}))
	assert.False(t, s.RemovePlayer(99))
	assert.False(t, s.ActivatePowerup(99, 0, t0))
}

func TestStep_Movement(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	p := addPlayer(t, s, "a", 0, 0, 0)
	id := idOf(p)

	s.SetInput(id, messages.PlayerInput{Up: true})
	s.Step(tickAt(1))

	x, y := pos(p)
	assert.InDelta(t, 0.3, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
	assert.InDelta(t, 0.3*0.95, components.Motion.Get(p).Speed, 1e-9)
	assert.InDelta(t, 99.9, components.Fuel.Get(p).Current, 1e-9)

	s.SetInput(id, messages.PlayerInput{Right: true})
	s.Step(tickAt(2))
	assert.InDelta(t, 4, components.Transform.Get(p).Rotation, 1e-9)

	s.SetInput(id, messages.PlayerInput{Left: true, Handbrake: true})
	s.Step(tickAt(3))
	assert.InDelta(t, -2, components.Transform.Get(p).Rotation, 1e-9)
}

func TestStep_SpeedCapAndReverse(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	p := addPlayer(t, s, "a", 0, 0, 0)
	id := idOf(p)

	s.SetInput(id, messages.PlayerInput{Up: true})
	for i := range 200 {
		s.Step(tickAt(i + 1))
		require.LessOrEqual(t, components.Motion.Get(p).Speed, 3.0)
	}

	s.SetInput(id, messages.PlayerInput{Down: true})
	for i := range 200 {
		s.Step(tickAt(201 + i))
		require.GreaterOrEqual(t, components.Motion.Get(p).Speed, -1.5)
	}
	assert.Less(t, components.Motion.Get(p).Speed, 0.0)
}

func TestStep_FuelExhaustedStopsPlayer(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	p := addPlayer(t, s, "a", 0, 0, 0)
	components.Fuel.Get(p).Current = 0.05
	components.Motion.Get(p).Speed = 2

	s.Step(tickAt(1))

	// fuel ran out this tick, so the player lost a life and respawned full
	assert.Equal(t, 2, components.Lives.Get(p).Remaining)
	assert.Equal(t, 100.0, components.Fuel.Get(p).Current)
	assert.Zero(t, components.Motion.Get(p).Speed)
}

func TestStep_SurvivalBonus(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	p := addPlayer(t, s, "a", 0, 0, 0)

	s.Step(t0.Add(5 * time.Second))
	assert.Zero(t, components.Player.Get(p).Score)

	s.Step(t0.Add(5*time.Second + time.Millisecond))
	assert.Equal(t, 2, components.Player.Get(p).Score)

	s.Step(t0.Add(6 * time.Second))
	assert.Equal(t, 2, components.Player.Get(p).Score)
}

func TestStep_Invariants(t *testing.T) {
	cfg := config.Default()
	cfg.World.InitialChunks = 3
	s := newTestSim(t, cfg)
	rng := rand.New(rand.NewPCG(7, 7))

	var ids []uint64
	for range 6 {
		id, err := s.AddPlayer("p", t0)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for i := range 600 {
		for _, id := range ids {
			s.SetInput(id, messages.PlayerInput{
				Up:        rng.IntN(3) > 0,
				Down:      rng.IntN(5) == 0,
				Left:      rng.IntN(4) == 0,
				Right:     rng.IntN(4) == 0,
				Shoot:     rng.IntN(2) == 0,
				Sprint:    rng.IntN(3) == 0,
				Handbrake: rng.IntN(6) == 0,
			})
		}
		s.Step(tickAt(i + 1))

		require.Equal(t, cfg.Enemy.Count, s.reg.EnemyCount())
		for _, p := range s.reg.Players() {
			h := components.Health.Get(p)
			f := components.Fuel.Get(p)
			l := components.Lives.Get(p)
			require.True(t, h.Current >= 0 && h.Current <= h.Max, "health %d", h.Current)
			require.True(t, f.Current >= 0 && f.Current <= f.Max, "fuel %v", f.Current)
			require.True(t, l.Remaining >= 0 && l.Remaining <= l.Start)
			if components.Player.Get(p).GameOver {
				require.Zero(t, l.Remaining)
			}
		}
		for _, e := range s.reg.Enemies() {
			h := components.Health.Get(e)
			require.True(t, h.Current > 0 && h.Current <= h.Max)
		}
		for _, pr := range s.reg.Projectiles() {
			require.LessOrEqual(t, components.Projectile.Get(pr).Travelled, cfg.Combat.MaxProjectileTravel)
		}
	}
	assert.Equal(t, uint64(600), s.Tick())
}

func TestStep_GuardIsolatesPanics(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	broken := addPlayer(t, s, "broken", 0, 0, 0)
	healthy := addPlayer(t, s, "ok", 500, 500, 0)

	components.Motion.Get(broken).Speed = 2
	broken.RemoveComponent(components.Fuel)
	s.SetInput(idOf(healthy), messages.PlayerInput{Up: true})

	require.NotPanics(t, func() {
		s.Step(tickAt(1))
		s.Step(tickAt(2))
	})

	x, _ := pos(healthy)
	assert.Greater(t, x, 500.0)
}

func TestRemovePlayer_ProjectilesPersist(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	a := addPlayer(t, s, "a", 0, 0, 0)
	b := addPlayer(t, s, "b", 50, 0, 180)

	s.SetInput(idOf(a), messages.PlayerInput{Shoot: true})
	s.Step(tickAt(1))
	require.Equal(t, 1, s.reg.ProjectileCount())

	require.True(t, s.RemovePlayer(idOf(a)))
	require.NotPanics(t, func() {
		s.Step(tickAt(2))
		s.Step(tickAt(3))
	})

	assert.Zero(t, s.reg.ProjectileCount())
	assert.Equal(t, 80, components.Health.Get(b).Current)
	assert.Zero(t, components.Player.Get(b).Score)
}

func TestLoseLife_GameOverOnce(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Simulation, a, b uint64)
	}{
		{
			name: "shot down",
			setup: func(s *Simulation, a, b uint64) {
				victim, _ := s.player(b)
				components.Health.Get(victim).Current = 20
				s.SetInput(a, messages.PlayerInput{Shoot: true})
			},
		},
		{
			name: "out of fuel",
			setup: func(s *Simulation, _, b uint64) {
				victim, _ := s.player(b)
				components.Fuel.Get(victim).Current = 0
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, emptyConfig())
			a := addPlayer(t, s, "a", 0, 0, 0)
			b := addPlayer(t, s, "b", 25, 0, 180)
			components.Lives.Get(b).Remaining = 1
			components.Player.Get(b).Score = 42
			tt.setup(s, idOf(a), idOf(b))

			res := s.Step(tickAt(1))
			require.Len(t, res.GameOvers, 1)
			assert.Equal(t, GameOverNotice{PlayerID: idOf(b), FinalScore: 42}, res.GameOvers[0])

			p := components.Player.Get(b)
			assert.True(t, p.GameOver)
			assert.Zero(t, components.Lives.Get(b).Remaining)
			assert.Zero(t, components.Health.Get(b).Current)

			// the player stays connected but inert
			s.SetInput(idOf(b), messages.PlayerInput{Up: true, Shoot: true})
			x, y := pos(b)
			for i := 2; i < 60*12; i++ {
				res := s.Step(tickAt(i))
				require.Empty(t, res.GameOvers)
			}
			assert.Equal(t, 42, p.Score)
			bx, by := pos(b)
			assert.Equal(t, x, bx)
			assert.Equal(t, y, by)
			assert.False(t, s.ActivatePowerup(idOf(b), 0, tickAt(1000)))
			assert.Equal(t, 2, s.PlayerCount())
		})
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestSim(t, emptyConfig())
	a := addPlayer(t, s, "a", 0, 0, 0)
	addCollectible(s, netconfig.CollectibleFuel, "", 900, 900)
	addCollectible(s, netconfig.CollectiblePowerup, netconfig.PowerupShield, 950, 950)
	addEnemy(s, 1500, 1500, 0)
	components.Powerups.Get(a).Inventory[1] = netconfig.PowerupDamage

	s.SetInput(idOf(a), messages.PlayerInput{Shoot: true})
	s.Step(tickAt(1))

	snap := s.Snapshot(tickAt(1))
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, tickAt(1).UnixMilli(), snap.ServerTime)
	require.Len(t, snap.World.Players, 1)
	assert.Equal(t, "a", snap.World.Players[0].Name)
	assert.Equal(t, netconfig.PowerupDamage, snap.World.Players[0].Inventory[1])
	assert.Len(t, snap.World.Projectiles, 1)
	assert.Len(t, snap.World.FuelTanks, 1)
	require.Len(t, snap.World.Powerups, 1)
	assert.Equal(t, netconfig.PowerupShield, snap.World.Powerups[0].Kind)
	assert.Len(t, snap.World.Enemies, 1)

	boot := s.Bootstrap()
	assert.Empty(t, boot.Projectiles)
	assert.Len(t, boot.Players, 1)
}
