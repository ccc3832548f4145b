package core

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/netconfig"
)

// Snapshot assembles the broadcast state for the current tick.
func (s *Simulation) Snapshot(now time.Time) messages.WorldSnapshot {
	world := s.Bootstrap()
	world.Projectiles = make([]messages.ProjectileState, 0, s.reg.ProjectileCount())
	for _, entry := range s.reg.Projectiles() {
		t := components.Transform.Get(entry)
		pr := components.Projectile.Get(entry)
		world.Projectiles = append(world.Projectiles, messages.ProjectileState{
			ID:        idOf(entry),
			X:         t.X,
			Y:         t.Y,
			Rotation:  t.Rotation,
			OwnerID:   pr.OwnerID,
			Damage:    pr.Damage,
			Explosive: pr.Explosive,
		})
	}
	return messages.WorldSnapshot{
		Tick:       s.tick,
		ServerTime: now.UnixMilli(),
		World:      world,
	}
}

// Bootstrap is the state a joining client receives once: everything in a
// snapshot except projectiles.
func (s *Simulation) Bootstrap() messages.WorldState {
	world := messages.WorldState{
		Players: make([]messages.PlayerState, 0, s.reg.PlayerCount()),
		Enemies: make([]messages.EnemyState, 0, s.reg.EnemyCount()),
	}

	for _, entry := range s.reg.Players() {
		s.guard("snapshot", entry, func() {
			world.Players = append(world.Players, playerState(entry))
		})
	}

	for _, entry := range s.reg.Collectibles() {
		c := components.Collectible.Get(entry)
		if c.Collected {
			continue
		}
		t := components.Transform.Get(entry)
		state := messages.CollectibleState{ID: idOf(entry), Kind: c.Powerup, X: t.X, Y: t.Y}
		if c.Kind == netconfig.CollectibleFuel {
			world.FuelTanks = append(world.FuelTanks, state)
		} else {
			world.Powerups = append(world.Powerups, state)
		}
	}

	for _, entry := range s.reg.Obstacles() {
		o := components.Obstacle.Get(entry)
		t := components.Transform.Get(entry)
		state := messages.ObstacleState{
			ID:      o.ID,
			X:       t.X,
			Y:       t.Y,
			Width:   o.Width,
			Height:  o.Height,
			Variant: o.Variant,
		}
		if o.Kind == netconfig.ObstacleRuin {
			world.Ruins = append(world.Ruins, state)
		} else {
			world.Junk = append(world.Junk, state)
		}
	}

	for _, entry := range s.reg.Enemies() {
		e := components.Enemy.Get(entry)
		t := components.Transform.Get(entry)
		h := components.Health.Get(entry)
		world.Enemies = append(world.Enemies, messages.EnemyState{
			ID:        idOf(entry),
			Variant:   e.Variant,
			X:         t.X,
			Y:         t.Y,
			Rotation:  t.Rotation,
			Speed:     components.Motion.Get(entry).Speed,
			Health:    h.Current,
			MaxHealth: h.Max,
			TargetID:  e.TargetID,
			State:     e.State,
		})
	}
	return world
}

func playerState(entry *donburi.Entry) messages.PlayerState {
	p := components.Player.Get(entry)
	t := components.Transform.Get(entry)
	h := components.Health.Get(entry)
	fuel := components.Fuel.Get(entry)
	pw := components.Powerups.Get(entry)

	effects := make(map[netconfig.PowerupKind]int64, len(pw.Active))
	for kind, expiry := range pw.Active {
		effects[kind] = expiry.UnixMilli()
	}

	return messages.PlayerState{
		ID:            idOf(entry),
		Name:          p.Name,
		X:             t.X,
		Y:             t.Y,
		Rotation:      t.Rotation,
		Speed:         components.Motion.Get(entry).Speed,
		Health:        h.Current,
		MaxHealth:     h.Max,
		Fuel:          fuel.Current,
		MaxFuel:       fuel.Max,
		Lives:         components.Lives.Get(entry).Remaining,
		Score:         p.Score,
		Inventory:     append([]netconfig.PowerupKind(nil), pw.Inventory[:]...),
		ActiveEffects: effects,
	}
}
