package core

import (
	"math"
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/netconfig"
)

func (s *Simulation) spawnCollectible(kind netconfig.CollectibleKind) *donburi.Entry {
	var entry *donburi.Entry
	data := components.CollectibleData{Kind: kind}
	if kind == netconfig.CollectibleFuel {
		entry = s.reg.NewFuelTank()
	} else {
		entry = s.reg.NewPowerup()
		data.Powerup = netconfig.PowerupKinds[s.rng.IntN(len(netconfig.PowerupKinds))]
	}
	r := s.cfg.Collectible.SpawnRange
	components.Transform.SetValue(entry, components.TransformData{
		X: s.rng.Float64() * r,
		Y: s.rng.Float64() * r,
	})
	components.Collectible.SetValue(entry, data)
	return entry
}

// collectPickups hands each uncollected item to the first living player in
// range that can take it. A full inventory leaves a power-up in place.
func (s *Simulation) collectPickups(now time.Time) {
	players := s.reg.Players()
	for _, entry := range s.reg.Collectibles() {
		s.guard("pickup", entry, func() {
			c := components.Collectible.Get(entry)
			if c.Collected {
				return
			}
			t := components.Transform.Get(entry)
			for _, p := range players {
				if components.Player.Get(p).GameOver {
					continue
				}
				pt := components.Transform.Get(p)
				if gamemath.Distance(t.X, t.Y, pt.X, pt.Y) >= s.cfg.Collectible.PickupRadius {
					continue
				}
				if s.pickup(p, c) {
					c.Collected = true
					s.scheduleRespawn(c.Kind, now)
					return
				}
			}
		})
	}
}

func (s *Simulation) pickup(player *donburi.Entry, c *components.CollectibleData) bool {
	if c.Kind == netconfig.CollectibleFuel {
		fuel := components.Fuel.Get(player)
		fuel.Current = gamemath.Clamp(fuel.Current+s.cfg.Collectible.FuelAmount, 0, fuel.Max)
		return true
	}
	pw := components.Powerups.Get(player)
	slot := pw.FirstEmptySlot()
	if slot < 0 {
		return false
	}
	pw.Inventory[slot] = c.Powerup
	return true
}

func (s *Simulation) scheduleRespawn(kind netconfig.CollectibleKind, now time.Time) {
	delay := s.cfg.Collectible.PowerupRespawnDelay
	if kind == netconfig.CollectibleFuel {
		delay = s.cfg.Collectible.FuelRespawnDelay
	}
	s.respawns = append(s.respawns, pendingRespawn{due: now.Add(delay), kind: kind})
}

// processRespawns appends a fresh collectible for every replacement that is
// due. Replacements are never created before their due time.
func (s *Simulation) processRespawns(now time.Time) {
	pending := s.respawns[:0]
	for _, r := range s.respawns {
		if now.Before(r.due) {
			pending = append(pending, r)
			continue
		}
		s.spawnCollectible(r.kind)
	}
	s.respawns = pending
}

// PendingRespawns returns the number of scheduled replacements.
func (s *Simulation) PendingRespawns() int {
	return len(s.respawns)
}

// removeCollected drops collected items from the registry.
func (s *Simulation) removeCollected() {
	for _, entry := range s.reg.Collectibles() {
		if components.Collectible.Get(entry).Collected {
			s.reg.Remove(entry)
		}
	}
}
