package core

import (
	"math"
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/netconfig"
)

// effectActive reports whether kind is running at now. An effect stays
// active up to and including its expiry instant.
func effectActive(pw *components.PowerupsData, kind netconfig.PowerupKind, now time.Time) bool {
	expiry, ok := pw.Active[kind]
	return ok && !now.After(expiry)
}

// activateSlot consumes inventory slot i. Timed kinds set or overwrite their
// expiry, instant kinds apply immediately. Empty or out of range slots are
// ignored.
func (s *Simulation) activateSlot(entry *donburi.Entry, slot int, now time.Time) bool {
	if slot < 0 || slot >= netconfig.InventorySlots {
		return false
	}
	pw := components.Powerups.Get(entry)
	kind := pw.Inventory[slot]
	if kind == netconfig.PowerupNone {
		return false
	}
	pw.Inventory[slot] = netconfig.PowerupNone

	if d := s.cfg.Powerup.Duration(kind); d > 0 {
		if pw.Active == nil {
			pw.Active = make(map[netconfig.PowerupKind]time.Time)
		}
		pw.Active[kind] = now.Add(d)
	}
	if kind == netconfig.PowerupHealth {
		h := components.Health.Get(entry)
		h.Current = gamemath.ClampInt(h.Current+s.cfg.Powerup.HealAmount, 0, h.Max)
	}

	s.logger.Debug("powerup activated", "player", idOf(entry), "kind", kind, "slot", slot)
	return true
}

// sweepEffects drops every effect whose expiry has passed.
func sweepEffects(pw *components.PowerupsData, now time.Time) int {
	removed := 0
	for kind, expiry := range pw.Active {
		if now.After(expiry) {
			delete(pw.Active, kind)
			removed++
		}
	}
	return removed
}

// The derived stats below are computed from effect membership on every call.

func (s *Simulation) speedMultiplier(pw *components.PowerupsData, now time.Time) float64 {
	if effectActive(pw, netconfig.PowerupSpeed, now) {
		return s.cfg.Powerup.SpeedMultiplier
	}
	return 1
}

func (s *Simulation) sprintMultiplier(sprint bool) float64 {
	if sprint {
		return s.cfg.Player.SprintMultiplier
	}
	return 1
}

// maxSpeed is the forward speed cap for the given sprint state.
func (s *Simulation) maxSpeed(pw *components.PowerupsData, sprint bool, now time.Time) float64 {
	return s.cfg.Player.BaseSpeed * s.sprintMultiplier(sprint) * s.speedMultiplier(pw, now)
}

func (s *Simulation) projectileDamage(pw *components.PowerupsData, now time.Time) int {
	base := s.cfg.Combat.ProjectileDamage
	if effectActive(pw, netconfig.PowerupDamage, now) {
		return int(math.Round(float64(base) * s.cfg.Powerup.DamageMultiplier))
	}
	return base
}

func (s *Simulation) shotCooldown(pw *components.PowerupsData, now time.Time) time.Duration {
	if effectActive(pw, netconfig.PowerupRapidFire, now) {
		return s.cfg.Powerup.RapidFireCooldown
	}
	return s.cfg.Combat.ShotCooldown
}

// shotAngles returns heading offsets for one trigger pull.
func (s *Simulation) shotAngles(pw *components.PowerupsData, now time.Time) []float64 {
	if effectActive(pw, netconfig.PowerupMultiShot, now) {
		spread := s.cfg.Combat.MultiShotSpread
		return []float64{-spread, 0, spread}
	}
	return []float64{0}
}

// damageTaken scales incoming damage for a player holding a shield.
func (s *Simulation) damageTaken(entry *donburi.Entry, amount int, now time.Time) int {
	if !entry.HasComponent(components.Powerups) {
		return amount
	}
	if effectActive(components.Powerups.Get(entry), netconfig.PowerupShield, now) {
		return int(math.Round(float64(amount) * s.cfg.Powerup.ShieldDamageFactor))
	}
	return amount
}
