package core

import (
	"math"
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/netconfig"
)

// updatePlayer applies one tick of the player's latest input: slot
// activations, steering, obstacle rejection, chunk expansion, friction, fuel
// use and shooting.
func (s *Simulation) updatePlayer(entry *donburi.Entry, now time.Time) {
	p := components.Player.Get(entry)
	if p.GameOver {
		return
	}
	in := p.Input
	pc := s.cfg.Player

	for slot, pressed := range in.Digits {
		if pressed {
			s.activateSlot(entry, slot, now)
		}
	}

	pw := components.Powerups.Get(entry)
	t := components.Transform.Get(entry)
	m := components.Motion.Get(entry)

	maxSpeed := s.maxSpeed(pw, in.Sprint, now)
	if in.Up {
		m.Speed = math.Min(m.Speed+pc.Acceleration, maxSpeed)
	}
	if in.Down {
		m.Speed = math.Max(m.Speed-pc.Acceleration, -maxSpeed*pc.ReverseFactor)
	}

	turn := pc.TurnSpeed
	if in.Handbrake {
		turn = pc.HandbrakeTurnSpeed
	}
	if in.Left {
		t.Rotation -= turn
	}
	if in.Right {
		t.Rotation += turn
	}

	// Sprint scales the displacement as well as the speed cap.
	nx, ny := gamemath.Advance(t.X, t.Y, t.Rotation, m.Speed*s.sprintMultiplier(in.Sprint))
	if _, blocked := s.obstacles.Blocked(nx, ny); blocked {
		m.Speed *= s.cfg.World.BlockedDamping
	} else {
		t.X, t.Y = nx, ny
	}

	if c := s.gen.ChunkOf(t.X, t.Y); c != p.Chunk {
		p.Chunk = c
		s.expandAround(c)
	}

	if in.Handbrake {
		m.Speed *= pc.HandbrakeFriction
	} else {
		m.Speed *= pc.Friction
	}

	fuel := components.Fuel.Get(entry)
	if math.Abs(m.Speed) > pc.FuelBurnThreshold {
		fuel.Current = gamemath.Clamp(fuel.Current-pc.FuelBurn, 0, fuel.Max)
		if fuel.Current <= 0 {
			m.Speed = 0
		}
	}

	if in.Shoot && now.Sub(p.LastShot) > s.shotCooldown(pw, now) {
		s.firePlayer(entry, pw, now)
		p.LastShot = now
	}
}

// firePlayer launches one projectile, or a fan while multi-shot is active.
func (s *Simulation) firePlayer(entry *donburi.Entry, pw *components.PowerupsData, now time.Time) {
	t := components.Transform.Get(entry)
	damage := s.projectileDamage(pw, now)
	explosive := effectActive(pw, netconfig.PowerupExplosive, now)
	for _, offset := range s.shotAngles(pw, now) {
		s.spawnProjectile(components.TransformData{X: t.X, Y: t.Y, Rotation: t.Rotation + offset},
			s.cfg.Combat.ProjectileSpeed,
			components.ProjectileData{OwnerID: idOf(entry), Damage: damage, Explosive: explosive},
		)
	}
}
