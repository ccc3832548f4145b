package core

import (
	"math"
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/netconfig"
)

// nearestPlayer returns the closest living player to (x, y), or nil.
func (s *Simulation) nearestPlayer(x, y float64) (*donburi.Entry, float64) {
	var nearest *donburi.Entry
	best := math.Inf(1)
	for _, p := range s.reg.Players() {
		if components.Player.Get(p).GameOver {
			continue
		}
		t := components.Transform.Get(p)
		if d := gamemath.Distance(x, y, t.X, t.Y); d < best {
			nearest, best = p, d
		}
	}
	return nearest, best
}

// updateEnemy runs one tick of enemy behaviour. The target is chosen from
// scratch every tick: engage the nearest player inside detection range,
// otherwise patrol and coast to a stop.
func (s *Simulation) updateEnemy(entry *donburi.Entry, now time.Time) {
	ec := s.cfg.Enemy
	e := components.Enemy.Get(entry)
	t := components.Transform.Get(entry)
	m := components.Motion.Get(entry)

	target, dist := s.nearestPlayer(t.X, t.Y)
	if target != nil && dist < ec.DetectionRadius {
		e.State = netconfig.AIEngage
		e.TargetID = idOf(target)

		tt := components.Transform.Get(target)
		diff := gamemath.ShortestAngleDiff(t.Rotation, gamemath.AngleTo(t.X, t.Y, tt.X, tt.Y))
		t.Rotation += diff * ec.TurnFactor
		m.Speed = math.Min(m.Speed+ec.Acceleration, ec.MaxSpeed)

		if dist < ec.FireRange && now.Sub(e.LastShot) > ec.ShotCooldown {
			s.spawnProjectile(components.TransformData{X: t.X, Y: t.Y, Rotation: t.Rotation},
				ec.ProjectileSpeed,
				components.ProjectileData{OwnerID: idOf(entry), Damage: ec.ProjectileDamage},
			)
			e.LastShot = now
		}
	} else {
		e.State = netconfig.AIPatrol
		e.TargetID = 0
		m.Speed *= ec.PatrolDamping
	}

	nx, ny := gamemath.Advance(t.X, t.Y, t.Rotation, m.Speed)
	if _, blocked := s.obstacles.Blocked(nx, ny); blocked {
		m.Speed *= s.cfg.World.BlockedDamping
		return
	}
	t.X, t.Y = nx, ny
}
