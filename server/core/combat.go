package core

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/tags"
)

// Combat uses brute force pairwise distance checks. Entity counts are small
// enough (100 players, a few hundred projectiles) that a spatial index would
// not pay for itself.

func (s *Simulation) spawnProjectile(t components.TransformData, speed float64, data components.ProjectileData) *donburi.Entry {
	entry := s.reg.NewProjectile()
	components.Transform.SetValue(entry, t)
	components.Motion.SetValue(entry, components.MotionData{Speed: speed})
	components.Projectile.SetValue(entry, data)
	return entry
}

// advanceProjectiles moves every projectile and drops those that have flown
// past the maximum travel distance.
func (s *Simulation) advanceProjectiles() {
	limit := s.cfg.Combat.MaxProjectileTravel
	for _, entry := range s.reg.Projectiles() {
		s.guard("projectile", entry, func() {
			t := components.Transform.Get(entry)
			m := components.Motion.Get(entry)
			pr := components.Projectile.Get(entry)

			t.X, t.Y = gamemath.Advance(t.X, t.Y, t.Rotation, m.Speed)
			pr.Travelled += m.Speed
			if limit > 0 && pr.Travelled > limit {
				s.reg.Remove(entry)
			}
		})
	}
}

// resolveProjectiles tests every projectile against players then enemies.
// A projectile is consumed by the first entity it hits.
func (s *Simulation) resolveProjectiles(now time.Time) {
	players, enemies := s.reg.Players(), s.reg.Enemies()
	for _, entry := range s.reg.Projectiles() {
		s.guard("projectile hit", entry, func() {
			if !s.reg.Alive(entry) {
				return
			}
			victim := s.projectileTarget(entry, players, enemies)
			if victim == nil {
				return
			}
			enemy := victim.HasComponent(tags.Enemy)
			s.hit(entry, victim, now)
			if enemy {
				// a killed enemy is replaced by a new entity in its slot
				enemies = s.reg.Enemies()
			}
		})
	}
}

func (s *Simulation) projectileTarget(entry *donburi.Entry, players, enemies []*donburi.Entry) *donburi.Entry {
	t := components.Transform.Get(entry)
	owner := components.Projectile.Get(entry).OwnerID
	radius := s.cfg.Combat.ProjectileHitRadius

	for _, p := range players {
		if idOf(p) == owner || components.Player.Get(p).GameOver {
			continue
		}
		pt := components.Transform.Get(p)
		if gamemath.Distance(t.X, t.Y, pt.X, pt.Y) < radius {
			return p
		}
	}
	for _, e := range enemies {
		if idOf(e) == owner {
			continue
		}
		et := components.Transform.Get(e)
		if gamemath.Distance(t.X, t.Y, et.X, et.Y) < radius {
			return e
		}
	}
	return nil
}

func (s *Simulation) hit(projectile, victim *donburi.Entry, now time.Time) {
	pr := *components.Projectile.Get(projectile)
	s.reg.Remove(projectile)

	s.applyDamage(victim, pr.Damage, now)
	if !components.Health.Get(victim).Dead() {
		return
	}

	if victim.HasComponent(components.Player) {
		s.awardScore(pr.OwnerID, s.cfg.Combat.PlayerKillScore)
		s.loseLife(victim)
		return
	}
	s.awardScore(pr.OwnerID, s.cfg.Combat.EnemyKillScore)
	s.replaceEnemy(victim)
}

// resolveRams handles player against enemy collisions. Both vehicles take
// damage and are pushed apart along the line between them.
func (s *Simulation) resolveRams(now time.Time) {
	cc := s.cfg.Combat
	for _, p := range s.reg.Players() {
		s.guard("ram", p, func() {
			for _, e := range s.reg.Enemies() {
				if components.Player.Get(p).GameOver {
					return
				}
				pt := components.Transform.Get(p)
				et := components.Transform.Get(e)
				if gamemath.Distance(pt.X, pt.Y, et.X, et.Y) >= cc.RamRadius {
					continue
				}

				s.applyDamage(p, cc.RamDamage, now)
				s.applyDamage(e, cc.RamDamage, now)

				ux, uy := gamemath.Separation(pt.X, pt.Y, et.X, et.Y)
				pt.X += ux * cc.RamPush
				pt.Y += uy * cc.RamPush
				et.X -= ux * cc.RamPush
				et.Y -= uy * cc.RamPush

				if components.Health.Get(p).Dead() {
					s.loseLife(p)
				}
				if components.Health.Get(e).Dead() {
					s.awardScore(idOf(p), cc.RamKillScore)
					s.replaceEnemy(e)
				}
			}
		})
	}
}

// separateEnemies pushes overlapping enemies apart without damage.
func (s *Simulation) separateEnemies() {
	cc := s.cfg.Combat
	enemies := s.reg.Enemies()
	for i := range enemies {
		for j := i + 1; j < len(enemies); j++ {
			a := components.Transform.Get(enemies[i])
			b := components.Transform.Get(enemies[j])
			if gamemath.Distance(a.X, a.Y, b.X, b.Y) >= cc.RamRadius {
				continue
			}
			ux, uy := gamemath.Separation(a.X, a.Y, b.X, b.Y)
			a.X += ux * cc.EnemyPush
			a.Y += uy * cc.EnemyPush
			b.X -= ux * cc.EnemyPush
			b.Y -= uy * cc.EnemyPush
		}
	}
}
