package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/tags"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Identity,
		components.Player,
		components.Transform,
		components.Motion,
		components.Health,
		components.Fuel,
		components.Lives,
		components.Powerups,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Identity,
		components.Enemy,
		components.Transform,
		components.Motion,
		components.Health,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Identity,
		components.Projectile,
		components.Transform,
		components.Motion,
	)
	FuelTank = newArchetype(
		tags.FuelTank,
		components.Identity,
		components.Collectible,
		components.Transform,
	)
	Powerup = newArchetype(
		tags.Powerup,
		components.Identity,
		components.Collectible,
		components.Transform,
	)
	Ruin = newArchetype(
		tags.Ruin,
		components.Obstacle,
		components.Transform,
	)
	Junk = newArchetype(
		tags.Junk,
		components.Obstacle,
		components.Transform,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extras.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
