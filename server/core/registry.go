package core

import (
	"slices"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/archetypes"
	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/tags"
)

// Registry owns every entity of the simulation. It wraps a donburi world and
// keeps per-category insertion order so iteration is deterministic.
type Registry struct {
	world  donburi.World
	nextID uint64

	byID        map[uint64]donburi.Entity
	obstacleIDs map[string]donburi.Entity

	players      []donburi.Entity
	enemies      []donburi.Entity
	projectiles  []donburi.Entity
	collectibles []donburi.Entity
	obstacles    []donburi.Entity
}

func NewRegistry() *Registry {
	return &Registry{
		world:       donburi.NewWorld(),
		byID:        make(map[uint64]donburi.Entity),
		obstacleIDs: make(map[string]donburi.Entity),
	}
}

func (r *Registry) spawn(a interface {
	Spawn(donburi.World, ...donburi.IComponentType) *donburi.Entry
}, list *[]donburi.Entity) *donburi.Entry {
	entry := a.Spawn(r.world)
	r.nextID++
	components.Identity.SetValue(entry, components.IdentityData{ID: r.nextID})
	r.byID[r.nextID] = entry.Entity()
	*list = append(*list, entry.Entity())
	return entry
}

// NewPlayer creates an empty player entity with a fresh identity.
func (r *Registry) NewPlayer() *donburi.Entry {
	return r.spawn(archetypes.Player, &r.players)
}

// NewEnemy creates an empty enemy entity with a fresh identity.
func (r *Registry) NewEnemy() *donburi.Entry {
	return r.spawn(archetypes.Enemy, &r.enemies)
}

// ReplaceEnemy removes old and creates a new enemy in the same iteration slot.
func (r *Registry) ReplaceEnemy(old *donburi.Entry) *donburi.Entry {
	idx := slices.Index(r.enemies, old.Entity())
	r.Remove(old)

	entry := r.NewEnemy()
	if idx >= 0 && idx < len(r.enemies)-1 {
		// move the new entity from the tail back into the freed slot
		last := len(r.enemies) - 1
		e := r.enemies[last]
		r.enemies = slices.Insert(r.enemies[:last], idx, e)
	}
	return entry
}

// NewProjectile creates an empty projectile entity with a fresh identity.
func (r *Registry) NewProjectile() *donburi.Entry {
	return r.spawn(archetypes.Projectile, &r.projectiles)
}

// NewFuelTank creates an empty fuel tank collectible.
func (r *Registry) NewFuelTank() *donburi.Entry {
	return r.spawn(archetypes.FuelTank, &r.collectibles)
}

// NewPowerup creates an empty power-up collectible.
func (r *Registry) NewPowerup() *donburi.Entry {
	return r.spawn(archetypes.Powerup, &r.collectibles)
}

// NewObstacle creates a static object keyed by its generated id. It returns
// false without creating anything when the id already exists.
func (r *Registry) NewObstacle(id string, ruin bool) (*donburi.Entry, bool) {
	if _, ok := r.obstacleIDs[id]; ok {
		return nil, false
	}
	var entry *donburi.Entry
	if ruin {
		entry = archetypes.Ruin.Spawn(r.world)
	} else {
		entry = archetypes.Junk.Spawn(r.world)
	}
	r.obstacleIDs[id] = entry.Entity()
	r.obstacles = append(r.obstacles, entry.Entity())
	return entry, true
}

// HasObstacle reports whether a static object with id was materialized.
func (r *Registry) HasObstacle(id string) bool {
	_, ok := r.obstacleIDs[id]
	return ok
}

// Lookup resolves an identity. A miss is not an error: the entity may have
// been removed since the id was recorded.
func (r *Registry) Lookup(id uint64) (*donburi.Entry, bool) {
	e, ok := r.byID[id]
	if !ok || !r.world.Valid(e) {
		return nil, false
	}
	return r.world.Entry(e), true
}

// Alive reports whether entry still belongs to the world.
func (r *Registry) Alive(entry *donburi.Entry) bool {
	return entry != nil && r.world.Valid(entry.Entity())
}

// Remove deletes a dynamic entity. Static objects are never removed.
func (r *Registry) Remove(entry *donburi.Entry) {
	if !r.Alive(entry) {
		return
	}
	e := entry.Entity()
	switch {
	case entry.HasComponent(tags.Player):
		r.players = deleteEntity(r.players, e)
	case entry.HasComponent(tags.Enemy):
		r.enemies = deleteEntity(r.enemies, e)
	case entry.HasComponent(tags.Projectile):
		r.projectiles = deleteEntity(r.projectiles, e)
	case entry.HasComponent(tags.FuelTank), entry.HasComponent(tags.Powerup):
		r.collectibles = deleteEntity(r.collectibles, e)
	default:
		return
	}
	delete(r.byID, components.Identity.Get(entry).ID)
	r.world.Remove(e)
}

func deleteEntity(list []donburi.Entity, e donburi.Entity) []donburi.Entity {
	if i := slices.Index(list, e); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}

// entries resolves a category into a stable copy, so callers may add or
// remove entities while walking it.
func (r *Registry) entries(list []donburi.Entity) []*donburi.Entry {
	out := make([]*donburi.Entry, 0, len(list))
	for _, e := range list {
		out = append(out, r.world.Entry(e))
	}
	return out
}

func (r *Registry) Players() []*donburi.Entry      { return r.entries(r.players) }
func (r *Registry) Enemies() []*donburi.Entry      { return r.entries(r.enemies) }
func (r *Registry) Projectiles() []*donburi.Entry  { return r.entries(r.projectiles) }
func (r *Registry) Collectibles() []*donburi.Entry { return r.entries(r.collectibles) }
func (r *Registry) Obstacles() []*donburi.Entry    { return r.entries(r.obstacles) }

func (r *Registry) PlayerCount() int      { return len(r.players) }
func (r *Registry) EnemyCount() int       { return len(r.enemies) }
func (r *Registry) ProjectileCount() int  { return len(r.projectiles) }
func (r *Registry) CollectibleCount() int { return len(r.collectibles) }
func (r *Registry) ObstacleCount() int    { return len(r.obstacles) }
