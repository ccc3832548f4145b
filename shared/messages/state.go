package messages

import "github.com/automoto/wreckfield/shared/netconfig"

// WorldSnapshot is broadcast to every client once per tick.
type WorldSnapshot struct {
	Tick       uint64     `codec:"tick"`
	ServerTime int64      `codec:"serverTime"` // unix milliseconds
	World      WorldState `codec:"world"`
}

// WorldState is the full authoritative state visible to clients.
type WorldState struct {
	Players     []PlayerState      `codec:"players"`
	Projectiles []ProjectileState  `codec:"projectiles"`
	FuelTanks   []CollectibleState `codec:"fuelTanks"`
	Powerups    []CollectibleState `codec:"powerups"`
	Ruins       []ObstacleState    `codec:"ruins"`
	Junk        []ObstacleState    `codec:"junk"`
	Enemies     []EnemyState       `codec:"enemies"`
}

type PlayerState struct {
	ID        uint64                  `codec:"id"`
	Name      string                  `codec:"name"`
	X         float64                 `codec:"x"`
	Y         float64                 `codec:"y"`
	Rotation  float64                 `codec:"rotation"`
	Speed     float64                 `codec:"speed"`
	Health    int                     `codec:"health"`
	MaxHealth int                     `codec:"maxHealth"`
	Fuel      float64                 `codec:"fuel"`
	MaxFuel   float64                 `codec:"maxFuel"`
	Lives     int                     `codec:"lives"`
	Score     int                     `codec:"score"`
	Inventory []netconfig.PowerupKind `codec:"inventory"`

	// Active effect kind to expiry in unix milliseconds.
	ActiveEffects map[netconfig.PowerupKind]int64 `codec:"activeEffects"`
}

type ProjectileState struct {
	ID        uint64  `codec:"id"`
	X         float64 `codec:"x"`
	Y         float64 `codec:"y"`
	Rotation  float64 `codec:"rotation"`
	OwnerID   uint64  `codec:"ownerId"`
	Damage    int     `codec:"damage"`
	Explosive bool    `codec:"explosive"`
}

type CollectibleState struct {
	ID   uint64                `codec:"id"`
	Kind netconfig.PowerupKind `codec:"kind,omitempty"` // empty for fuel tanks
	X    float64               `codec:"x"`
	Y    float64               `codec:"y"`
}

type ObstacleState struct {
	ID      string  `codec:"id"`
	X       float64 `codec:"x"`
	Y       float64 `codec:"y"`
	Width   float64 `codec:"width"`
	Height  float64 `codec:"height"`
	Variant int     `codec:"type"`
}

type EnemyState struct {
	ID        uint64            `codec:"id"`
	Variant   string            `codec:"variant"`
	X         float64           `codec:"x"`
	Y         float64           `codec:"y"`
	Rotation  float64           `codec:"rotation"`
	Speed     float64           `codec:"speed"`
	Health    int               `codec:"health"`
	MaxHealth int               `codec:"maxHealth"`
	TargetID  uint64            `codec:"targetId,omitempty"`
	State     netconfig.AIState `codec:"state"`
}
