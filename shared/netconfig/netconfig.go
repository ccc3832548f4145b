// Package netconfig defines lightweight identifiers shared by the simulation
// and the wire protocol. It has no dependencies so every layer can import it.
package netconfig

// InventorySlots is the fixed size of every player's power-up inventory.
const InventorySlots = 8

// PowerupKind identifies one of the eight power-up types.
type PowerupKind string

const (
	PowerupNone         PowerupKind = ""
	PowerupSpeed        PowerupKind = "speed"
	PowerupHealth       PowerupKind = "health"
	PowerupDamage       PowerupKind = "damage"
	PowerupRapidFire    PowerupKind = "rapid_fire"
	PowerupShield       PowerupKind = "shield"
	PowerupMultiShot    PowerupKind = "multi_shot"
	PowerupExplosive    PowerupKind = "explosive"
	PowerupInvisibility PowerupKind = "invisibility"
)

// PowerupKinds lists every power-up in a stable order. Random power-up
// collectibles draw from this slice.
var PowerupKinds = []PowerupKind{
	PowerupSpeed,
	PowerupHealth,
	PowerupDamage,
	PowerupRapidFire,
	PowerupShield,
	PowerupMultiShot,
	PowerupExplosive,
	PowerupInvisibility,
}

// Valid reports whether k is one of the eight known kinds.
func (k PowerupKind) Valid() bool {
	for _, known := range PowerupKinds {
		if k == known {
			return true
		}
	}
	return false
}

// CollectibleKind separates fuel tanks from power-up pickups.
type CollectibleKind uint8

const (
	CollectibleFuel CollectibleKind = iota
	CollectiblePowerup
)

func (c CollectibleKind) String() string {
	if c == CollectibleFuel {
		return "fuel"
	}
	return "powerup"
}

// ObstacleKind identifies a static world object category.
type ObstacleKind uint8

const (
	ObstacleRuin ObstacleKind = iota
	ObstacleJunk
)

func (o ObstacleKind) String() string {
	if o == ObstacleRuin {
		return "ruin"
	}
	return "junk"
}

// Variant counts per obstacle kind.
const (
	RuinVariants = 8
	JunkVariants = 6
)

// ObstacleSize is the square footprint of every ruin and junk pile.
const ObstacleSize = 32

// AIState is the behaviour an enemy chose on the last tick.
type AIState uint8

const (
	AIPatrol AIState = iota
	AIEngage
)

func (s AIState) String() string {
	if s == AIEngage {
		return "engage"
	}
	return "patrol"
}
