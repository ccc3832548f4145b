package components

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/shared/netconfig"
)

type EnemyData struct {
	Variant  string // "green", "slate"
	LastShot time.Time

	// TargetID is the player chosen on the last tick, 0 when patrolling.
	// It is informational only and recomputed every tick.
	TargetID uint64
	State    netconfig.AIState
}

var Enemy = donburi.NewComponentType[EnemyData]()
