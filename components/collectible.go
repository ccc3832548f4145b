package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/shared/netconfig"
)

type CollectibleData struct {
	Kind    netconfig.CollectibleKind
	Powerup netconfig.PowerupKind // set for power-up collectibles only
	// Collected only ever goes from false to true.
	Collected bool
}

var Collectible = donburi.NewComponentType[CollectibleData]()
