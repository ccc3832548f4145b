package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/shared/netconfig"
)

// ObstacleData is a static ruin or junk pile.
type ObstacleData struct {
	ID            string
	Kind          netconfig.ObstacleKind
	Variant       int
	Width, Height float64
}

var Obstacle = donburi.NewComponentType[ObstacleData]()
