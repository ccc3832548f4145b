package components

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/worldgen"
)

type PlayerData struct {
	Name  string
	Score int

	// Input is the latest intent received from the client. It is overwritten
	// by every input message and read once per tick.
	Input messages.PlayerInput

	LastShot          time.Time
	LastSurvivalAward time.Time
	Chunk             worldgen.ChunkCoord // chunk the player occupied last tick

	// GameOver is set once lives reach zero. The player stays in the world but
	// no longer moves, shoots, scores or takes part in collisions.
	GameOver bool
}

type FuelData struct {
	Current float64
	Max     float64
}

var (
	Player = donburi.NewComponentType[PlayerData]()
	Fuel   = donburi.NewComponentType[FuelData]()
)
