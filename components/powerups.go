package components

import (
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/shared/netconfig"
)

// PowerupsData is a player's inventory and its currently running effects.
type PowerupsData struct {
	Inventory [netconfig.InventorySlots]netconfig.PowerupKind
	// Active maps a timed kind to its absolute expiry.
	Active map[netconfig.PowerupKind]time.Time
}

// FirstEmptySlot returns the lowest empty inventory index, or -1 when full.
func (p *PowerupsData) FirstEmptySlot() int {
	for i, k := range p.Inventory {
		if k == netconfig.PowerupNone {
			return i
		}
	}
	return -1
}

// Has reports whether kind is currently active.
func (p *PowerupsData) Has(kind netconfig.PowerupKind) bool {
	_, ok := p.Active[kind]
	return ok
}

var Powerups = donburi.NewComponentType[PowerupsData]()
