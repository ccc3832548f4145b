package messages

import "github.com/automoto/wreckfield/shared/netconfig"

// PlayerInput is sent continuously by clients. Every field is a level: the
// latest value received before a tick is the one the tick uses.
type PlayerInput struct {
	Up        bool `codec:"up"`
	Down      bool `codec:"down"`
	Left      bool `codec:"left"`
	Right     bool `codec:"right"`
	Shoot     bool `codec:"shoot"`
	Sprint    bool `codec:"sprint"`
	Handbrake bool `codec:"handbrake"`

	// Digits[i] activates inventory slot i.
	Digits [netconfig.InventorySlots]bool `codec:"digits"`
}

// ActivatePowerup explicitly activates one inventory slot.
type ActivatePowerup struct {
	Slot int `codec:"slot"`
}
