package components

import "github.com/yohamta/donburi"

// IdentityData is the network identity of a dynamic entity. IDs are never
// reused within a server run.
type IdentityData struct {
	ID uint64
}

var Identity = donburi.NewComponentType[IdentityData]()
