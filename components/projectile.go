package components

import "github.com/yohamta/donburi"

type ProjectileData struct {
	// OwnerID is the identity of the shooter. The owner may have left; the
	// id is resolved on every use.
	OwnerID   uint64
	Damage    int
	Explosive bool
	Travelled float64
}

var Projectile = donburi.NewComponentType[ProjectileData]()
