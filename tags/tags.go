package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Enemy      = donburi.NewTag().SetName("Enemy")
	Projectile = donburi.NewTag().SetName("Projectile")
	FuelTank   = donburi.NewTag().SetName("FuelTank")
	Powerup    = donburi.NewTag().SetName("Powerup")
	Ruin       = donburi.NewTag().SetName("Ruin")
	Junk       = donburi.NewTag().SetName("Junk")
)

// Resolv tags for the obstacle index
const (
	ResolvObstacle = "obstacle"
	ResolvRuin     = "ruin"
	ResolvJunk     = "junk"
	ResolvProbe    = "probe"
)
