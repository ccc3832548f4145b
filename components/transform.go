package components

import "github.com/yohamta/donburi"

// TransformData is a world position plus heading in degrees.
type TransformData struct {
	X, Y     float64
	Rotation float64
}

// MotionData is the scalar speed along the heading, in units per tick.
type MotionData struct {
	Speed float64
}

var (
	Transform = donburi.NewComponentType[TransformData]()
	Motion    = donburi.NewComponentType[MotionData]()
)
