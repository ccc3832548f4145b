package components

import "github.com/yohamta/donburi"

// LivesData counts the respawns a player has left.
type LivesData struct {
	Remaining int
	Start     int
}

// Lose takes one life and reports whether any remain.
func (l *LivesData) Lose() bool {
	l.Remaining = max(0, l.Remaining-1)
	return l.Remaining > 0
}

var Lives = donburi.NewComponentType[LivesData]()
