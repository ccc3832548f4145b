package messages

// JoinRequest is sent by a client after connecting to request joining the game.
type JoinRequest struct {
	Name string `codec:"name"`
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// World carries the one-time bootstrap of everything except projectiles.
type JoinAccepted struct {
	PlayerID   uint64     `codec:"playerId"`
	ServerName string     `codec:"serverName"`
	TickRate   int        `codec:"tickRate"`
	World      WorldState `codec:"world"`
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string `codec:"reason"`
}

// RejectGameFull is the JoinRejected reason when the server is at capacity.
const RejectGameFull = "game-full"

// GameOver is sent to a single player when its last life is lost.
type GameOver struct {
	FinalScore int `codec:"finalScore"`
}
