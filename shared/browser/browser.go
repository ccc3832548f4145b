// Package browser holds the JSON API spoken between game servers and the
// master server browser.
package browser

const (
	PathServers   = "/servers"
	PathRegister  = "/servers/register"
	PathHeartbeat = "/servers/heartbeat"
	PathHealth    = "/health"
)

// ServerInfo describes a game server visible to clients.
type ServerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	TickRate   int    `json:"tickRate,omitempty"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

// Full reports whether the server is at capacity.
func (s ServerInfo) Full() bool {
	return s.MaxPlayers > 0 && s.Players >= s.MaxPlayers
}

// RegisterRequest announces a server. The master assigns the id.
type RegisterRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	TickRate   int    `json:"tickRate,omitempty"`
	Version    string `json:"version"`
	Region     string `json:"region"`
}

// Info converts the request into the listing entry for id.
func (r RegisterRequest) Info(id string) ServerInfo {
	return ServerInfo{
		ID:         id,
		Name:       r.Name,
		Address:    r.Address,
		Players:    r.Players,
		MaxPlayers: r.MaxPlayers,
		TickRate:   r.TickRate,
		Version:    r.Version,
		Region:     r.Region,
	}
}

type RegisterResponse struct {
	ID string `json:"id"`
}

type HeartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

type Status struct {
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}
