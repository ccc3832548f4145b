package browser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerInfo_Full(t *testing.T) {
	tests := []struct {
		name string
		info ServerInfo
		want bool
	}{
		{"empty", ServerInfo{MaxPlayers: 4}, false},
		{"at capacity", ServerInfo{Players: 4, MaxPlayers: 4}, true},
		{"over capacity", ServerInfo{Players: 5, MaxPlayers: 4}, true},
		{"unlimited", ServerInfo{Players: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Full())
		})
	}
}

func TestRegisterRequest_Info(t *testing.T) {
	req := RegisterRequest{Name: "wreck", Address: "ws://h:1/ws", Players: 2, MaxPlayers: 8, TickRate: 60, Version: "1", Region: "eu"}
	assert.Equal(t, ServerInfo{
		ID: "abc", Name: "wreck", Address: "ws://h:1/ws", Players: 2, MaxPlayers: 8, TickRate: 60, Version: "1", Region: "eu",
	}, req.Info("abc"))
}

func TestWireNames(t *testing.T) {
	b, err := json.Marshal(HeartbeatRequest{ID: "x", Players: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x","players":3}`, string(b))

	b, err = json.Marshal(Status{Error: "unknown server"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"unknown server"}`, string(b))
}
