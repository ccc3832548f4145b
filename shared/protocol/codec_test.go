package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/netconfig"
)

func TestEncodeDecode_PlayerInput(t *testing.T) {
	in := messages.PlayerInput{Up: true, Shoot: true, Handbrake: true}
	in.Digits[2] = true

	frame, err := Encode(in)
	require.NoError(t, err)

	got, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestEncodeDecode_PointerMessage(t *testing.T) {
	frame, err := Encode(&messages.GameOver{FinalScore: 420})
	require.NoError(t, err)

	got, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, messages.GameOver{FinalScore: 420}, got)
}

func TestEncodeDecode_Snapshot(t *testing.T) {
	snap := messages.WorldSnapshot{
		Tick:       7,
		ServerTime: 1700000000000,
		World: messages.WorldState{
			Players: []messages.PlayerState{{
				ID:        1,
				Name:      "ace",
				X:         10.5,
				Health:    80,
				MaxHealth: 100,
				Lives:     2,
				Inventory: []netconfig.PowerupKind{netconfig.PowerupShield, netconfig.PowerupNone},
				ActiveEffects: map[netconfig.PowerupKind]int64{
					netconfig.PowerupSpeed: 1700000010000,
				},
			}},
			Ruins: []messages.ObstacleState{{ID: "ruin_0_0", X: 12, Y: 40, Width: 32, Height: 32, Variant: 5}},
		},
	}

	frame, err := Encode(snap)
	require.NoError(t, err)

	got, err := Decode(frame)
	require.NoError(t, err)

	decoded, ok := got.(messages.WorldSnapshot)
	require.True(t, ok)
	assert.Equal(t, snap.Tick, decoded.Tick)
	require.Len(t, decoded.World.Players, 1)
	assert.Equal(t, "ace", decoded.World.Players[0].Name)
	assert.Equal(t, snap.World.Players[0].Inventory, decoded.World.Players[0].Inventory)
	assert.Equal(t, int64(1700000010000), decoded.World.Players[0].ActiveEffects[netconfig.PowerupSpeed])
	assert.Equal(t, snap.World.Ruins, decoded.World.Ruins)
}

func TestEncode_UnknownType(t *testing.T) {
	_, err := Encode(struct{}{})
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

func TestDecode_Errors(t *testing.T) {
	unknown, err := marshal(envelope{Type: 200, Payload: []byte{0x80}})
	require.NoError(t, err)
	noPayload, err := marshal(envelope{Type: TypePlayerInput})
	require.NoError(t, err)

	tests := []struct {
		name    string
		frame   []byte
		wantErr error
	}{
		{"empty frame", nil, ErrEmptyPayload},
		{"unknown type", unknown, ErrUnknownMessage},
		{"missing payload", noPayload, ErrEmptyPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.frame)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := Decode([]byte{0xc1, 0xff, 0x00})
		assert.Error(t, err)
	})
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "WorldSnapshot", TypeWorldSnapshot.String())
	assert.Equal(t, "MessageType(99)", MessageType(99).String())
}
