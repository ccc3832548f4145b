// Package protocol frames messages for the wire. Every frame is a msgpack
// envelope holding a type tag and the msgpack encoded payload.
package protocol

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"

	"github.com/automoto/wreckfield/shared/messages"
)

// MessageType tags the payload carried by an envelope.
type MessageType uint8

const (
	TypeJoinRequest MessageType = iota + 1
	TypeJoinAccepted
	TypeJoinRejected
	TypePlayerInput
	TypeActivatePowerup
	TypeWorldSnapshot
	TypeGameOver
)

func (t MessageType) String() string {
	switch t {
	case TypeJoinRequest:
		return "JoinRequest"
	case TypeJoinAccepted:
		return "JoinAccepted"
	case TypeJoinRejected:
		return "JoinRejected"
	case TypePlayerInput:
		return "PlayerInput"
	case TypeActivatePowerup:
		return "ActivatePowerup"
	case TypeWorldSnapshot:
		return "WorldSnapshot"
	case TypeGameOver:
		return "GameOver"
	}
	return fmt.Sprintf("MessageType(%d)", uint8(t))
}

var (
	// ErrUnknownMessage is returned for envelopes with an unregistered type
	// or when encoding a value that has no message type.
	ErrUnknownMessage = errors.New("unknown message type")
	// ErrEmptyPayload is returned for frames with no bytes.
	ErrEmptyPayload = errors.New("empty payload")
)

type envelope struct {
	Type    MessageType `codec:"t"`
	Payload []byte      `codec:"p"`
}

var handle = newHandle()

func newHandle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	return h
}

func marshal(v any) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, handle).Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshal(data []byte, v any) error {
	return codec.NewDecoderBytes(data, handle).Decode(v)
}

// TypeOf returns the wire type of a message value.
func TypeOf(msg any) (MessageType, error) {
	switch msg.(type) {
	case messages.JoinRequest, *messages.JoinRequest:
		return TypeJoinRequest, nil
	case messages.JoinAccepted, *messages.JoinAccepted:
		return TypeJoinAccepted, nil
	case messages.JoinRejected, *messages.JoinRejected:
		return TypeJoinRejected, nil
	case messages.PlayerInput, *messages.PlayerInput:
		return TypePlayerInput, nil
	case messages.ActivatePowerup, *messages.ActivatePowerup:
		return TypeActivatePowerup, nil
	case messages.WorldSnapshot, *messages.WorldSnapshot:
		return TypeWorldSnapshot, nil
	case messages.GameOver, *messages.GameOver:
		return TypeGameOver, nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnknownMessage, msg)
}

// Encode wraps msg in an envelope and returns the frame bytes.
func Encode(msg any) ([]byte, error) {
	t, err := TypeOf(msg)
	if err != nil {
		return nil, err
	}
	payload, err := marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", t, err)
	}
	frame, err := marshal(envelope{Type: t, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encoding %s envelope: %w", t, err)
	}
	return frame, nil
}

// Decode parses a frame and returns the message as a value of its concrete
// type (for example messages.PlayerInput).
func Decode(frame []byte) (any, error) {
	if len(frame) == 0 {
		return nil, ErrEmptyPayload
	}
	var env envelope
	if err := unmarshal(frame, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	switch env.Type {
	case TypeJoinRequest:
		return decodeAs[messages.JoinRequest](env)
	case TypeJoinAccepted:
		return decodeAs[messages.JoinAccepted](env)
	case TypeJoinRejected:
		return decodeAs[messages.JoinRejected](env)
	case TypePlayerInput:
		return decodeAs[messages.PlayerInput](env)
	case TypeActivatePowerup:
		return decodeAs[messages.ActivatePowerup](env)
	case TypeWorldSnapshot:
		return decodeAs[messages.WorldSnapshot](env)
	case TypeGameOver:
		return decodeAs[messages.GameOver](env)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMessage, env.Type)
}

func decodeAs[T any](env envelope) (any, error) {
	var msg T
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("decoding %s: %w", env.Type, ErrEmptyPayload)
	}
	if err := unmarshal(env.Payload, &msg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", env.Type, err)
	}
	return msg, nil
}
