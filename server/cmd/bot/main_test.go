package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_RejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero count", []string{"-count", "0"}},
		{"negative rate", []string{"-rate", "-1"}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, run(context.Background(), tt.args))
		})
	}
}

func TestRun_UnreachableServer(t *testing.T) {
	err := run(context.Background(), []string{"-url", "ws://127.0.0.1:1/ws", "-count", "2"})
	require.Error(t, err)
}
