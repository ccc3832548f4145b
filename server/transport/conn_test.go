package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConn_SendQueue(t *testing.T) {
	c := newConn(nil, 2)

	require.NoError(t, c.Send([]byte{1}))
	require.NoError(t, c.Send([]byte{2}))
	assert.ErrorIs(t, c.Send([]byte{3}), ErrSendQueueFull)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.ErrorIs(t, c.Send([]byte{4}), ErrConnClosed)

	var drained [][]byte
	for frame := range c.queue {
		drained = append(drained, frame)
	}
	assert.Equal(t, [][]byte{{1}, {2}}, drained)
}

func TestConn_MinimumQueue(t *testing.T) {
	c := newConn(nil, 0)
	require.NoError(t, c.Send([]byte{1}))
	assert.ErrorIs(t, c.Send([]byte{2}), ErrSendQueueFull)
}
