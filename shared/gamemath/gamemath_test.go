package gamemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortestAngleDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     float64
	}{
		{"zero", 0, 0, 0},
		{"small positive", 10, 30, 20},
		{"small negative", 30, 10, -20},
		{"wraps forward", 350, 10, 20},
		{"wraps backward", 10, 350, -20},
		{"negative headings", -170, 170, -20},
		{"half turn", 0, 180, 180},
		{"multiple turns", 0, 725, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ShortestAngleDiff(tt.from, tt.to), 1e-9)
		})
	}
}

func TestHeadingAndAdvance(t *testing.T) {
	x, y := Heading(0)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y = Heading(90)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	nx, ny := Advance(10, 10, 180, 5)
	assert.InDelta(t, 5, nx, 1e-9)
	assert.InDelta(t, 10, ny, 1e-9)
}

func TestAngleTo(t *testing.T) {
	assert.InDelta(t, 0, AngleTo(0, 0, 10, 0), 1e-9)
	assert.InDelta(t, 90, AngleTo(0, 0, 0, 10), 1e-9)
	assert.InDelta(t, 180, math.Abs(AngleTo(0, 0, -10, 0)), 1e-9)
}

func TestWithinAxisBox(t *testing.T) {
	assert.True(t, WithinAxisBox(0, 0, 24.9, -24.9, 25))
	assert.False(t, WithinAxisBox(0, 0, 25, 0, 25), "boundary is exclusive")
	assert.False(t, WithinAxisBox(0, 0, 0, 30, 25))
}

func TestSeparation(t *testing.T) {
	x, y := Separation(10, 0, 0, 0)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y = Separation(5, 5, 5, 5)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 0.0, y)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 100))
	assert.Equal(t, 100.0, Clamp(101, 0, 100))
	assert.Equal(t, 50.0, Clamp(50, 0, 100))
	assert.Equal(t, 3, ClampInt(7, 0, 3))
}
