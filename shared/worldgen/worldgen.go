// Package worldgen is the deterministic chunk generator. Every placement is a
// pure function of the world seed and chunk coordinates, so chunks can be
// regenerated at any time without storing them.
package worldgen

import (
	"fmt"
	"math"

	"github.com/automoto/wreckfield/shared/netconfig"
)

const (
	// DefaultSeed is the compile-time world seed every server instance shares.
	DefaultSeed int64 = 12345
	// DefaultChunkSize is the chunk edge length in world units.
	DefaultChunkSize = 200

	ruinChance = 0.25
	junkChance = 0.30

	// Obstacles are placed within [0, maxOffset) of the chunk origin.
	maxOffset = 150
)

// Per-purpose salts added to the chunk seed.
const (
	saltRuinExists  = 0
	saltRuinOffsetX = 1
	saltRuinOffsetY = 2
	saltRuinVariant = 3
	saltJunkOffsetX = 4
	saltJunkOffsetY = 5
	saltJunkVariant = 6
	saltJunkExists  = 500
)

// ChunkCoord addresses a chunk by index, not by world position.
type ChunkCoord struct {
	X, Y int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Placement is one static object produced for a chunk.
type Placement struct {
	Kind    netconfig.ObstacleKind
	ID      string
	X, Y    float64
	Variant int
}

// Generator produces chunk content for one world seed.
type Generator struct {
	seed      int64
	chunkSize int
}

// New returns a generator. A non-positive chunkSize falls back to DefaultChunkSize.
func New(seed int64, chunkSize int) Generator {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return Generator{seed: seed, chunkSize: chunkSize}
}

// ChunkSize returns the chunk edge length.
func (g Generator) ChunkSize() int { return g.chunkSize }

// Origin returns the world position of the chunk's top-left corner.
func (g Generator) Origin(c ChunkCoord) (x, y int) {
	return c.X * g.chunkSize, c.Y * g.chunkSize
}

// ChunkOf returns the chunk containing the world position, using floor
// division so negative coordinates land in negative chunks.
func (g Generator) ChunkOf(x, y float64) ChunkCoord {
	size := float64(g.chunkSize)
	return ChunkCoord{
		X: int(math.Floor(x / size)),
		Y: int(math.Floor(y / size)),
	}
}

// chunkSeed combines the world seed with the chunk origin.
func (g Generator) chunkSeed(c ChunkCoord) int64 {
	ox, oy := g.Origin(c)
	return g.seed + int64(ox)*73 + int64(oy)*97
}

// ChunkContent returns the static objects of a chunk: at most one ruin and
// at most one junk pile, always in that order.
func (g Generator) ChunkContent(c ChunkCoord) []Placement {
	seed := g.chunkSeed(c)
	ox, oy := g.Origin(c)

	var out []Placement
	if unit(seed+saltRuinExists) < ruinChance {
		out = append(out, Placement{
			Kind:    netconfig.ObstacleRuin,
			ID:      ObstacleID(netconfig.ObstacleRuin, ox, oy),
			X:       float64(ox + intn(seed+saltRuinOffsetX, maxOffset)),
			Y:       float64(oy + intn(seed+saltRuinOffsetY, maxOffset)),
			Variant: intn(seed+saltRuinVariant, netconfig.RuinVariants),
		})
	}
	if unit(seed+saltJunkExists) < junkChance {
		out = append(out, Placement{
			Kind:    netconfig.ObstacleJunk,
			ID:      ObstacleID(netconfig.ObstacleJunk, ox, oy),
			X:       float64(ox + intn(seed+saltJunkOffsetX, maxOffset)),
			Y:       float64(oy + intn(seed+saltJunkOffsetY, maxOffset)),
			Variant: intn(seed+saltJunkVariant, netconfig.JunkVariants),
		})
	}
	return out
}

// ObstacleID is the stable identity of the object of kind in the chunk at
// origin (ox, oy).
func ObstacleID(kind netconfig.ObstacleKind, ox, oy int) string {
	return fmt.Sprintf("%s_%d_%d", kind, ox, oy)
}

// InitialChunks returns every chunk with both indices in [-radius, radius),
// row by row.
func InitialChunks(radius int) []ChunkCoord {
	if radius <= 0 {
		return nil
	}
	out := make([]ChunkCoord, 0, 4*radius*radius)
	for y := -radius; y < radius; y++ {
		for x := -radius; x < radius; x++ {
			out = append(out, ChunkCoord{X: x, Y: y})
		}
	}
	return out
}

// Neighborhood returns the chunks within Chebyshev distance r of c,
// including c itself.
func Neighborhood(c ChunkCoord, r int) []ChunkCoord {
	if r < 0 {
		return nil
	}
	side := 2*r + 1
	out := make([]ChunkCoord, 0, side*side)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			out = append(out, ChunkCoord{X: c.X + dx, Y: c.Y + dy})
		}
	}
	return out
}
