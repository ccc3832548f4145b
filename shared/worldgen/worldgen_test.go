package worldgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/wreckfield/shared/netconfig"
)

func TestChunkContent_Deterministic(t *testing.T) {
	a := New(DefaultSeed, DefaultChunkSize)
	b := New(DefaultSeed, DefaultChunkSize)

	for _, c := range InitialChunks(10) {
		assert.Equal(t, a.ChunkContent(c), b.ChunkContent(c), "chunk %s", c)
		assert.Equal(t, a.ChunkContent(c), a.ChunkContent(c), "chunk %s", c)
	}
}

func TestChunkContent_SeedChangesLayout(t *testing.T) {
	a := New(DefaultSeed, DefaultChunkSize)
	b := New(DefaultSeed+1, DefaultChunkSize)

	differs := false
	for _, c := range InitialChunks(10) {
		if !assert.ObjectsAreEqual(a.ChunkContent(c), b.ChunkContent(c)) {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestChunkContent_PlacementBounds(t *testing.T) {
	g := New(DefaultSeed, DefaultChunkSize)

	var ruins, junk int
	chunks := InitialChunks(10)
	for _, c := range chunks {
		ox, oy := g.Origin(c)
		for _, p := range g.ChunkContent(c) {
			assert.GreaterOrEqual(t, p.X, float64(ox))
			assert.Less(t, p.X, float64(ox+maxOffset))
			assert.GreaterOrEqual(t, p.Y, float64(oy))
			assert.Less(t, p.Y, float64(oy+maxOffset))
			assert.Equal(t, ObstacleID(p.Kind, ox, oy), p.ID)

			switch p.Kind {
			case netconfig.ObstacleRuin:
				ruins++
				assert.Less(t, p.Variant, netconfig.RuinVariants)
			case netconfig.ObstacleJunk:
				junk++
				assert.Less(t, p.Variant, netconfig.JunkVariants)
			}
			assert.GreaterOrEqual(t, p.Variant, 0)
		}
	}

	// 400 chunks: expect roughly 100 ruins and 120 junk piles.
	assert.InDelta(t, 0.25*float64(len(chunks)), float64(ruins), 40)
	assert.InDelta(t, 0.30*float64(len(chunks)), float64(junk), 40)
}

func TestChunkContent_UniqueIDs(t *testing.T) {
	g := New(DefaultSeed, DefaultChunkSize)
	seen := make(map[string]bool)
	for _, c := range InitialChunks(10) {
		for _, p := range g.ChunkContent(c) {
			require.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
	}
}

func TestObstacleID(t *testing.T) {
	assert.Equal(t, "ruin_-200_400", ObstacleID(netconfig.ObstacleRuin, -200, 400))
	assert.Equal(t, "junk_0_0", ObstacleID(netconfig.ObstacleJunk, 0, 0))
}

func TestChunkOf(t *testing.T) {
	g := New(DefaultSeed, DefaultChunkSize)

	tests := []struct {
		name string
		x, y float64
		want ChunkCoord
	}{
		{"origin", 0, 0, ChunkCoord{0, 0}},
		{"inside first", 199.9, 10, ChunkCoord{0, 0}},
		{"next chunk", 200, 400, ChunkCoord{1, 2}},
		{"negative", -0.1, -200, ChunkCoord{-1, -1}},
		{"negative far", -201, 0, ChunkCoord{-2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.ChunkOf(tt.x, tt.y))
		})
	}
}

func TestInitialChunks(t *testing.T) {
	chunks := InitialChunks(10)
	assert.Len(t, chunks, 400)
	assert.Equal(t, ChunkCoord{-10, -10}, chunks[0])
	assert.Equal(t, ChunkCoord{9, 9}, chunks[len(chunks)-1])
	assert.Empty(t, InitialChunks(0))
}

func TestNeighborhood(t *testing.T) {
	n := Neighborhood(ChunkCoord{3, -1}, 2)
	assert.Len(t, n, 25)
	assert.Contains(t, n, ChunkCoord{3, -1})
	assert.Contains(t, n, ChunkCoord{1, -3})
	assert.Contains(t, n, ChunkCoord{5, 1})
	assert.NotContains(t, n, ChunkCoord{6, -1})

	assert.Equal(t, []ChunkCoord{{0, 0}}, Neighborhood(ChunkCoord{}, 0))
}

func TestUnitRange(t *testing.T) {
	for s := int64(-1000); s < 1000; s++ {
		u := unit(s)
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}
