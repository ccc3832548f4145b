package core

import (
	"github.com/solarlune/resolv"

	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/netconfig"
	"github.com/automoto/wreckfield/shared/worldgen"
	"github.com/automoto/wreckfield/tags"
)

const (
	// Each chunk space extends this far past the chunk on every side so
	// obstacle bodies near an edge stay fully inside their own space.
	chunkMargin = 50
	spaceCell   = 25
)

type obstacleRef struct {
	id   string
	x, y float64
}

type chunkSpace struct {
	space            *resolv.Space
	originX, originY float64
	size             float64
}

// ObstacleIndex answers "is this point blocked" against static objects.
// Every materialized chunk gets its own resolv space. The broad phase is a
// probe against the spaces of the 3x3 chunk neighbourhood; the narrow phase
// is the exact axis-aligned threshold test.
type ObstacleIndex struct {
	gen       worldgen.Generator
	threshold float64
	spaces    map[worldgen.ChunkCoord]*chunkSpace
}

func NewObstacleIndex(gen worldgen.Generator, threshold float64) *ObstacleIndex {
	return &ObstacleIndex{
		gen:       gen,
		threshold: threshold,
		spaces:    make(map[worldgen.ChunkCoord]*chunkSpace),
	}
}

func (o *ObstacleIndex) chunk(c worldgen.ChunkCoord) *chunkSpace {
	if cs, ok := o.spaces[c]; ok {
		return cs
	}
	size := o.gen.ChunkSize() + 2*chunkMargin
	ox, oy := o.gen.Origin(c)
	cs := &chunkSpace{
		space:   resolv.NewSpace(size, size, spaceCell, spaceCell),
		originX: float64(ox - chunkMargin),
		originY: float64(oy - chunkMargin),
		size:    float64(size),
	}
	o.spaces[c] = cs
	return cs
}

// Insert adds an obstacle of kind at (x, y) belonging to chunk c.
func (o *ObstacleIndex) Insert(c worldgen.ChunkCoord, id string, x, y float64, kind netconfig.ObstacleKind) {
	cs := o.chunk(c)
	// Strictly larger than the blocking box so every blocked point shares a cell.
	half := o.threshold + 1
	obj := resolv.NewObject(x-cs.originX-half, y-cs.originY-half, 2*half, 2*half, tags.ResolvObstacle, kindTag(kind))
	obj.SetShape(resolv.NewRectangle(0, 0, 2*half, 2*half))
	obj.Data = &obstacleRef{id: id, x: x, y: y}
	cs.space.Add(obj)
}

func kindTag(kind netconfig.ObstacleKind) string {
	if kind == netconfig.ObstacleRuin {
		return tags.ResolvRuin
	}
	return tags.ResolvJunk
}

// Blocked returns the id of the first obstacle within threshold of (x, y)
// on both axes. Lookups stop at the first match.
func (o *ObstacleIndex) Blocked(x, y float64) (string, bool) {
	center := o.gen.ChunkOf(x, y)
	for _, c := range worldgen.Neighborhood(center, 1) {
		cs, ok := o.spaces[c]
		if !ok {
			continue
		}
		if id, hit := cs.probe(x, y, o.threshold); hit {
			return id, true
		}
	}
	return "", false
}

func (cs *chunkSpace) probe(x, y, threshold float64) (string, bool) {
	lx, ly := x-cs.originX, y-cs.originY
	if lx < 0 || ly < 0 || lx >= cs.size || ly >= cs.size {
		return "", false
	}

	probe := resolv.NewObject(lx, ly, 1, 1, tags.ResolvProbe)
	cs.space.Add(probe)
	defer cs.space.Remove(probe)

	check := probe.Check(0, 0, tags.ResolvObstacle)
	if check == nil {
		return "", false
	}
	for _, obj := range check.ObjectsByTags(tags.ResolvObstacle) {
		ref, ok := obj.Data.(*obstacleRef)
		if !ok {
			continue
		}
		if gamemath.WithinAxisBox(x, y, ref.x, ref.y, threshold) {
			return ref.id, true
		}
	}
	return "", false
}

// Chunks returns the number of chunk spaces allocated.
func (o *ObstacleIndex) Chunks() int {
	return len(o.spaces)
}
