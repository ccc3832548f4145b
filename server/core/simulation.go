package core

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/yohamta/donburi"

	"github.com/automoto/wreckfield/components"
	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/netconfig"
	"github.com/automoto/wreckfield/shared/worldgen"
)

// ErrServerFull is returned by AddPlayer when the player cap is reached.
var ErrServerFull = errors.New("server full")

const (
	maxNameLength = 24
	spawnAttempts = 8
)

// GameOverNotice tells one player that its last life is gone.
type GameOverNotice struct {
	PlayerID   uint64
	FinalScore int
}

// TickResult summarizes one Step.
type TickResult struct {
	Tick      uint64
	GameOvers []GameOverNotice
}

type pendingRespawn struct {
	due  time.Time
	kind netconfig.CollectibleKind
}

// Simulation is the authoritative world. It is not safe for concurrent use:
// a single goroutine owns it and every mutation goes through its methods.
type Simulation struct {
	cfg       config.Config
	reg       *Registry
	obstacles *ObstacleIndex
	gen       worldgen.Generator
	rng       *rand.Rand
	logger    *slog.Logger

	tick         uint64
	materialized map[worldgen.ChunkCoord]struct{}
	respawns     []pendingRespawn
	notices      []GameOverNotice
}

// NewSimulation builds the initial world: eager chunks around the origin,
// collectibles and enemies. A nil rng seeds from the world seed; a nil logger
// uses slog.Default().
func NewSimulation(cfg config.Config, rng *rand.Rand, logger *slog.Logger) *Simulation {
	if logger == nil {
		logger = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(cfg.World.Seed), uint64(cfg.World.Seed)>>1))
	}
	gen := worldgen.New(cfg.World.Seed, cfg.World.ChunkSize)

	s := &Simulation{
		cfg:          cfg,
		reg:          NewRegistry(),
		obstacles:    NewObstacleIndex(gen, cfg.World.ObstacleThreshold),
		gen:          gen,
		rng:          rng,
		logger:       logger.With("component", "simulation"),
		materialized: make(map[worldgen.ChunkCoord]struct{}),
	}

	for _, c := range worldgen.InitialChunks(cfg.World.InitialChunks) {
		s.materializeChunk(c)
	}
	for range cfg.Collectible.FuelTanks {
		s.spawnCollectible(netconfig.CollectibleFuel)
	}
	for range cfg.Collectible.Powerups {
		s.spawnCollectible(netconfig.CollectiblePowerup)
	}
	for range cfg.Enemy.Count {
		s.initEnemy(s.reg.NewEnemy())
	}

	s.logger.Info("world initialized",
		"seed", cfg.World.Seed,
		"chunks", len(s.materialized),
		"obstacles", s.reg.ObstacleCount(),
		"collectibles", s.reg.CollectibleCount(),
		"enemies", s.reg.EnemyCount(),
	)
	return s
}

// Registry exposes the entity registry for inspection.
func (s *Simulation) Registry() *Registry { return s.reg }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() uint64 { return s.tick }

// PlayerCount returns the number of joined players, including those whose
// game is over but who are still connected.
func (s *Simulation) PlayerCount() int { return s.reg.PlayerCount() }

// AddPlayer joins a new player at a random spawn point.
func (s *Simulation) AddPlayer(name string, now time.Time) (uint64, error) {
	if s.reg.PlayerCount() >= s.cfg.Server.MaxPlayers {
		return 0, ErrServerFull
	}

	entry := s.reg.NewPlayer()
	pc := s.cfg.Player
	components.Player.SetValue(entry, components.PlayerData{
		Name:              sanitizeName(name),
		LastSurvivalAward: now,
	})
	components.Health.SetValue(entry, components.HealthData{Current: pc.MaxHealth, Max: pc.MaxHealth})
	components.Fuel.SetValue(entry, components.FuelData{Current: pc.MaxFuel, Max: pc.MaxFuel})
	components.Lives.SetValue(entry, components.LivesData{Remaining: pc.StartingLives, Start: pc.StartingLives})
	components.Powerups.SetValue(entry, components.PowerupsData{
		Active: make(map[netconfig.PowerupKind]time.Time),
	})
	s.placePlayer(entry)

	id := idOf(entry)
	s.logger.Info("player joined", "player", id, "name", components.Player.Get(entry).Name)
	return id, nil
}

// RemovePlayer deletes a player. Projectiles it fired stay in flight.
func (s *Simulation) RemovePlayer(id uint64) bool {
	entry, ok := s.player(id)
	if !ok {
		return false
	}
	s.reg.Remove(entry)
	s.logger.Info("player left", "player", id)
	return true
}

// SetInput stores the latest input of a player. Unknown ids are ignored.
func (s *Simulation) SetInput(id uint64, in messages.PlayerInput) bool {
	entry, ok := s.player(id)
	if !ok {
		return false
	}
	components.Player.Get(entry).Input = in
	return true
}

// ActivatePowerup consumes an inventory slot immediately.
func (s *Simulation) ActivatePowerup(id uint64, slot int, now time.Time) bool {
	entry, ok := s.player(id)
	if !ok || components.Player.Get(entry).GameOver {
		return false
	}
	return s.activateSlot(entry, slot, now)
}

// player resolves id to a player entry.
func (s *Simulation) player(id uint64) (*donburi.Entry, bool) {
	entry, ok := s.reg.Lookup(id)
	if !ok || !entry.HasComponent(components.Player) {
		return nil, false
	}
	return entry, true
}

// Step advances the world by one tick.
func (s *Simulation) Step(now time.Time) TickResult {
	s.tick++
	s.notices = nil

	for _, p := range s.reg.Players() {
		s.guard("movement", p, func() { s.updatePlayer(p, now) })
	}

	s.advanceProjectiles()
	s.resolveProjectiles(now)
	s.resolveRams(now)
	s.separateEnemies()
	s.collectPickups(now)

	for _, p := range s.reg.Players() {
		s.guard("effects", p, func() { sweepEffects(components.Powerups.Get(p), now) })
	}
	for _, p := range s.reg.Players() {
		s.guard("upkeep", p, func() { s.upkeep(p, now) })
	}
	for _, e := range s.reg.Enemies() {
		s.guard("ai", e, func() { s.updateEnemy(e, now) })
	}

	s.processRespawns(now)
	s.removeCollected()

	return TickResult{Tick: s.tick, GameOvers: s.notices}
}

// guard runs fn and contains a panic to the entity being processed.
func (s *Simulation) guard(stage string, entry *donburi.Entry, fn func()) {
	id := idOf(entry)
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("entity update failed",
				"stage", stage,
				"entity", id,
				"panic", fmt.Sprint(r),
			)
		}
	}()
	fn()
}

// upkeep handles fuel exhaustion and the survival bonus.
func (s *Simulation) upkeep(entry *donburi.Entry, now time.Time) {
	p := components.Player.Get(entry)
	if p.GameOver {
		return
	}
	if components.Fuel.Get(entry).Current <= 0 {
		s.loseLife(entry)
		if p.GameOver {
			return
		}
	}
	if now.Sub(p.LastSurvivalAward) > s.cfg.Player.SurvivalInterval {
		p.Score += s.cfg.Player.SurvivalBonus
		p.LastSurvivalAward = now
	}
}

// loseLife takes one life. With lives left the player respawns fresh,
// otherwise the game is over and a single notice is queued.
func (s *Simulation) loseLife(entry *donburi.Entry) {
	p := components.Player.Get(entry)
	if p.GameOver {
		return
	}
	lives := components.Lives.Get(entry)
	h := components.Health.Get(entry)
	if lives.Lose() {
		h.Current = h.Max
		fuel := components.Fuel.Get(entry)
		fuel.Current = fuel.Max
		s.placePlayer(entry)
		s.logger.Debug("player respawned", "player", idOf(entry), "lives", lives.Remaining)
		return
	}

	h.Current = 0
	components.Motion.Get(entry).Speed = 0
	p.GameOver = true
	p.Input = messages.PlayerInput{}
	s.notices = append(s.notices, GameOverNotice{PlayerID: idOf(entry), FinalScore: p.Score})
	s.logger.Info("game over", "player", idOf(entry), "score", p.Score)
}

// placePlayer moves a player to a random spawn point and materializes the
// chunks around it.
func (s *Simulation) placePlayer(entry *donburi.Entry) {
	t := components.Transform.Get(entry)
	t.X, t.Y = s.freePoint(0, s.cfg.Player.SpawnRange)
	components.Motion.Get(entry).Speed = 0

	c := s.gen.ChunkOf(t.X, t.Y)
	components.Player.Get(entry).Chunk = c
	s.expandAround(c)
}

// awardScore credits points to the owner of a kill. The owner may have left
// or lost its last life, in which case nothing is awarded.
func (s *Simulation) awardScore(ownerID uint64, points int) {
	entry, ok := s.player(ownerID)
	if !ok {
		return
	}
	p := components.Player.Get(entry)
	if p.GameOver {
		return
	}
	p.Score += points
}

// applyDamage lowers health, never below zero.
func (s *Simulation) applyDamage(entry *donburi.Entry, amount int, now time.Time) {
	h := components.Health.Get(entry)
	h.Current = gamemath.ClampInt(h.Current-s.damageTaken(entry, amount, now), 0, h.Max)
}

// materializeChunk creates the static objects of c. It reports false when
// the chunk was already materialized.
func (s *Simulation) materializeChunk(c worldgen.ChunkCoord) bool {
	if _, ok := s.materialized[c]; ok {
		return false
	}
	s.materialized[c] = struct{}{}

	for _, pl := range s.gen.ChunkContent(c) {
		ruin := pl.Kind == netconfig.ObstacleRuin
		entry, created := s.reg.NewObstacle(pl.ID, ruin)
		if !created {
			continue
		}
		components.Transform.SetValue(entry, components.TransformData{X: pl.X, Y: pl.Y})
		s.obstacles.Insert(c, pl.ID, pl.X, pl.Y, pl.Kind)
		components.Obstacle.SetValue(entry, components.ObstacleData{
			ID:      pl.ID,
			Kind:    pl.Kind,
			Variant: pl.Variant,
			Width:   netconfig.ObstacleSize,
			Height:  netconfig.ObstacleSize,
		})
	}
	return true
}

// expandAround materializes every chunk within the expansion radius of c.
func (s *Simulation) expandAround(c worldgen.ChunkCoord) int {
	created := 0
	for _, n := range worldgen.Neighborhood(c, s.cfg.World.ExpandRadius) {
		if s.materializeChunk(n) {
			created++
		}
	}
	if created > 0 {
		s.logger.Debug("chunks materialized", "around", c.String(), "count", created)
	}
	return created
}

func (s *Simulation) initEnemy(entry *donburi.Entry) {
	ec := s.cfg.Enemy
	components.Enemy.SetValue(entry, components.EnemyData{
		Variant: ec.Variants[s.rng.IntN(len(ec.Variants))],
		State:   netconfig.AIPatrol,
	})
	x, y := s.freePoint(ec.SpawnMin, ec.SpawnRange)
	components.Transform.SetValue(entry, components.TransformData{
		X:        x,
		Y:        y,
		Rotation: s.rng.Float64() * 360,
	})
	components.Motion.SetValue(entry, components.MotionData{})
	components.Health.SetValue(entry, components.HealthData{Current: ec.MaxHealth, Max: ec.MaxHealth})
}

// replaceEnemy swaps a destroyed enemy for a fresh one in the same slot.
func (s *Simulation) replaceEnemy(entry *donburi.Entry) {
	old := idOf(entry)
	fresh := s.reg.ReplaceEnemy(entry)
	s.initEnemy(fresh)
	s.logger.Debug("enemy replaced", "old", old, "new", idOf(fresh))
}

// freePoint draws a random point in [lo, lo+span) on both axes, retrying a
// few times to avoid starting inside an obstacle.
func (s *Simulation) freePoint(lo, span float64) (float64, float64) {
	var x, y float64
	for range spawnAttempts {
		x, y = lo+s.rng.Float64()*span, lo+s.rng.Float64()*span
		if _, blocked := s.obstacles.Blocked(x, y); !blocked {
			break
		}
	}
	return x, y
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Player"
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}

// idOf returns the identity of entry, or 0 for entities without one.
func idOf(entry *donburi.Entry) uint64 {
	if entry == nil || !entry.HasComponent(components.Identity) {
		return 0
	}
	return components.Identity.Get(entry).ID
}
