package network

import (
	"math"
	"math/rand/v2"

	"github.com/automoto/wreckfield/shared/gamemath"
	"github.com/automoto/wreckfield/shared/messages"
	"github.com/automoto/wreckfield/shared/netconfig"
)

type BotState int

const (
	BotIdle BotState = iota
	BotWander
	BotRefuel
	BotAttack
	BotCollect
)

func (s BotState) String() string {
	switch s {
	case BotIdle:
		return "idle"
	case BotWander:
		return "wander"
	case BotRefuel:
		return "refuel"
	case BotAttack:
		return "attack"
	case BotCollect:
		return "collect"
	}
	return "unknown"
}

// BotConfig tunes a bot's decisions.
type BotConfig struct {
	RefuelBelow float64 // fuel level that sends the bot to the nearest tank
	FireRange   float64
	AimCone     float64 // degrees of heading error still worth a shot
	DeadZone    float64 // degrees of heading error ignored when steering
	WanderTurn  float64 // chance per decision to turn while wandering
}

func DefaultBotConfig() BotConfig {
	return BotConfig{
		RefuelBelow: 30,
		FireRange:   250,
		AimCone:     15,
		DeadZone:    5,
		WanderTurn:  0.2,
	}
}

// Bot turns world snapshots into player input for one player.
type Bot struct {
	cfg   BotConfig
	rng   *rand.Rand
	state BotState
}

func NewBot(cfg BotConfig, rng *rand.Rand) *Bot {
	if rng == nil {
		rng = rand.New(rand.NewPCG(42, 42))
	}
	return &Bot{cfg: cfg, rng: rng}
}

// State is the decision taken by the last call to Decide.
func (b *Bot) State() BotState {
	return b.state
}

type target struct {
	x, y float64
	dist float64
}

func nearest[T any](items []T, x, y float64, pos func(T) (float64, float64)) (target, bool) {
	best := target{dist: math.Inf(1)}
	found := false
	for _, it := range items {
		tx, ty := pos(it)
		if d := gamemath.Distance(x, y, tx, ty); d < best.dist {
			best = target{x: tx, y: ty, dist: d}
			found = true
		}
	}
	return best, found
}

// Decide picks this tick's input for player self.
func (b *Bot) Decide(self uint64, world messages.WorldState) messages.PlayerInput {
	me, ok := findPlayer(self, world.Players)
	if !ok || me.Lives == 0 {
		b.state = BotIdle
		return messages.PlayerInput{}
	}

	var (
		goal  target
		found bool
	)
	collectiblePos := func(c messages.CollectibleState) (float64, float64) { return c.X, c.Y }

	if me.Fuel < b.cfg.RefuelBelow {
		goal, found = nearest(world.FuelTanks, me.X, me.Y, collectiblePos)
		b.state = BotRefuel
	}
	if !found {
		goal, found = nearest(world.Enemies, me.X, me.Y, func(e messages.EnemyState) (float64, float64) { return e.X, e.Y })
		b.state = BotAttack
	}
	if !found && hasFreeSlot(me.Inventory) {
		goal, found = nearest(world.Powerups, me.X, me.Y, collectiblePos)
		b.state = BotCollect
	}
	if !found {
		b.state = BotWander
		return b.wander()
	}

	in := messages.PlayerInput{Up: true}
	diff := gamemath.ShortestAngleDiff(me.Rotation, gamemath.AngleTo(me.X, me.Y, goal.x, goal.y))
	switch {
	case diff > b.cfg.DeadZone:
		in.Right = true
	case diff < -b.cfg.DeadZone:
		in.Left = true
	}
	// sharp corrections need the handbrake
	in.Handbrake = math.Abs(diff) > 90

	if b.state == BotAttack {
		in.Shoot = goal.dist < b.cfg.FireRange && math.Abs(diff) < b.cfg.AimCone
		if slot := firstHeld(me.Inventory); slot >= 0 && goal.dist < b.cfg.FireRange {
			in.Digits[slot] = true
		}
	}
	return in
}

func (b *Bot) wander() messages.PlayerInput {
	in := messages.PlayerInput{Up: true}
	if b.rng.Float64() < b.cfg.WanderTurn {
		if b.rng.IntN(2) == 0 {
			in.Left = true
		} else {
			in.Right = true
		}
	}
	return in
}

func findPlayer(id uint64, players []messages.PlayerState) (messages.PlayerState, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return messages.PlayerState{}, false
}

func hasFreeSlot(inv []netconfig.PowerupKind) bool {
	if len(inv) < netconfig.InventorySlots {
		return true
	}
	for _, k := range inv {
		if k == netconfig.PowerupNone {
			return true
		}
	}
	return false
}

func firstHeld(inv []netconfig.PowerupKind) int {
	for i, k := range inv {
		if i >= netconfig.InventorySlots {
			break
		}
		if k != netconfig.PowerupNone {
			return i
		}
	}
	return -1
}
