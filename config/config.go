// Package config holds every tuning value of the simulation and the server
// process. Defaults reproduce the reference gameplay; a YAML file may override
// any subset of them.
package config

import (
	"time"

	"github.com/automoto/wreckfield/shared/netconfig"
)

// Config is the root configuration object.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Combat      CombatConfig      `yaml:"combat"`
	Enemy       EnemyConfig       `yaml:"enemy"`
	Collectible CollectibleConfig `yaml:"collectible"`
	Powerup     PowerupConfig     `yaml:"powerup"`
}

// ServerConfig contains process, network and session settings.
type ServerConfig struct {
	Name       string `yaml:"name"`
	ListenAddr string `yaml:"listen_addr"`
	TickRate   int    `yaml:"tick_rate"` // simulation ticks per second
	MaxPlayers int    `yaml:"max_players"`
	LogLevel   string `yaml:"log_level"`

	// Outbound queue per connection, in messages. A client that falls this
	// far behind is dropped.
	SendQueue    int           `yaml:"send_queue"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ReadLimit    int64         `yaml:"read_limit"` // bytes per inbound frame
	InboxSize    int           `yaml:"inbox_size"`

	// Server browser registration. Empty MasterURL disables it.
	MasterURL         string        `yaml:"master_url"`
	PublicAddress     string        `yaml:"public_address"`
	Region            string        `yaml:"region"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval"`
}

// WorldConfig contains procedural generation settings.
type WorldConfig struct {
	Seed      int64 `yaml:"seed"`
	ChunkSize int   `yaml:"chunk_size"`

	// Chunks materialized eagerly at start: chunk indices [-InitialChunks, InitialChunks) on both axes.
	InitialChunks int `yaml:"initial_chunks"`
	// Chebyshev radius (in chunks) materialized around a player entering a
	// new chunk. Negative disables expansion.
	ExpandRadius int `yaml:"expand_radius"`

	ObstacleThreshold float64 `yaml:"obstacle_threshold"` // axis-aligned blocking half extent
	BlockedDamping    float64 `yaml:"blocked_damping"`    // speed multiplier after a blocked move
}

// PlayerConfig contains vehicle handling and survival values for players.
type PlayerConfig struct {
	MaxHealth     int     `yaml:"max_health"`
	MaxFuel       float64 `yaml:"max_fuel"`
	StartingLives int     `yaml:"starting_lives"`
	SpawnRange    float64 `yaml:"spawn_range"` // spawn in [0, SpawnRange) on both axes

	// Movement
	BaseSpeed          float64 `yaml:"base_speed"`
	SprintMultiplier   float64 `yaml:"sprint_multiplier"`
	Acceleration       float64 `yaml:"acceleration"`
	ReverseFactor      float64 `yaml:"reverse_factor"` // reverse cap as a fraction of max speed
	TurnSpeed          float64 `yaml:"turn_speed"`     // degrees per tick
	HandbrakeTurnSpeed float64 `yaml:"handbrake_turn_speed"`
	Friction           float64 `yaml:"friction"`
	HandbrakeFriction  float64 `yaml:"handbrake_friction"`

	// Fuel
	FuelBurn          float64 `yaml:"fuel_burn"`           // per tick while moving
	FuelBurnThreshold float64 `yaml:"fuel_burn_threshold"` // |speed| above which fuel burns

	// Passive score for staying alive
	SurvivalBonus    int           `yaml:"survival_bonus"`
	SurvivalInterval time.Duration `yaml:"survival_interval"`
}

// CombatConfig contains projectile and collision values.
type CombatConfig struct {
	ProjectileSpeed     float64       `yaml:"projectile_speed"`
	ProjectileDamage    int           `yaml:"projectile_damage"`
	ShotCooldown        time.Duration `yaml:"shot_cooldown"`
	MultiShotSpread     float64       `yaml:"multi_shot_spread"` // degrees between fan projectiles
	ProjectileHitRadius float64       `yaml:"projectile_hit_radius"`
	MaxProjectileTravel float64       `yaml:"max_projectile_travel"`

	PlayerKillScore int `yaml:"player_kill_score"`
	EnemyKillScore  int `yaml:"enemy_kill_score"`
	RamKillScore    int `yaml:"ram_kill_score"`

	RamRadius float64 `yaml:"ram_radius"`
	RamDamage int     `yaml:"ram_damage"`
	RamPush   float64 `yaml:"ram_push"`
	EnemyPush float64 `yaml:"enemy_push"`
}

// EnemyConfig contains enemy vehicle values and AI tuning.
type EnemyConfig struct {
	Count      int      `yaml:"count"`
	MaxHealth  int      `yaml:"max_health"`
	Variants   []string `yaml:"variants"`
	SpawnMin   float64  `yaml:"spawn_min"`
	SpawnRange float64  `yaml:"spawn_range"`

	DetectionRadius float64       `yaml:"detection_radius"`
	FireRange       float64       `yaml:"fire_range"`
	ShotCooldown    time.Duration `yaml:"shot_cooldown"`

	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileDamage int     `yaml:"projectile_damage"`

	TurnFactor    float64 `yaml:"turn_factor"` // fraction of angular error corrected per tick
	Acceleration  float64 `yaml:"acceleration"`
	MaxSpeed      float64 `yaml:"max_speed"`
	PatrolDamping float64 `yaml:"patrol_damping"`
}

// CollectibleConfig contains fuel tank and power-up pickup values.
type CollectibleConfig struct {
	FuelTanks           int           `yaml:"fuel_tanks"`
	Powerups            int           `yaml:"powerups"`
	SpawnRange          float64       `yaml:"spawn_range"`
	PickupRadius        float64       `yaml:"pickup_radius"`
	FuelAmount          float64       `yaml:"fuel_amount"`
	FuelRespawnDelay    time.Duration `yaml:"fuel_respawn_delay"`
	PowerupRespawnDelay time.Duration `yaml:"powerup_respawn_delay"`
}

// PowerupConfig contains effect strengths and durations.
type PowerupConfig struct {
	SpeedMultiplier   float64       `yaml:"speed_multiplier"`
	DamageMultiplier  float64       `yaml:"damage_multiplier"`
	RapidFireCooldown time.Duration `yaml:"rapid_fire_cooldown"`
	HealAmount        int           `yaml:"heal_amount"`
	// Fraction of incoming damage taken while shielded. 1 leaves damage unchanged.
	ShieldDamageFactor float64 `yaml:"shield_damage_factor"`

	// Zero duration means the effect is instantaneous.
	Durations map[netconfig.PowerupKind]time.Duration `yaml:"durations"`
}

// Duration returns the configured duration of kind, zero when unknown.
func (p PowerupConfig) Duration(kind netconfig.PowerupKind) time.Duration {
	return p.Durations[kind]
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:       "Wreckfield Server",
			ListenAddr: ":3001",
			TickRate:   60,
			MaxPlayers: 100,
			LogLevel:   "info",

			SendQueue:    64,
			WriteTimeout: 5 * time.Second,
			ReadLimit:    1 << 16,
			InboxSize:    1024,

			HeartbeatInterval: 30 * time.Second,
		},
		World: WorldConfig{
			Seed:              12345,
			ChunkSize:         200,
			InitialChunks:     10,
			ExpandRadius:      2,
			ObstacleThreshold: 25,
			BlockedDamping:    0.3,
		},
		Player: PlayerConfig{
			MaxHealth:     100,
			MaxFuel:       100,
			StartingLives: 3,
			SpawnRange:    1000,

			BaseSpeed:          3,
			SprintMultiplier:   1.5,
			Acceleration:       0.3,
			ReverseFactor:      0.5,
			TurnSpeed:          4,
			HandbrakeTurnSpeed: 6,
			Friction:           0.95,
			HandbrakeFriction:  0.85,

			FuelBurn:          0.1,
			FuelBurnThreshold: 0.1,

			SurvivalBonus:    2,
			SurvivalInterval: 5 * time.Second,
		},
		Combat: CombatConfig{
			ProjectileSpeed:     8,
			ProjectileDamage:    20,
			ShotCooldown:        500 * time.Millisecond,
			MultiShotSpread:     15,
			ProjectileHitRadius: 30,
			MaxProjectileTravel: 1500,

			PlayerKillScore: 100,
			EnemyKillScore:  150,
			RamKillScore:    100,

			RamRadius: 35,
			RamDamage: 25,
			RamPush:   10,
			EnemyPush: 5,
		},
		Enemy: EnemyConfig{
			Count:      8,
			MaxHealth:  80,
			Variants:   []string{"green", "slate"},
			SpawnMin:   500,
			SpawnRange: 1000,

			DetectionRadius: 300,
			FireRange:       200,
			ShotCooldown:    1500 * time.Millisecond,

			ProjectileSpeed:  6,
			ProjectileDamage: 15,

			TurnFactor:    0.05,
			Acceleration:  0.2,
			MaxSpeed:      2,
			PatrolDamping: 0.95,
		},
		Collectible: CollectibleConfig{
			FuelTanks:           30,
			Powerups:            15,
			SpawnRange:          2000,
			PickupRadius:        25,
			FuelAmount:          30,
			FuelRespawnDelay:    3 * time.Second,
			PowerupRespawnDelay: 5 * time.Second,
		},
		Powerup: PowerupConfig{
			SpeedMultiplier:    1.8,
			DamageMultiplier:   1.75,
			RapidFireCooldown:  200 * time.Millisecond,
			HealAmount:         50,
			ShieldDamageFactor: 1,
			Durations: map[netconfig.PowerupKind]time.Duration{
				netconfig.PowerupSpeed:        10 * time.Second,
				netconfig.PowerupHealth:       0,
				netconfig.PowerupDamage:       15 * time.Second,
				netconfig.PowerupRapidFire:    12 * time.Second,
				netconfig.PowerupShield:       8 * time.Second,
				netconfig.PowerupMultiShot:    10 * time.Second,
				netconfig.PowerupExplosive:    8 * time.Second,
				netconfig.PowerupInvisibility: 6 * time.Second,
			},
		},
	}
}
