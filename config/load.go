package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path over the defaults. A missing file is not an
// error and yields Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("server.tick_rate must be positive, got %d", c.Server.TickRate))
	}
	if c.Server.MaxPlayers <= 0 {
		errs = append(errs, fmt.Errorf("server.max_players must be positive, got %d", c.Server.MaxPlayers))
	}
	if c.Server.SendQueue <= 0 {
		errs = append(errs, fmt.Errorf("server.send_queue must be positive, got %d", c.Server.SendQueue))
	}
	if c.World.ChunkSize <= 0 {
		errs = append(errs, fmt.Errorf("world.chunk_size must be positive, got %d", c.World.ChunkSize))
	}
	if c.World.ObstacleThreshold <= 0 {
		errs = append(errs, fmt.Errorf("world.obstacle_threshold must be positive, got %v", c.World.ObstacleThreshold))
	}
	if c.Player.MaxHealth <= 0 || c.Player.MaxFuel <= 0 {
		errs = append(errs, errors.New("player.max_health and player.max_fuel must be positive"))
	}
	if c.Player.StartingLives <= 0 {
		errs = append(errs, fmt.Errorf("player.starting_lives must be positive, got %d", c.Player.StartingLives))
	}
	if c.Combat.ProjectileDamage <= 0 || c.Enemy.ProjectileDamage <= 0 {
		errs = append(errs, errors.New("projectile damage must be positive"))
	}
	if len(c.Enemy.Variants) == 0 {
		errs = append(errs, errors.New("enemy.variants must not be empty"))
	}
	return errors.Join(errs...)
}
