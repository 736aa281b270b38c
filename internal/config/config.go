// Package config provides YAML-based game configuration loading and
// difficulty management for flap.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunables of the game and its platform adapters.
type Config struct {
	Viewport   Viewport         `yaml:"viewport"`
	Entity     Entity           `yaml:"entity"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Collision  Collision        `yaml:"collision"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Assets     Assets           `yaml:"assets"`
	Audio      Audio            `yaml:"audio"`
	Storage    Storage          `yaml:"storage"`
}

// Viewport is the fixed logical size of the playfield in world units.
// Platforms scale it to the window or terminal, preserving aspect ratio.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Entity defines the falling actor.
type Entity struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // Velocity set by a jump (negative = up)
}

// Obstacles defines the obstacle stream.
type Obstacles struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`            // Vertical opening between top and bottom segment
	Speed         float64 `yaml:"speed"`          // World units moved left per tick
	MinHeight     float64 `yaml:"min_height"`     // Minimum height of either segment
	SpawnInterval int     `yaml:"spawn_interval"` // Ticks between spawns
}

// Collision defines hitbox tuning.
type Collision struct {
	Margin float64 `yaml:"margin"` // Inward margin applied to the entity box
}

// Assets lists optional sprite images. Empty paths use vector fallbacks.
type Assets struct {
	EntitySprite   string `yaml:"entity_sprite"`
	ObstacleSprite string `yaml:"obstacle_sprite"`
}

// Audio configures music. Empty track paths use synthesized tracks.
type Audio struct {
	Enabled       bool    `yaml:"enabled"`
	MusicTrack    string  `yaml:"music_track"`
	GameOverTrack string  `yaml:"game_over_track"`
	Volume        float64 `yaml:"volume"` // 0.0 to 1.0
}

// Storage configures best score persistence.
type Storage struct {
	Path    string `yaml:"path"`
	BestKey string `yaml:"best_key"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name yields DifficultyFixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty preset %q", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}

// Validate rejects configurations that cannot produce a playable field.
func (c Config) Validate() error {
	var errs []error

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Entity.Width <= 0 || c.Entity.Height <= 0 {
		errs = append(errs, errors.New("entity size must be positive"))
	}
	if c.Entity.Height > c.Viewport.Height {
		errs = append(errs, errors.New("entity is taller than the viewport"))
	}
	if c.Entity.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("jump_impulse must be negative (upward), got %v", c.Entity.JumpImpulse))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Gap <= 0 {
		errs = append(errs, errors.New("obstacle width and gap must be positive"))
	}
	if c.Obstacles.MinHeight < 0 {
		errs = append(errs, errors.New("obstacle min_height must not be negative"))
	}
	if c.Obstacles.Gap+2*c.Obstacles.MinHeight > c.Viewport.Height {
		errs = append(errs, fmt.Errorf("gap %v plus two segments of %v does not fit height %v",
			c.Obstacles.Gap, c.Obstacles.MinHeight, c.Viewport.Height))
	}
	if c.Obstacles.Speed <= 0 {
		errs = append(errs, errors.New("obstacle speed must be positive"))
	}
	if c.Obstacles.SpawnInterval <= 0 {
		errs = append(errs, errors.New("obstacle spawn_interval must be positive"))
	}
	if c.Collision.Margin < 0 || 2*c.Collision.Margin >= min(c.Entity.Width, c.Entity.Height) {
		errs = append(errs, fmt.Errorf("collision margin %v does not fit the entity", c.Collision.Margin))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume must be within [0, 1], got %v", c.Audio.Volume))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
