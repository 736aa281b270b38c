package config

import (
	_ "embed"
)

//go:embed defaults/flap.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors defaults/flap.yaml
// and is used when the embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Viewport: Viewport{
			Width:  480,
			Height: 640,
		},
		Entity: Entity{
			X:           100,
			Width:       40,
			Height:      40,
			Gravity:     0.18,
			JumpImpulse: -4.5,
		},
		Obstacles: Obstacles{
			Width:         200,
			Gap:           250,
			Speed:         1.8,
			MinHeight:     50,
			SpawnInterval: 150,
		},
		Collision: Collision{
			Margin: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
		Audio: Audio{
			Enabled: true,
			Volume:  0.9,
		},
		Storage: Storage{
			Path:    "~/.flap/scores.db",
			BestKey: "highScore",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
