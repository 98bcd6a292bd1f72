package config

import (
	_ "embed"
)

//go:embed defaults/kitchen.yaml
var defaultKitchenYAML []byte

//go:embed defaults/recipes.yaml
var defaultRecipesYAML []byte

// DefaultKitchenConfig returns the default kitchen configuration.
func DefaultKitchenConfig() KitchenConfig {
	return KitchenConfig{
		Gameplay: GameplayConfig{
			TickRate:       60,
			MixThreshold:   0.1,
			MixMultiplier:  5,
			SwipeDistance:  50,
			DrawPoints:     20,
			HoldIntervalMS: 50,
			HoldIncrement:  2,
			StepPauseMS:    500,
			DragRule:       "release",
			DragDistance:   50,
			WaitReward:     10,
			WaitPenalty:    10,
			Oscillator: OscillatorConfig{
				Step:     2,
				TickRate: 60,
				WindowLo: 160,
				WindowHi: 200,
			},
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Progression: ProgressionConfig{
				Type:  "stars",
				MaxAt: 18, // Every recipe at three stars
			},
			Scaling: ScalingConfig{
				WindowNarrowing: 5,
				SpeedMultiplier: 0.25,
			},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Storage: StorageConfig{
			Path: "~/.kitchen/kitchen.db",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config file name
// ("kitchen" or "recipes").
func GetDefaultYAML(name string) []byte {
	switch name {
	case "kitchen":
		return defaultKitchenYAML
	case "recipes":
		return defaultRecipesYAML
	default:
		return nil
	}
}
