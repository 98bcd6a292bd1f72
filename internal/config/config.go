// Package config provides YAML-based configuration loading for the kitchen:
// game tuning, difficulty presets and the recipe catalog.
package config

// KitchenConfig contains all configuration for the cooking game.
type KitchenConfig struct {
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Audio      AudioConfig      `yaml:"audio"`
	Storage    StorageConfig    `yaml:"storage"`
}

// GameplayConfig defines the mini-game tuning.
type GameplayConfig struct {
	TickRate       int     `yaml:"tick_rate"`        // Frames per second
	MixThreshold   float64 `yaml:"mix_threshold"`    // Radians of stirring per counted mix tick
	MixMultiplier  int     `yaml:"mix_multiplier"`   // Mix ticks per mix unit
	SwipeDistance  float64 `yaml:"swipe_distance"`   // Logical pixels
	DrawPoints     int     `yaml:"draw_points"`      // Points needed to finish a drawing
	HoldIntervalMS int     `yaml:"hold_interval_ms"` // Hold gauge tick period
	HoldIncrement  float64 `yaml:"hold_increment"`   // Gauge percent per tick
	HoldByDuration bool    `yaml:"hold_by_duration"` // Use each hold step's duration instead of hold_increment
	StepPauseMS    int     `yaml:"step_pause_ms"`    // Pause between steps
	DragRule       string  `yaml:"drag_rule"`        // "release" or "downward"
	DragDistance   float64 `yaml:"drag_distance"`
	WaitReward     int     `yaml:"wait_reward"`
	WaitPenalty    int     `yaml:"wait_penalty"`

	Oscillator OscillatorConfig `yaml:"oscillator"`
}

// OscillatorConfig defines the timing gauge of wait steps.
type OscillatorConfig struct {
	Step     float64 `yaml:"step"`      // Degrees per tick
	TickRate int     `yaml:"tick_rate"` // Ticks per second
	WindowLo float64 `yaml:"window_lo"` // Degrees, exclusive
	WindowHi float64 `yaml:"window_hi"` // Degrees, exclusive
}

// DifficultyConfig defines the difficulty preset and how the timing window
// tightens as the player earns stars.
type DifficultyConfig struct {
	Preset      DifficultyPreset  `yaml:"preset"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases with total stars.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "stars" or "none"
	MaxAt int    `yaml:"max_at"` // Total stars at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	WindowNarrowing float64 `yaml:"window_narrowing"` // Degrees removed from each side at max difficulty
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to oscillator speed at max difficulty
}

// AudioConfig defines sound output.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// StorageConfig defines where the profile is kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
