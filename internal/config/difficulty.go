package config

import (
	"fmt"
	"math"
)

// minWindow is the narrowest timing window progression may produce, in degrees.
const minWindow = 10

// ParseDifficultyPreset resolves a preset name. An empty name means normal.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset. Fixed keeps
// the configured oscillator and disables progression.
func ApplyPreset(cfg *KitchenConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	osc := &cfg.Gameplay.Oscillator

	switch preset {
	case DifficultyEasy:
		osc.WindowLo, osc.WindowHi = 150, 210
		osc.Step = 1.5
	case DifficultyNormal:
		osc.WindowLo, osc.WindowHi = 160, 200
		osc.Step = 2
	case DifficultyHard:
		osc.WindowLo, osc.WindowHi = 165, 195
		osc.Step = 3
	}
}

// DifficultyManager calculates the timing gauge based on the player's stars.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return !IsFixedPreset(d.cfg.Preset) && d.cfg.Progression.Type == "stars"
}

// Level returns the current difficulty level (0.0 to 1.0) for a star total.
func (d *DifficultyManager) Level(totalStars int) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	return clampF(float64(totalStars)/maxAt, 0.0, 1.0)
}

// Window returns the timing window for a star total. The window shrinks
// symmetrically but never below minWindow degrees.
func (d *DifficultyManager) Window(lo, hi float64, totalStars int) (float64, float64) {
	cut := d.Level(totalStars) * d.cfg.Scaling.WindowNarrowing
	maxCut := math.Max(0, (hi-lo-minWindow)/2)
	cut = math.Min(cut, maxCut)
	return lo + cut, hi - cut
}

// Step returns the oscillator step for a star total.
func (d *DifficultyManager) Step(baseStep float64, totalStars int) float64 {
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseStep * (1.0 + d.Level(totalStars)*d.cfg.Scaling.SpeedMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
