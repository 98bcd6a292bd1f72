package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// ParseDragRule resolves a drag rule name. An empty name means release.
func ParseDragRule(name string) (kitchen.DragRule, error) {
	switch name {
	case "", "release":
		return kitchen.DragOnRelease, nil
	case "downward":
		return kitchen.DragDownward, nil
	default:
		return kitchen.DragOnRelease, fmt.Errorf("unknown drag rule %q (want release or downward)", name)
	}
}

// Rules converts the gameplay settings into engine rules for a player with
// totalStars. Zero values keep the engine defaults.
func (c KitchenConfig) Rules(totalStars int) (kitchen.Rules, error) {
	r := kitchen.DefaultRules()
	g := c.Gameplay

	if g.MixThreshold > 0 {
		r.MixThreshold = g.MixThreshold
	}
	if g.MixMultiplier > 0 {
		r.MixMultiplier = g.MixMultiplier
	}
	if g.SwipeDistance > 0 {
		r.SwipeDistance = g.SwipeDistance
	}
	if g.DrawPoints > 0 {
		r.DrawPoints = g.DrawPoints
	}
	if g.HoldIntervalMS > 0 {
		r.HoldInterval = time.Duration(g.HoldIntervalMS) * time.Millisecond
	}
	if g.HoldIncrement > 0 {
		r.HoldIncrement = g.HoldIncrement
	}
	if g.StepPauseMS > 0 {
		r.StepPause = time.Duration(g.StepPauseMS) * time.Millisecond
	}
	if g.DragDistance > 0 {
		r.DragDistance = g.DragDistance
	}
	if g.WaitReward > 0 {
		r.WaitReward = g.WaitReward
	}
	if g.WaitPenalty > 0 {
		r.WaitPenalty = g.WaitPenalty
	}

	r.HoldByDuration = g.HoldByDuration

	rule, err := ParseDragRule(g.DragRule)
	if err != nil {
		return r, err
	}
	r.DragRule = rule

	osc := g.Oscillator
	if osc.TickRate > 0 {
		r.OscillatorInterval = time.Second / time.Duration(osc.TickRate)
	}
	if osc.Step > 0 {
		r.OscillatorStep = osc.Step
	}
	if osc.WindowLo != 0 || osc.WindowHi != 0 {
		if osc.WindowLo < 0 || osc.WindowHi > 360 || osc.WindowLo >= osc.WindowHi {
			return r, fmt.Errorf("invalid timing window (%g, %g)", osc.WindowLo, osc.WindowHi)
		}
		r.WindowLo, r.WindowHi = osc.WindowLo, osc.WindowHi
	}

	dm := NewDifficultyManager(c.Difficulty)
	r.WindowLo, r.WindowHi = dm.Window(r.WindowLo, r.WindowHi, totalStars)
	r.OscillatorStep = dm.Step(r.OscillatorStep, totalStars)
	return r, nil
}
