// Package tui provides the Bubble Tea integration for the kitchen.
// It handles the terminal UI loop, mouse translation and screen flow.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameStep caps the time advanced by one frame so a stalled terminal
// does not fire a burst of hold and oscillator ticks.
const maxFrameStep = 100 * time.Millisecond

// TickMsg is sent to advance the kitchen clock by one frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameStep returns the time elapsed since the previous frame, clamped to
// (0, maxFrameStep]. The first frame advances one nominal interval.
func frameStep(prev, now time.Time, tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	nominal := time.Second / time.Duration(tickRate)
	if prev.IsZero() {
		return nominal
	}
	dt := now.Sub(prev)
	if dt <= 0 {
		return nominal
	}
	return min(dt, maxFrameStep)
}
