package kitchen

import "github.com/vovakirdan/tui-kitchen/internal/core"

// StepProgress is the transient state of the active step. Only the fields
// relevant to the active step's kind are read; the controller replaces the
// whole value on every step transition.
type StepProgress struct {
	Actions  int          // Counted actions (taps, mix ticks, swipes)
	MixAngle float64      // Last counted mix angle, radians
	Points   []core.Point // Drawn points, oldest first
	Hold     float64      // Hold gauge, 0..100
	Holding  bool
	Phase    float64 // Timing phase, degrees [0,360)
	InWindow bool    // Timing phase inside the success window

	origin    core.Point // Drag or swipe start
	hasOrigin bool
}

// Origin returns the recorded drag or swipe start, if any.
func (p *StepProgress) Origin() (core.Point, bool) {
	return p.origin, p.hasOrigin
}

func (p *StepProgress) setOrigin(pt core.Point) {
	p.origin = pt
	p.hasOrigin = true
}

func (p *StepProgress) clearOrigin() {
	p.origin = core.Point{}
	p.hasOrigin = false
}
