package kitchen

import "math"

// Oscillator generates the cyclic phase of the timing mini-game.
type Oscillator struct {
	phase float64
	step  float64
	lo    float64
	hi    float64
}

// NewOscillator creates an oscillator that advances by step degrees per tick
// and reports a success window strictly inside (lo, hi).
func NewOscillator(step, lo, hi float64) *Oscillator {
	return &Oscillator{step: step, lo: lo, hi: hi}
}

// Reset moves the phase back to 0.
func (o *Oscillator) Reset() {
	o.phase = 0
}

// Tick advances the phase and returns the new phase and window flag.
func (o *Oscillator) Tick() (float64, bool) {
	o.phase = math.Mod(o.phase+o.step, 360)
	if o.phase < 0 {
		o.phase += 360
	}
	return o.phase, o.InWindow()
}

// Phase returns the current phase in degrees.
func (o *Oscillator) Phase() float64 {
	return o.phase
}

// InWindow reports whether the phase lies strictly inside the window.
func (o *Oscillator) InWindow() bool {
	return o.phase > o.lo && o.phase < o.hi
}

// Window returns the window bounds.
func (o *Oscillator) Window() (lo, hi float64) {
	return o.lo, o.hi
}
