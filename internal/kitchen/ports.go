package kitchen

import "github.com/vovakirdan/tui-kitchen/internal/core"

// Audio plays sound cues. Calls must not block.
type Audio interface {
	Play(s Sound)
	// Loop plays s repeatedly until the returned function is called.
	Loop(s Sound) (stop func())
	ToggleMute() bool
	Muted() bool
}

// Effects receives transient visual effects in logical surface coordinates.
type Effects interface {
	Effect(kind EffectKind, at core.Point)
}

type nopAudio struct{ muted bool }

func (*nopAudio) Play(Sound)        {}
func (*nopAudio) Loop(Sound) func() { return func() {} }
func (a *nopAudio) Muted() bool     { return a.muted }

func (a *nopAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

type nopEffects struct{}

func (nopEffects) Effect(EffectKind, core.Point) {}

var (
	_ Audio   = (*nopAudio)(nil)
	_ Effects = nopEffects{}
)
