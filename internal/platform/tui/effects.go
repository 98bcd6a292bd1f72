package tui

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-kitchen/internal/core"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

var _ kitchen.Effects = (*EffectLayer)(nil)

// Effect lifetimes.
const (
	sparkleTTL  = 300 * time.Millisecond
	burstTTL    = 500 * time.Millisecond
	confettiTTL = 1500 * time.Millisecond
	confettiN   = 24
)

var confettiColors = []core.Color{
	core.ColorRed, core.ColorYellow, core.ColorGreen,
	core.ColorCyan, core.ColorMagenta, core.ColorPink,
}

// particle is one glyph of a visual effect, positioned in logical
// coordinates.
type particle struct {
	kind  kitchen.EffectKind
	pos   core.Point
	vel   core.Point // Logical px per second
	glyph rune
	color core.Color
	age   time.Duration
	ttl   time.Duration
}

// EffectLayer collects the short-lived sparkles, bursts and confetti the
// controller emits and draws them over the cooking board.
type EffectLayer struct {
	particles []particle
	rng       *rand.Rand
}

// NewEffectLayer creates an empty effect layer.
func NewEffectLayer(seed int64) *EffectLayer {
	return &EffectLayer{rng: rand.New(rand.NewSource(seed))}
}

// Effect spawns the particles of one effect at a logical position.
func (l *EffectLayer) Effect(kind kitchen.EffectKind, at core.Point) {
	switch kind {
	case kitchen.EffectSparkle:
		l.particles = append(l.particles, particle{
			kind: kind, pos: at, glyph: '✦', color: core.ColorYellow, ttl: sparkleTTL,
		})
	case kitchen.EffectBurst:
		for i := range 8 {
			a := float64(i) * math.Pi / 4
			l.particles = append(l.particles, particle{
				kind:  kind,
				pos:   at,
				vel:   core.Point{X: math.Cos(a) * 160, Y: math.Sin(a) * 160},
				glyph: '*',
				color: core.ColorOrange,
				ttl:   burstTTL,
			})
		}
	case kitchen.EffectConfetti:
		for i := range confettiN {
			l.particles = append(l.particles, particle{
				kind:  kind,
				pos:   core.Point{X: l.rng.Float64() * 500, Y: -l.rng.Float64() * 100},
				vel:   core.Point{X: (l.rng.Float64() - 0.5) * 60, Y: 150 + l.rng.Float64()*150},
				glyph: []rune{'*', '•', '+', '~'}[i%4],
				color: confettiColors[i%len(confettiColors)],
				ttl:   confettiTTL,
			})
		}
	}
}

// Advance ages and moves every particle, dropping the expired ones.
func (l *EffectLayer) Advance(dt time.Duration) {
	secs := dt.Seconds()
	live := l.particles[:0]
	for _, p := range l.particles {
		p.age += dt
		if p.age >= p.ttl {
			continue
		}
		p.pos.X += p.vel.X * secs
		p.pos.Y += p.vel.Y * secs
		live = append(live, p)
	}
	l.particles = live
}

// Len returns the number of live particles.
func (l *EffectLayer) Len() int {
	return len(l.particles)
}

// Clear removes every particle.
func (l *EffectLayer) Clear() {
	l.particles = l.particles[:0]
}

// Draw renders the particles that fall inside clip. toCell maps a logical
// point to a screen cell.
func (l *EffectLayer) Draw(s *core.Screen, clip core.Rect, toCell func(core.Point) (int, int)) {
	for _, p := range l.particles {
		if p.pos.Y < 0 {
			continue
		}
		x, y := toCell(p.pos)
		if !clip.Contains(x, y) {
			continue
		}
		s.SetColored(x, y, p.glyph, p.color)
	}
}
