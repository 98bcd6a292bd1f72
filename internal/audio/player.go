package audio

import (
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

const sampleRate = beep.SampleRate(48000)

// Compile-time interface checks.
var (
	_ kitchen.Audio = (*Player)(nil)
	_ kitchen.Audio = (*Nop)(nil)
)

// Player plays sound cues through the system speaker. Until Open succeeds
// every call is silently ignored, so a machine without audio still plays.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	volume float64
	muted  atomic.Bool
	opened bool
	logger *log.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithVolume sets the initial volume in [0,1].
func WithVolume(v float64) Option {
	return func(p *Player) { p.volume = clampVolume(v) }
}

// WithMuted starts the player muted.
func WithMuted(m bool) Option {
	return func(p *Player) { p.muted.Store(m) }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPlayer creates a closed player.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		mixer:  &beep.Mixer{},
		rate:   sampleRate,
		volume: 0.5,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open initializes the speaker and starts the mixer.
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.opened {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.opened = true
	p.logger.Debug("audio opened", "rate", int(p.rate), "volume", p.volume)
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.opened {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.mixer = &beep.Mixer{}
	p.opened = false
	return nil
}

// Play starts a cue and returns immediately.
func (p *Player) Play(s kitchen.Sound) {
	if p.muted.Load() {
		return
	}
	t, ok := ToneFor(s)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return
	}
	speaker.Lock()
	p.mixer.Add(volumeOf(build(t, p.rate), p.volume))
	speaker.Unlock()
}

// Loop plays the sizzle noise until stop is called. Only SoundSizzle loops;
// any other sound plays once.
func (p *Player) Loop(s kitchen.Sound) (stop func()) {
	if s != kitchen.SoundSizzle {
		p.Play(s)
		return func() {}
	}
	if p.muted.Load() {
		return func() {}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return func() {}
	}

	ctrl := &beep.Ctrl{Streamer: &sizzle{gain: startGain, muted: &p.muted}}
	speaker.Lock()
	p.mixer.Add(volumeOf(ctrl, p.volume))
	speaker.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			speaker.Lock()
			ctrl.Streamer = nil
			speaker.Unlock()
		})
	}
}

// ToggleMute flips the mute flag and returns the new state. A running sizzle
// loop goes quiet while muted.
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	return p.muted.Load()
}

// SetVolume sets the volume for sounds started afterwards.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	p.volume = clampVolume(v)
	p.mu.Unlock()
}

// Volume returns the current volume.
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func clampVolume(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// volumeOf scales s by v; math.Log2(0) is -Inf, so zero is explicit silence.
func volumeOf(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Nop is a silent kitchen.Audio that still tracks the mute flag.
type Nop struct {
	muted atomic.Bool
}

func (*Nop) Play(kitchen.Sound)        {}
func (*Nop) Loop(kitchen.Sound) func() { return func() {} }
func (n *Nop) Muted() bool             { return n.muted.Load() }

func (n *Nop) ToggleMute() bool {
	m := !n.muted.Load()
	n.muted.Store(m)
	return m
}
