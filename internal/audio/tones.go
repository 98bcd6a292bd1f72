// Package audio synthesizes the kitchen's sound cues with beep.
package audio

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

const (
	// NoteSpacing separates the notes of a melody.
	NoteSpacing = 150 * time.Millisecond
	startGain   = 0.3
	endGain     = 0.01
)

// Tone describes one cue: a single note, or a melody of notes that share
// duration and wave.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Melody   []float64
}

// Notes returns the frequencies to play.
func (t Tone) Notes() []float64 {
	if len(t.Melody) > 0 {
		return t.Melody
	}
	return []float64{t.Freq}
}

// Length returns the total playing time of the tone.
func (t Tone) Length() time.Duration {
	return time.Duration(len(t.Notes())-1)*NoteSpacing + t.Duration
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// tones is indexed by kitchen.Sound; its length is tied to the enum.
var tones = [kitchen.SoundCount]Tone{
	kitchen.SoundNone:     {},
	kitchen.SoundTap:      {Freq: 800, Duration: ms(100), Wave: WaveSine},
	kitchen.SoundSuccess:  {Freq: 523, Duration: ms(300), Wave: WaveSine, Melody: []float64{523, 659, 784}},
	kitchen.SoundMix:      {Freq: 200, Duration: ms(50), Wave: WaveTriangle},
	kitchen.SoundCut:      {Freq: 1200, Duration: ms(80), Wave: WaveSaw},
	kitchen.SoundSizzle:   {Freq: 150, Duration: ms(150), Wave: WaveSaw},
	kitchen.SoundPour:     {Freq: 300, Duration: ms(200), Wave: WaveSine},
	kitchen.SoundPop:      {Freq: 400, Duration: ms(150), Wave: WaveSquare},
	kitchen.SoundStar:     {Freq: 880, Duration: ms(200), Wave: WaveSine},
	kitchen.SoundComplete: {Freq: 523, Duration: ms(500), Wave: WaveSine, Melody: []float64{523, 659, 784, 1047}},
	kitchen.SoundYay:      {Freq: 659, Duration: ms(400), Wave: WaveSine, Melody: []float64{659, 784, 880, 1047}},
	kitchen.SoundYum:      {Freq: 523, Duration: ms(300), Wave: WaveSine, Melody: []float64{523, 659}},
	kitchen.SoundCrack:    {Freq: 1000, Duration: ms(100), Wave: WaveSquare},
	kitchen.SoundCheer:    {Freq: 784, Duration: ms(250), Wave: WaveSine, Melody: []float64{784, 880, 1047, 880}},
}

// ToneFor returns the tone of a sound cue.
func ToneFor(s kitchen.Sound) (Tone, bool) {
	if s <= kitchen.SoundNone || int(s) >= len(tones) {
		return Tone{}, false
	}
	return tones[s], true
}

// voice is a single decaying note.
type voice struct {
	freq     float64
	phase    float64
	wave     Wave
	rate     beep.SampleRate
	position int
	total    int
	decay    float64 // Per-sample gain multiplier
	gain     float64
}

// newVoice creates a note whose gain falls exponentially from 0.3 to 0.01
// over its duration.
func newVoice(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *voice {
	total := max(rate.N(d), 1)
	return &voice{
		freq:  freq,
		wave:  wave,
		rate:  rate,
		total: total,
		gain:  startGain,
		decay: math.Pow(endGain/startGain, 1/float64(total)),
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.position >= v.total {
			return i, i > 0
		}

		val := v.gain * waveSample(v.wave, v.phase)
		samples[i][0] = val
		samples[i][1] = val

		v.phase += v.freq / float64(v.rate)
		v.phase -= math.Floor(v.phase)
		v.gain *= v.decay
		v.position++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

func waveSample(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// build renders a tone as a streamer. Melody notes start NoteSpacing apart.
func build(t Tone, rate beep.SampleRate) beep.Streamer {
	notes := t.Notes()
	if len(notes) == 1 {
		return newVoice(notes[0], t.Duration, t.Wave, rate)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for i, f := range notes {
		parts = append(parts, beep.Seq(
			beep.Silence(rate.N(time.Duration(i)*NoteSpacing)),
			newVoice(f, t.Duration, t.Wave, rate),
		))
	}
	return beep.Mix(parts...)
}

// sizzle is endless filtered noise for the hold mini-game. It streams
// silence while muted is set, so muting takes effect on a running loop.
type sizzle struct {
	last  float64
	gain  float64
	muted *atomic.Bool
}

func (s *sizzle) Stream(samples [][2]float64) (n int, ok bool) {
	silent := s.muted != nil && s.muted.Load()
	for i := range samples {
		// One-pole smoothing takes the harsh top off white noise.
		s.last = 0.6*s.last + 0.4*(rand.Float64()*2-1)
		val := s.gain * s.last
		if silent {
			val = 0
		}
		samples[i][0] = val
		samples[i][1] = val
	}
	return len(samples), true
}

func (s *sizzle) Err() error { return nil }
