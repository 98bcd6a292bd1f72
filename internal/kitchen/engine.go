package kitchen

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-kitchen/internal/core"
)

// DragRule selects when a drag step completes.
type DragRule int

const (
	// DragOnRelease completes on any press-and-release gesture.
	DragOnRelease DragRule = iota
	// DragDownward also requires a downward displacement above DragDistance.
	DragDownward
)

// String returns the config name of the rule.
func (r DragRule) String() string {
	if r == DragDownward {
		return "downward"
	}
	return "release"
}

// Rules are the tunable constants of the step mini-games.
type Rules struct {
	MixThreshold       float64       // Minimum angular change per mix tick, radians
	MixMultiplier      int           // Mix ticks per nominal mix unit
	SwipeDistance      float64       // Minimum swipe displacement, logical px
	DrawPoints         int           // A drawing completes with more points than this
	HoldInterval       time.Duration // Hold gauge tick period
	HoldIncrement      float64       // Gauge percent per tick
	HoldByDuration     bool          // Fill a hold in the step's own duration when it has one
	DragRule           DragRule
	DragDistance       float64 // Downward displacement for DragDownward
	WaitReward         int
	WaitPenalty        int
	SurfaceW           float64
	SurfaceH           float64
	StepPause          time.Duration // Pause between a completed step and the next one
	OscillatorStep     float64       // Degrees per oscillator tick
	OscillatorInterval time.Duration
	WindowLo           float64
	WindowHi           float64
}

// DefaultRules returns the standard game tuning.
func DefaultRules() Rules {
	return Rules{
		MixThreshold:       0.1,
		MixMultiplier:      5,
		SwipeDistance:      50,
		DrawPoints:         20,
		HoldInterval:       50 * time.Millisecond,
		HoldIncrement:      2,
		DragRule:           DragOnRelease,
		DragDistance:       50,
		WaitReward:         10,
		WaitPenalty:        10,
		SurfaceW:           500,
		SurfaceH:           500,
		StepPause:          500 * time.Millisecond,
		OscillatorStep:     2,
		OscillatorInterval: time.Second / 60,
		WindowLo:           160,
		WindowHi:           200,
	}
}

// HoldAction tells the controller what to do with the hold ticker.
type HoldAction int

const (
	HoldUnchanged HoldAction = iota
	HoldStart
	HoldStop
)

// Result is the outcome of feeding one event to the engine. The engine never
// touches the session score or the collaborators; the controller applies the
// result.
type Result struct {
	Completed  bool
	Counted    bool // An action was counted toward completion
	ScoreDelta int
	Sound      Sound
	Effect     EffectKind
	Expression Expression // Empty keeps the current expression
	Message    string
	Hold       HoldAction
}

// Engine interprets pointer lifecycle events for the active step.
type Engine struct {
	rules Rules
}

// NewEngine creates an engine with the given rules.
func NewEngine(r Rules) *Engine {
	return &Engine{rules: r}
}

// Rules returns the engine's tuning.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Center returns the middle of the logical surface, the pivot for mixing.
func (e *Engine) Center() core.Point {
	return core.Point{X: e.rules.SurfaceW / 2, Y: e.rules.SurfaceH / 2}
}

// Handle applies ev to the progress of step. inWindow is the timing
// oscillator's current window flag and is only read for wait steps.
func (e *Engine) Handle(step Step, ev core.PointerEvent, p *StepProgress, inWindow bool) Result {
	if step == nil || p == nil || ev.Phase == core.PhaseNone {
		return Result{}
	}

	switch s := step.(type) {
	case TapStep:
		return e.tap(s, ev, p)
	case MixStep:
		return e.mix(s, ev, p)
	case DragStep:
		return e.drag(s, ev, p)
	case CutStep:
		return e.cut(s, ev, p)
	case HoldStep:
		return e.hold(ev, p)
	case DrawStep:
		return e.draw(ev, p)
	case WaitStep:
		return e.wait(ev, inWindow)
	default:
		return Result{}
	}
}

func (e *Engine) tap(s TapStep, ev core.PointerEvent, p *StepProgress) Result {
	if ev.Phase != core.PhaseStart {
		return Result{}
	}
	p.Actions++
	return Result{
		Counted:   true,
		Completed: p.Actions >= s.Required(),
		Sound:     CueFor(KindTap, s.Target),
		Effect:    EffectSparkle,
	}
}

func (e *Engine) mix(s MixStep, ev core.PointerEvent, p *StepProgress) Result {
	if ev.Phase != core.PhaseMove || !ev.HasPos {
		return Result{}
	}
	angle := ev.Pos.AngleFrom(e.Center())
	if math.Abs(angle-p.MixAngle) <= e.rules.MixThreshold {
		return Result{}
	}
	p.MixAngle = angle
	p.Actions++

	r := Result{
		Counted:   true,
		Completed: p.Actions >= s.Units()*max(e.rules.MixMultiplier, 1),
		Sound:     CueFor(KindMix, s.Target),
	}
	if p.Actions%max(e.rules.MixMultiplier, 1) == 0 {
		r.Effect = EffectSparkle
	}
	return r
}

func (e *Engine) drag(s DragStep, ev core.PointerEvent, p *StepProgress) Result {
	switch ev.Phase {
	case core.PhaseStart:
		if ev.HasPos {
			p.setOrigin(ev.Pos)
		}
		return Result{Expression: ExpressionExcited}
	case core.PhaseEnd:
		origin, ok := p.Origin()
		if !ok {
			return Result{}
		}
		p.clearOrigin()
		if e.rules.DragRule == DragDownward && ev.Pos.Y-origin.Y <= e.rules.DragDistance {
			return Result{Message: "Drag it further down!"}
		}
		return Result{
			Counted:   true,
			Completed: true,
			Sound:     CueFor(KindDrag, s.Target),
			Effect:    EffectSparkle,
		}
	}
	return Result{}
}

func (e *Engine) cut(s CutStep, ev core.PointerEvent, p *StepProgress) Result {
	switch ev.Phase {
	case core.PhaseStart:
		if ev.HasPos {
			p.setOrigin(ev.Pos)
		}
	case core.PhaseEnd:
		origin, ok := p.Origin()
		if !ok {
			return Result{}
		}
		p.clearOrigin()
		d := ev.Pos.Sub(origin)
		if math.Abs(d.X) <= e.rules.SwipeDistance && math.Abs(d.Y) <= e.rules.SwipeDistance {
			return Result{}
		}
		p.Actions++
		return Result{
			Counted:   true,
			Completed: p.Actions >= s.Required(),
			Sound:     CueFor(KindCut, s.Target),
			Effect:    EffectSparkle,
		}
	}
	return Result{}
}

func (e *Engine) hold(ev core.PointerEvent, p *StepProgress) Result {
	switch ev.Phase {
	case core.PhaseStart:
		p.Hold = 0
		p.Holding = true
		return Result{Hold: HoldStart, Expression: ExpressionNervous}
	case core.PhaseEnd:
		if !p.Holding {
			return Result{}
		}
		p.Holding = false
		return Result{Hold: HoldStop, Expression: ExpressionNormal, Message: "Keep holding!"}
	}
	return Result{}
}

// HoldTick advances the hold gauge by one tick. The gauge rises by
// HoldIncrement per tick; with HoldByDuration a step that sets Duration
// fills in exactly that time instead.
func (e *Engine) HoldTick(s HoldStep, p *StepProgress) Result {
	if p == nil || !p.Holding {
		return Result{}
	}

	inc := e.rules.HoldIncrement
	if e.rules.HoldByDuration && s.Duration > 0 && e.rules.HoldInterval > 0 {
		inc = 100 * float64(e.rules.HoldInterval) / float64(s.Duration)
	}
	p.Hold = math.Min(p.Hold+inc, 100)
	if p.Hold < 100 {
		return Result{}
	}

	p.Holding = false
	return Result{
		Counted:    true,
		Completed:  true,
		Hold:       HoldStop,
		Expression: ExpressionHappy,
	}
}

func (e *Engine) draw(ev core.PointerEvent, p *StepProgress) Result {
	switch ev.Phase {
	case core.PhaseStart, core.PhaseMove:
		if !ev.HasPos {
			return Result{}
		}
		p.Points = append(p.Points, ev.Pos)
		r := Result{Counted: true}
		if len(p.Points)%5 == 1 {
			r.Sound = CueFor(KindDraw, TargetUnknown)
		}
		return r
	case core.PhaseEnd:
		if len(p.Points) > e.rules.DrawPoints {
			return Result{Completed: true, Effect: EffectSparkle}
		}
		return Result{Message: "Draw a bit more!"}
	}
	return Result{}
}

func (e *Engine) wait(ev core.PointerEvent, inWindow bool) Result {
	if ev.Phase != core.PhaseStart {
		return Result{}
	}
	if inWindow {
		return Result{
			Counted:    true,
			Completed:  true,
			ScoreDelta: e.rules.WaitReward,
			Sound:      CueFor(KindWait, TargetUnknown),
			Effect:     EffectSparkle,
			Expression: ExpressionSparkle,
			Message:    "Perfect timing!",
		}
	}
	return Result{
		ScoreDelta: -e.rules.WaitPenalty,
		Sound:      SoundPop,
		Expression: ExpressionThinking,
		Message:    "So close!",
	}
}
