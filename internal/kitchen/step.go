package kitchen

import (
	"fmt"
	"time"
)

// Kind is the interaction kind of a step.
type Kind int

const (
	KindUnknown Kind = iota
	KindTap
	KindMix
	KindDrag
	KindCut
	KindHold
	KindDraw
	KindWait
)

// String returns the catalog name of the kind.
func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindMix:
		return "mix"
	case KindDrag:
		return "drag"
	case KindCut:
		return "cut"
	case KindHold:
		return "hold"
	case KindDraw:
		return "draw"
	case KindWait:
		return "wait"
	default:
		return "unknown"
	}
}

// Hint returns a short description of the gesture a kind expects.
func (k Kind) Hint() string {
	switch k {
	case KindTap:
		return "click"
	case KindMix:
		return "drag in circles"
	case KindDrag:
		return "press and release"
	case KindCut:
		return "swipe"
	case KindHold:
		return "press and hold"
	case KindDraw:
		return "drag to draw"
	case KindWait:
		return "click in the zone"
	default:
		return ""
	}
}

// ParseKind resolves a catalog kind name. "swipe" and "timing" are accepted
// as aliases for cut and wait.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "tap":
		return KindTap, nil
	case "mix":
		return KindMix, nil
	case "drag":
		return KindDrag, nil
	case "cut", "swipe":
		return KindCut, nil
	case "hold":
		return KindHold, nil
	case "draw":
		return KindDraw, nil
	case "wait", "timing":
		return KindWait, nil
	default:
		return KindUnknown, fmt.Errorf("kitchen: unknown step kind %q", name)
	}
}

// Step is one mini-game within a recipe. The set of implementations is
// closed: TapStep, MixStep, DragStep, CutStep, HoldStep, DrawStep, WaitStep.
type Step interface {
	Info() StepInfo
	Kind() Kind
	sealed()
}

// StepInfo holds the fields shared by every step kind.
type StepInfo struct {
	ID          string
	Target      Target
	Instruction string
}

// Info returns the shared step fields.
func (i StepInfo) Info() StepInfo { return i }

func (StepInfo) sealed() {}

// TapStep completes after Count presses.
type TapStep struct {
	StepInfo
	Count int
}

// MixStep completes after Count mix units of circular stirring.
type MixStep struct {
	StepInfo
	Count int
}

// DragStep completes on a press-and-release gesture.
type DragStep struct {
	StepInfo
}

// CutStep completes after Count swipes.
type CutStep struct {
	StepInfo
	Count int
}

// HoldStep completes when the pointer is held long enough to fill the gauge.
// Duration is the hold time the recipe suggests. The engine only uses it
// when Rules.HoldByDuration is set.
type HoldStep struct {
	StepInfo
	Duration time.Duration
}

// DrawStep completes when enough points have been drawn.
type DrawStep struct {
	StepInfo
}

// WaitStep completes when the player clicks inside the timing window.
type WaitStep struct {
	StepInfo
}

func (TapStep) Kind() Kind  { return KindTap }
func (MixStep) Kind() Kind  { return KindMix }
func (DragStep) Kind() Kind { return KindDrag }
func (CutStep) Kind() Kind  { return KindCut }
func (HoldStep) Kind() Kind { return KindHold }
func (DrawStep) Kind() Kind { return KindDraw }
func (WaitStep) Kind() Kind { return KindWait }

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Required returns the number of presses needed.
func (s TapStep) Required() int { return atLeastOne(s.Count) }

// Required returns the number of swipes needed.
func (s CutStep) Required() int { return atLeastOne(s.Count) }

// Units returns the nominal number of mix units.
func (s MixStep) Units() int { return atLeastOne(s.Count) }

// NewStep builds the variant for kind. count applies to tap, mix and cut,
// duration applies to hold; both are ignored for other kinds.
func NewStep(kind Kind, info StepInfo, count int, duration time.Duration) (Step, error) {
	switch kind {
	case KindTap:
		return TapStep{StepInfo: info, Count: count}, nil
	case KindMix:
		return MixStep{StepInfo: info, Count: count}, nil
	case KindDrag:
		return DragStep{StepInfo: info}, nil
	case KindCut:
		return CutStep{StepInfo: info, Count: count}, nil
	case KindHold:
		return HoldStep{StepInfo: info, Duration: duration}, nil
	case KindDraw:
		return DrawStep{StepInfo: info}, nil
	case KindWait:
		return WaitStep{StepInfo: info}, nil
	default:
		return nil, fmt.Errorf("kitchen: step %q has no kind", info.ID)
	}
}
