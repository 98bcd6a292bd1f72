package core

// Phase is the lifecycle stage of a pointer gesture.
type Phase int

const (
	PhaseNone  Phase = iota
	PhaseStart       // Button pressed / touch began
	PhaseMove        // Pointer moved while pressed
	PhaseEnd         // Button released / touch ended or cancelled
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "none"
	}
}

// RawKind is the device-level kind of a pointer event, before classification.
type RawKind int

const (
	RawDown RawKind = iota
	RawMotion
	RawUp
	RawCancel
)

// RawPointer is a pointer event in screen coordinates (terminal cells).
// HasCoord is false for events that carry no position, such as a cancelled touch.
type RawPointer struct {
	Kind     RawKind
	X, Y     int
	HasCoord bool
}

// PointerEvent is a translated pointer event in logical surface coordinates.
// Pos always holds the most recent known position; HasPos is false only when
// no position has ever been observed.
type PointerEvent struct {
	Phase  Phase
	Pos    Point
	HasPos bool
}

// Surface describes where the logical canvas is displayed on screen.
type Surface struct {
	Bounds   Rect    // Displayed area in screen cells
	LogicalW float64 // Logical canvas width
	LogicalH float64 // Logical canvas height
}

// Translator converts raw pointer events into logical lifecycle events.
// It remembers the last translated position so that events without
// coordinates (typically the end of a gesture) still report where the
// pointer was.
type Translator struct {
	surface Surface
	last    Point
	hasLast bool
}

// NewTranslator creates a translator for the given display surface.
func NewTranslator(s Surface) *Translator {
	return &Translator{surface: s}
}

// SetSurface updates the displayed surface, e.g. after a terminal resize.
// The last known position is kept in logical space and stays valid.
func (t *Translator) SetSurface(s Surface) {
	t.surface = s
}

// Surface returns the current display surface.
func (t *Translator) Surface() Surface {
	return t.surface
}

// ToLogical rescales a screen coordinate into logical surface space:
// logical = (screen - origin) * (logicalSize / displayedSize).
func (t *Translator) ToLogical(x, y int) Point {
	b := t.surface.Bounds
	var p Point
	if b.W > 0 {
		p.X = float64(x-b.X) * (t.surface.LogicalW / float64(b.W))
	}
	if b.H > 0 {
		p.Y = float64(y-b.Y) * (t.surface.LogicalH / float64(b.H))
	}
	return p
}

// ToScreen maps a logical point back to the screen cell that displays it.
func (t *Translator) ToScreen(p Point) (int, int) {
	b := t.surface.Bounds
	x, y := b.X, b.Y
	if t.surface.LogicalW > 0 {
		x += int(p.X * float64(b.W) / t.surface.LogicalW)
	}
	if t.surface.LogicalH > 0 {
		y += int(p.Y * float64(b.H) / t.surface.LogicalH)
	}
	return x, y
}

// Translate classifies a raw event and rescales its coordinate.
func (t *Translator) Translate(raw RawPointer) PointerEvent {
	if raw.HasCoord {
		t.last = t.ToLogical(raw.X, raw.Y)
		t.hasLast = true
	}

	return PointerEvent{
		Phase:  classify(raw.Kind),
		Pos:    t.last,
		HasPos: t.hasLast,
	}
}

// Last returns the most recent translated position.
func (t *Translator) Last() (Point, bool) {
	return t.last, t.hasLast
}

func classify(k RawKind) Phase {
	switch k {
	case RawDown:
		return PhaseStart
	case RawMotion:
		return PhaseMove
	case RawUp, RawCancel:
		return PhaseEnd
	default:
		return PhaseNone
	}
}
