package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-kitchen/internal/core"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// Rows reserved above and below the cooking board.
const (
	headerLines = 3
	footerLines = 3
	minGridH    = 8
	minBoardW   = 20
)

// layout places the cooking board on the terminal. The board grid sits
// between the header and footer; board and inner are in grid coordinates.
type layout struct {
	width int
	gridH int
	board core.Rect
	inner core.Rect
}

// computeLayout sizes the board for a terminal. Cells are roughly twice as
// tall as wide, so the board is twice as wide as it is tall.
func computeLayout(w, h int) layout {
	gridH := max(h-headerLines-footerLines, minGridH)
	bw := min(max(w-2, minBoardW), gridH*2+2)
	board := core.NewRect(max((w-bw)/2, 0), 0, bw, gridH)
	return layout{
		width: max(w, bw),
		gridH: gridH,
		board: board,
		inner: board.Inset(1),
	}
}

// surface returns the display surface for pointer translation in terminal
// coordinates.
func (l layout) surface(r kitchen.Rules) core.Surface {
	b := l.inner
	b.Y += headerLines
	return core.Surface{Bounds: b, LogicalW: r.SurfaceW, LogicalH: r.SurfaceH}
}

// drawScene renders the active step onto the board grid.
func drawScene(s *core.Screen, l layout, snap kitchen.Snapshot, toCell func(core.Point) (int, int), fx *EffectLayer) {
	s.Clear()
	s.DrawBox(l.board, core.ColorGray)
	in := l.inner
	if in.W <= 0 || in.H <= 0 {
		return
	}
	cx, cy := in.Center()

	switch {
	case snap.State == kitchen.StateFinished:
		s.DrawTextCentered(in, cy, "Done!", core.ColorYellow)
	case snap.Step == nil:
		s.DrawTextCentered(in, cy, "Pick a recipe", core.ColorGray)
	case snap.Settling:
		s.DrawTextCentered(in, cy-1, "✓", core.ColorGreen)
		s.DrawTextCentered(in, cy+1, "Next: "+snap.Step.Info().Instruction, core.ColorGray)
	default:
		info := snap.Step.Info()
		drawTarget(s, cx, in.Y+in.H/3, info.Target)
		drawStep(s, in, snap, toCell)
	}

	if fx != nil {
		fx.Draw(s, in, toCell)
	}
}

// drawTarget draws a small glyph blob for the ingredient with its label.
func drawTarget(s *core.Screen, cx, cy int, t kitchen.Target) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -3; dx <= 3; dx++ {
			if (dx == -3 || dx == 3) && dy != 0 {
				continue
			}
			s.SetColored(cx+dx, cy+dy, t.Glyph(), t.Color())
		}
	}
	label := t.Label()
	s.DrawText(cx-len([]rune(label))/2, cy+2, label, core.ColorWhite)
}

func drawStep(s *core.Screen, in core.Rect, snap kitchen.Snapshot, toCell func(core.Point) (int, int)) {
	p := snap.Progress
	r := snap.Rules
	row := in.Bottom() - 2
	barW := min(in.W-4, 40)

	switch st := snap.Step.(type) {
	case kitchen.TapStep:
		s.DrawTextCentered(in, row, dots(p.Actions, st.Required()), core.ColorYellow)
	case kitchen.MixStep:
		drawMixRing(s, in, p.MixAngle, p.Actions > 0)
		total := st.Units() * max(r.MixMultiplier, 1)
		drawBar(s, in, row, barW, float64(p.Actions)/float64(total), core.ColorCream)
	case kitchen.DragStep:
		hint := "Press, then release"
		if r.DragRule == kitchen.DragDownward {
			hint = "Press, drag down, release"
		}
		if origin, ok := p.Origin(); ok {
			x, y := toCell(origin)
			s.SetColored(x, y, '▼', core.ColorOrange)
			hint = "Let go to pour!"
		}
		s.DrawTextCentered(in, row, hint, core.ColorGray)
	case kitchen.CutStep:
		if origin, ok := p.Origin(); ok {
			x, y := toCell(origin)
			s.SetColored(x, y, '+', core.ColorWhite)
		}
		s.DrawTextCentered(in, row, fmt.Sprintf("Swipes %d/%d", p.Actions, st.Required()), core.ColorGray)
	case kitchen.HoldStep:
		c := core.ColorGray
		if p.Holding {
			c = core.ColorOrange
			s.DrawTextCentered(in, row-1, "Sizzle sizzle...", core.ColorOrange)
		}
		drawBar(s, in, row, barW, p.Hold/100, c)
	case kitchen.DrawStep:
		for _, pt := range p.Points {
			x, y := toCell(pt)
			if in.Contains(x, y) {
				s.SetColored(x, y, '•', snap.Step.Info().Target.Color())
			}
		}
		s.DrawTextCentered(in, row, fmt.Sprintf("%d/%d", len(p.Points), r.DrawPoints+1), core.ColorGray)
	case kitchen.WaitStep:
		drawTimingGauge(s, in, row, barW, p.Phase, snap.WindowLo, snap.WindowHi)
		if p.InWindow {
			s.DrawTextCentered(in, row-2, "NOW!", core.ColorGreen)
		}
	}
}

// dots renders a tap counter such as "● ● ○".
func dots(done, total int) string {
	parts := make([]string, total)
	for i := range parts {
		parts[i] = "○"
		if i < done {
			parts[i] = "●"
		}
	}
	return strings.Join(parts, " ")
}

// drawBar draws a horizontal progress bar of width w centered in in.
func drawBar(s *core.Screen, in core.Rect, y, w int, frac float64, c core.Color) {
	if w <= 0 {
		return
	}
	frac = core.ClampF(frac, 0, 1)
	filled := int(math.Round(frac * float64(w)))
	x := in.X + (in.W-w)/2
	s.DrawHLine(x, y, filled, '█', c)
	s.DrawHLine(x+filled, y, w-filled, '░', core.ColorGray)
}

// drawMixRing draws the bowl rim and the spoon at the last counted angle.
func drawMixRing(s *core.Screen, in core.Rect, angle float64, stirred bool) {
	cx, cy := in.Center()
	ry := max(in.H/3, 2)
	rx := ry * 2
	for i := range 24 {
		a := float64(i) * 2 * math.Pi / 24
		s.SetColored(cx+int(math.Round(math.Cos(a)*float64(rx))), cy+int(math.Round(math.Sin(a)*float64(ry))), '·', core.ColorGray)
	}
	if stirred {
		x := cx + int(math.Round(math.Cos(angle)*float64(rx)))
		y := cy + int(math.Round(math.Sin(angle)*float64(ry)))
		s.SetColored(x, y, '@', core.ColorWhite)
	}
}

// drawTimingGauge draws the 0..360 degree track with the success window and
// the needle at phase.
func drawTimingGauge(s *core.Screen, in core.Rect, y, w int, phase, lo, hi float64) {
	if w <= 0 {
		return
	}
	x := in.X + (in.W-w)/2
	for i := range w {
		deg := (float64(i) + 0.5) * 360 / float64(w)
		if deg > lo && deg < hi {
			s.SetColored(x+i, y, '▒', core.ColorGreen)
		} else {
			s.SetColored(x+i, y, '─', core.ColorGray)
		}
	}
	needle := min(int(phase/360*float64(w)), w-1)
	s.SetColored(x+needle, y-1, '▼', core.ColorYellow)
}
