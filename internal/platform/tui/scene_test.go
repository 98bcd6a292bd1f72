package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-kitchen/internal/core"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantBox core.Rect
	}{
		{"standard", 80, 24, core.NewRect(21, 0, 38, 18)},
		{"narrow", 30, 24, core.NewRect(1, 0, 28, 18)},
		{"tiny", 10, 5, core.NewRect(0, 0, minGridH*2+2, minGridH)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := computeLayout(tt.w, tt.h)
			if l.board != tt.wantBox {
				t.Errorf("board = %+v, want %+v", l.board, tt.wantBox)
			}
			if l.inner != l.board.Inset(1) {
				t.Errorf("inner = %+v", l.inner)
			}
			if l.width < l.board.Right() {
				t.Errorf("grid width %d narrower than board", l.width)
			}
		})
	}
}

func TestSurfaceMapsBoardCorners(t *testing.T) {
	l := computeLayout(80, 24)
	tr := core.NewTranslator(l.surface(kitchen.DefaultRules()))

	p := tr.ToLogical(l.inner.X, l.inner.Y+headerLines)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("top-left maps to %+v, want origin", p)
	}

	x, y := tr.ToScreen(core.Point{X: 250, Y: 250})
	if !l.inner.Contains(x, y-headerLines) {
		t.Errorf("logical center maps to (%d,%d), outside the board", x, y)
	}
}

func TestMapMouse(t *testing.T) {
	tests := []struct {
		name    string
		msg     tea.MouseMsg
		pressed bool
		want    core.RawKind
		ok      bool
	}{
		{"left press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, false, core.RawDown, true},
		{"right press", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false, 0, false},
		{"motion while pressed", tea.MouseMsg{Action: tea.MouseActionMotion}, true, core.RawMotion, true},
		{"hover", tea.MouseMsg{Action: tea.MouseActionMotion}, false, 0, false},
		{"release", tea.MouseMsg{Action: tea.MouseActionRelease}, true, core.RawUp, true},
		{"stray release", tea.MouseMsg{Action: tea.MouseActionRelease}, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.msg.X, tt.msg.Y = 7, 9
			raw, ok := MapMouse(tt.msg, tt.pressed)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if raw.Kind != tt.want || raw.X != 7 || raw.Y != 9 || !raw.HasCoord {
				t.Errorf("raw = %+v", raw)
			}
		})
	}
}

func TestFrameStep(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	nominal := time.Second / 60

	tests := []struct {
		name string
		prev time.Time
		now  time.Time
		want time.Duration
	}{
		{"first frame", time.Time{}, base, nominal},
		{"normal", base, base.Add(20 * time.Millisecond), 20 * time.Millisecond},
		{"stall is clamped", base, base.Add(2 * time.Second), maxFrameStep},
		{"clock went back", base, base.Add(-time.Second), nominal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameStep(tt.prev, tt.now, 60); got != tt.want {
				t.Errorf("frameStep() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEffectLayerAging(t *testing.T) {
	fx := NewEffectLayer(1)
	fx.Effect(kitchen.EffectSparkle, core.Point{X: 10, Y: 10})
	fx.Effect(kitchen.EffectBurst, core.Point{X: 10, Y: 10})
	if fx.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", fx.Len())
	}

	fx.Advance(sparkleTTL)
	if fx.Len() != 8 {
		t.Errorf("Len() = %d after sparkle expired, want 8", fx.Len())
	}
	fx.Advance(burstTTL)
	if fx.Len() != 0 {
		t.Errorf("Len() = %d after burst expired, want 0", fx.Len())
	}

	fx.Effect(kitchen.EffectConfetti, core.Point{})
	if fx.Len() != confettiN {
		t.Errorf("Len() = %d, want %d confetti", fx.Len(), confettiN)
	}
	fx.Clear()
	if fx.Len() != 0 {
		t.Error("Clear() left particles")
	}
}

func TestEffectLayerDrawClips(t *testing.T) {
	s := core.NewScreen(10, 5)
	fx := NewEffectLayer(1)
	fx.Effect(kitchen.EffectSparkle, core.Point{X: 2, Y: 2})
	fx.Effect(kitchen.EffectSparkle, core.Point{X: 50, Y: 2})

	identity := func(p core.Point) (int, int) { return int(p.X), int(p.Y) }
	fx.Draw(s, core.NewRect(0, 0, 10, 5), identity)

	if got := s.GetCell(2, 2).Rune; got != '✦' {
		t.Errorf("cell (2,2) = %q, want sparkle", got)
	}
	if strings.Count(s.String(), "✦") != 1 {
		t.Error("particle outside the clip was drawn")
	}
}

func TestDrawSceneTimingGauge(t *testing.T) {
	l := computeLayout(80, 24)
	s := core.NewScreen(l.width, l.gridH)
	step := kitchen.WaitStep{StepInfo: kitchen.StepInfo{ID: "w", Instruction: "Wait for it"}}
	snap := kitchen.Snapshot{
		State:     kitchen.StateInStep,
		Step:      step,
		StepCount: 1,
		Progress:  kitchen.StepProgress{Phase: 180, InWindow: true},
		WindowLo:  160,
		WindowHi:  200,
		Rules:     kitchen.DefaultRules(),
	}

	drawScene(s, l, snap, func(core.Point) (int, int) { return 0, 0 }, nil)
	out := s.String()
	for _, want := range []string{"NOW!", "▒", "▼"} {
		if !strings.Contains(out, want) {
			t.Errorf("scene missing %q", want)
		}
	}
}

func TestThemeFor(t *testing.T) {
	dark := themeFor("#8B4513")
	if dark.Ink != "#fafafa" {
		t.Errorf("ink on brown = %v, want light", dark.Ink)
	}
	light := themeFor("#FFD700")
	if light.Ink != "#1a1a1a" {
		t.Errorf("ink on gold = %v, want dark", light.Ink)
	}
	if themeFor("nope").Accent != light.Accent {
		t.Error("invalid color did not fall back to gold")
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hi", core.ColorDefault)
	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "hi") {
		t.Errorf("first line = %q", lines[0])
	}
}
