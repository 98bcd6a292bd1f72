package kitchen

import "testing"

func TestOscillatorWindow(t *testing.T) {
	o := NewOscillator(2, 160, 200)

	tests := []struct {
		ticks    int
		phase    float64
		inWindow bool
	}{
		{80, 160, false},
		{81, 162, true},
		{99, 198, true},
		{100, 200, false},
		{179, 358, false},
		{180, 0, false},
	}

	done := 0
	for _, tt := range tests {
		var phase float64
		var in bool
		for done < tt.ticks {
			phase, in = o.Tick()
			done++
		}
		if phase != tt.phase || in != tt.inWindow {
			t.Errorf("after %d ticks: phase=%v in=%v, want %v %v", tt.ticks, phase, in, tt.phase, tt.inWindow)
		}
	}
}

func TestOscillatorReset(t *testing.T) {
	o := NewOscillator(2, 160, 200)
	for i := 0; i < 90; i++ {
		o.Tick()
	}
	o.Reset()
	if o.Phase() != 0 || o.InWindow() {
		t.Errorf("after reset: phase=%v in=%v", o.Phase(), o.InWindow())
	}
}
