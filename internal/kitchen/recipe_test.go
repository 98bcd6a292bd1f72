package kitchen

import (
	"errors"
	"testing"
	"time"
)

func TestTargetTableComplete(t *testing.T) {
	seen := map[string]bool{}
	for _, tg := range Targets() {
		if tg.String() == "" || tg.String() == "unknown" {
			t.Errorf("target %d has no name", tg)
		}
		if tg.Label() == "" || tg.Glyph() == 0 {
			t.Errorf("target %s has no artwork", tg)
		}
		if seen[tg.String()] {
			t.Errorf("duplicate target name %q", tg)
		}
		seen[tg.String()] = true

		got, err := ParseTarget(tg.String())
		if err != nil || got != tg {
			t.Errorf("ParseTarget(%q) = %v, %v", tg, got, err)
		}
		for k := KindTap; k <= KindWait; k++ {
			if CueFor(k, tg) == SoundNone {
				t.Errorf("no %s cue for %s", k, tg)
			}
		}
	}
	if _, err := ParseTarget("spatula"); err == nil {
		t.Error("ParseTarget accepted an unknown name")
	}
}

func TestCueOverrides(t *testing.T) {
	tests := []struct {
		kind   Kind
		target Target
		want   Sound
	}{
		{KindTap, TargetEgg, SoundCrack},
		{KindTap, TargetKetchup, SoundPour},
		{KindTap, TargetSauce, SoundPour},
		{KindTap, TargetBowl, SoundTap},
		{KindCut, TargetPan, SoundSizzle},
		{KindCut, TargetCream, SoundPour},
		{KindCut, TargetCarrot, SoundCut},
		{KindMix, TargetBowl, SoundMix},
		{KindDrag, TargetMilk, SoundPour},
	}
	for _, tt := range tests {
		if got := CueFor(tt.kind, tt.target); got != tt.want {
			t.Errorf("CueFor(%s, %s) = %s, want %s", tt.kind, tt.target, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"tap": KindTap, "mix": KindMix, "drag": KindDrag,
		"cut": KindCut, "swipe": KindCut, "hold": KindHold,
		"draw": KindDraw, "wait": KindWait, "timing": KindWait,
	}
	for name, want := range tests {
		got, err := ParseKind(name)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseKind("shake"); err == nil {
		t.Error("ParseKind accepted an unknown kind")
	}
}

func TestNewStep(t *testing.T) {
	si := StepInfo{ID: "x", Target: TargetPan}
	for k := KindTap; k <= KindWait; k++ {
		s, err := NewStep(k, si, 3, time.Second)
		if err != nil {
			t.Fatalf("NewStep(%s) failed: %v", k, err)
		}
		if s.Kind() != k || s.Info() != si {
			t.Errorf("NewStep(%s) = %#v", k, s)
		}
	}
	if s, _ := NewStep(KindHold, si, 0, time.Second); s.(HoldStep).Duration != time.Second {
		t.Error("hold duration dropped")
	}
	if s, _ := NewStep(KindCut, si, 0, 0); s.(CutStep).Required() != 1 {
		t.Error("cut count does not default to 1")
	}
	if _, err := NewStep(KindUnknown, si, 0, 0); err == nil {
		t.Error("NewStep accepted an unknown kind")
	}
}

func TestCatalogValidation(t *testing.T) {
	tap := TapStep{StepInfo: StepInfo{ID: "t", Target: TargetEgg}}

	if _, err := NewCatalog(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("empty catalog: %v", err)
	}
	if _, err := NewCatalog([]Recipe{{ID: "a", Steps: []Step{tap}}, {ID: "a", Steps: []Step{tap}}}); err == nil {
		t.Error("duplicate ids accepted")
	}
	if _, err := NewCatalog([]Recipe{{ID: "a"}}); err == nil {
		t.Error("recipe without steps accepted")
	}
	if _, err := NewCatalog([]Recipe{{ID: "a", UnlockStars: 1, Steps: []Step{tap}}}); err == nil {
		t.Error("catalog without a free recipe accepted")
	}

	cat, err := NewCatalog([]Recipe{
		{ID: "cake", UnlockStars: 9, Steps: []Step{tap}},
		{ID: "omelette", Steps: []Step{tap}},
		{ID: "cookie", UnlockStars: 3, Steps: []Step{tap}},
	})
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	var ids []string
	for _, r := range cat.Recipes() {
		ids = append(ids, r.ID)
	}
	if len(ids) != 3 || ids[0] != "omelette" || ids[1] != "cookie" || ids[2] != "cake" {
		t.Errorf("order = %v", ids)
	}
	if p := cat.Policy(); p["cookie"] != 3 || len(p) != 3 {
		t.Errorf("policy = %v", p)
	}
	if _, ok := cat.Recipe("ramen"); ok {
		t.Error("lookup of unknown recipe succeeded")
	}
}
