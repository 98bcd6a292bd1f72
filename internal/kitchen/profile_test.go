package kitchen

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		score int
		want  Outcome
	}{
		{100, Outcome{3, ReactionPerfect}},
		{95, Outcome{3, ReactionPerfect}},
		{90, Outcome{3, ReactionPerfect}},
		{89, Outcome{2, ReactionGood}},
		{75, Outcome{2, ReactionGood}},
		{70, Outcome{2, ReactionGood}},
		{69, Outcome{1, ReactionOK}},
		{55, Outcome{1, ReactionOK}},
		{50, Outcome{1, ReactionOK}},
		{49, Outcome{1, ReactionBad}},
		{30, Outcome{1, ReactionBad}},
		{0, Outcome{1, ReactionBad}},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.score); got != tt.want {
			t.Errorf("Evaluate(%d) = %+v, want %+v", tt.score, got, tt.want)
		}
	}
}

func TestReactionStyle(t *testing.T) {
	if s := ReactionPerfect.Style(); s.Sound != SoundYay || s.Expression != ExpressionSparkle {
		t.Errorf("PERFECT style = %+v", s)
	}
	if s := ReactionBad.Style(); s.Message == "" || s.Animation != "shake" {
		t.Errorf("BAD style = %+v", s)
	}
}

func TestUnlockPolicy(t *testing.T) {
	p := UnlockPolicy{"A": 0, "B": 3, "C": 6}

	if got := p.Unlocked(5); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Unlocked(5) = %v, want [A B]", got)
	}
	if got := p.Free(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Errorf("Free() = %v", got)
	}
	id, missing, ok := p.NextUnlock(5)
	if !ok || id != "C" || missing != 1 {
		t.Errorf("NextUnlock(5) = %q %d %v", id, missing, ok)
	}
	if _, _, ok := p.NextUnlock(6); ok {
		t.Error("NextUnlock(6) reported a locked recipe")
	}
}

func TestUnlockIsMonotonic(t *testing.T) {
	policy := UnlockPolicy{"A": 0, "B": 3, "C": 6}
	p := DefaultProfile(policy)

	p.Unlock(policy.Unlocked(5))
	p.Unlock(policy.Unlocked(5))
	if !reflect.DeepEqual(p.Unlocked, []string{"A", "B"}) {
		t.Fatalf("Unlocked = %v", p.Unlocked)
	}

	// A lower total never removes anything.
	if added := p.Unlock(policy.Unlocked(0)); len(added) != 0 {
		t.Errorf("re-unlock added %v", added)
	}
	if !p.IsUnlocked("B") {
		t.Error("B was re-locked")
	}
}

func TestRecordBest(t *testing.T) {
	p := DefaultProfile(UnlockPolicy{"a": 0, "b": 3})

	if !p.RecordBest("a", 2) {
		t.Error("first rating not recorded")
	}
	if p.RecordBest("a", 2) {
		t.Error("equal rating reported as improvement")
	}
	if p.RecordBest("a", 1) || p.Best("a") != 2 {
		t.Errorf("worse rating changed best to %d", p.Best("a"))
	}
	p.RecordBest("b", 3)
	if p.TotalStars != 5 {
		t.Errorf("TotalStars = %d, want 5", p.TotalStars)
	}
	p.RecordBest("a", 3)
	if p.TotalStars != 6 {
		t.Errorf("TotalStars = %d, want 6", p.TotalStars)
	}
}

func TestAppendDishCapsHistory(t *testing.T) {
	var p Profile
	for i := 0; i < HistoryLimit+5; i++ {
		p.AppendDish(Dish{Score: i})
	}
	if len(p.History) != HistoryLimit {
		t.Fatalf("history len = %d, want %d", len(p.History), HistoryLimit)
	}
	if p.History[0].Score != HistoryLimit+4 {
		t.Errorf("newest entry score = %d", p.History[0].Score)
	}
	if p.History[HistoryLimit-1].Score != 5 {
		t.Errorf("oldest kept score = %d, want 5", p.History[HistoryLimit-1].Score)
	}
}

func TestNormalize(t *testing.T) {
	policy := UnlockPolicy{"omelette": 0, "cookie": 3}
	p := Profile{
		TotalStars:  99,
		RecipeStars: map[string]int{"omelette": 2, "cookie": 1},
	}
	p.Normalize(policy)
	if p.TotalStars != 3 {
		t.Errorf("TotalStars = %d, want 3", p.TotalStars)
	}
	if !p.IsUnlocked("omelette") {
		t.Error("free recipe missing after normalize")
	}

	var empty Profile
	empty.Normalize(policy)
	if empty.RecipeStars == nil || !reflect.DeepEqual(empty.Unlocked, []string{"omelette"}) {
		t.Errorf("normalized empty profile = %+v", empty)
	}
}

func TestProfilesLoadFallsBackToDefaults(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("corrupt")
	policy := UnlockPolicy{"omelette": 0, "cookie": 3}

	ps := NewProfiles(store, "ns", policy)
	if err := ps.Load(); err == nil {
		t.Error("Load() error was swallowed")
	}
	p := ps.Profile()
	if p.TotalStars != 0 || !reflect.DeepEqual(p.Unlocked, []string{"omelette"}) {
		t.Errorf("fallback profile = %+v", p)
	}
}

func TestProfilesCompleteAchievements(t *testing.T) {
	store := newMemStore()
	policy := UnlockPolicy{"a": 0, "b": 3}
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ps := NewProfiles(store, "ns", policy,
		WithProfilesClock(func() time.Time { return now }),
		WithDishIDs(func() string { return "dish" }),
	)

	c, err := ps.Complete("a", Outcome{3, ReactionPerfect}, 95, 42*time.Second)
	if err != nil {
		t.Fatalf("Complete() failed: %v", err)
	}
	want := []string{AchievementFirstDish, AchievementPerfectChef, AchievementFullMenu}
	if !reflect.DeepEqual(c.NewAchievements, want) {
		t.Errorf("NewAchievements = %v, want %v", c.NewAchievements, want)
	}
	if c.Dish.ID != "dish" || !c.Dish.CreatedAt.Equal(now) || c.Dish.CookingTime != 42*time.Second {
		t.Errorf("dish = %+v", c.Dish)
	}

	c, err = ps.Complete("a", Outcome{2, ReactionGood}, 80, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.NewAchievements) != 0 {
		t.Errorf("repeated achievements: %v", c.NewAchievements)
	}
	if len(ps.Profile().History) != 2 {
		t.Errorf("history len = %d", len(ps.Profile().History))
	}

	for i := 0; i < RegularDishes-2; i++ {
		c, _ = ps.Complete("b", Outcome{1, ReactionOK}, 60, time.Second)
	}
	if !reflect.DeepEqual(c.NewAchievements, []string{AchievementRegular}) {
		t.Errorf("tenth dish achievements = %v", c.NewAchievements)
	}
}

func TestProfilesReset(t *testing.T) {
	store := newMemStore()
	policy := UnlockPolicy{"a": 0, "b": 3}
	ps := NewProfiles(store, "ns", policy)
	if _, err := ps.Complete("a", Outcome{3, ReactionPerfect}, 100, 0); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.profiles["ns"]; !ok {
		t.Fatal("profile not saved")
	}

	if err := ps.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if _, ok := store.profiles["ns"]; ok {
		t.Error("stored profile survived reset")
	}
	if ps.IsUnlocked("b") || ps.Profile().TotalStars != 0 {
		t.Error("in-memory profile survived reset")
	}
}

func TestProfilesSetPolicy(t *testing.T) {
	store := newMemStore()
	ps := NewProfiles(store, "ns", UnlockPolicy{"a": 0, "b": 3})
	if _, err := ps.Complete("a", Outcome{2, ReactionGood}, 80, 0); err != nil {
		t.Fatal(err)
	}

	if err := ps.SetPolicy(UnlockPolicy{"a": 0, "b": 3, "c": 2}); err != nil {
		t.Fatal(err)
	}
	if !ps.IsUnlocked("c") {
		t.Error("cheaper new recipe not unlocked")
	}
}
