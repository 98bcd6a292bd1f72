package kitchen

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/tui-kitchen/internal/core"
)

type fakeAudio struct {
	played  []Sound
	loops   int
	stopped int
	muted   bool
}

func (a *fakeAudio) Play(s Sound) { a.played = append(a.played, s) }

func (a *fakeAudio) Loop(Sound) func() {
	a.loops++
	return func() { a.stopped++ }
}

func (a *fakeAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

func (a *fakeAudio) Muted() bool { return a.muted }

func (a *fakeAudio) count(s Sound) int {
	n := 0
	for _, p := range a.played {
		if p == s {
			n++
		}
	}
	return n
}

type fakeEffects struct {
	kinds []EffectKind
}

func (e *fakeEffects) Effect(k EffectKind, _ core.Point) { e.kinds = append(e.kinds, k) }

type memStore struct {
	profiles map[string]Profile
	saves    int
	loadErr  error
	saveErr  error
}

func newMemStore() *memStore {
	return &memStore{profiles: map[string]Profile{}}
}

func (s *memStore) LoadProfile(ns string) (Profile, error) {
	if s.loadErr != nil {
		return Profile{}, s.loadErr
	}
	return s.profiles[ns].Clone(), nil
}

func (s *memStore) SaveProfile(ns string, p Profile) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.profiles[ns] = p.Clone()
	return nil
}

func (s *memStore) ResetProfile(ns string) error {
	delete(s.profiles, ns)
	return nil
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog([]Recipe{
		{
			ID: "omelette", Name: "Omelette", UnlockStars: 0,
			Steps: []Step{
				TapStep{StepInfo: StepInfo{ID: "crack", Target: TargetEgg}, Count: 3},
				HoldStep{StepInfo: StepInfo{ID: "cook", Target: TargetPan}},
				WaitStep{StepInfo: StepInfo{ID: "plate", Target: TargetPlate}},
			},
		},
		{
			ID: "cookie", Name: "Cookie", UnlockStars: 3,
			Steps: []Step{TapStep{StepInfo: StepInfo{ID: "bake", Target: TargetOven}}},
		},
		{
			ID: "cake", Name: "Cake", UnlockStars: 9,
			Steps: []Step{TapStep{StepInfo: StepInfo{ID: "bake", Target: TargetOven}}},
		},
	})
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	return cat
}

type rig struct {
	c       *Controller
	clock   *Clock
	audio   *fakeAudio
	effects *fakeEffects
	store   *memStore
}

func newRig(t *testing.T, store *memStore) *rig {
	t.Helper()
	cat := testCatalog(t)
	ids := 0
	nextID := func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	fixed := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	profiles := NewProfiles(store, "test", cat.Policy(), WithDishIDs(nextID), WithProfilesClock(fixed))
	if err := profiles.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	r := &rig{clock: NewClock(), audio: &fakeAudio{}, effects: &fakeEffects{}, store: store}
	r.c = NewController(cat, profiles,
		WithScheduler(r.clock),
		WithAudio(r.audio),
		WithEffects(r.effects),
		WithClock(fixed),
		WithSessionIDs(nextID),
	)
	return r
}

func (r *rig) press() {
	r.c.HandleInput(core.PointerEvent{Phase: core.PhaseStart, Pos: core.Point{X: 250, Y: 250}, HasPos: true})
}

func (r *rig) release() {
	r.c.HandleInput(core.PointerEvent{Phase: core.PhaseEnd})
}

func (r *rig) settle() {
	r.clock.Advance(DefaultRules().StepPause)
}

// waitForWindow advances the clock until the timing phase is in the window.
func (r *rig) waitForWindow(t *testing.T) {
	t.Helper()
	for i := 0; i < 400; i++ {
		if r.c.Snapshot().Progress.InWindow {
			return
		}
		r.clock.Advance(DefaultRules().OscillatorInterval)
	}
	t.Fatal("oscillator never entered the window")
}

func (r *rig) cookOmelette(t *testing.T, misses int) {
	t.Helper()
	if err := r.c.SelectRecipe("omelette"); err != nil {
		t.Fatalf("SelectRecipe() failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		r.press()
	}
	r.settle()
	r.press()
	r.clock.Advance(50 * DefaultRules().HoldInterval)
	r.settle()
	for i := 0; i < misses; i++ {
		r.press()
	}
	r.waitForWindow(t)
	r.press()
}

func TestEndToEndPerfectDish(t *testing.T) {
	r := newRig(t, newMemStore())
	c := r.c

	if err := c.SelectRecipe("omelette"); err != nil {
		t.Fatalf("SelectRecipe() failed: %v", err)
	}
	if c.State() != StateInStep || c.Session().Score != 100 || c.Session().Index != 0 {
		t.Fatalf("fresh session: state=%v score=%d index=%d", c.State(), c.Session().Score, c.Session().Index)
	}

	r.press()
	r.press()
	if c.Session().Index != 0 {
		t.Fatalf("advanced after 2 of 3 taps")
	}
	r.press()
	if c.Session().Index != 1 {
		t.Fatalf("index = %d after 3 taps, want 1", c.Session().Index)
	}
	if c.Session().Progress.Actions != 0 {
		t.Error("progress was not replaced on step transition")
	}

	// Input during the pause is dropped.
	r.press()
	if c.Session().Progress.Holding {
		t.Error("input accepted during the step pause")
	}
	r.settle()

	r.press()
	if !c.Session().Progress.Holding {
		t.Fatal("hold did not start")
	}
	r.clock.Advance(49 * DefaultRules().HoldInterval)
	if c.Session().Index != 1 {
		t.Fatal("hold completed early")
	}
	r.clock.Advance(DefaultRules().HoldInterval)
	if c.Session().Index != 2 {
		t.Fatalf("index = %d after a full hold, want 2", c.Session().Index)
	}
	if r.audio.loops != 1 || r.audio.stopped != 1 {
		t.Errorf("sizzle loop started %d stopped %d", r.audio.loops, r.audio.stopped)
	}
	r.settle()

	r.waitForWindow(t)
	r.press()

	if c.State() != StateFinished {
		t.Fatalf("state = %v, want finished", c.State())
	}
	snap := c.Snapshot()
	if snap.Finish == nil {
		t.Fatal("no finish in snapshot")
	}
	if snap.Finish.Outcome != (Outcome{Stars: 3, Reaction: ReactionPerfect}) {
		t.Errorf("outcome = %+v", snap.Finish.Outcome)
	}
	if snap.Finish.Score != 100 {
		t.Errorf("score = %d, want 100", snap.Finish.Score)
	}

	p := c.Profiles().Profile()
	if p.Best("omelette") != 3 || p.TotalStars != 3 {
		t.Errorf("best=%d total=%d", p.Best("omelette"), p.TotalStars)
	}
	if len(p.History) != 1 {
		t.Errorf("history has %d entries, want 1", len(p.History))
	}
	if !p.IsUnlocked("cookie") || p.IsUnlocked("cake") {
		t.Errorf("unlocked = %v", p.Unlocked)
	}
	comp := snap.Finish.Completion
	if !comp.Improved || len(comp.NewlyUnlocked) != 1 || comp.NewlyUnlocked[0] != "cookie" {
		t.Errorf("completion = %+v", comp)
	}
	if r.store.saves == 0 {
		t.Error("profile was not saved")
	}
	stored := r.store.profiles["test"]
	if stored.Best("omelette") != 3 {
		t.Errorf("stored best = %d", stored.Best("omelette"))
	}

	// Input after finishing is ignored.
	r.press()
	if c.State() != StateFinished || len(c.Profiles().Profile().History) != 1 {
		t.Error("input after finish changed the session")
	}

	r.clock.Advance(5 * time.Second)
	if got := r.audio.count(SoundStar); got != 3 {
		t.Errorf("star cues = %d, want 3", got)
	}
	if r.audio.count(SoundComplete) != 1 || r.audio.count(SoundYay) != 1 {
		t.Errorf("celebration sounds = %v", r.audio.played)
	}
	if r.clock.Pending() != 0 {
		t.Errorf("tasks still pending after finish: %d", r.clock.Pending())
	}
	confetti := false
	for _, k := range r.effects.kinds {
		if k == EffectConfetti {
			confetti = true
		}
	}
	if !confetti {
		t.Error("no confetti for a 3-star dish")
	}
}

func TestBestOnlyImproves(t *testing.T) {
	store := newMemStore()
	store.profiles["test"] = Profile{
		RecipeStars: map[string]int{"omelette": 3},
		Unlocked:    []string{"omelette"},
	}
	r := newRig(t, store)

	// Six misses then a hit: 100 - 60 + 10 = 50.
	r.cookOmelette(t, 6)
	f := r.c.Snapshot().Finish
	if f == nil {
		t.Fatal("session did not finish")
	}
	if f.Score != 50 || f.Outcome != (Outcome{Stars: 1, Reaction: ReactionOK}) {
		t.Errorf("score=%d outcome=%+v", f.Score, f.Outcome)
	}

	p := r.c.Profiles().Profile()
	if p.Best("omelette") != 3 {
		t.Errorf("best dropped to %d", p.Best("omelette"))
	}
	if len(p.History) != 1 || p.History[0].Stars != 1 {
		t.Errorf("history = %+v", p.History)
	}
	if f.Completion.Improved {
		t.Error("Completion.Improved for a worse dish")
	}
}

func TestWaitMissClampsAtZero(t *testing.T) {
	r := newRig(t, newMemStore())
	r.cookOmelette(t, 15)
	f := r.c.Snapshot().Finish
	if f == nil {
		t.Fatal("session did not finish")
	}
	if f.Score != 10 || f.Outcome.Reaction != ReactionBad {
		t.Errorf("score=%d reaction=%v, want 10 BAD", f.Score, f.Outcome.Reaction)
	}
}

func TestSelectRecipeErrors(t *testing.T) {
	r := newRig(t, newMemStore())

	if err := r.c.SelectRecipe("cookie"); !errors.Is(err, ErrRecipeLocked) {
		t.Errorf("locked recipe: err = %v", err)
	}
	if err := r.c.SelectRecipe("ramen"); !errors.Is(err, ErrUnknownRecipe) {
		t.Errorf("unknown recipe: err = %v", err)
	}
	if r.c.State() != StateNotStarted || r.c.Session() != nil {
		t.Error("failed selection mutated the controller")
	}
	if len(r.audio.played) != 0 {
		t.Errorf("failed selection played %v", r.audio.played)
	}
	if err := r.c.Restart(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Restart without session: err = %v", err)
	}
}

func TestSelectRecipeRestartsSession(t *testing.T) {
	r := newRig(t, newMemStore())
	c := r.c

	if err := c.SelectRecipe("omelette"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		r.press()
	}
	r.settle()
	c.AdjustScore(-30)
	first := c.Session().ID

	if err := c.Restart(); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	s := c.Session()
	if s.ID == first || s.Index != 0 || s.Score != 100 {
		t.Errorf("restart: id=%s index=%d score=%d", s.ID, s.Index, s.Score)
	}
}

func TestAdjustScoreClamps(t *testing.T) {
	r := newRig(t, newMemStore())
	r.c.AdjustScore(-10) // no session, no-op
	if err := r.c.SelectRecipe("omelette"); err != nil {
		t.Fatal(err)
	}
	r.c.AdjustScore(50)
	if got := r.c.Session().Score; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
	r.c.AdjustScore(-500)
	if got := r.c.Session().Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestHoldReleaseThroughController(t *testing.T) {
	r := newRig(t, newMemStore())
	if err := r.c.SelectRecipe("omelette"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		r.press()
	}
	r.settle()

	r.press()
	r.clock.Advance(30 * DefaultRules().HoldInterval)
	r.release()
	held := r.c.Session().Progress.Hold
	if held != 60 {
		t.Errorf("hold = %v, want 60", held)
	}
	r.clock.Advance(time.Second)
	if r.c.Session().Progress.Hold != held || r.c.Session().Index != 1 {
		t.Error("hold ticker kept running after release")
	}
	if r.audio.stopped != 1 {
		t.Errorf("sizzle stopped %d times, want 1", r.audio.stopped)
	}

	r.press()
	if r.c.Session().Progress.Hold != 0 {
		t.Error("new hold did not start from zero")
	}
}

func TestAbandonCancelsTasks(t *testing.T) {
	r := newRig(t, newMemStore())
	if err := r.c.SelectRecipe("omelette"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		r.press()
	}
	r.settle()
	r.press() // hold running

	r.c.Abandon()
	if r.clock.Pending() != 0 {
		t.Errorf("Pending = %d after abandon", r.clock.Pending())
	}
	if r.c.State() != StateNotStarted || r.c.Session() != nil {
		t.Error("abandon kept the session")
	}
	if r.audio.stopped != 1 {
		t.Error("sizzle loop not stopped")
	}
	if len(r.c.Profiles().Profile().History) != 0 {
		t.Error("abandoned session was recorded")
	}
}

func TestOscillatorOnlyRunsDuringWait(t *testing.T) {
	r := newRig(t, newMemStore())
	if err := r.c.SelectRecipe("omelette"); err != nil {
		t.Fatal(err)
	}
	if r.clock.Pending() != 0 {
		t.Errorf("tasks scheduled on a tap step: %d", r.clock.Pending())
	}

	for i := 0; i < 3; i++ {
		r.press()
	}
	r.settle()
	r.press()
	r.clock.Advance(50 * DefaultRules().HoldInterval)
	r.settle()

	if r.clock.Pending() != 1 {
		t.Fatalf("Pending = %d on wait step, want 1", r.clock.Pending())
	}
	if r.c.Snapshot().Progress.Phase != 0 {
		t.Errorf("phase did not reset on entering the wait step")
	}
	r.clock.Advance(10 * DefaultRules().OscillatorInterval)
	if got := r.c.Snapshot().Progress.Phase; got != 20 {
		t.Errorf("phase = %v after 10 ticks, want 20", got)
	}

	r.c.Abandon()
	if r.clock.Pending() != 0 {
		t.Errorf("oscillator still scheduled after abandon")
	}
}

func TestSaveErrorDoesNotBlockFinish(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	r := newRig(t, store)
	r.cookOmelette(t, 0)

	if r.c.State() != StateFinished {
		t.Fatalf("state = %v", r.c.State())
	}
	if r.c.Profiles().Profile().Best("omelette") != 3 {
		t.Error("in-memory profile not updated")
	}
}
