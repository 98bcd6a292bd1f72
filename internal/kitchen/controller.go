package kitchen

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-kitchen/internal/core"
)

// Controller errors.
var (
	ErrUnknownRecipe = errors.New("kitchen: unknown recipe")
	ErrRecipeLocked  = errors.New("kitchen: recipe is locked")
	ErrNoSession     = errors.New("kitchen: no active session")
)

// State is the progression state of the controller.
type State int

const (
	StateNotStarted State = iota
	StateInStep
	StateFinished
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInStep:
		return "in-step"
	case StateFinished:
		return "finished"
	default:
		return "not-started"
	}
}

const (
	// StartScore is the score every session starts with.
	StartScore = 100
	// MaxScore and MinScore bound the session score.
	MaxScore = 100
	MinScore = 0
)

const (
	completeCueDelay = 200 * time.Millisecond
	starCueSpacing   = 400 * time.Millisecond
)

var encouragements = []string{"Nice!", "Great!", "Good job!", "Keep going!", "Wonderful!"}

// Session is one play-through of a recipe.
type Session struct {
	ID        string
	Recipe    Recipe
	Index     int // Current step; equals len(Recipe.Steps) once finished
	Score     int
	Progress  StepProgress
	StartedAt time.Time
}

// Step returns the active step, or nil once the recipe is finished.
func (s *Session) Step() Step {
	return s.Recipe.Step(s.Index)
}

// Finish is the scored result of a finished session.
type Finish struct {
	Outcome    Outcome
	Style      ReactionStyle
	Score      int
	Completion Completion
}

// Controller owns the active session and advances it through the recipe's
// steps. It is not safe for concurrent use; all calls, including scheduler
// callbacks, must come from one goroutine.
type Controller struct {
	catalog  *Catalog
	profiles *Profiles
	engine   *Engine
	osc      *Oscillator
	sched    Scheduler
	audio    Audio
	effects  Effects
	logger   *log.Logger
	now      func() time.Time
	newID    func() string

	state      State
	session    *Session
	settling   bool
	expression Expression
	message    string
	lastPos    core.Point
	finish     *Finish
	encourage  int
	nextRules  *Rules

	cancelOsc   CancelFunc
	cancelHold  CancelFunc
	stopSizzle  func()
	cancelPause CancelFunc
	celebration []CancelFunc
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithScheduler sets the scheduler that drives periodic and delayed tasks.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithAudio sets the audio collaborator.
func WithAudio(a Audio) Option {
	return func(c *Controller) {
		if a != nil {
			c.audio = a
		}
	}
}

// WithEffects sets the visual effects collaborator.
func WithEffects(e Effects) Option {
	return func(c *Controller) {
		if e != nil {
			c.effects = e
		}
	}
}

// WithRules sets the mini-game tuning.
func WithRules(r Rules) Option {
	return func(c *Controller) {
		c.engine = NewEngine(r)
	}
}

// WithClock overrides the wall clock used for cooking times.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithSessionIDs overrides the session ID generator.
func WithSessionIDs(gen func() string) Option {
	return func(c *Controller) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// NewController creates a controller over catalog that records results in
// profiles.
func NewController(catalog *Catalog, profiles *Profiles, opts ...Option) *Controller {
	c := &Controller{
		catalog:    catalog,
		profiles:   profiles,
		engine:     NewEngine(DefaultRules()),
		sched:      NewClock(),
		audio:      &nopAudio{},
		effects:    nopEffects{},
		logger:     log.New(io.Discard),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		expression: ExpressionNormal,
	}
	for _, opt := range opts {
		opt(c)
	}
	r := c.engine.Rules()
	c.osc = NewOscillator(r.OscillatorStep, r.WindowLo, r.WindowHi)
	return c
}

// SetRules replaces the mini-game tuning. The change takes effect when the
// next recipe is selected.
func (c *Controller) SetRules(r Rules) {
	c.nextRules = &r
}

// SetCatalog replaces the recipe catalog. The active session keeps the
// recipe it started with.
func (c *Controller) SetCatalog(cat *Catalog) {
	if cat != nil {
		c.catalog = cat
	}
}

// Catalog returns the recipe catalog.
func (c *Controller) Catalog() *Catalog {
	return c.catalog
}

// Profiles returns the profile service.
func (c *Controller) Profiles() *Profiles {
	return c.profiles
}

// State returns the progression state.
func (c *Controller) State() State {
	return c.state
}

// Session returns the active session, or nil.
func (c *Controller) Session() *Session {
	return c.session
}

// SelectRecipe starts a fresh session of the recipe. Unknown or locked
// recipes leave the controller untouched.
func (c *Controller) SelectRecipe(id string) error {
	r, ok := c.catalog.Recipe(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRecipe, id)
	}
	if c.profiles != nil && !c.profiles.IsUnlocked(id) {
		return fmt.Errorf("%w: %q", ErrRecipeLocked, id)
	}

	c.stopAll()
	if c.nextRules != nil {
		c.engine = NewEngine(*c.nextRules)
		c.osc = NewOscillator(c.nextRules.OscillatorStep, c.nextRules.WindowLo, c.nextRules.WindowHi)
		c.nextRules = nil
	}
	c.session = &Session{
		ID:        c.newID(),
		Recipe:    r,
		Score:     StartScore,
		StartedAt: c.now(),
	}
	c.state = StateInStep
	c.settling = false
	c.finish = nil
	c.encourage = 0
	c.expression = ExpressionNormal
	c.lastPos = c.engine.Center()

	c.logger.Info("recipe started", "recipe", r.ID, "session", c.session.ID, "steps", len(r.Steps))
	c.audio.Play(SoundSuccess)
	c.enterStep()
	return nil
}

// Restart starts the current recipe over with a fresh session.
func (c *Controller) Restart() error {
	if c.session == nil {
		return ErrNoSession
	}
	return c.SelectRecipe(c.session.Recipe.ID)
}

// HandleInput feeds a pointer event to the active step. Input is ignored
// while no step is active, including the pause after a completed step.
func (c *Controller) HandleInput(ev core.PointerEvent) {
	if c.state != StateInStep || c.session == nil || c.settling {
		return
	}
	step := c.session.Step()
	if step == nil {
		return
	}
	if ev.HasPos {
		c.lastPos = ev.Pos
	}

	r := c.engine.Handle(step, ev, &c.session.Progress, c.session.Progress.InWindow)
	c.apply(step, r)
}

func (c *Controller) apply(step Step, r Result) {
	if r.ScoreDelta != 0 {
		c.AdjustScore(r.ScoreDelta)
	}
	if r.Sound != SoundNone {
		c.audio.Play(r.Sound)
	}
	if r.Effect != EffectNone {
		c.effects.Effect(r.Effect, c.lastPos)
	}
	if r.Expression != "" {
		c.expression = r.Expression
	}
	if r.Message != "" {
		c.message = r.Message
	} else if r.Counted && !r.Completed && (step.Kind() == KindTap || step.Kind() == KindCut) {
		c.message = c.nextEncouragement()
	}

	switch r.Hold {
	case HoldStart:
		if hs, ok := step.(HoldStep); ok {
			c.startHold(hs)
		}
	case HoldStop:
		c.stopHold()
	}

	if r.Completed {
		c.CompleteStep()
	}
}

// CompleteStep finishes the active step: its periodic tasks are cancelled,
// the progress is replaced and the index advances. After the last step the
// session is scored; otherwise the next step starts after a short pause.
func (c *Controller) CompleteStep() {
	if c.state != StateInStep || c.session == nil || c.settling {
		return
	}
	c.stopStepTasks()

	s := c.session
	c.logger.Debug("step completed", "recipe", s.Recipe.ID, "step", s.Index, "score", s.Score)
	c.audio.Play(SoundSuccess)
	c.effects.Effect(EffectBurst, c.lastPos)

	s.Index++
	s.Progress = StepProgress{}
	if s.Index >= len(s.Recipe.Steps) {
		c.finishSession()
		return
	}

	c.settling = true
	c.expression = ExpressionExcited
	c.message = c.nextEncouragement()
	c.cancelPause = c.sched.After(c.engine.Rules().StepPause, func() {
		if c.session != s {
			return
		}
		c.cancelPause = nil
		c.settling = false
		c.enterStep()
	})
}

// AdjustScore adds delta to the session score, clamped to [0,100].
func (c *Controller) AdjustScore(delta int) {
	if c.session == nil {
		return
	}
	c.session.Score = core.Clamp(c.session.Score+delta, MinScore, MaxScore)
}

// Abandon discards the session and cancels everything it scheduled.
func (c *Controller) Abandon() {
	if c.session != nil && c.state == StateInStep {
		c.logger.Info("recipe abandoned", "recipe", c.session.Recipe.ID, "step", c.session.Index)
	}
	c.stopAll()
	c.session = nil
	c.finish = nil
	c.settling = false
	c.state = StateNotStarted
	c.expression = ExpressionNormal
	c.message = ""
}

// ToggleMute flips the audio mute flag and returns the new state.
func (c *Controller) ToggleMute() bool {
	return c.audio.ToggleMute()
}

func (c *Controller) enterStep() {
	step := c.session.Step()
	if step == nil {
		return
	}
	c.message = step.Info().Instruction
	c.expression = ExpressionNormal

	if _, ok := step.(WaitStep); ok {
		c.startOscillator()
	}
}

func (c *Controller) startOscillator() {
	s := c.session
	idx := s.Index
	c.osc.Reset()
	s.Progress.Phase = c.osc.Phase()
	s.Progress.InWindow = c.osc.InWindow()

	c.cancelOsc = c.sched.Every(c.engine.Rules().OscillatorInterval, func() {
		if c.session != s || s.Index != idx {
			return
		}
		s.Progress.Phase, s.Progress.InWindow = c.osc.Tick()
	})
}

func (c *Controller) startHold(step HoldStep) {
	c.stopHold()
	s := c.session
	idx := s.Index
	c.stopSizzle = c.audio.Loop(SoundSizzle)
	c.cancelHold = c.sched.Every(c.engine.Rules().HoldInterval, func() {
		if c.session != s || s.Index != idx || c.state != StateInStep {
			return
		}
		c.apply(step, c.engine.HoldTick(step, &s.Progress))
	})
}

func (c *Controller) stopHold() {
	if c.cancelHold != nil {
		c.cancelHold()
		c.cancelHold = nil
	}
	if c.stopSizzle != nil {
		c.stopSizzle()
		c.stopSizzle = nil
	}
}

func (c *Controller) stopStepTasks() {
	if c.cancelOsc != nil {
		c.cancelOsc()
		c.cancelOsc = nil
	}
	c.stopHold()
	if c.cancelPause != nil {
		c.cancelPause()
		c.cancelPause = nil
	}
}

func (c *Controller) stopAll() {
	c.stopStepTasks()
	for _, cancel := range c.celebration {
		cancel()
	}
	c.celebration = nil
}

func (c *Controller) finishSession() {
	s := c.session
	c.state = StateFinished
	c.stopStepTasks()

	outcome := Evaluate(s.Score)
	style := outcome.Reaction.Style()
	f := &Finish{Outcome: outcome, Style: style, Score: s.Score}

	if c.profiles != nil {
		comp, err := c.profiles.Complete(s.Recipe.ID, outcome, s.Score, c.now().Sub(s.StartedAt))
		if err != nil {
			c.logger.Error("failed to save profile", "err", err)
		}
		f.Completion = comp
	}
	c.finish = f
	c.expression = style.Expression
	c.message = style.Message

	c.logger.Info("recipe finished",
		"recipe", s.Recipe.ID,
		"session", s.ID,
		"score", s.Score,
		"stars", outcome.Stars,
		"reaction", outcome.Reaction,
	)

	c.celebrate(outcome, style)
}

func (c *Controller) celebrate(o Outcome, style ReactionStyle) {
	at := func(d time.Duration, s Sound) {
		c.celebration = append(c.celebration, c.sched.After(d, func() { c.audio.Play(s) }))
	}
	at(completeCueDelay, SoundComplete)
	for i := 0; i < o.Stars; i++ {
		at(time.Duration(i+1)*starCueSpacing, SoundStar)
	}
	at(time.Duration(o.Stars+1)*starCueSpacing, style.Sound)

	if o.Stars >= 2 {
		c.effects.Effect(EffectConfetti, c.engine.Center())
	}
}

func (c *Controller) nextEncouragement() string {
	m := encouragements[c.encourage%len(encouragements)]
	c.encourage++
	return m
}

// Snapshot is a read-only view of the controller for renderers.
type Snapshot struct {
	State      State
	Recipe     Recipe
	StepIndex  int
	StepCount  int
	Step       Step // Nil when no step is active
	Score      int
	Progress   StepProgress
	Settling   bool
	Expression Expression
	Message    string
	Muted      bool
	WindowLo   float64
	WindowHi   float64
	Rules      Rules
	Finish     *Finish
}

// Snapshot returns the current view state.
func (c *Controller) Snapshot() Snapshot {
	lo, hi := c.osc.Window()
	snap := Snapshot{
		State:      c.state,
		Expression: c.expression,
		Message:    c.message,
		Muted:      c.audio.Muted(),
		WindowLo:   lo,
		WindowHi:   hi,
		Rules:      c.engine.Rules(),
		Settling:   c.settling,
	}
	if c.finish != nil {
		f := *c.finish
		snap.Finish = &f
	}
	if c.session == nil {
		return snap
	}

	s := c.session
	snap.Recipe = s.Recipe
	snap.StepIndex = s.Index
	snap.StepCount = len(s.Recipe.Steps)
	snap.Step = s.Step()
	snap.Score = s.Score
	snap.Progress = s.Progress
	snap.Progress.Points = slices.Clone(s.Progress.Points)
	return snap
}
