package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-kitchen/internal/config"
	"github.com/vovakirdan/tui-kitchen/internal/core"
	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
	"github.com/vovakirdan/tui-kitchen/internal/storage"
)

// screenID identifies the active screen.
type screenID int

const (
	screenMenu screenID = iota
	screenCooking
	screenResult
	screenAlbum
)

// Options configures a kitchen Model.
type Options struct {
	Runtime  core.RuntimeConfig
	Kitchen  config.KitchenConfig
	Catalog  *kitchen.Catalog
	Profiles *kitchen.Profiles // Nil keeps progress in memory only
	Audio    kitchen.Audio   // Nil plays nothing
	Logger   *log.Logger     // Nil discards
	Watcher  *config.Watcher // Nil disables catalog reloads
	Recipe   string          // Recipe to start immediately, if unlocked
}

// CatalogMsg carries a reloaded recipe catalog.
type CatalogMsg struct {
	Path    string
	Catalog *kitchen.Catalog
	Err     error
}

// Model is the Bubble Tea model for the kitchen: recipe menu, cooking
// board, result card and album.
type Model struct {
	opts       Options
	logger     *log.Logger
	ctrl       *kitchen.Controller
	clock      *kitchen.Clock
	translator *core.Translator
	screen     *core.Screen
	fx         *EffectLayer
	layout     layout
	keys       KeyMap
	help       help.Model
	album      albumView

	current  screenID
	cursor   int
	pressed  bool
	lastTick time.Time
	notice   string
	quitting bool
}

// NewModel creates a kitchen model.
func NewModel(opts Options) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Profiles == nil {
		opts.Profiles = kitchen.NewProfiles(storage.NewMemory(), storage.DefaultNamespace, opts.Catalog.Policy())
	}

	clock := kitchen.NewClock()
	fx := NewEffectLayer(time.Now().UnixNano())
	ctrlOpts := []kitchen.Option{
		kitchen.WithLogger(logger),
		kitchen.WithScheduler(clock),
		kitchen.WithEffects(fx),
	}
	if opts.Audio != nil {
		ctrlOpts = append(ctrlOpts, kitchen.WithAudio(opts.Audio))
	}
	if rules, err := opts.Kitchen.Rules(opts.Profiles.Profile().TotalStars); err == nil {
		ctrlOpts = append(ctrlOpts, kitchen.WithRules(rules))
	} else {
		logger.Warn("invalid gameplay config, using defaults", "error", err)
	}
	ctrl := kitchen.NewController(opts.Catalog, opts.Profiles, ctrlOpts...)

	l := computeLayout(opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := Model{
		opts:       opts,
		logger:     logger,
		ctrl:       ctrl,
		clock:      clock,
		translator: core.NewTranslator(l.surface(ctrl.Snapshot().Rules)),
		screen:     core.NewScreen(l.width, l.gridH),
		fx:         fx,
		layout:     l,
		keys:       DefaultKeyMap(),
		help:       h,
		album:      newAlbumView(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}

	if opts.Recipe != "" {
		m = m.startRecipe(opts.Recipe)
		m.cursor = m.recipeIndex(opts.Recipe)
	}
	return m
}

// Controller returns the recipe controller driving the model.
func (m Model) Controller() *kitchen.Controller {
	return m.ctrl
}

// Init starts the frame clock and, when configured, the catalog watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.opts.Runtime.TickRate), watchCatalog(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case CatalogMsg:
		return m.handleCatalog(msg)
	}

	return m, nil
}

// handleKey processes keyboard input for the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Abandon()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Mute):
		if m.ctrl.ToggleMute() {
			m.notice = "Sound off"
		} else {
			m.notice = "Sound on"
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.current {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenCooking:
		return m.handleCookingKey(msg)
	case screenResult:
		return m.handleResultKey(msg)
	case screenAlbum:
		return m.handleAlbumKey(msg)
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recipes := m.ctrl.Catalog().Recipes()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(recipes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Action):
		if m.cursor < len(recipes) {
			m = m.startRecipe(recipes[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Album):
		m = m.openAlbum()
	}
	return m, nil
}

func (m Model) handleCookingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Abandon()
		m.fx.Clear()
		m.pressed = false
		m.current = screenMenu
	case key.Matches(msg, m.keys.Restart):
		if s := m.ctrl.Session(); s != nil {
			m = m.startRecipe(s.Recipe.ID)
		}
	case key.Matches(msg, m.keys.Action):
		// A key press has no release event, so it is a complete tap.
		m.ctrl.HandleInput(m.translator.Translate(core.RawPointer{Kind: core.RawDown}))
		m.ctrl.HandleInput(m.translator.Translate(core.RawPointer{Kind: core.RawUp}))
	}
	return m, nil
}

func (m Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Back):
		m.current = screenMenu
	case key.Matches(msg, m.keys.Restart):
		if s := m.ctrl.Session(); s != nil {
			m = m.startRecipe(s.Recipe.ID)
		}
	case key.Matches(msg, m.keys.Album):
		m = m.openAlbum()
	}
	return m, nil
}

func (m Model) handleAlbumKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Album):
		m.current = screenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.album.table, cmd = m.album.table.Update(msg)
	return m, cmd
}

// handleMouse feeds pointer gestures on the board to the controller.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.current != screenCooking {
		return m, nil
	}
	raw, ok := MapMouse(msg, m.pressed)
	if !ok {
		return m, nil
	}
	if raw.Kind == core.RawDown {
		if !m.translator.Surface().Bounds.Contains(raw.X, raw.Y) {
			return m, nil
		}
		m.pressed = true
	}
	if raw.Kind == core.RawUp {
		m.pressed = false
	}
	m.ctrl.HandleInput(m.translator.Translate(raw))
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.layout = computeLayout(msg.Width, msg.Height)
	m.screen.Resize(m.layout.width, m.layout.gridH)
	m.translator.SetSurface(m.layout.surface(m.ctrl.Snapshot().Rules))
	m.help.Width = msg.Width
	m.album.resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances scheduled tasks and effects by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameStep(m.lastTick, now, m.opts.Runtime.TickRate)
	m.lastTick = now

	m.clock.Advance(dt)
	m.fx.Advance(dt)

	if m.current == screenCooking && m.ctrl.State() == kitchen.StateFinished {
		m.pressed = false
		m.current = screenResult
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// handleCatalog swaps in a reloaded catalog and keeps watching.
func (m Model) handleCatalog(msg CatalogMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("recipe reload failed", "path", msg.Path, "error", msg.Err)
		m.notice = "Recipe reload failed: " + msg.Err.Error()
		return m, watchCatalog(m.opts.Watcher)
	}
	if msg.Catalog != nil {
		m.ctrl.SetCatalog(msg.Catalog)
		if err := m.ctrl.Profiles().SetPolicy(msg.Catalog.Policy()); err != nil {
			m.logger.Warn("could not save profile after reload", "error", err)
		}
		m.cursor = min(m.cursor, max(msg.Catalog.Len()-1, 0))
		m.logger.Info("recipes reloaded", "path", msg.Path, "recipes", msg.Catalog.Len())
		m.notice = fmt.Sprintf("Recipes reloaded (%d)", msg.Catalog.Len())
	}
	return m, watchCatalog(m.opts.Watcher)
}

// startRecipe applies the difficulty for the player's stars and starts id.
func (m Model) startRecipe(id string) Model {
	total := m.ctrl.Profiles().Profile().TotalStars
	if rules, err := m.opts.Kitchen.Rules(total); err == nil {
		m.ctrl.SetRules(rules)
	}

	if err := m.ctrl.SelectRecipe(id); err != nil {
		m.logger.Debug("recipe not started", "recipe", id, "error", err)
		m.notice = m.lockedNotice(id, err)
		return m
	}

	m.fx.Clear()
	m.pressed = false
	m.notice = ""
	m.translator.SetSurface(m.layout.surface(m.ctrl.Snapshot().Rules))
	m.current = screenCooking
	return m
}

func (m Model) openAlbum() Model {
	m.album.load(m.ctrl.Profiles().Profile(), m.ctrl.Catalog())
	m.current = screenAlbum
	return m
}

func (m Model) recipeIndex(id string) int {
	for i, r := range m.ctrl.Catalog().Recipes() {
		if r.ID == id {
			return i
		}
	}
	return 0
}

// toCell maps a logical point to a cell of the board grid.
func (m Model) toCell(p core.Point) (int, int) {
	x, y := m.translator.ToScreen(p)
	return x, y - headerLines
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenCooking:
		return m.cookingView()
	case screenResult:
		return m.resultView()
	case screenAlbum:
		return m.renderAlbum()
	default:
		return m.menuView()
	}
}

func (m Model) cookingView() string {
	snap := m.ctrl.Snapshot()
	theme := themeFor(snap.Recipe.Color)
	w := m.opts.Runtime.ScreenW

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Ink).
		Background(theme.Accent).
		Padding(0, 1).
		Render(fmt.Sprintf("%s %s", snap.Recipe.Icon, snap.Recipe.Name))
	status := fmt.Sprintf("  Step %d/%d  Score %d", min(snap.StepIndex+1, snap.StepCount), snap.StepCount, snap.Score)
	if snap.Muted {
		status += "  (muted)"
	}

	instruction := ""
	if snap.Step != nil {
		instruction = snap.Step.Info().Instruction + "  (" + snap.Step.Kind().Hint() + ")"
	}

	var b strings.Builder
	b.WriteString(title + status + "\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Soft).Render(centerText(instruction, w)) + "\n")
	b.WriteString(centerText(stepTrack(snap.StepIndex, snap.StepCount), w) + "\n")

	drawScene(m.screen, m.layout, snap, m.toCell, m.fx)
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	msg := snap.Message
	if m.notice != "" {
		msg = m.notice
	}
	b.WriteString(centerText(snap.Expression.Face()+"  "+msg, w) + "\n")
	b.WriteString(mutedStyle.Render(m.help.View(cookingHelp{m.keys})))
	return b.String()
}

// stepTrack renders recipe progress such as "● ● ◉ ○ ○".
func stepTrack(index, count int) string {
	parts := make([]string, count)
	for i := range parts {
		switch {
		case i < index:
			parts[i] = "●"
		case i == index:
			parts[i] = "◉"
		default:
			parts[i] = "○"
		}
	}
	return strings.Join(parts, " ")
}

// watchCatalog waits for the next recipe file change and reloads it.
func watchCatalog(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			cat, err := config.LoadCatalogFile(path)
			return CatalogMsg{Path: path, Catalog: cat, Err: err}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return CatalogMsg{Err: err}
		}
	}
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
