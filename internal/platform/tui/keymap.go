package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-kitchen/internal/core"
)

// KeyMap defines the key bindings of every kitchen screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Action  key.Binding
	Back    key.Binding
	Restart key.Binding
	Mute    key.Binding
	Album   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Album, k.Mute, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Action},
		{k.Back, k.Restart, k.Album},
		{k.Mute, k.Help, k.Quit},
	}
}

// cookingHelp is the key help shown under the cooking board.
type cookingHelp struct{ k KeyMap }

func (c cookingHelp) ShortHelp() []key.Binding {
	return []key.Binding{c.k.Action, c.k.Restart, c.k.Back, c.k.Mute, c.k.Quit}
}

func (c cookingHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{c.ShortHelp()}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "cook"),
		),
		Action: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "tap"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Album: key.NewBinding(
			key.WithKeys("a", "tab"),
			key.WithHelp("a", "album"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapMouse translates a Bubble Tea mouse message into a raw pointer event.
// Only the left button drives gestures; pressed reports whether a gesture is
// in progress so stray motion reports are ignored.
func MapMouse(msg tea.MouseMsg, pressed bool) (core.RawPointer, bool) {
	raw := core.RawPointer{X: msg.X, Y: msg.Y, HasCoord: true}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return raw, false
		}
		raw.Kind = core.RawDown
	case tea.MouseActionMotion:
		if !pressed {
			return raw, false
		}
		raw.Kind = core.RawMotion
	case tea.MouseActionRelease:
		if !pressed {
			return raw, false
		}
		raw.Kind = core.RawUp
	default:
		return raw, false
	}
	return raw, true
}
