package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-kitchen/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("76")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("44")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorBrown:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
	core.ColorCream:   lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Theme is the pair of colors derived from a recipe's theme color.
type Theme struct {
	Accent lipgloss.Color // The recipe color itself
	Soft   lipgloss.Color // Accent blended toward white, for backgrounds
	Ink    lipgloss.Color // Readable text color on Accent
}

// themeFor derives a Theme from a "#RRGGBB" color. Invalid colors fall back
// to a warm yellow.
func themeFor(hex string) Theme {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex("#FFD700")
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	ink := lipgloss.Color("#1a1a1a")
	if l, _, _ := c.Lab(); l < 0.55 {
		ink = lipgloss.Color("#fafafa")
	}
	return Theme{
		Accent: lipgloss.Color(c.Hex()),
		Soft:   lipgloss.Color(c.BlendLab(white, 0.6).Clamped().Hex()),
		Ink:    ink,
	}
}
