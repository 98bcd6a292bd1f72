package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("130")).
			Padding(0, 2)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Italic(true)
)

// stars renders a rating such as "★★☆".
func stars(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("★", n) + strings.Repeat("☆", 3-n)
}

// recipeName returns the display name of a recipe ID from the catalog.
func recipeName(cat *kitchen.Catalog, id string) string {
	if r, ok := cat.Recipe(id); ok {
		return strings.TrimSpace(r.Icon + " " + r.Name)
	}
	return id
}

// lockedNotice explains why a recipe could not be started.
func (m Model) lockedNotice(id string, err error) string {
	r, ok := m.ctrl.Catalog().Recipe(id)
	if !ok {
		return fmt.Sprintf("No recipe called %q", id)
	}
	missing := r.UnlockStars - m.ctrl.Profiles().Profile().TotalStars
	if missing > 0 {
		return fmt.Sprintf("%s needs %d more ★", r.Name, missing)
	}
	return err.Error()
}

// menuView renders the recipe picker.
func (m Model) menuView() string {
	w := m.opts.Runtime.ScreenW
	profile := m.ctrl.Profiles().Profile()
	cat := m.ctrl.Catalog()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("K I T C H E N"), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(starStyle.Render(fmt.Sprintf("★ %d", profile.TotalStars)), w))
	b.WriteString("\n\n")

	for i, r := range cat.Recipes() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		if profile.IsUnlocked(r.ID) {
			line = fmt.Sprintf("%s%s %-12s %s", cursor, r.Icon, r.Name, stars(profile.Best(r.ID)))
			if i == m.cursor {
				line = selectedStyle.Render(line)
			}
		} else {
			line = lockedStyle.Render(fmt.Sprintf("%s🔒 %-12s %2d★", cursor, r.Name, r.UnlockStars))
		}
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if id, missing, ok := cat.Policy().NextUnlock(profile.TotalStars); ok {
		hint := fmt.Sprintf("%d more ★ to unlock %s", missing, recipeName(cat, id))
		b.WriteString(centerText(mutedStyle.Render(hint), w))
	} else {
		b.WriteString(centerText(mutedStyle.Render("Every recipe is unlocked!"), w))
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(centerText(noticeStyle.Render(m.notice), w))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// resultView renders the rating card of a finished dish.
func (m Model) resultView() string {
	w := m.opts.Runtime.ScreenW
	snap := m.ctrl.Snapshot()
	f := snap.Finish
	if f == nil {
		return m.menuView()
	}
	theme := themeFor(snap.Recipe.Color)
	cat := m.ctrl.Catalog()

	var card strings.Builder
	card.WriteString(fmt.Sprintf("%s %s\n\n", snap.Recipe.Icon, snap.Recipe.Name))
	card.WriteString(starStyle.Render(stars(f.Outcome.Stars)) + "\n")
	card.WriteString(fmt.Sprintf("%s  %s\n", f.Outcome.Reaction, f.Style.Expression.Face()))
	card.WriteString(f.Style.Message + "\n\n")
	card.WriteString(fmt.Sprintf("Score %d", f.Score))

	c := f.Completion
	if c.Improved && c.PreviousBest > 0 {
		card.WriteString(fmt.Sprintf("\nNew best! (was %s)", stars(c.PreviousBest)))
	}
	for _, id := range c.NewlyUnlocked {
		card.WriteString("\nUnlocked: " + recipeName(cat, id))
	}
	for _, id := range c.NewAchievements {
		card.WriteString("\nAchievement: " + kitchen.AchievementTitle(id))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 4).
		Align(lipgloss.Center).
		Render(card.String())

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, box))
	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render(fmt.Sprintf("★ %d total", c.TotalStars)), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render("enter: menu  r: cook again  a: album  q: quit"), w))
	return b.String()
}
