package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// Album layout constants
const (
	albumChrome    = 10 // Rows used by title, summary and borders
	albumMinHeight = 3
)

// albumView is the dish album: every recorded dish, newest first.
type albumView struct {
	table        table.Model
	width        int
	height       int
	dishes       int
	summary      string
	achievements []string
}

func newAlbumView(width, height int) albumView {
	a := albumView{width: width, height: height}
	a.table = a.createTable()
	return a
}

// createTable creates the album table sized to the terminal.
func (a *albumView) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 14},
		{Title: "Dish", Width: 16},
		{Title: "Rating", Width: 7},
		{Title: "Verdict", Width: 8},
		{Title: "Score", Width: 6},
		{Title: "Time", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(a.height-albumChrome, albumMinHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// albumRows builds table rows from the album, which is kept newest first.
func albumRows(history []kitchen.Dish, cat *kitchen.Catalog, now time.Time) []table.Row {
	rows := make([]table.Row, len(history))
	for i, d := range history {
		rows[i] = table.Row{
			humanize.RelTime(d.CreatedAt, now, "ago", "from now"),
			recipeName(cat, d.RecipeID),
			stars(d.Stars),
			string(d.Reaction),
			fmt.Sprintf("%d", d.Score),
			d.CookingTime.Round(100 * time.Millisecond).String(),
		}
	}
	return rows
}

// load refreshes the album from a profile.
func (a *albumView) load(p kitchen.Profile, cat *kitchen.Catalog) {
	a.table.SetRows(albumRows(p.History, cat, time.Now()))
	a.table.GotoTop()
	a.dishes = len(p.History)
	a.summary = fmt.Sprintf("★ %d  ·  %d/%d recipes  ·  %s cooked",
		p.TotalStars, len(p.Unlocked), cat.Len(), humanize.Comma(int64(len(p.History))))

	a.achievements = a.achievements[:0]
	for _, id := range p.Achievements {
		a.achievements = append(a.achievements, kitchen.AchievementTitle(id))
	}
}

func (a *albumView) resize(width, height int) {
	rows := a.table.Rows()
	a.width = width
	a.height = height
	a.table = a.createTable()
	a.table.SetRows(rows)
}

// renderAlbum renders the album screen.
func (m Model) renderAlbum() string {
	a := m.album
	w := a.width

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("A L B U M"), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(starStyle.Render(a.summary), w))
	b.WriteString("\n")
	if len(a.achievements) > 0 {
		b.WriteString(centerText(mutedStyle.Render("🏅 "+strings.Join(a.achievements, ", ")), w))
	}
	b.WriteString("\n\n")

	var content string
	if a.dishes == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No dishes yet.\nCook something to fill the album!")
	} else {
		content = a.table.View()
	}
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, tableStyle.Render(content)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(" up/down: scroll  esc: back  q: quit"))
	return b.String()
}
