package filter

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/anisearch/internal/search"
	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

type rowKind int

const (
	sortRow rowKind = iota
	genreRow
	yearRow
	clearRow
)

type row struct {
	kind  rowKind
	sort  search.SortMode
	genre string
}

// Model is the filter panel overlay. It does not own filter state; the
// app pushes the current filters in with SetState and applies the
// messages the panel emits.
type Model struct {
	rows    []row
	years   []string
	cursor  int
	filters search.Filters
	sort    search.SortMode
	width   int
	height  int
}

func New(now time.Time) Model {
	var rows []row
	for _, mode := range search.SortModes {
		rows = append(rows, row{kind: sortRow, sort: mode})
	}
	for _, g := range search.Genres {
		rows = append(rows, row{kind: genreRow, genre: g})
	}
	rows = append(rows, row{kind: yearRow}, row{kind: clearRow})

	return Model{
		rows:  rows,
		years: search.RecentYears(now, 30),
	}
}

// SetState updates the panel to reflect the active filters and sort
func (m *Model) SetState(filters search.Filters, sort search.SortMode) {
	m.filters = filters
	m.sort = sort
}

// Reset moves the cursor back to the top
func (m *Model) Reset() {
	m.cursor = 0
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", " ":
			return m, m.activate(1)
		case "right", "l":
			if m.rows[m.cursor].kind == yearRow {
				return m, m.activate(1)
			}
		case "left", "h":
			if m.rows[m.cursor].kind == yearRow {
				return m, m.activate(-1)
			}
		case "c":
			return m, func() tea.Msg { return common.ClearFiltersMsg{} }
		case "esc", "F", "q":
			return m, func() tea.Msg { return common.BackMsg{} }
		}
	}
	return m, nil
}

func (m Model) activate(step int) tea.Cmd {
	r := m.rows[m.cursor]
	switch r.kind {
	case sortRow:
		mode := r.sort
		return func() tea.Msg { return common.SetSortMsg{Mode: mode} }
	case genreRow:
		genre := r.genre
		return func() tea.Msg { return common.ToggleGenreMsg{Genre: genre} }
	case yearRow:
		year := m.stepYear(step)
		return func() tea.Msg { return common.SetYearMsg{Year: year} }
	case clearRow:
		return func() tea.Msg { return common.ClearFiltersMsg{} }
	}
	return nil
}

// stepYear cycles through "" (any year) and the offered years
func (m Model) stepYear(step int) string {
	options := append([]string{""}, m.years...)
	current := 0
	for i, y := range options {
		if y == m.filters.Year {
			current = i
			break
		}
	}
	next := (current + step + len(options)) % len(options)
	return options[next]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(" FILTERS ") + "\n")
	n := m.filters.Count()
	if m.sort != search.SortNone {
		n++
	}
	if n > 0 {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d active", n)) + "\n")
	}

	section := ""
	for i, r := range m.rows {
		if s := sectionTitle(r.kind); s != section {
			section = s
			if s != "" {
				b.WriteString("\n" + styles.HeaderStyle.UnsetMargins().Render(s) + "\n")
			} else {
				b.WriteString("\n")
			}
		}

		cursor := "  "
		if i == m.cursor {
			cursor = styles.ListTitleStyle.Foreground(styles.OxocarbonPurple).Render("▶ ")
		}
		b.WriteString(cursor + m.renderRow(r, i == m.cursor) + "\n")
	}

	b.WriteString(styles.HelpStyle.Render("↑/↓ move • enter toggle • ←/→ year • c clear • esc close"))

	width := 44
	if m.width > 0 && m.width-8 < width {
		width = max(20, m.width-8)
	}
	return styles.PopupStyle.Width(width).Render(b.String())
}

func sectionTitle(kind rowKind) string {
	switch kind {
	case sortRow:
		return "Sort by"
	case genreRow:
		return "Genres"
	case yearRow:
		return "Year"
	}
	return ""
}

func (m Model) renderRow(r row, selected bool) string {
	text := lipgloss.NewStyle().Foreground(styles.OxocarbonBase04)
	if selected {
		text = text.Foreground(styles.OxocarbonWhite).Bold(true)
	}

	switch r.kind {
	case sortRow:
		mark := "( )"
		if m.sort == r.sort {
			mark = styles.ScoreStyle.Render("(•)")
		}
		return mark + " " + text.Render(r.sort.Label())
	case genreRow:
		mark := "[ ]"
		if m.filters.HasGenre(r.genre) {
			mark = styles.ScoreStyle.Render("[x]")
		}
		return mark + " " + text.Render(r.genre)
	case yearRow:
		year := m.filters.Year
		if year == "" {
			year = "Any"
		}
		return text.Render("‹ " + year + " ›")
	case clearRow:
		return styles.ErrorStyle.UnsetBold().Render("Clear all")
	}
	return ""
}
