package favorites

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/components/results"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

// Model lists saved favorites with a fuzzy filter
type Model struct {
	items        []catalog.Anime
	currentIndex int
	fuzzySearch  *common.FuzzySearch
	width        int
	height       int
}

func New() Model {
	return Model{fuzzySearch: common.NewFuzzySearch()}
}

// SetItems replaces the list, keeping the cursor in range
func (m *Model) SetItems(items []catalog.Anime) {
	m.items = items
	if n := len(m.filteredIndices()); m.currentIndex >= n {
		m.currentIndex = max(0, n-1)
	}
}

// IsInputActive reports whether keys are going to the filter input
func (m Model) IsInputActive() bool {
	return m.fuzzySearch.IsActive()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fuzzySearch.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.fuzzySearch.IsActive() {
			switch msg.String() {
			case "esc":
				m.fuzzySearch.Deactivate()
				m.currentIndex = 0
				return m, nil
			case "enter":
				return m, m.openSelected()
			case "up", "down":
				m.move(msg.String())
				return m, nil
			}
			cmd := m.fuzzySearch.Update(msg)
			m.currentIndex = 0
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.currentIndex = 0
			return m, m.fuzzySearch.Activate()
		case "up", "k", "down", "j":
			m.move(msg.String())
		case "enter":
			return m, m.openSelected()
		case "f", "x", "delete":
			if sel := m.Selected(); sel != nil {
				item := *sel
				return m, func() tea.Msg { return common.ToggleFavoriteMsg{Anime: item} }
			}
		case "esc":
			return m, func() tea.Msg { return common.BackMsg{} }
		}
	}
	return m, nil
}

func (m *Model) move(key string) {
	n := len(m.filteredIndices())
	switch key {
	case "up", "k":
		if m.currentIndex > 0 {
			m.currentIndex--
		}
	case "down", "j":
		if m.currentIndex < n-1 {
			m.currentIndex++
		}
	}
}

func (m Model) openSelected() tea.Cmd {
	sel := m.Selected()
	if sel == nil {
		return nil
	}
	id, title := sel.MalID, sel.Title
	return func() tea.Msg { return common.AnimeSelectedMsg{ID: id, Title: title} }
}

// Selected returns the favorite under the cursor after filtering, or nil
func (m Model) Selected() *catalog.Anime {
	indices := m.filteredIndices()
	if m.currentIndex < 0 || m.currentIndex >= len(indices) {
		return nil
	}
	item := m.items[indices[m.currentIndex]]
	return &item
}

func (m Model) filteredIndices() []int {
	titles := make([]string, len(m.items))
	for i, a := range m.items {
		titles[i] = a.Title + " " + a.EnglishTitle()
	}
	return m.fuzzySearch.Filter(titles)
}

func (m Model) View() string {
	var content strings.Builder
	content.WriteString("\n")
	content.WriteString(styles.TitleStyle.Render("  MY FAVORITES  ") + "\n")

	indices := m.filteredIndices()
	count := fmt.Sprintf("  %d saved", len(m.items))
	if m.fuzzySearch.IsActive() && m.fuzzySearch.Query() != "" {
		count += fmt.Sprintf(" • %d matching", len(indices))
	}
	content.WriteString(styles.SubtitleStyle.Render(count) + "\n")

	if m.fuzzySearch.IsActive() {
		content.WriteString("\n" + m.fuzzySearch.View() + "\n")
	}
	content.WriteString("\n")

	if len(m.items) == 0 {
		content.WriteString(styles.ListTitleStyle.Render("  No favorites yet") + "\n")
		content.WriteString(styles.MetadataStyle.Render("  Press f on a search result to save it here.") + "\n")
	}

	start, end := m.visibleRange(len(indices))
	for i := start; i < end; i++ {
		card := results.RenderCard(m.items[indices[i]], results.CardOptions{
			Width:    m.width,
			Selected: i == m.currentIndex,
			Favorite: true,
		})
		content.WriteString(card + "\n\n")
	}

	help := "  ↑/↓ nav • enter details • f remove • / filter • esc back"
	if m.fuzzySearch.IsActive() {
		help = "  Type to filter • ↑/↓ nav • enter details • esc clear"
	}
	content.WriteString(styles.HelpStyle.Render(help))
	return content.String()
}

func (m Model) visibleRange(total int) (int, int) {
	maxVisible := 3
	if m.height > 0 {
		maxVisible = max(1, (m.height-10)/(results.CardLines+1))
	}
	if total <= maxVisible {
		return 0, total
	}
	start := max(0, m.currentIndex-maxVisible/2)
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
	}
	return start, end
}
