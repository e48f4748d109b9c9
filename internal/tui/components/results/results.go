package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/search"
	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

// Page is what the pagination bar needs to know about the current search
type Page struct {
	Current     int
	Total       int
	HasNext     bool
	Window      []search.PageItem
	TotalItems  int
	FilterCount int
}

// Model is the results list with its pagination bar
type Model struct {
	items        []catalog.Anime
	favorite     func(int) bool
	genreFilter  func(string) bool
	page         Page
	currentIndex int
	focused      bool
	width        int
	height       int
}

func New() Model {
	return Model{}
}

// SetItems replaces the displayed list. The cursor is kept on the same
// anime when it is still present.
func (m *Model) SetItems(items []catalog.Anime) {
	var selectedID int
	if sel := m.Selected(); sel != nil {
		selectedID = sel.MalID
	}

	m.items = items
	m.currentIndex = 0
	for i, item := range items {
		if item.MalID == selectedID {
			m.currentIndex = i
			break
		}
	}
}

func (m *Model) SetPage(p Page) {
	m.page = p
}

// SetFavoriteFunc sets the lookup used to mark favorites
func (m *Model) SetFavoriteFunc(fn func(int) bool) {
	m.favorite = fn
}

// SetGenreHighlight sets the lookup used to highlight filtered genres
func (m *Model) SetGenreHighlight(fn func(string) bool) {
	m.genreFilter = fn
}

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m Model) Focused() bool {
	return m.focused
}

func (m Model) Len() int {
	return len(m.items)
}

// Selected returns the anime under the cursor, or nil
func (m Model) Selected() *catalog.Anime {
	if m.currentIndex < 0 || m.currentIndex >= len(m.items) {
		return nil
	}
	item := m.items[m.currentIndex]
	return &item
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
		if !m.focused {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.currentIndex > 0 {
				m.currentIndex--
			}
		case "down", "j":
			if m.currentIndex < len(m.items)-1 {
				m.currentIndex++
			}
		case "home", "g":
			m.currentIndex = 0
		case "end", "G":
			m.currentIndex = max(0, len(m.items)-1)
		case "enter":
			if sel := m.Selected(); sel != nil {
				id, title := sel.MalID, sel.Title
				return m, func() tea.Msg {
					return common.AnimeSelectedMsg{ID: id, Title: title}
				}
			}
		case "f":
			if sel := m.Selected(); sel != nil {
				item := *sel
				return m, func() tea.Msg {
					return common.ToggleFavoriteMsg{Anime: item}
				}
			}
		case "n", "right", "l":
			if m.page.HasNext {
				return m, changePage(0, 1)
			}
		case "p", "left", "h":
			if m.page.Current > 1 {
				return m, changePage(0, -1)
			}
		case "F":
			return m, func() tea.Msg { return common.OpenFilterPanelMsg{} }
		}
	}

	return m, nil
}

func changePage(page, delta int) tea.Cmd {
	return func() tea.Msg {
		return common.ChangePageMsg{Page: page, Delta: delta}
	}
}

func (m Model) View() string {
	var content strings.Builder

	header := styles.TitleStyle.Render("  RESULTS  ")
	if m.page.FilterCount > 0 {
		badge := lipgloss.NewStyle().
			Foreground(styles.OxocarbonBase05).
			Background(styles.OxocarbonBase02).
			Padding(0, 1).
			Render(fmt.Sprintf("%d filters", m.page.FilterCount))
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, " ", badge)
	}
	content.WriteString(header + "\n")

	count := fmt.Sprintf("  %d shown", len(m.items))
	if m.page.TotalItems > 0 {
		count += fmt.Sprintf(" • %d total", m.page.TotalItems)
	}
	if m.page.Total > 1 {
		count += fmt.Sprintf(" • page %d of %d", m.page.Current, m.page.Total)
	}
	content.WriteString(styles.SubtitleStyle.Render(count) + "\n\n")

	if len(m.items) == 0 {
		content.WriteString(styles.MetadataStyle.Render("  No anime match the current filters.") + "\n")
	}

	start, end := m.visibleRange()
	for i := start; i < end; i++ {
		item := m.items[i]
		card := RenderCard(item, CardOptions{
			Width:          m.width,
			Selected:       m.focused && i == m.currentIndex,
			Favorite:       m.favorite != nil && m.favorite(item.MalID),
			HighlightGenre: m.genreFilter,
		})
		content.WriteString(card + "\n\n")
	}

	if bar := RenderPagination(m.page); bar != "" {
		content.WriteString(bar + "\n")
	}

	return content.String()
}

// visibleRange keeps the cursor centred in the window of cards that fit
func (m Model) visibleRange() (int, int) {
	total := len(m.items)
	maxVisible := 3
	if m.height > 0 {
		// search box, results header and pagination take about 14 lines
		maxVisible = max(1, (m.height-14)/(CardLines+1))
	}

	if total <= maxVisible {
		return 0, total
	}

	start := 0
	if m.currentIndex > maxVisible/2 {
		start = m.currentIndex - maxVisible/2
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = max(0, end-maxVisible)
	}
	return start, end
}

// RenderPagination draws "← Prev 1 … 4 [5] 6 … 10 Next →", or "" for a single page
func RenderPagination(p Page) string {
	if len(p.Window) == 0 {
		return ""
	}

	prev := styles.PageStyle.Render("← Prev")
	if p.Current <= 1 {
		prev = styles.PageDisabledStyle.Render("← Prev")
	}
	next := styles.PageStyle.Render("Next →")
	if !p.HasNext {
		next = styles.PageDisabledStyle.Render("Next →")
	}

	parts := []string{prev}
	for _, item := range p.Window {
		switch {
		case item.Ellipsis:
			parts = append(parts, styles.PageDisabledStyle.Render("…"))
		case item.Current:
			parts = append(parts, styles.PageActiveStyle.Render(fmt.Sprint(item.Page)))
		default:
			parts = append(parts, styles.PageStyle.Render(fmt.Sprint(item.Page)))
		}
	}
	parts = append(parts, next)

	return "  " + strings.Join(parts, " ")
}
