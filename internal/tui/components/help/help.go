package help

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

// HelpContext represents which view the help is being shown in
type HelpContext int

const (
	GlobalContext HelpContext = iota
	SearchContext
	ResultsContext
	DetailContext
	FavoritesContext
	FilterContext
)

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	Context     []HelpContext
}

// Model represents the help panel state
type Model struct {
	context      HelpContext
	width        int
	height       int
	visible      bool
	scrollOffset int
}

var allShortcuts = []Shortcut{
	{Key: "↑/↓ or j/k", Description: "Navigate up/down", Context: []HelpContext{GlobalContext}},
	{Key: "enter", Description: "Select item", Context: []HelpContext{GlobalContext}},
	{Key: "esc", Description: "Go back / Cancel", Context: []HelpContext{GlobalContext}},
	{Key: "tab", Description: "Switch between input and results", Context: []HelpContext{GlobalContext}},
	{Key: "ctrl+f", Description: "Open favorites", Context: []HelpContext{GlobalContext}},
	{Key: "ctrl+c", Description: "Quit application", Context: []HelpContext{GlobalContext}},
	{Key: "?", Description: "Show/hide this help", Context: []HelpContext{GlobalContext}},

	{Key: "type", Description: "Search as you type", Context: []HelpContext{SearchContext}},
	{Key: "enter", Description: "Search immediately", Context: []HelpContext{SearchContext}},
	{Key: "esc", Description: "Clear the query", Context: []HelpContext{SearchContext}},

	{Key: "enter", Description: "Show details", Context: []HelpContext{ResultsContext}},
	{Key: "f", Description: "Toggle favorite", Context: []HelpContext{ResultsContext, DetailContext, FavoritesContext}},
	{Key: "n/→", Description: "Next page", Context: []HelpContext{ResultsContext}},
	{Key: "p/←", Description: "Previous page", Context: []HelpContext{ResultsContext}},
	{Key: "g/G", Description: "First/last result", Context: []HelpContext{ResultsContext}},
	{Key: "F", Description: "Filters and sorting", Context: []HelpContext{ResultsContext}},
	{Key: "c", Description: "Clear all filters", Context: []HelpContext{ResultsContext, FilterContext}},

	{Key: "s", Description: "Share", Context: []HelpContext{DetailContext}},
	{Key: "t", Description: "Watch trailer", Context: []HelpContext{DetailContext}},
	{Key: "o", Description: "Open on MyAnimeList", Context: []HelpContext{DetailContext}},
	{Key: "y", Description: "Copy link", Context: []HelpContext{DetailContext}},

	{Key: "/", Description: "Filter favorites", Context: []HelpContext{FavoritesContext}},
	{Key: "x", Description: "Remove favorite", Context: []HelpContext{FavoritesContext}},

	{Key: "enter/space", Description: "Toggle option", Context: []HelpContext{FilterContext}},
	{Key: "←/→", Description: "Change year", Context: []HelpContext{FilterContext}},
}

func New() Model {
	return Model{context: GlobalContext}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if !m.visible {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.scrollOffset > 0 {
				m.scrollOffset--
			}
		case "down", "j":
			m.scrollOffset++
		case "pgup", "b":
			m.scrollOffset = max(0, m.scrollOffset-10)
		case "pgdown", " ":
			m.scrollOffset += 10
		case "home", "g":
			m.scrollOffset = 0
		case "end", "G":
			m.scrollOffset = 999999 // clamped in View
		}
	}
	return m, nil
}

// View renders the help panel
func (m Model) View() string {
	if !m.visible || m.width == 0 || m.height == 0 {
		return ""
	}

	var content strings.Builder

	nav := styles.HelpStyle.UnsetMarginTop().Render("↑/↓ scroll • g/G top/bottom • esc/? close")
	content.WriteString(lipgloss.NewStyle().Width(60).Align(lipgloss.Center).Render(nav))
	content.WriteString("\n")

	header := styles.HeaderStyle.UnsetMarginBottom()
	content.WriteString(header.Render("Navigation & General") + "\n")
	for _, sc := range shortcutsFor(GlobalContext) {
		content.WriteString(renderShortcutLine(sc) + "\n")
	}

	if name := m.contextName(); name != "" {
		if scs := shortcutsFor(m.context); len(scs) > 0 {
			content.WriteString("\n" + header.Render(name+" Actions") + "\n")
			for _, sc := range scs {
				content.WriteString(renderShortcutLine(sc) + "\n")
			}
		}
	}

	lines := strings.Split(content.String(), "\n")
	availableHeight := max(10, m.height-6)

	offset := min(m.scrollOffset, len(lines)-availableHeight)
	offset = max(0, offset)
	end := min(len(lines), offset+availableHeight)

	scrollInfo := ""
	if len(lines) > availableHeight {
		scrollInfo = fmt.Sprintf(" (%d-%d/%d)", offset+1, end, len(lines))
	}

	boxWidth := 64
	if m.width < boxWidth+4 {
		boxWidth = max(40, m.width-4)
	}

	titleBar := lipgloss.NewStyle().
		Foreground(styles.OxocarbonWhite).
		Background(styles.OxocarbonPurple).
		Padding(0, 2).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center).
		Render("KEYBOARD SHORTCUTS" + scrollInfo)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OxocarbonPurple).
		Padding(0, 2).
		Width(boxWidth).
		Render(titleBar + "\n\n" + strings.Join(lines[offset:end], "\n"))

	if lipgloss.Height(box) >= m.height {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) SetContext(ctx HelpContext) {
	m.context = ctx
}

func (m *Model) Toggle() {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
}

func (m *Model) Show() {
	m.visible = true
	m.scrollOffset = 0
}

func (m *Model) Hide() {
	m.visible = false
	m.scrollOffset = 0
}

func (m Model) IsVisible() bool {
	return m.visible
}

// shortcutsFor returns the shortcuts listed under ctx. Global shortcuts
// are only returned for GlobalContext.
func shortcutsFor(ctx HelpContext) []Shortcut {
	var out []Shortcut
	for _, sc := range allShortcuts {
		global := slices.Contains(sc.Context, GlobalContext)
		if ctx == GlobalContext && global {
			out = append(out, sc)
		} else if ctx != GlobalContext && !global && slices.Contains(sc.Context, ctx) {
			out = append(out, sc)
		}
	}
	return out
}

func renderShortcutLine(sc Shortcut) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.OxocarbonPurple).
		Bold(true).
		Width(18)
	descStyle := lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)

	return "  " + keyStyle.Render(sc.Key) + descStyle.Render(sc.Description)
}

func (m Model) contextName() string {
	switch m.context {
	case SearchContext:
		return "Search"
	case ResultsContext:
		return "Results"
	case DetailContext:
		return "Detail"
	case FavoritesContext:
		return "Favorites"
	case FilterContext:
		return "Filter"
	default:
		return ""
	}
}
