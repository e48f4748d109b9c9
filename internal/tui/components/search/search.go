package search

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

type Model struct {
	textInput textinput.Model
	width     int
	height    int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search anime..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 80

	// Oxocarbon styling: clean look with purple accent
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase05)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.OxocarbonBase03)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.OxocarbonPurple)

	return Model{
		textInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Set input width accounting for borders and padding
		if m.width > 20 {
			m.textInput.Width = m.width - 20
		}
		return m, nil

	case tea.KeyMsg:
		if !m.textInput.Focused() {
			return m, nil
		}
		switch msg.String() {
		case "enter":
			query := m.textInput.Value()
			return m, func() tea.Msg {
				return common.SubmitSearchMsg{Query: query}
			}
		case "esc":
			if m.textInput.Value() == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			return m, queryChanged("")
		}
	}

	before := m.textInput.Value()
	m.textInput, cmd = m.textInput.Update(msg)
	if after := m.textInput.Value(); after != before {
		return m, tea.Batch(cmd, queryChanged(after))
	}
	return m, cmd
}

func queryChanged(query string) tea.Cmd {
	return func() tea.Msg {
		return common.QueryChangedMsg{Query: query}
	}
}

func (m Model) View() string {
	var output string
	output += "\n"

	output += styles.TitleStyle.Render("  ANIME SEARCH  ") + "\n"
	output += styles.SubtitleStyle.Render("  Discover your next favorite anime") + "\n\n"

	style := styles.ListItemStyle
	if m.textInput.Focused() {
		style = styles.ListItemSelectedStyle
	}
	output += style.Render(m.textInput.View()) + "\n"

	return output
}

// Focus gives the input keyboard focus
func (m *Model) Focus() tea.Cmd {
	return m.textInput.Focus()
}

func (m *Model) Blur() {
	m.textInput.Blur()
}

func (m Model) Focused() bool {
	return m.textInput.Focused()
}

// SetValue sets the value of the search input
func (m *Model) SetValue(value string) {
	m.textInput.SetValue(value)
}

// GetValue returns the value of the search input
func (m Model) GetValue() string {
	return m.textInput.Value()
}
