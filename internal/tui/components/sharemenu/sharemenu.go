package sharemenu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/anisearch/internal/share"
	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/styles"
	"github.com/justchokingaround/anisearch/internal/tui/utils"
)

const copyLabel = "Copy link"

// Model is the share menu overlay for a single anime
type Model struct {
	title   string
	link    string
	targets []share.Target
	cursor  int
	width   int
}

func New() Model {
	return Model{}
}

// Open points the menu at a new anime and resets the cursor
func (m *Model) Open(title, link string) {
	m.title = title
	m.link = link
	m.targets = share.Targets(title, link)
	m.cursor = 0
}

// Options returns the labels in display order
func (m Model) Options() []string {
	opts := make([]string, 0, len(m.targets)+1)
	for _, t := range m.targets {
		opts = append(opts, t.Name)
	}
	return append(opts, copyLabel)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		n := len(m.targets) + 1
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < n-1 {
				m.cursor++
			}
		case "enter":
			return m, m.choose()
		case "esc", "q", "s":
			return m, func() tea.Msg { return common.BackMsg{} }
		}
	}
	return m, nil
}

func (m Model) choose() tea.Cmd {
	if m.cursor < len(m.targets) {
		t := m.targets[m.cursor]
		return func() tea.Msg { return common.OpenURLMsg{Label: t.Name, URL: t.URL} }
	}
	link := m.link
	return func() tea.Msg { return common.CopyToClipboardMsg{Label: "Link", Text: link} }
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(" SHARE ") + "\n")
	b.WriteString(styles.MetadataStyle.Render(utils.TruncateWithWidth(m.title, 36)) + "\n\n")

	for i, opt := range m.Options() {
		if i == m.cursor {
			b.WriteString(styles.ListTitleStyle.Foreground(styles.OxocarbonPurple).Render("▶ "+opt) + "\n")
		} else {
			b.WriteString("  " + styles.MetadataStyle.Render(opt) + "\n")
		}
	}

	b.WriteString(styles.HelpStyle.Render("enter select • esc close"))
	return styles.PopupStyle.Width(40).Render(b.String())
}
