package common

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/justchokingaround/anisearch/internal/tui/styles"
)

// FuzzySearch is a filter input for list views
type FuzzySearch struct {
	input  textinput.Model
	active bool
}

// NewFuzzySearch creates a new fuzzy search component
func NewFuzzySearch() *FuzzySearch {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.TextStyle = styles.MetadataStyle
	ti.PlaceholderStyle = styles.MetadataStyle

	return &FuzzySearch{input: ti}
}

// Activate focuses the input with an empty query
func (f *FuzzySearch) Activate() tea.Cmd {
	f.active = true
	f.input.SetValue("")
	f.input.Focus()
	return textinput.Blink
}

// Deactivate clears the query and hides the input
func (f *FuzzySearch) Deactivate() {
	f.active = false
	f.input.Blur()
	f.input.SetValue("")
}

func (f *FuzzySearch) IsActive() bool {
	return f.active
}

func (f *FuzzySearch) Query() string {
	return f.input.Value()
}

// Update feeds key presses to the input while active
func (f *FuzzySearch) Update(msg tea.Msg) tea.Cmd {
	if !f.active {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// View renders the fuzzy search input
func (f *FuzzySearch) View() string {
	if !f.active {
		return ""
	}
	prompt := styles.ListTitleStyle.Render("┃")
	label := styles.MetadataStyle.Render("Filter: ")
	hint := styles.HelpStyle.UnsetMarginTop().Render(" (esc to clear)")
	return label + prompt + " " + f.input.View() + hint
}

func (f *FuzzySearch) SetWidth(width int) {
	f.input.Width = max(10, width-20)
}

// Filter returns the indices of candidates matching the query, best match
// first. Without a query every index is returned in order.
func (f *FuzzySearch) Filter(candidates []string) []int {
	query := f.input.Value()
	if !f.active || query == "" {
		indices := make([]int, len(candidates))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}

	matches := fuzzy.Find(query, candidates)
	indices := make([]int, len(matches))
	for i, match := range matches {
		indices[i] = match.Index
	}
	return indices
}
