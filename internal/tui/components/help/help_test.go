package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/justchokingaround/anisearch/internal/tui/tuitest"
)

func TestHelpView(t *testing.T) {
	model := New()
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 60})

	assert.Empty(t, model.View(), "hidden panel renders nothing")

	model.SetContext(DetailContext)
	model.Show()
	view := model.View()

	assert.Contains(t, view, "KEYBOARD SHORTCUTS")
	assert.Contains(t, view, "Navigation & General")
	assert.Contains(t, view, "Detail Actions")
	assert.Contains(t, view, "Watch trailer")
	assert.NotContains(t, view, "Next page")

	tuitest.AssertSnapshot(t, view)
}

func TestShortcutsFor(t *testing.T) {
	for _, sc := range shortcutsFor(GlobalContext) {
		assert.Contains(t, sc.Context, GlobalContext)
	}

	results := shortcutsFor(ResultsContext)
	var keys []string
	for _, sc := range results {
		keys = append(keys, sc.Key)
	}
	assert.Contains(t, keys, "F")
	assert.Contains(t, keys, "f")
	assert.NotContains(t, keys, "ctrl+c")
}

func TestToggle(t *testing.T) {
	model := New()
	model.Toggle()
	assert.True(t, model.IsVisible())
	model.Toggle()
	assert.False(t, model.IsVisible())
}
