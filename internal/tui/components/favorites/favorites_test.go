package favorites

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/tui/common"
)

func items() []catalog.Anime {
	return []catalog.Anime{
		{MalID: 1, Title: "Cowboy Bebop"},
		{MalID: 5114, Title: "Fullmetal Alchemist: Brotherhood"},
		{MalID: 9253, Title: "Steins;Gate"},
	}
}

func typeRunes(m Model, s string) Model {
	for _, r := range s {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(Model)
	}
	return m
}

func TestFuzzyFilter(t *testing.T) {
	m := New()
	m.SetItems(items())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = model.(Model)
	require.True(t, m.IsInputActive())

	m = typeRunes(m, "fma")
	sel := m.Selected()
	require.NotNil(t, sel)
	assert.Equal(t, 5114, sel.MalID)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = model.(Model)
	assert.False(t, m.IsInputActive())
	assert.Equal(t, 1, m.Selected().MalID)
}

func TestRemoveAndOpen(t *testing.T) {
	m := New()
	m.SetItems(items())

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = model.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Equal(t, common.ToggleFavoriteMsg{Anime: items()[1]}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, common.AnimeSelectedMsg{ID: 5114, Title: "Fullmetal Alchemist: Brotherhood"}, cmd())
}

func TestCursorClampedOnShrink(t *testing.T) {
	m := New()
	m.SetItems(items())
	for range 2 {
		model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = model.(Model)
	}

	m.SetItems(items()[:1])
	assert.Equal(t, 1, m.Selected().MalID)

	m.SetItems(nil)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.View(), "No favorites yet")
}
