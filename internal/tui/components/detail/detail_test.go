package detail

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/tui/common"
)

func ptr[T any](v T) *T { return &v }

func bebop() *catalog.Anime {
	return &catalog.Anime{
		MalID:      1,
		URL:        "https://myanimelist.net/anime/1/Cowboy_Bebop",
		Title:      "Cowboy Bebop",
		Score:      ptr(8.75),
		ScoredBy:   ptr(1000000),
		Members:    ptr(4000000),
		Rank:       ptr(46),
		Episodes:   ptr(26),
		Season:     ptr("spring"),
		Year:       ptr(1998),
		Status:     "Finished Airing",
		Genres:     []catalog.Entity{{Name: "Action"}},
		Studios:    []catalog.Entity{{Name: "Sunrise"}},
		Synopsis:   ptr("Crime is timeless."),
		Trailer:    catalog.Trailer{YoutubeID: ptr("qig4KOK2R2g")},
		Background: ptr("Won several awards."),
	}
}

func TestRender(t *testing.T) {
	out := Render(*bebop(), true, 80)

	assert.Contains(t, out, "Cowboy Bebop")
	assert.Contains(t, out, "1,000,000 users")
	assert.Contains(t, out, "4,000,000")
	assert.Contains(t, out, "Spring 1998")
	assert.Contains(t, out, "Sunrise")
	assert.Contains(t, out, "Crime is timeless.")
	assert.Contains(t, out, "Won several awards.")
	assert.Contains(t, out, "youtube.com/watch?v=qig4KOK2R2g")
	assert.Contains(t, out, "In your favorites")
}

func TestStates(t *testing.T) {
	m := New()
	m.SetSize(100, 40)

	m.SetLoading()
	assert.Contains(t, m.View(), "Loading anime details")

	m.SetError("Anime not found")
	assert.Contains(t, m.View(), "Anime not found")
	assert.Nil(t, m.Anime())

	m.SetAnime(bebop(), false)
	assert.Contains(t, m.View(), "Cowboy Bebop")
	assert.NotContains(t, m.View(), "♥ favorite")

	m.SetFavorite(true)
	assert.Contains(t, m.View(), "♥ favorite")
}

func TestKeys(t *testing.T) {
	m := New()
	m.SetSize(100, 40)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, common.BackMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Nil(t, cmd, "nothing to favorite while loading")

	m.SetAnime(bebop(), false)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	assert.Equal(t, common.OpenShareMenuMsg{Title: "Cowboy Bebop", URL: bebop().URL}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, common.OpenURLMsg{Label: "trailer", URL: "https://www.youtube.com/watch?v=qig4KOK2R2g"}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Equal(t, common.CopyToClipboardMsg{Label: "Link", Text: bebop().URL}, cmd())

	m.SetAnime(&catalog.Anime{MalID: 2, Title: "Trigun"}, false)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	assert.Equal(t, common.StatusMsg{Text: "No trailer available", IsError: true}, cmd())
}
