package sharemenu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/anisearch/internal/tui/common"
)

func TestOptions(t *testing.T) {
	m := New()
	m.Open("Cowboy Bebop", "https://myanimelist.net/anime/1")

	assert.Equal(t, []string{"X (Twitter)", "Facebook", "WhatsApp", "Copy link"}, m.Options())
}

func TestChooseTarget(t *testing.T) {
	m := New()
	m.Open("Cowboy Bebop", "https://myanimelist.net/anime/1")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(common.OpenURLMsg)
	require.True(t, ok)
	assert.Equal(t, "Facebook", msg.Label)
	assert.True(t, strings.HasPrefix(msg.URL, "https://www.facebook.com/sharer/sharer.php?u="))
}

func TestCopyLink(t *testing.T) {
	m := New()
	m.Open("Cowboy Bebop", "https://myanimelist.net/anime/1")

	var model tea.Model = m
	for range 3 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, common.CopyToClipboardMsg{Label: "Link", Text: "https://myanimelist.net/anime/1"}, cmd())
}
