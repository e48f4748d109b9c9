package share

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargets(t *testing.T) {
	link := "https://myanimelist.net/anime/20/Naruto"
	targets := Targets("Naruto & Friends", link)
	require.Len(t, targets, 3)

	assert.Equal(t, "X (Twitter)", targets[0].Name)
	tw, err := url.Parse(targets[0].URL)
	require.NoError(t, err)
	assert.Equal(t, "twitter.com", tw.Host)
	assert.Equal(t, "Check out Naruto & Friends!", tw.Query().Get("text"))
	assert.Equal(t, link, tw.Query().Get("url"))

	fb, err := url.Parse(targets[1].URL)
	require.NoError(t, err)
	assert.Equal(t, "/sharer/sharer.php", fb.Path)
	assert.Equal(t, link, fb.Query().Get("u"))

	wa, err := url.Parse(targets[2].URL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", wa.Host)
	assert.Equal(t, "Check out Naruto & Friends! "+link, wa.Query().Get("text"))
}
