package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/config"
	"github.com/justchokingaround/anisearch/internal/favorites"
	searchstore "github.com/justchokingaround/anisearch/internal/search"
	"github.com/justchokingaround/anisearch/internal/tui/common"
)

type stubCatalog struct {
	mu      sync.Mutex
	results []catalog.Anime
	err     error
}

func (s *stubCatalog) Search(ctx context.Context, query string, page int) (*catalog.SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &catalog.SearchResponse{
		Data: s.results,
		Pagination: catalog.Pagination{
			CurrentPage:     page,
			LastVisiblePage: 3,
			HasNextPage:     page < 3,
		},
	}, nil
}

func (s *stubCatalog) GetByID(ctx context.Context, id int) (*catalog.Anime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.results {
		if a.MalID == id {
			return &a, nil
		}
	}
	return nil, &catalog.NetworkError{StatusCode: 404, Message: "Anime not found"}
}

type recordingClipboard struct {
	written []string
}

func (r *recordingClipboard) Write(ctx context.Context, text string) error {
	r.written = append(r.written, text)
	return nil
}

func sampleAnime() []catalog.Anime {
	comedy := []catalog.Entity{{MalID: 4, Name: "Comedy"}}
	action := []catalog.Entity{{MalID: 1, Name: "Action"}}
	return []catalog.Anime{
		{MalID: 20, Title: "Naruto", URL: "https://myanimelist.net/anime/20/Naruto", Genres: action, Status: "Finished Airing"},
		{MalID: 1735, Title: "Naruto: Shippuuden", URL: "https://myanimelist.net/anime/1735", Genres: comedy},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*App, *stubCatalog, *recordingClipboard) {
	t.Helper()

	stub := &stubCatalog{results: sampleAnime()}
	store, err := searchstore.NewStore(catalog.NewSearcher(stub), favorites.NewMemoryStore(), nil)
	require.NoError(t, err)

	clip := &recordingClipboard{}
	app := NewApp(Options{Store: store, Clipboard: clip, Config: cfg})
	t.Cleanup(app.shutdown)

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return app, stub, clip
}

// doSearch runs a search through the same path a submitted query takes
func doSearch(t *testing.T, app *App, query string) {
	t.Helper()
	app.Update(common.QueryChangedMsg{Query: query})
	app.Update(app.runSearch(query, 1)())
}

func TestDebouncedTypingSearchesLastQuery(t *testing.T) {
	cfg := &config.Config{Search: config.SearchConfig{Debounce: 20 * time.Millisecond}}
	app, _, _ := newTestApp(t, cfg)

	for _, q := range []string{"n", "na", "nar"} {
		app.Update(common.QueryChangedMsg{Query: q})
	}

	select {
	case msg := <-app.msgChan:
		assert.Equal(t, common.PerformSearchMsg{Query: "nar", Page: 1}, msg)
	case <-time.After(time.Second):
		t.Fatal("debounced search never fired")
	}

	select {
	case msg := <-app.msgChan:
		t.Fatalf("unexpected extra message %#v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubmitSkipsDebounce(t *testing.T) {
	cfg := &config.Config{Search: config.SearchConfig{Debounce: time.Hour}}
	app, _, _ := newTestApp(t, cfg)

	app.Update(common.SubmitSearchMsg{Query: "bebop"})

	select {
	case msg := <-app.msgChan:
		assert.Equal(t, common.PerformSearchMsg{Query: "bebop", Page: 1}, msg)
	default:
		t.Fatal("submit did not search immediately")
	}
}

func TestPendingQueryShowsHint(t *testing.T) {
	cfg := &config.Config{Search: config.SearchConfig{Debounce: time.Hour}}
	app, _, _ := newTestApp(t, cfg)

	app.Update(common.QueryChangedMsg{Query: "bebop"})
	assert.Contains(t, app.View(), "Waiting to search")
	assert.NotContains(t, app.View(), "No results")
}

func TestSearchShowsResults(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	assert.Contains(t, app.View(), "Start typing")

	doSearch(t, app, "naruto")

	view := app.View()
	assert.Contains(t, view, "Naruto: Shippuuden")
	assert.Contains(t, view, "page 1 of 3")
	assert.Equal(t, 2, app.results.Len())
}

func TestClearingQueryResetsResults(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	doSearch(t, app, "naruto")

	app.Update(common.QueryChangedMsg{Query: ""})

	snap := app.store.Snapshot()
	assert.Empty(t, snap.Results)
	assert.Empty(t, snap.Query)
	assert.Equal(t, 0, app.results.Len())
	assert.Contains(t, app.View(), "Start typing")
}

func TestSearchErrorIsShown(t *testing.T) {
	app, stub, _ := newTestApp(t, nil)
	stub.err = &catalog.NetworkError{StatusCode: 500, Message: "Server error"}

	doSearch(t, app, "naruto")

	assert.Contains(t, app.View(), "Server error")
}

func TestPageOutOfRangeShowsStatus(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	doSearch(t, app, "naruto")

	app.Update(common.SearchFinishedMsg{Err: app.store.GoToPage(context.Background(), 9)})

	assert.True(t, app.statusIsError)
	assert.Contains(t, app.statusMsg, "page")
}

func TestDetailAndBack(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	doSearch(t, app, "naruto")

	app.Update(common.AnimeSelectedMsg{ID: 20, Title: "Naruto"})
	require.Equal(t, detailView, app.state)

	app.Update(app.loadDetail("20")())
	view := app.View()
	assert.Contains(t, view, "DETAILS")
	assert.Contains(t, view, "Finished Airing")

	app.Update(common.BackMsg{})
	assert.Equal(t, searchView, app.state)
	assert.Nil(t, app.store.Snapshot().Selected)
}

func TestDetailNotFound(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	app.Update(common.AnimeSelectedMsg{ID: 999})
	app.Update(app.loadDetail("999")())

	assert.Contains(t, app.View(), "Anime not found")
}

func TestToggleFavorite(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	doSearch(t, app, "naruto")

	item := sampleAnime()[0]
	_, cmd := app.Update(common.ToggleFavoriteMsg{Anime: item})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.True(t, app.store.IsFavorite(item.MalID))
	assert.Contains(t, app.statusMsg, "Added Naruto")
	assert.Contains(t, app.View(), "♥ 1")

	app.Update(common.GoToFavoritesMsg{})
	require.Equal(t, favoritesView, app.state)
	assert.Contains(t, app.View(), "MY FAVORITES")
	assert.Contains(t, app.View(), "Naruto")

	_, cmd = app.Update(common.ToggleFavoriteMsg{Anime: item})
	app.Update(cmd())
	assert.False(t, app.store.IsFavorite(item.MalID))
	assert.Contains(t, app.View(), "No favorites yet")
}

func TestFilterPanel(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	doSearch(t, app, "naruto")

	app.Update(common.OpenFilterPanelMsg{})
	require.Equal(t, filterOverlay, app.overlay)
	assert.Contains(t, app.View(), "FILTERS")

	app.Update(common.ToggleGenreMsg{Genre: "Comedy"})
	require.Equal(t, 1, app.results.Len())
	assert.Equal(t, 1735, app.results.Selected().MalID)

	app.Update(common.BackMsg{})
	assert.Equal(t, noOverlay, app.overlay)
	assert.Equal(t, searchView, app.state)

	app.Update(common.ClearFiltersMsg{})
	assert.Equal(t, 2, app.results.Len())
}

func TestShareMenuCopiesLink(t *testing.T) {
	app, _, clip := newTestApp(t, nil)

	app.Update(common.OpenShareMenuMsg{Title: "Naruto", URL: "https://myanimelist.net/anime/20"})
	require.Equal(t, shareOverlay, app.overlay)
	assert.Contains(t, app.View(), "WhatsApp")

	_, cmd := app.Update(common.CopyToClipboardMsg{Label: "Link", Text: "https://myanimelist.net/anime/20"})
	assert.Equal(t, noOverlay, app.overlay)

	msg := cmd()
	assert.Equal(t, common.StatusMsg{Text: "📋 Link copied to clipboard"}, msg)
	assert.Equal(t, []string{"https://myanimelist.net/anime/20"}, clip.written)
}

func TestOpenURL(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	var opened []string
	app.openURL = func(url string) error {
		opened = append(opened, url)
		return nil
	}

	_, cmd := app.Update(common.OpenURLMsg{Label: "Trailer", URL: "https://youtu.be/x"})
	assert.Equal(t, common.StatusMsg{Text: "✓ Opened Trailer"}, cmd())
	assert.Equal(t, []string{"https://youtu.be/x"}, opened)
}

func TestStatusClears(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	app.Update(common.StatusMsg{Text: "hello"})
	app.Update(clearStatusMsg{})
	assert.Equal(t, "hello", app.statusMsg, "a fresh message survives an early clear")

	app.statusMsgTime = time.Now().Add(-statusDuration)
	app.Update(clearStatusMsg{})
	assert.Empty(t, app.statusMsg)
}

func TestApplyConfig(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	app.Update(configChangedMsg{cfg: &config.Config{
		Search: config.SearchConfig{Debounce: 10 * time.Millisecond},
		UI:     config.UIConfig{MaxVisiblePages: 3},
	}})
	assert.Equal(t, 3, app.maxVisiblePages)
}

func TestHelpToggle(t *testing.T) {
	app, _, _ := newTestApp(t, nil)
	app.search.Blur()

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, app.helpComponent.IsVisible())
	assert.Contains(t, app.View(), "KEYBOARD SHORTCUTS")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, app.helpComponent.IsVisible())
}
