package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/anisearch/internal/catalog"
	searchstore "github.com/justchokingaround/anisearch/internal/search"
	"github.com/justchokingaround/anisearch/internal/tui/common"
)

func (a *App) handleQueryChangedMsg(msg common.QueryChangedMsg) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(msg.Query) == "" {
		a.store.ClearSearch()
		// Supersede whatever query is still waiting in the debouncer
		a.debouncer.Trigger("")
		a.results.Blur()
		a.syncResults()
		return a, nil
	}

	// a stale error is dismissed as soon as the query is edited
	a.store.ClearError()
	a.store.SetQuery(msg.Query)
	a.debouncer.Trigger(msg.Query)
	return a, nil
}

func (a *App) handleSubmitSearchMsg(msg common.SubmitSearchMsg) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(msg.Query) == "" {
		return a, nil
	}
	a.store.SetQuery(msg.Query)
	a.debouncer.Trigger(msg.Query)
	a.debouncer.Flush()
	return a, nil
}

func (a *App) handlePerformSearchMsg(msg common.PerformSearchMsg) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(msg.Query) == "" {
		return a, nil
	}
	return a, tea.Batch(a.runSearch(msg.Query, msg.Page), a.startSpinner())
}

// runSearch performs the request off the update loop
func (a *App) runSearch(query string, page int) tea.Cmd {
	store := a.store
	ctx := a.ctx
	return func() tea.Msg {
		return common.SearchFinishedMsg{Err: store.Search(ctx, query, page)}
	}
}

func (a *App) handleSearchFinishedMsg(msg common.SearchFinishedMsg) (tea.Model, tea.Cmd) {
	a.syncResults()

	var verr *catalog.ValidationError
	if errors.As(msg.Err, &verr) {
		return a, a.setStatus("✗ "+verr.Error(), true)
	}
	if msg.Err != nil {
		a.logger.Debug("search failed", "error", msg.Err)
	}
	return a, nil
}

func (a *App) handleChangePageMsg(msg common.ChangePageMsg) (tea.Model, tea.Cmd) {
	store := a.store
	ctx := a.ctx

	var run func() error
	switch {
	case msg.Delta > 0:
		run = func() error { return store.NextPage(ctx) }
	case msg.Delta < 0:
		run = func() error { return store.PrevPage(ctx) }
	default:
		page := msg.Page
		run = func() error { return store.GoToPage(ctx, page) }
	}

	return a, tea.Batch(func() tea.Msg {
		err := run()
		if errors.Is(err, searchstore.ErrNoQuery) {
			err = nil
		}
		return common.SearchFinishedMsg{Err: err}
	}, a.startSpinner())
}

func (a *App) handleAnimeSelectedMsg(msg common.AnimeSelectedMsg) (tea.Model, tea.Cmd) {
	if a.state != detailView {
		a.previousState = a.state
	}
	a.state = detailView
	a.detailComponent.SetLoading()
	return a, tea.Batch(a.loadDetail(strconv.Itoa(msg.ID)), a.startSpinner())
}

func (a *App) loadDetail(rawID string) tea.Cmd {
	store := a.store
	ctx := a.ctx
	return func() tea.Msg {
		return common.DetailLoadedMsg{Err: store.LoadDetail(ctx, rawID)}
	}
}

func (a *App) handleDetailLoadedMsg(msg common.DetailLoadedMsg) (tea.Model, tea.Cmd) {
	if a.state != detailView {
		return a, nil
	}

	snap := a.store.Snapshot()
	switch {
	case snap.DetailLoading:
		// a newer lookup is still running
	case snap.Selected != nil:
		a.detailComponent.SetAnime(snap.Selected, a.store.IsFavorite(snap.Selected.MalID))
	case snap.DetailError != "":
		a.detailComponent.SetError(snap.DetailError)
	}
	return a, nil
}

func (a *App) handleToggleFavoriteMsg(msg common.ToggleFavoriteMsg) (tea.Model, tea.Cmd) {
	store := a.store
	item := msg.Anime
	return a, func() tea.Msg {
		added, err := store.ToggleFavorite(item)
		return favoriteToggledMsg{title: item.Title, added: added, err: err}
	}
}

func (a *App) handleFavoriteToggledMsg(msg favoriteToggledMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a, a.setStatus("✗ "+msg.err.Error(), true)
	}

	a.favoritesComponent.SetItems(a.store.Favorites())
	if sel := a.detailComponent.Anime(); sel != nil {
		a.detailComponent.SetFavorite(a.store.IsFavorite(sel.MalID))
	}

	if msg.added {
		return a, a.setStatus("✓ Added "+msg.title+" to favorites", false)
	}
	return a, a.setStatus("Removed "+msg.title+" from favorites", false)
}
