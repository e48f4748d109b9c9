package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) handleGoToSearchMsg() (tea.Model, tea.Cmd) {
	a.statusMsg = ""
	a.overlay = noOverlay
	a.state = searchView
	a.syncResults()
	if a.results.Len() > 0 {
		a.focusResults()
		return a, nil
	}
	return a, a.focusInput()
}

func (a *App) handleGoToFavoritesMsg() (tea.Model, tea.Cmd) {
	a.overlay = noOverlay
	if a.state == favoritesView {
		return a, nil
	}
	if a.state == detailView {
		a.store.ClearSelected()
	}
	a.favoritesComponent.SetItems(a.store.Favorites())
	a.search.Blur()
	a.state = favoritesView
	return a, nil
}

func (a *App) handleOpenFilterPanelMsg() (tea.Model, tea.Cmd) {
	a.syncResults()
	a.filterPanel.Reset()
	a.overlay = filterOverlay
	return a, nil
}

func (a *App) handleBackMsg() (tea.Model, tea.Cmd) {
	// Overlays close before any view changes
	if a.overlay != noOverlay {
		a.overlay = noOverlay
		return a, nil
	}

	switch a.state {
	case detailView:
		a.store.ClearSelected()
		a.state = a.previousState
		if a.state == favoritesView {
			a.favoritesComponent.SetItems(a.store.Favorites())
		} else {
			a.syncResults()
		}
	case favoritesView:
		return a.handleGoToSearchMsg()
	}
	return a, nil
}
