package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/anisearch/internal/tui/common"
	"github.com/justchokingaround/anisearch/internal/tui/components/favorites"
	"github.com/justchokingaround/anisearch/internal/tui/components/filter"
	"github.com/justchokingaround/anisearch/internal/tui/components/results"
	"github.com/justchokingaround/anisearch/internal/tui/components/search"
	"github.com/justchokingaround/anisearch/internal/tui/components/sharemenu"
)

// handleKeyMsg processes all keyboard input and routes to appropriate handlers
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		a.shutdown()
		return a, tea.Quit
	}

	// '?' is typed into the search box while it has focus
	if msg.String() == "?" && !a.typing() {
		if a.helpComponent.IsVisible() {
			a.helpComponent.Hide()
		} else {
			a.updateHelpContext()
			a.helpComponent.Show()
		}
		return a, nil
	}

	// If help is visible, only help navigation keys get through
	if a.helpComponent.IsVisible() {
		var helpCmd tea.Cmd
		a.helpComponent, helpCmd = a.helpComponent.Update(msg)
		if msg.String() == "esc" || msg.String() == "q" {
			a.helpComponent.Hide()
		}
		return a, helpCmd
	}

	switch a.overlay {
	case filterOverlay:
		model, cmd := a.filterPanel.Update(msg)
		a.filterPanel = model.(filter.Model)
		return a, cmd
	case shareOverlay:
		model, cmd := a.shareMenu.Update(msg)
		a.shareMenu = model.(sharemenu.Model)
		return a, cmd
	}

	if msg.Type == tea.KeyCtrlF {
		return a, func() tea.Msg { return common.GoToFavoritesMsg{} }
	}

	switch a.state {
	case searchView:
		return a.handleSearchViewKeys(msg)
	case detailView:
		_, cmd := a.detailComponent.Update(msg)
		return a, cmd
	case favoritesView:
		if msg.String() == "q" && !a.favoritesComponent.IsInputActive() {
			a.shutdown()
			return a, tea.Quit
		}
		model, cmd := a.favoritesComponent.Update(msg)
		a.favoritesComponent = model.(favorites.Model)
		return a, cmd
	}

	return a, nil
}

// typing reports whether key presses are going into a text input
func (a *App) typing() bool {
	switch {
	case a.helpComponent.IsVisible() || a.overlay != noOverlay:
		return false
	case a.state == searchView:
		return a.search.Focused()
	case a.state == favoritesView:
		return a.favoritesComponent.IsInputActive()
	}
	return false
}

func (a *App) handleSearchViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.results.Focused() {
		switch msg.String() {
		case "tab", "esc", "/":
			return a, a.focusInput()
		case "q":
			a.shutdown()
			return a, tea.Quit
		case "c":
			return a, func() tea.Msg { return common.ClearFiltersMsg{} }
		}
		model, cmd := a.results.Update(msg)
		a.results = model.(results.Model)
		return a, cmd
	}

	switch msg.String() {
	case "tab", "down":
		if a.results.Len() > 0 {
			a.focusResults()
			return a, nil
		}
		if msg.String() == "tab" {
			return a, nil
		}
	case "ctrl+r":
		// retry after an error
		if q := a.search.GetValue(); q != "" {
			return a, func() tea.Msg { return common.SubmitSearchMsg{Query: q} }
		}
	}

	model, cmd := a.search.Update(msg)
	a.search = model.(search.Model)
	return a, cmd
}

func (a *App) focusInput() tea.Cmd {
	a.results.Blur()
	return a.search.Focus()
}

func (a *App) focusResults() {
	a.search.Blur()
	a.results.Focus()
}
