package common

import (
	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/search"
)

// This file contains custom tea.Msg types for communication between components.

// BackMsg is a generic message to go back to the previous view.
type BackMsg struct{}

// GoToFavoritesMsg switches to the favorites view.
type GoToFavoritesMsg struct{}

// GoToSearchMsg switches to the search view.
type GoToSearchMsg struct{}

// QueryChangedMsg is sent whenever the search input text changes.
type QueryChangedMsg struct {
	Query string
}

// SubmitSearchMsg asks for the current query to be searched without waiting
// for the debounce window.
type SubmitSearchMsg struct {
	Query string
}

// PerformSearchMsg triggers a search for Query at Page.
type PerformSearchMsg struct {
	Query string
	Page  int
}

// SearchFinishedMsg reports that a search, page change or cancellation settled.
type SearchFinishedMsg struct {
	Err error
}

// ChangePageMsg requests a page of the current query. Delta is used when Page is 0.
type ChangePageMsg struct {
	Page  int
	Delta int
}

// AnimeSelectedMsg opens the detail view for an anime.
type AnimeSelectedMsg struct {
	ID    int
	Title string
}

// DetailLoadedMsg reports the end of a detail lookup.
type DetailLoadedMsg struct {
	Err error
}

// ToggleFavoriteMsg adds or removes an anime from favorites.
type ToggleFavoriteMsg struct {
	Anime catalog.Anime
}

// OpenFilterPanelMsg shows the filter panel overlay.
type OpenFilterPanelMsg struct{}

// ToggleGenreMsg toggles one genre filter.
type ToggleGenreMsg struct {
	Genre string
}

// SetYearMsg sets the year filter; "" clears it.
type SetYearMsg struct {
	Year string
}

// SetSortMsg selects a sort mode.
type SetSortMsg struct {
	Mode search.SortMode
}

// ClearFiltersMsg clears every filter and the sort mode.
type ClearFiltersMsg struct{}

// OpenShareMenuMsg shows the share menu for an anime.
type OpenShareMenuMsg struct {
	Title string
	URL   string
}

// OpenURLMsg opens a link in the system browser.
type OpenURLMsg struct {
	Label string
	URL   string
}

// CopyToClipboardMsg copies text and reports it as Label.
type CopyToClipboardMsg struct {
	Label string
	Text  string
}

// StatusMsg shows a transient message in the footer.
type StatusMsg struct {
	Text    string
	IsError bool
}
