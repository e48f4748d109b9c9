package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/justchokingaround/anisearch/internal/catalog"
	"github.com/justchokingaround/anisearch/internal/favorites"
)

// ErrPageOutOfRange is wrapped by the validation error returned for pages
// outside 1..TotalPages
var ErrPageOutOfRange = errors.New("page out of range")

// ErrNoQuery is returned by page navigation when there is nothing to page through
var ErrNoQuery = errors.New("no active search")

// Searcher is the catalog access the store needs. *catalog.Searcher
// implements it.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*catalog.SearchResponse, error)
	GetByID(ctx context.Context, id int) (*catalog.Anime, error)
	Cancel()
}

// State is a point-in-time copy of the store
type State struct {
	Query       string
	Results     []catalog.Anime
	CurrentPage int
	TotalPages  int
	HasNextPage bool
	Loading     bool
	Error       string

	Filters Filters
	Sort    SortMode

	Selected      *catalog.Anime
	DetailLoading bool
	DetailError   string
}

// Store holds search, filter, detail and favorites state. All methods are
// safe to call from multiple goroutines.
type Store struct {
	searcher  Searcher
	favStore  favorites.Store
	logger    *slog.Logger
	favorites *favorites.Set

	mu           sync.Mutex
	state        State
	seq          uint64
	detailSeq    uint64
	detailCancel context.CancelFunc
}

// NewStore builds a store and loads the persisted favorites once
func NewStore(searcher Searcher, favStore favorites.Store, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	items, err := favStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	return &Store{
		searcher:  searcher,
		favStore:  favStore,
		logger:    logger,
		favorites: favorites.NewSet(items),
		state: State{
			CurrentPage: 1,
			TotalPages:  1,
		},
	}, nil
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Results = slices.Clone(s.state.Results)
	st.Filters = s.state.Filters.clone()
	if s.state.Selected != nil {
		selected := *s.state.Selected
		st.Selected = &selected
	}
	return st
}

// Search fetches page of query. Blank queries are ignored. A search that is
// superseded before it completes leaves the state untouched and returns nil.
func (s *Store) Search(ctx context.Context, query string, page int) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.state.Query = query
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)
	logger.Debug("search started", "query", query, "page", page)

	resp, err := s.searcher.Search(ctx, query, page)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		logger.Debug("search superseded", "query", query)
		return nil
	}

	s.state.Loading = false
	if errors.Is(err, catalog.ErrCanceled) {
		logger.Debug("search canceled", "query", query)
		return nil
	}
	if err != nil {
		s.state.Error = err.Error()
		logger.Warn("search failed", "query", query, "error", err)
		return err
	}

	s.state.Results = resp.Data
	s.state.CurrentPage = resp.Pagination.CurrentPage
	if s.state.CurrentPage < 1 {
		s.state.CurrentPage = page
	}
	s.state.TotalPages = max(1, resp.Pagination.LastVisiblePage)
	s.state.HasNextPage = resp.Pagination.HasNextPage
	logger.Debug("search finished",
		"query", query,
		"results", len(resp.Data),
		"page", s.state.CurrentPage,
		"total_pages", s.state.TotalPages,
	)
	return nil
}

// SetQuery records the input text without searching
func (s *Store) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
}

// ClearSearch resets the query and results and aborts the in-flight search
func (s *Store) ClearSearch() {
	s.searcher.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state.Query = ""
	s.state.Results = nil
	s.state.CurrentPage = 1
	s.state.TotalPages = 1
	s.state.HasNextPage = false
	s.state.Loading = false
	s.state.Error = ""
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}

// Cancel aborts any in-flight search or detail request
func (s *Store) Cancel() {
	s.searcher.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state.Loading = false
	if s.detailCancel != nil {
		s.detailCancel()
		s.detailCancel = nil
	}
}

// GoToPage searches the current query at page
func (s *Store) GoToPage(ctx context.Context, page int) error {
	s.mu.Lock()
	query := s.state.Query
	total := s.state.TotalPages
	s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return ErrNoQuery
	}
	if page < 1 || page > total {
		return &catalog.ValidationError{
			Field: "page",
			Value: strconv.Itoa(page),
			Msg:   fmt.Sprintf("must be between 1 and %d", total),
			Err:   ErrPageOutOfRange,
		}
	}
	return s.Search(ctx, query, page)
}

// NextPage moves forward when the catalog reports another page
func (s *Store) NextPage(ctx context.Context) error {
	s.mu.Lock()
	query := s.state.Query
	current := s.state.CurrentPage
	hasNext := s.state.HasNextPage
	s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return ErrNoQuery
	}
	if !hasNext {
		return &catalog.ValidationError{
			Field: "page",
			Value: strconv.Itoa(current + 1),
			Msg:   "already on the last page",
			Err:   ErrPageOutOfRange,
		}
	}
	return s.Search(ctx, query, current+1)
}

// PrevPage moves back one page
func (s *Store) PrevPage(ctx context.Context) error {
	s.mu.Lock()
	current := s.state.CurrentPage
	s.mu.Unlock()

	if current <= 1 {
		return &catalog.ValidationError{
			Field: "page",
			Value: strconv.Itoa(current - 1),
			Msg:   "already on the first page",
			Err:   ErrPageOutOfRange,
		}
	}
	return s.GoToPage(ctx, current-1)
}

// PageWindow lays out the pagination bar, or nil when there is nothing to page
func (s *Store) PageWindow(maxVisible int) []PageItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Results) == 0 || strings.TrimSpace(s.state.Query) == "" {
		return nil
	}
	return Window(s.state.CurrentPage, s.state.TotalPages, maxVisible)
}

// ToggleGenre selects genre, or deselects it when already selected
func (s *Store) ToggleGenre(genre string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	genres := s.state.Filters.Genres
	if i := slices.Index(genres, genre); i >= 0 {
		s.state.Filters.Genres = slices.Delete(slices.Clone(genres), i, i+1)
		return
	}
	s.state.Filters.Genres = append(slices.Clone(genres), genre)
}

// SetGenres replaces the genre selection; duplicates are dropped
func (s *Store) SetGenres(genres []string) {
	unique := make([]string, 0, len(genres))
	for _, g := range genres {
		if g != "" && !slices.Contains(unique, g) {
			unique = append(unique, g)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.Genres = unique
}

// SetYear filters on an exact airing year; "" clears it
func (s *Store) SetYear(year string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters.Year = strings.TrimSpace(year)
}

// ClearFilters drops every filter and resets the sort mode
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = Filters{}
	s.state.Sort = SortNone
}

func (s *Store) SetSort(mode SortMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sort = mode
}

// ActiveFilterCount counts selected genres, the year and a non-default sort
func (s *Store) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.state.Filters.Count()
	if s.state.Sort != SortNone {
		n++
	}
	return n
}

// Displayed is the current page after filtering and sorting
func (s *Store) Displayed() []catalog.Anime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Derive(s.state.Results, s.state.Filters, s.state.Sort)
}

// LoadDetail fetches the anime identified by rawID into Selected. Ids that
// are not all digits fail without a request.
func (s *Store) LoadDetail(ctx context.Context, rawID string) error {
	id, err := catalog.ParseID(strings.TrimSpace(rawID))

	s.mu.Lock()
	s.detailSeq++
	seq := s.detailSeq
	if s.detailCancel != nil {
		s.detailCancel()
		s.detailCancel = nil
	}
	if err != nil {
		s.state.Selected = nil
		s.state.DetailLoading = false
		s.state.DetailError = err.Error()
		s.mu.Unlock()
		return err
	}
	reqCtx, cancel := context.WithCancel(ctx)
	s.detailCancel = cancel
	s.state.DetailLoading = true
	s.state.DetailError = ""
	s.mu.Unlock()

	item, err := s.searcher.GetByID(reqCtx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	cancel()
	if seq != s.detailSeq {
		return nil
	}
	s.detailCancel = nil
	s.state.DetailLoading = false
	if err != nil {
		if errors.Is(err, catalog.ErrCanceled) {
			return nil
		}
		s.state.DetailError = err.Error()
		s.logger.Warn("detail lookup failed", "id", id, "error", err)
		return err
	}
	s.state.Selected = item
	return nil
}

// ClearSelected drops the detail and ignores any response still in flight
func (s *Store) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailSeq++
	if s.detailCancel != nil {
		s.detailCancel()
		s.detailCancel = nil
	}
	s.state.Selected = nil
	s.state.DetailLoading = false
	s.state.DetailError = ""
}

// ToggleFavorite adds or removes item and persists the full list. It
// reports whether item is a favorite afterwards. When saving fails the
// toggle is rolled back.
func (s *Store) ToggleFavorite(item catalog.Anime) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.favorites.Items()
	added := s.favorites.Toggle(item)
	if err := s.favStore.Save(s.favorites.Items()); err != nil {
		s.favorites = favorites.NewSet(before)
		s.logger.Error("failed to persist favorites", "id", item.MalID, "error", err)
		return !added, fmt.Errorf("failed to save favorites: %w", err)
	}
	s.logger.Debug("favorite toggled", "id", item.MalID, "title", item.Title, "favorite", added)
	return added, nil
}

func (s *Store) IsFavorite(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Contains(id)
}

// Favorites returns the favorites in the order they were added
func (s *Store) Favorites() []catalog.Anime {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites.Items()
}
